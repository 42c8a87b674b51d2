package assign_master

import (
	assignMaster "github.com/elegantstudio/ES-SchedulingService/internal/usecase/assign_master"
)

// AssignMasterResponse HTTP response model
type AssignMasterResponse struct {
	MasterID        int64  `json:"masterId"`
	MasterName      string `json:"masterName"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	ConflictFree    bool   `json:"conflictFree"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *assignMaster.Response) *AssignMasterResponse {
	return &AssignMasterResponse{
		MasterID:        resp.MasterID,
		MasterName:      resp.MasterName,
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		ConflictFree:    resp.ConflictFree,
	}
}
