package create_appointment

import (
	"time"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	createAppointment "github.com/elegantstudio/ES-SchedulingService/internal/usecase/create_appointment"
	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID int64   `json:"serviceId"`
	MasterID  *int64  `json:"masterId,omitempty"` // отсутствует - мастер подбирается автоматически
	Date      string  `json:"date"`               // "2026-09-15"
	StartTime string  `json:"startTime"`          // "10:00"
	Notes     *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID           int64   `json:"id"`
	ClientID     int64   `json:"clientId"`
	MasterID     int64   `json:"masterId"`
	ServiceID    int64   `json:"serviceId"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`
	AutoAssigned bool    `json:"autoAssigned"`
	CreatedAt    string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:  clientID,
		ServiceID: r.ServiceID,
		MasterID:  r.MasterID,
		Date:      date,
		StartTime: startTime,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           resp.ID,
		ClientID:     resp.ClientID,
		MasterID:     resp.MasterID,
		ServiceID:    resp.ServiceID,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       string(resp.Status),
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		Notes:        resp.Notes,
		AutoAssigned: resp.AutoAssigned,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
