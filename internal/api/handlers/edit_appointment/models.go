package edit_appointment

import (
	"time"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	editAppointment "github.com/elegantstudio/ES-SchedulingService/internal/usecase/edit_appointment"
	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

// EditAppointmentRequest HTTP request model
// Отсутствующие поля остаются без изменений
type EditAppointmentRequest struct {
	MasterID  *int64  `json:"masterId,omitempty"`
	ServiceID *int64  `json:"serviceId,omitempty"`
	Date      *string `json:"date,omitempty"`      // "2026-09-15"
	StartTime *string `json:"startTime,omitempty"` // "10:00"
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
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EditAppointmentRequest) ToUseCaseRequest(appointmentID, clientID int64) (*editAppointment.Request, error) {
	req := &editAppointment.Request{
		AppointmentID: appointmentID,
		ClientID:      clientID,
		MasterID:      r.MasterID,
		ServiceID:     r.ServiceID,
		Notes:         r.Notes,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *editAppointment.Response) *AppointmentResponse {
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
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
