package models

import (
	"errors"
	"time"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID int64 `json:"userId"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetClientAppointmentsRequest запрос истории записей клиента
type GetClientAppointmentsRequest struct {
	UserID    int64      `json:"userId"`
	ClientID  int64      `json:"clientId"`
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
	MasterID  *int64     `json:"masterId,omitempty"`  // Фильтр по мастеру (опционально)
	ServiceID *int64     `json:"serviceId,omitempty"` // Фильтр по услуге (опционально)
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetClientAppointmentsRequest) ToDomainFilter() (domain.ClientAppointmentsFilter, error) {
	filter := domain.ClientAppointmentsFilter{
		ClientID:  r.ClientID,
		MasterID:  r.MasterID,
		ServiceID: r.ServiceID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// GetMasterDayRequest запрос дневного листа мастера
type GetMasterDayRequest struct {
	UserID     int64     `json:"userId"`
	MasterID   int64     `json:"masterId"`
	Date       time.Time `json:"date"`
	OnlyActive bool      `json:"onlyActive,omitempty"` // только pending/confirmed
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID        int64  `json:"id"`
	ClientID  int64  `json:"clientId"`
	MasterID  int64  `json:"masterId"`
	ServiceID int64  `json:"serviceId"`
	Date      string `json:"date"`      // "2026-09-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:30"
	Status    string `json:"status"`

	// Денормализованные данные услуги
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	Notes       *string `json:"notes,omitempty"`
	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:           a.ID,
		ClientID:     a.ClientID,
		MasterID:     a.MasterID,
		ServiceID:    a.ServiceID,
		Date:         a.Date.Format(domain.DateFormat),
		StartTime:    a.StartTime.String(),
		EndTime:      a.EndTime.String(),
		Status:       string(a.Status),
		ServiceName:  a.ServiceName,
		ServicePrice: a.ServicePrice,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, ap := range appointments {
		if apResp := FromDomainAppointment(ap); apResp != nil {
			resp.Appointments[i] = *apResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s, err := domain.ParseAppointmentStatus(status)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return s, nil
}
