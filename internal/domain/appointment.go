package domain

import (
	"time"

	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

// AppointmentStatus статус записи клиента
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment запись клиента к мастеру на услугу
type Appointment struct {
	ID        int64
	ClientID  int64
	MasterID  int64
	ServiceID int64

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString // вычисляется из длительности услуги, клиент его не задает
	Status    AppointmentStatus

	// Денормализованные данные услуги для истории
	ServiceName  string
	ServicePrice float64

	Notes       *string
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если запись участвует в проверках пересечений
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsTerminal возвращает true, если запись в терминальном статусе
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// CanBeEdited возвращает true, если запись можно редактировать
func (a *Appointment) CanBeEdited() bool {
	return !a.IsTerminal()
}

// CanBeCancelled возвращает true, если запись можно отменить
func (a *Appointment) CanBeCancelled() bool {
	return !a.IsTerminal()
}

// Interval возвращает интервал [start, end) записи
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// CanTransitionTo проверяет допустимость перехода статуса
// Разрешены: pending -> confirmed/cancelled; confirmed -> completed/cancelled/no_show
// completed и cancelled терминальны
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled || next == StatusNoShow
	default:
		return false
	}
}

// Cancel переводит запись в статус cancelled
// Возвращает ErrInvalidTransition, если запись уже в терминальном статусе
func (a *Appointment) Cancel(now time.Time) error {
	if !a.CanTransitionTo(StatusCancelled) {
		return ErrInvalidTransition
	}
	a.Status = StatusCancelled
	a.CancelledAt = &now
	return nil
}

// TransitionTo переводит запись в указанный статус с валидацией перехода
func (a *Appointment) TransitionTo(next AppointmentStatus, now time.Time) error {
	if next == StatusCancelled {
		return a.Cancel(now)
	}
	if !a.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	a.Status = next
	return nil
}

// ParseAppointmentStatus конвертирует строку в AppointmentStatus с валидацией
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return status, nil
	default:
		return "", ErrUnknownStatus
	}
}

// MasterDayFilter фильтр записей мастера на дату
type MasterDayFilter struct {
	MasterID   int64
	Date       time.Time
	OnlyActive bool // только pending/confirmed
}

// ClientAppointmentsFilter фильтр истории записей клиента
type ClientAppointmentsFilter struct {
	ClientID  int64
	Status    *AppointmentStatus
	MasterID  *int64
	ServiceID *int64
	StartDate *time.Time
	EndDate   *time.Time
}
