package appointments

import (
	"context"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByClientWithFilter(ctx context.Context, filter domain.ClientAppointmentsFilter) ([]*domain.Appointment, error)
	GetByMasterAndDate(ctx context.Context, filter domain.MasterDayFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
