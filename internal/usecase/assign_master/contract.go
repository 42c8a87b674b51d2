package assign_master

import (
	"context"
	"time"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	"github.com/elegantstudio/ES-SchedulingService/internal/integrations/catalogservice"
	"github.com/elegantstudio/ES-SchedulingService/internal/integrations/masterdirectory"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	FindActiveByMasterAndDate(ctx context.Context, masterID int64, date time.Time) ([]*domain.Appointment, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
	GetMasterOffering(ctx context.Context, masterID, serviceID int64) (*catalogservice.Offering, error)
}

// MasterDirectoryClient интерфейс клиента каталога мастеров
type MasterDirectoryClient interface {
	ListEligibleMasters(ctx context.Context, serviceID int64) ([]masterdirectory.Master, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
