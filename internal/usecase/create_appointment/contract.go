package create_appointment

import (
	"context"
	"time"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	"github.com/elegantstudio/ES-SchedulingService/internal/integrations/catalogservice"
	"github.com/elegantstudio/ES-SchedulingService/internal/integrations/masterdirectory"
	"github.com/elegantstudio/ES-SchedulingService/internal/usecase/assign_master"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, ap *domain.Appointment) (*domain.Appointment, error)
	FindActiveByMasterAndDate(ctx context.Context, masterID int64, date time.Time) ([]*domain.Appointment, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
	GetMasterOffering(ctx context.Context, masterID, serviceID int64) (*catalogservice.Offering, error)
}

// MasterDirectoryClient интерфейс клиента каталога мастеров
type MasterDirectoryClient interface {
	GetMaster(ctx context.Context, masterID int64) (*masterdirectory.Master, error)
	GetWeeklySchedule(ctx context.Context, masterID int64) (*masterdirectory.WeeklySchedule, error)
}

// MasterAssigner интерфейс автоподбора мастера, когда клиент его не выбрал
type MasterAssigner interface {
	Execute(ctx context.Context, req *assign_master.Request) (*assign_master.Response, error)
}

// TransactionManager интерфейс менеджера транзакций
// Проверка пересечений и вставка выполняются в одной serializable транзакции
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
