package get_master_appointments

import (
	"context"

	"github.com/elegantstudio/ES-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetMasterDay(ctx context.Context, req *models.GetMasterDayRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
