package create_appointment

import (
	"time"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID  int64
	ServiceID int64
	MasterID  *int64 // nil - мастер подбирается автоматически
	Date      time.Time
	StartTime types.TimeString
	Notes     *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	ClientID        int64
	MasterID        int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	Status          domain.AppointmentStatus
	ServiceName     string
	ServicePrice    float64
	Notes           *string
	AutoAssigned    bool // мастер подобран автоматически
	CreatedAt       time.Time
}
