package edit_appointment

import (
	"time"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

// Request модель запроса на редактирование записи
// nil-поля остаются без изменений (частичное обновление)
type Request struct {
	AppointmentID int64
	ClientID      int64 // владелец записи, проверяется против записи в БД

	MasterID  *int64
	ServiceID *int64
	Date      *time.Time
	StartTime *types.TimeString
	Notes     *string
}

// Response модель ответа с обновленной записью
type Response struct {
	ID           int64
	ClientID     int64
	MasterID     int64
	ServiceID    int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       domain.AppointmentStatus
	ServiceName  string
	ServicePrice float64
	Notes        *string
	UpdatedAt    time.Time
}
