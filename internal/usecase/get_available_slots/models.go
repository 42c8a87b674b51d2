package get_available_slots

import (
	"time"

	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

// Request модель запроса на подбор свободных слотов
type Request struct {
	MasterID  int64
	ServiceID int64
	Date      time.Time
}

// Slot один свободный слот
type Slot struct {
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// Response модель ответа со свободными слотами
// Слоты упорядочены по времени начала
type Response struct {
	MasterID        int64  `json:"masterId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"` // YYYY-MM-DD
	DurationMinutes int    `json:"durationMinutes"`
	Slots           []Slot `json:"slots"`
}
