package assign_master

import (
	"time"

	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

// Request модель запроса на автоподбор мастера
type Request struct {
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Желаемое время начала
}

// Response модель ответа с подобранным мастером
type Response struct {
	MasterID        int64            // ID подобранного мастера
	MasterName      string           // Имя мастера
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания с учетом длительности у мастера
	DurationMinutes int              // Эффективная длительность
	ConflictFree    bool             // false, если возвращен первый кандидат без свободного окна
}
