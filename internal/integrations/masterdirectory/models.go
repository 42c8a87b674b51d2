package masterdirectory

import (
	"time"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

// Master мастер студии из каталога мастеров
type Master struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Active         bool   `json:"isActive"`
	SortPriority   int    `json:"sortPriority"`
}

// ToDomain конвертирует мастера в доменную модель
func (m *Master) ToDomain() *domain.Master {
	return &domain.Master{
		ID:           m.ID,
		Name:         m.Name,
		Active:       m.Active,
		SortPriority: m.SortPriority,
	}
}

// DayWindow рабочее окно мастера на день недели
type DayWindow struct {
	IsWorking bool    `json:"isWorking"`
	StartTime *string `json:"startTime,omitempty"` // "10:00"
	EndTime   *string `json:"endTime,omitempty"`   // "19:00"
}

// WeeklySchedule недельное расписание мастера
type WeeklySchedule struct {
	Monday    *DayWindow `json:"monday,omitempty"`
	Tuesday   *DayWindow `json:"tuesday,omitempty"`
	Wednesday *DayWindow `json:"wednesday,omitempty"`
	Thursday  *DayWindow `json:"thursday,omitempty"`
	Friday    *DayWindow `json:"friday,omitempty"`
	Saturday  *DayWindow `json:"saturday,omitempty"`
	Sunday    *DayWindow `json:"sunday,omitempty"`
}

// ToDomain конвертирует расписание в доменную модель
// Дни без записи не попадают в результат - для них действует окно студии
func (s *WeeklySchedule) ToDomain() (*domain.WeeklySchedule, error) {
	days := make(map[time.Weekday]domain.WorkingWindow)

	byWeekday := map[time.Weekday]*DayWindow{
		time.Monday:    s.Monday,
		time.Tuesday:   s.Tuesday,
		time.Wednesday: s.Wednesday,
		time.Thursday:  s.Thursday,
		time.Friday:    s.Friday,
		time.Saturday:  s.Saturday,
		time.Sunday:    s.Sunday,
	}

	for weekday, day := range byWeekday {
		if day == nil {
			continue
		}

		if !day.IsWorking || day.StartTime == nil || day.EndTime == nil {
			days[weekday] = domain.WorkingWindow{IsWorking: false}
			continue
		}

		open, err := types.NewTimeStringFromString(*day.StartTime)
		if err != nil {
			return nil, err
		}
		close, err := types.NewTimeStringFromString(*day.EndTime)
		if err != nil {
			return nil, err
		}

		days[weekday] = domain.WorkingWindow{
			Open:      open,
			Close:     close,
			IsWorking: true,
		}
	}

	return &domain.WeeklySchedule{Days: days}, nil
}
