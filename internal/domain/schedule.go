package domain

import (
	"time"

	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

// WorkingWindow рабочее окно мастера (или студии) на один день
type WorkingWindow struct {
	Open      types.TimeString
	Close     types.TimeString
	IsWorking bool
}

// Contains проверяет, что интервал целиком лежит внутри рабочего окна
func (w WorkingWindow) Contains(i Interval) bool {
	if !w.IsWorking {
		return false
	}
	return !i.Start.IsBefore(w.Open) && !w.Close.IsBefore(i.End)
}

// WeeklySchedule недельное расписание мастера
// Отсутствие записи на день означает, что действует расписание студии
type WeeklySchedule struct {
	Days map[time.Weekday]WorkingWindow
}

// WindowFor возвращает рабочее окно на указанную дату
// Если у мастера нет записи на этот день недели, возвращается fallback (окно студии)
func (s *WeeklySchedule) WindowFor(date time.Time, fallback WorkingWindow) WorkingWindow {
	if s == nil || s.Days == nil {
		return fallback
	}
	if window, ok := s.Days[date.Weekday()]; ok {
		return window
	}
	return fallback
}

// Master мастер студии (данные из каталога мастеров)
type Master struct {
	ID           int64
	Name         string
	Active       bool
	SortPriority int
}

// Service каталожная услуга
type Service struct {
	ID              int64
	Name            string
	CategoryID      int64
	Price           float64
	DurationMinutes int
	Active          bool
}
