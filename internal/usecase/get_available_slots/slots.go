package get_available_slots

import (
	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
)

// generateGrid строит сетку кандидатов внутри рабочего окна
// Начала слотов идут с шагом granularity от открытия; кандидат попадает
// в сетку, только если его конец (start + duration) не выходит за закрытие
func generateGrid(window domain.WorkingWindow, granularityMinutes, durationMinutes int) []domain.Interval {
	if !window.IsWorking {
		return nil
	}

	grid := make([]domain.Interval, 0)

	start := window.Open
	for start.IsBefore(window.Close) {
		end, err := start.AddMinutes(durationMinutes)
		if err != nil {
			// Конец вышел за пределы суток - дальше слотов не будет
			break
		}
		if window.Close.IsBefore(end) {
			break
		}

		grid = append(grid, domain.Interval{Start: start, End: end})

		next, err := start.AddMinutes(granularityMinutes)
		if err != nil {
			break
		}
		start = next
	}

	return grid
}

// filterAvailable оставляет слоты без пересечений с активными записями
func filterAvailable(grid []domain.Interval, active []*domain.Appointment) []domain.Interval {
	available := make([]domain.Interval, 0, len(grid))
	for _, slot := range grid {
		if !domain.HasConflict(slot, active, 0) {
			available = append(available, slot)
		}
	}
	return available
}
