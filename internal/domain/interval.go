package domain

import "github.com/elegantstudio/ES-SchedulingService/pkg/types"

// Interval полуоткрытый временной интервал [Start, End) внутри одного дня
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid проверяет, что начало строго раньше конца
func (i Interval) IsValid() bool {
	return i.Start.IsBefore(i.End)
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов
// [s1,e1) и [s2,e2) пересекаются тогда и только тогда, когда s1 < e2 && s2 < e1
// Граничащие интервалы (конец одного равен началу другого) НЕ пересекаются:
//   - 10:00-10:30 и 10:30-11:00 -> нет пересечения
//   - 10:00-11:00 и 10:30-11:30 -> есть пересечение (10:30-11:00)
//
// Это единственная реализация проверки пересечения в сервисе;
// создание, редактирование, подбор слотов и автоназначение мастера
// обязаны использовать её, а не дублировать сравнение
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && other.Start.IsBefore(i.End)
}

// HasConflict проверяет, пересекается ли кандидат с активными записями
// excludeID исключает запись из проверки (для редактирования на месте);
// 0 означает "не исключать ничего"
func HasConflict(candidate Interval, appointments []*Appointment, excludeID int64) bool {
	for _, ap := range appointments {
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if !ap.IsActive() {
			continue
		}
		if candidate.Overlaps(ap.Interval()) {
			return true
		}
	}
	return false
}
