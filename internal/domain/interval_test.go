package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

func interval(start, end string) Interval {
	return Interval{Start: types.TimeString(start), End: types.TimeString(end)}
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        Interval
		b        Interval
		overlaps bool
	}{
		{
			name:     "частичное пересечение",
			a:        interval("10:00", "11:00"),
			b:        interval("10:30", "11:30"),
			overlaps: true,
		},
		{
			name:     "граничащие интервалы не пересекаются",
			a:        interval("10:00", "10:30"),
			b:        interval("10:30", "11:00"),
			overlaps: false,
		},
		{
			name:     "граничащие интервалы в обратном порядке",
			a:        interval("10:30", "11:00"),
			b:        interval("10:00", "10:30"),
			overlaps: false,
		},
		{
			name:     "один внутри другого",
			a:        interval("09:00", "12:00"),
			b:        interval("10:00", "11:00"),
			overlaps: true,
		},
		{
			name:     "идентичные интервалы",
			a:        interval("10:00", "11:00"),
			b:        interval("10:00", "11:00"),
			overlaps: true,
		},
		{
			name:     "непересекающиеся интервалы",
			a:        interval("09:00", "10:00"),
			b:        interval("14:00", "15:00"),
			overlaps: false,
		},
		{
			name:     "интервал до конца суток",
			a:        interval("23:00", "24:00"),
			b:        interval("23:30", "24:00"),
			overlaps: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a))
		})
	}
}

func TestHasConflict(t *testing.T) {
	appointments := []*Appointment{
		{ID: 1, Status: StatusConfirmed, StartTime: "10:00", EndTime: "11:00"},
		{ID: 2, Status: StatusCancelled, StartTime: "12:00", EndTime: "13:00"},
		{ID: 3, Status: StatusPending, StartTime: "15:00", EndTime: "16:00"},
	}

	t.Run("пересечение с активной записью", func(t *testing.T) {
		assert.True(t, HasConflict(interval("10:30", "11:30"), appointments, 0))
	})

	t.Run("отмененная запись не создает конфликт", func(t *testing.T) {
		assert.False(t, HasConflict(interval("12:00", "13:00"), appointments, 0))
	})

	t.Run("граничащий слот свободен", func(t *testing.T) {
		assert.False(t, HasConflict(interval("11:00", "12:00"), appointments, 0))
	})

	t.Run("исключение собственной записи при редактировании", func(t *testing.T) {
		assert.True(t, HasConflict(interval("10:00", "11:00"), appointments, 0))
		assert.False(t, HasConflict(interval("10:00", "11:00"), appointments, 1))
	})

	t.Run("пустой список записей", func(t *testing.T) {
		assert.False(t, HasConflict(interval("10:00", "11:00"), nil, 0))
	})
}

func TestInterval_IsValid(t *testing.T) {
	assert.True(t, interval("10:00", "11:00").IsValid())
	assert.False(t, interval("11:00", "10:00").IsValid())
	assert.False(t, interval("10:00", "10:00").IsValid())
}
