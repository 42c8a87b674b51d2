package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkingWindow_Contains(t *testing.T) {
	window := WorkingWindow{Open: "09:00", Close: "21:00", IsWorking: true}

	t.Run("интервал внутри окна", func(t *testing.T) {
		assert.True(t, window.Contains(interval("10:00", "11:00")))
	})

	t.Run("интервал от открытия до закрытия", func(t *testing.T) {
		assert.True(t, window.Contains(interval("09:00", "21:00")))
	})

	t.Run("окончание ровно в закрытие допустимо", func(t *testing.T) {
		assert.True(t, window.Contains(interval("20:30", "21:00")))
	})

	t.Run("начало до открытия", func(t *testing.T) {
		assert.False(t, window.Contains(interval("08:30", "09:30")))
	})

	t.Run("окончание после закрытия", func(t *testing.T) {
		assert.False(t, window.Contains(interval("20:30", "21:30")))
	})

	t.Run("нерабочий день", func(t *testing.T) {
		closed := WorkingWindow{Open: "09:00", Close: "21:00", IsWorking: false}
		assert.False(t, closed.Contains(interval("10:00", "11:00")))
	})
}

func TestWeeklySchedule_WindowFor(t *testing.T) {
	fallback := WorkingWindow{Open: "09:00", Close: "21:00", IsWorking: true}
	// 2026-09-14 - понедельник
	monday := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	schedule := &WeeklySchedule{
		Days: map[time.Weekday]WorkingWindow{
			time.Monday:  {Open: "10:00", Close: "19:00", IsWorking: true},
			time.Tuesday: {IsWorking: false},
		},
	}

	t.Run("собственное окно мастера", func(t *testing.T) {
		window := schedule.WindowFor(monday, fallback)
		assert.Equal(t, WorkingWindow{Open: "10:00", Close: "19:00", IsWorking: true}, window)
	})

	t.Run("выходной день мастера", func(t *testing.T) {
		window := schedule.WindowFor(tuesday, fallback)
		assert.False(t, window.IsWorking)
	})

	t.Run("день без записи - окно студии", func(t *testing.T) {
		wednesday := monday.AddDate(0, 0, 2)
		assert.Equal(t, fallback, schedule.WindowFor(wednesday, fallback))
	})

	t.Run("nil расписание - окно студии", func(t *testing.T) {
		var nilSchedule *WeeklySchedule
		assert.Equal(t, fallback, nilSchedule.WindowFor(monday, fallback))
	})
}
