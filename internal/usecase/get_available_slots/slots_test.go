package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

func workingWindow(open, close string) domain.WorkingWindow {
	return domain.WorkingWindow{
		IsWorking: true,
		Open:      types.TimeString(open),
		Close:     types.TimeString(close),
	}
}

func TestGenerateGrid(t *testing.T) {
	t.Run("полный день с шагом 30 минут", func(t *testing.T) {
		grid := generateGrid(workingWindow("09:00", "21:00"), 30, 30)

		require.Len(t, grid, 24)
		assert.Equal(t, types.TimeString("09:00"), grid[0].Start)
		assert.Equal(t, types.TimeString("09:30"), grid[0].End)
		assert.Equal(t, types.TimeString("20:30"), grid[23].Start)
		assert.Equal(t, types.TimeString("21:00"), grid[23].End)
	})

	t.Run("длинная услуга сокращает хвост сетки", func(t *testing.T) {
		grid := generateGrid(workingWindow("09:00", "21:00"), 30, 90)

		require.NotEmpty(t, grid)
		last := grid[len(grid)-1]
		// Последний слот должен заканчиваться ровно в закрытие
		assert.Equal(t, types.TimeString("19:30"), last.Start)
		assert.Equal(t, types.TimeString("21:00"), last.End)
		require.Len(t, grid, 22)
	})

	t.Run("услуга длиннее окна", func(t *testing.T) {
		grid := generateGrid(workingWindow("09:00", "10:00"), 30, 120)
		assert.Empty(t, grid)
	})

	t.Run("нерабочий день", func(t *testing.T) {
		grid := generateGrid(domain.WorkingWindow{IsWorking: false}, 30, 30)
		assert.Empty(t, grid)
	})

	t.Run("окно до конца суток", func(t *testing.T) {
		grid := generateGrid(workingWindow("23:00", "24:00"), 30, 30)

		require.Len(t, grid, 2)
		assert.Equal(t, types.TimeString("23:30"), grid[1].Start)
		assert.Equal(t, types.TimeString("24:00"), grid[1].End)
	})
}

func TestFilterAvailable(t *testing.T) {
	grid := generateGrid(workingWindow("09:00", "12:00"), 30, 30)
	require.Len(t, grid, 6)

	active := []*domain.Appointment{
		{
			ID:        1,
			Status:    domain.StatusConfirmed,
			StartTime: types.TimeString("10:00"),
			EndTime:   types.TimeString("11:00"),
		},
	}

	available := filterAvailable(grid, active)

	// Заняты старты 10:00 и 10:30, соседние слоты впритык остаются
	starts := make([]types.TimeString, 0, len(available))
	for _, slot := range available {
		starts = append(starts, slot.Start)
	}
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "11:00", "11:30"}, starts)
}
