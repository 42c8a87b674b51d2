package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("валидное время", func(t *testing.T) {
		ts, err := NewTimeStringFromString("10:30")
		require.NoError(t, err)
		assert.Equal(t, TimeString("10:30"), ts)
	})

	t.Run("нормализация без ведущего нуля", func(t *testing.T) {
		ts, err := NewTimeStringFromString("9:05")
		require.NoError(t, err)
		assert.Equal(t, TimeString("09:05"), ts)
	})

	t.Run("некорректный формат", func(t *testing.T) {
		_, err := NewTimeStringFromString("25:00")
		assert.ErrorIs(t, err, ErrInvalidTimeString)

		_, err = NewTimeStringFromString("10.30")
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Run("сдвиг вперед", func(t *testing.T) {
		result, err := TimeString("10:00").AddMinutes(90)
		require.NoError(t, err)
		assert.Equal(t, TimeString("11:30"), result)
	})

	t.Run("сдвиг назад", func(t *testing.T) {
		result, err := TimeString("10:00").AddMinutes(-30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("09:30"), result)
	})

	t.Run("конец суток представляется как 24:00", func(t *testing.T) {
		result, err := TimeString("23:30").AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("24:00"), result)
	})

	t.Run("выход за пределы суток", func(t *testing.T) {
		_, err := TimeString("23:30").AddMinutes(60)
		assert.ErrorIs(t, err, ErrInvalidTimeString)

		_, err = TimeString("00:30").AddMinutes(-60)
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))
	// 24:00 - конец суток, позже любого времени
	assert.True(t, TimeString("23:59").IsBefore("24:00"))
}

func TestTimeString_Minutes(t *testing.T) {
	minutes, err := TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("строка с секундами из БД", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:00:00"))
		assert.Equal(t, TimeString("10:00"), ts)
	})

	t.Run("байты", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("18:45")))
		assert.Equal(t, TimeString("18:45"), ts)
	})

	t.Run("time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 9, 14, 15, 30, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("15:30"), ts)
	})

	t.Run("nil", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("неподдерживаемый тип", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, ts.Scan(42))
	})
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
