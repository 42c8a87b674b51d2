package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusNoShow, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusNoShow, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			ap := &Appointment{Status: tt.from}
			assert.Equal(t, tt.allowed, ap.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointment_Cancel(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	t.Run("отмена pending записи", func(t *testing.T) {
		ap := &Appointment{Status: StatusPending}
		require.NoError(t, ap.Cancel(now))
		assert.Equal(t, StatusCancelled, ap.Status)
		require.NotNil(t, ap.CancelledAt)
		assert.Equal(t, now, *ap.CancelledAt)
	})

	t.Run("повторная отмена возвращает ошибку", func(t *testing.T) {
		ap := &Appointment{Status: StatusPending}
		require.NoError(t, ap.Cancel(now))
		assert.ErrorIs(t, ap.Cancel(now), ErrInvalidTransition)
	})

	t.Run("завершенную запись нельзя отменить", func(t *testing.T) {
		ap := &Appointment{Status: StatusCompleted}
		assert.ErrorIs(t, ap.Cancel(now), ErrInvalidTransition)
	})
}

func TestAppointment_TransitionTo(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	t.Run("подтверждение записи", func(t *testing.T) {
		ap := &Appointment{Status: StatusPending}
		require.NoError(t, ap.TransitionTo(StatusConfirmed, now))
		assert.Equal(t, StatusConfirmed, ap.Status)
		assert.Nil(t, ap.CancelledAt)
	})

	t.Run("отмена через TransitionTo фиксирует время", func(t *testing.T) {
		ap := &Appointment{Status: StatusConfirmed}
		require.NoError(t, ap.TransitionTo(StatusCancelled, now))
		assert.Equal(t, StatusCancelled, ap.Status)
		require.NotNil(t, ap.CancelledAt)
	})

	t.Run("недопустимый переход", func(t *testing.T) {
		ap := &Appointment{Status: StatusPending}
		assert.ErrorIs(t, ap.TransitionTo(StatusNoShow, now), ErrInvalidTransition)
	})
}

func TestAppointment_IsActive(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusPending}).IsActive())
	assert.True(t, (&Appointment{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Appointment{Status: StatusCompleted}).IsActive())
	assert.False(t, (&Appointment{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Appointment{Status: StatusNoShow}).IsActive())
}

func TestParseAppointmentStatus(t *testing.T) {
	status, err := ParseAppointmentStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseAppointmentStatus("unknown")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}
