package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	appointmentRepo "github.com/elegantstudio/ES-SchedulingService/internal/infra/storage/appointment"
	"github.com/elegantstudio/ES-SchedulingService/internal/service/appointments/models"
	"github.com/elegantstudio/ES-SchedulingService/pkg/ptr"
	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeRepo struct {
	byID          map[int64]*domain.Appointment
	listed        []*domain.Appointment
	clientFilter  *domain.ClientAppointmentsFilter
	masterFilter  *domain.MasterDayFilter
	updatedStatus *domain.AppointmentStatus
	cancelled     bool
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	ap, ok := r.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return ap, nil
}

func (r *fakeRepo) GetByClientWithFilter(_ context.Context, filter domain.ClientAppointmentsFilter) ([]*domain.Appointment, error) {
	r.clientFilter = &filter
	return r.listed, nil
}

func (r *fakeRepo) GetByMasterAndDate(_ context.Context, filter domain.MasterDayFilter) ([]*domain.Appointment, error) {
	r.masterFilter = &filter
	return r.listed, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if _, ok := r.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	r.updatedStatus = &status
	return nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	r.cancelled = true
	return nil
}

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:           5,
		ClientID:     7,
		MasterID:     1,
		ServiceID:    10,
		Date:         time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartTime:    types.TimeString("12:00"),
		EndTime:      types.TimeString("13:00"),
		Status:       domain.StatusPending,
		ServiceName:  "Стрижка",
		ServicePrice: 1500,
	}
}

func newTestService() (*Service, *fakeRepo) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{5: testAppointment()}}
	return NewService(repo, nopLogger{}), repo
}

func TestService_GetByID(t *testing.T) {
	t.Run("клиент видит свою запись", func(t *testing.T) {
		svc, _ := newTestService()

		resp, err := svc.GetByID(context.Background(), 5, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
		assert.Equal(t, "2026-09-14", resp.Date)
		assert.Equal(t, "pending", resp.Status)
	})

	t.Run("мастер видит свою запись", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.GetByID(context.Background(), 5, 1)
		assert.NoError(t, err)
	})

	t.Run("посторонний не видит запись", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.GetByID(context.Background(), 5, 99)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("запись не найдена", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.GetByID(context.Background(), 999, 7)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestService_GetClientAppointments(t *testing.T) {
	t.Run("клиент получает свою историю с фильтром", func(t *testing.T) {
		svc, repo := newTestService()
		repo.listed = []*domain.Appointment{testAppointment()}

		resp, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
			UserID:   7,
			ClientID: 7,
			Status:   ptr.Ptr("pending"),
			MasterID: ptr.Ptr(int64(1)),
		})
		require.NoError(t, err)
		require.Len(t, resp.Appointments, 1)

		require.NotNil(t, repo.clientFilter)
		assert.Equal(t, int64(7), repo.clientFilter.ClientID)
		require.NotNil(t, repo.clientFilter.Status)
		assert.Equal(t, domain.StatusPending, *repo.clientFilter.Status)
	})

	t.Run("чужая история недоступна", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
			UserID:   8,
			ClientID: 7,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("неизвестный статус в фильтре", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
			UserID:   7,
			ClientID: 7,
			Status:   ptr.Ptr("unknown"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("пустая история", func(t *testing.T) {
		svc, _ := newTestService()

		resp, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
			UserID:   7,
			ClientID: 7,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Appointments)
	})
}

func TestService_GetMasterDay(t *testing.T) {
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	t.Run("мастер получает свой дневной лист", func(t *testing.T) {
		svc, repo := newTestService()
		repo.listed = []*domain.Appointment{testAppointment()}

		resp, err := svc.GetMasterDay(context.Background(), &models.GetMasterDayRequest{
			UserID:     1,
			MasterID:   1,
			Date:       date,
			OnlyActive: true,
		})
		require.NoError(t, err)
		require.Len(t, resp.Appointments, 1)

		require.NotNil(t, repo.masterFilter)
		assert.True(t, repo.masterFilter.OnlyActive)
	})

	t.Run("чужой дневной лист недоступен", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.GetMasterDay(context.Background(), &models.GetMasterDayRequest{
			UserID:   2,
			MasterID: 1,
			Date:     date,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("клиент отменяет свою запись", func(t *testing.T) {
		svc, repo := newTestService()

		err := svc.Cancel(context.Background(), 5, &models.CancelAppointmentRequest{UserID: 7})
		require.NoError(t, err)
		assert.True(t, repo.cancelled)
	})

	t.Run("мастер отменяет запись", func(t *testing.T) {
		svc, repo := newTestService()

		err := svc.Cancel(context.Background(), 5, &models.CancelAppointmentRequest{UserID: 1})
		require.NoError(t, err)
		assert.True(t, repo.cancelled)
	})

	t.Run("посторонний не может отменить", func(t *testing.T) {
		svc, _ := newTestService()

		err := svc.Cancel(context.Background(), 5, &models.CancelAppointmentRequest{UserID: 99})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("повторная отмена", func(t *testing.T) {
		svc, repo := newTestService()
		repo.byID[5].Status = domain.StatusCancelled

		err := svc.Cancel(context.Background(), 5, &models.CancelAppointmentRequest{UserID: 7})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("завершенная запись не отменяется", func(t *testing.T) {
		svc, repo := newTestService()
		repo.byID[5].Status = domain.StatusCompleted

		err := svc.Cancel(context.Background(), 5, &models.CancelAppointmentRequest{UserID: 7})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("запись не найдена", func(t *testing.T) {
		svc, _ := newTestService()

		err := svc.Cancel(context.Background(), 999, &models.CancelAppointmentRequest{UserID: 7})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("мастер подтверждает запись", func(t *testing.T) {
		svc, repo := newTestService()

		err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: 1, Status: "confirmed"})
		require.NoError(t, err)
		require.NotNil(t, repo.updatedStatus)
		assert.Equal(t, domain.StatusConfirmed, *repo.updatedStatus)
	})

	t.Run("неявка из подтвержденной", func(t *testing.T) {
		svc, repo := newTestService()
		repo.byID[5].Status = domain.StatusConfirmed

		err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: 1, Status: "no_show"})
		require.NoError(t, err)
		require.NotNil(t, repo.updatedStatus)
		assert.Equal(t, domain.StatusNoShow, *repo.updatedStatus)
	})

	t.Run("отмена через статус фиксирует время отмены", func(t *testing.T) {
		svc, repo := newTestService()

		err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: 1, Status: "cancelled"})
		require.NoError(t, err)
		assert.True(t, repo.cancelled)
		assert.Nil(t, repo.updatedStatus)
	})

	t.Run("завершение из ожидания запрещено", func(t *testing.T) {
		svc, _ := newTestService()

		err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: 1, Status: "completed"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("терминальный статус не меняется", func(t *testing.T) {
		svc, repo := newTestService()
		repo.byID[5].Status = domain.StatusCompleted

		err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: 1, Status: "cancelled"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("клиент не меняет статус", func(t *testing.T) {
		svc, _ := newTestService()

		err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: 7, Status: "confirmed"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("неизвестный статус", func(t *testing.T) {
		svc, _ := newTestService()

		err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{UserID: 1, Status: "unknown"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}
