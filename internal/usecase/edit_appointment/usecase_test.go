package edit_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	"github.com/elegantstudio/ES-SchedulingService/internal/infra/storage/appointment"
	"github.com/elegantstudio/ES-SchedulingService/internal/integrations/catalogservice"
	"github.com/elegantstudio/ES-SchedulingService/internal/integrations/masterdirectory"
	"github.com/elegantstudio/ES-SchedulingService/pkg/ptr"
	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAppointmentRepo struct {
	byID    map[int64]*domain.Appointment
	active  []*domain.Appointment
	updated *domain.Appointment
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	ap, ok := r.byID[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	copied := *ap
	return &copied, nil
}

func (r *fakeAppointmentRepo) FindActiveByMasterAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	return r.active, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, ap *domain.Appointment) error {
	r.updated = ap
	return nil
}

type fakeCatalogClient struct {
	service  *catalogservice.Service
	offering *catalogservice.Offering
}

func (c *fakeCatalogClient) GetService(_ context.Context, serviceID int64) (*catalogservice.Service, error) {
	if c.service == nil || c.service.ID != serviceID {
		return nil, catalogservice.ErrServiceNotFound
	}
	return c.service, nil
}

func (c *fakeCatalogClient) GetMasterOffering(_ context.Context, _, _ int64) (*catalogservice.Offering, error) {
	if c.offering == nil {
		return nil, catalogservice.ErrOfferingNotFound
	}
	return c.offering, nil
}

type fakeDirectoryClient struct {
	masters map[int64]*masterdirectory.Master
}

func (c *fakeDirectoryClient) GetMaster(_ context.Context, masterID int64) (*masterdirectory.Master, error) {
	master, ok := c.masters[masterID]
	if !ok {
		return nil, masterdirectory.ErrMasterNotFound
	}
	return master, nil
}

func (c *fakeDirectoryClient) GetWeeklySchedule(_ context.Context, _ int64) (*masterdirectory.WeeklySchedule, error) {
	return nil, masterdirectory.ErrScheduleNotFound
}

type testEnv struct {
	repo      *fakeAppointmentRepo
	catalog   *fakeCatalogClient
	directory *fakeDirectoryClient
	uc        *UseCase
}

func existingAppointment() *domain.Appointment {
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

func newTestEnv() *testEnv {
	env := &testEnv{
		repo: &fakeAppointmentRepo{
			byID: map[int64]*domain.Appointment{5: existingAppointment()},
		},
		catalog: &fakeCatalogClient{
			service: &catalogservice.Service{ID: 10, Name: "Стрижка", Price: 1500, DurationMinutes: 60, Active: true},
		},
		directory: &fakeDirectoryClient{
			masters: map[int64]*masterdirectory.Master{
				1: {ID: 1, Name: "Мария", Active: true},
				2: {ID: 2, Name: "Анна", Active: true},
			},
		},
	}

	studioWindow := domain.WorkingWindow{
		IsWorking: true,
		Open:      types.TimeString("09:00"),
		Close:     types.TimeString("21:00"),
	}

	env.uc = NewUseCase(
		env.repo,
		env.catalog,
		env.directory,
		fakeTxManager{},
		studioWindow,
		&fixedTimeProvider{now: time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)},
		nopLogger{},
	)
	return env
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("перенос времени", func(t *testing.T) {
		env := newTestEnv()

		resp, err := env.uc.Execute(context.Background(), &Request{
			AppointmentID: 5,
			ClientID:      7,
			StartTime:     ptr.Ptr(types.TimeString("15:00")),
		})
		require.NoError(t, err)

		assert.Equal(t, types.TimeString("15:00"), resp.StartTime)
		assert.Equal(t, types.TimeString("16:00"), resp.EndTime)
		assert.Equal(t, domain.StatusPending, resp.Status)

		require.NotNil(t, env.repo.updated)
		assert.Equal(t, types.TimeString("15:00"), env.repo.updated.StartTime)
	})

	t.Run("сдвиг внутри собственного слота", func(t *testing.T) {
		env := newTestEnv()
		// В списке активных лежит сама редактируемая запись
		env.repo.active = []*domain.Appointment{env.repo.byID[5]}

		_, err := env.uc.Execute(context.Background(), &Request{
			AppointmentID: 5,
			ClientID:      7,
			StartTime:     ptr.Ptr(types.TimeString("12:30")),
		})
		assert.NoError(t, err)
	})

	t.Run("конфликт с чужой записью", func(t *testing.T) {
		env := newTestEnv()
		env.repo.active = []*domain.Appointment{{
			ID:        100,
			Status:    domain.StatusConfirmed,
			StartTime: types.TimeString("15:30"),
			EndTime:   types.TimeString("16:30"),
		}}

		_, err := env.uc.Execute(context.Background(), &Request{
			AppointmentID: 5,
			ClientID:      7,
			StartTime:     ptr.Ptr(types.TimeString("15:00")),
		})
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("смена мастера с пересчетом длительности", func(t *testing.T) {
		env := newTestEnv()
		env.catalog.offering = &catalogservice.Offering{
			MasterID:             2,
			ServiceID:            10,
			PriceModifier:        1.5,
			DurationDeltaMinutes: 30,
			Active:               true,
		}

		resp, err := env.uc.Execute(context.Background(), &Request{
			AppointmentID: 5,
			ClientID:      7,
			MasterID:      ptr.Ptr(int64(2)),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.MasterID)
		assert.Equal(t, types.TimeString("13:30"), resp.EndTime)
		assert.Equal(t, 2250.0, resp.ServicePrice)
	})

	t.Run("чужая запись", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.uc.Execute(context.Background(), &Request{
			AppointmentID: 5,
			ClientID:      8,
			StartTime:     ptr.Ptr(types.TimeString("15:00")),
		})
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("терминальный статус не редактируется", func(t *testing.T) {
		env := newTestEnv()
		env.repo.byID[5].Status = domain.StatusCompleted

		_, err := env.uc.Execute(context.Background(), &Request{
			AppointmentID: 5,
			ClientID:      7,
			StartTime:     ptr.Ptr(types.TimeString("15:00")),
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("перенос в прошлое", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.uc.Execute(context.Background(), &Request{
			AppointmentID: 5,
			ClientID:      7,
			StartTime:     ptr.Ptr(types.TimeString("07:00")),
		})
		assert.ErrorIs(t, err, ErrPastDate)
	})

	t.Run("перенос за пределы рабочего окна", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.uc.Execute(context.Background(), &Request{
			AppointmentID: 5,
			ClientID:      7,
			StartTime:     ptr.Ptr(types.TimeString("20:30")),
		})
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("запись не найдена", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.uc.Execute(context.Background(), &Request{
			AppointmentID: 999,
			ClientID:      7,
			StartTime:     ptr.Ptr(types.TimeString("15:00")),
		})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("смена на несуществующего мастера", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.uc.Execute(context.Background(), &Request{
			AppointmentID: 5,
			ClientID:      7,
			MasterID:      ptr.Ptr(int64(999)),
		})
		assert.ErrorIs(t, err, ErrMasterNotFound)
	})

	t.Run("пустой запрос", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.uc.Execute(context.Background(), &Request{
			AppointmentID: 5,
			ClientID:      7,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestApplyChanges(t *testing.T) {
	existing := existingAppointment()

	target := applyChanges(existing, &Request{
		AppointmentID: 5,
		ClientID:      7,
		StartTime:     ptr.Ptr(types.TimeString("15:00")),
		Notes:         ptr.Ptr("перенесли по просьбе клиента"),
	})

	assert.Equal(t, types.TimeString("15:00"), target.StartTime)
	require.NotNil(t, target.Notes)
	assert.Equal(t, "перенесли по просьбе клиента", *target.Notes)

	// Исходная запись не меняется
	assert.Equal(t, types.TimeString("12:00"), existing.StartTime)
	assert.Nil(t, existing.Notes)
}
