package create_appointment

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
	"github.com/elegantstudio/ES-SchedulingService/internal/usecase/assign_master"
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

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAppointmentRepo struct {
	active    []*domain.Appointment
	created   *domain.Appointment
	createErr error
}

func (r *fakeAppointmentRepo) Create(_ context.Context, ap *domain.Appointment) (*domain.Appointment, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	ap.ID = 42
	ap.CreatedAt = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	r.created = ap
	return ap, nil
}

func (r *fakeAppointmentRepo) FindActiveByMasterAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	return r.active, nil
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
	master   *masterdirectory.Master
	schedule *masterdirectory.WeeklySchedule
}

func (c *fakeDirectoryClient) GetMaster(_ context.Context, masterID int64) (*masterdirectory.Master, error) {
	if c.master == nil || c.master.ID != masterID {
		return nil, masterdirectory.ErrMasterNotFound
	}
	return c.master, nil
}

func (c *fakeDirectoryClient) GetWeeklySchedule(_ context.Context, _ int64) (*masterdirectory.WeeklySchedule, error) {
	if c.schedule == nil {
		return nil, masterdirectory.ErrScheduleNotFound
	}
	return c.schedule, nil
}

type fakeAssigner struct {
	resp *assign_master.Response
	err  error
}

func (a *fakeAssigner) Execute(_ context.Context, _ *assign_master.Request) (*assign_master.Response, error) {
	return a.resp, a.err
}

type testEnv struct {
	repo      *fakeAppointmentRepo
	catalog   *fakeCatalogClient
	directory *fakeDirectoryClient
	assigner  *fakeAssigner
	uc        *UseCase
}

func newTestEnv() *testEnv {
	env := &testEnv{
		repo: &fakeAppointmentRepo{},
		catalog: &fakeCatalogClient{
			service: &catalogservice.Service{ID: 10, Name: "Стрижка", Price: 1500, DurationMinutes: 60, Active: true},
		},
		directory: &fakeDirectoryClient{
			master: &masterdirectory.Master{ID: 1, Name: "Мария", Active: true},
		},
		assigner: &fakeAssigner{},
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
		env.assigner,
		fakeTxManager{},
		studioWindow,
		&fixedTimeProvider{now: time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)},
		nopLogger{},
	)
	return env
}

func testRequest() *Request {
	return &Request{
		ClientID:  7,
		ServiceID: 10,
		MasterID:  ptr.Ptr(int64(1)),
		Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("12:00"),
	}
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("успешное создание", func(t *testing.T) {
		env := newTestEnv()

		resp, err := env.uc.Execute(context.Background(), testRequest())
		require.NoError(t, err)

		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, int64(7), resp.ClientID)
		assert.Equal(t, int64(1), resp.MasterID)
		assert.Equal(t, types.TimeString("12:00"), resp.StartTime)
		assert.Equal(t, types.TimeString("13:00"), resp.EndTime)
		assert.Equal(t, domain.StatusPending, resp.Status)
		assert.Equal(t, 1500.0, resp.ServicePrice)
		assert.False(t, resp.AutoAssigned)

		require.NotNil(t, env.repo.created)
		assert.Equal(t, domain.StatusPending, env.repo.created.Status)
	})

	t.Run("длительность и цена из настройки мастера", func(t *testing.T) {
		env := newTestEnv()
		env.catalog.offering = &catalogservice.Offering{
			MasterID:             1,
			ServiceID:            10,
			PriceModifier:        1.2,
			DurationDeltaMinutes: 30,
			Active:               true,
		}

		resp, err := env.uc.Execute(context.Background(), testRequest())
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("13:30"), resp.EndTime)
		assert.Equal(t, 1800.0, resp.ServicePrice)
	})

	t.Run("запись в прошлое", func(t *testing.T) {
		env := newTestEnv()

		req := testRequest()
		req.StartTime = types.TimeString("07:00") // now = 08:00 того же дня

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrPastDate)
	})

	t.Run("интервал вне окна студии", func(t *testing.T) {
		env := newTestEnv()

		req := testRequest()
		req.StartTime = types.TimeString("20:30") // конец 21:30 позже закрытия

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("окончание ровно в закрытие допустимо", func(t *testing.T) {
		env := newTestEnv()

		req := testRequest()
		req.StartTime = types.TimeString("20:00")

		_, err := env.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("нерабочий день мастера по недельному расписанию", func(t *testing.T) {
		env := newTestEnv()
		env.directory.schedule = &masterdirectory.WeeklySchedule{
			Monday: &masterdirectory.DayWindow{IsWorking: false},
		}

		// 2026-09-14 - понедельник
		_, err := env.uc.Execute(context.Background(), testRequest())
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("окно мастера уже окна студии", func(t *testing.T) {
		env := newTestEnv()
		env.directory.schedule = &masterdirectory.WeeklySchedule{
			Monday: &masterdirectory.DayWindow{
				IsWorking: true,
				StartTime: ptr.Ptr("13:00"),
				EndTime:   ptr.Ptr("18:00"),
			},
		}

		_, err := env.uc.Execute(context.Background(), testRequest())
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)

		req := testRequest()
		req.StartTime = types.TimeString("13:00")
		_, err = env.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("конфликт с активной записью", func(t *testing.T) {
		env := newTestEnv()
		env.repo.active = []*domain.Appointment{{
			ID:        100,
			Status:    domain.StatusConfirmed,
			StartTime: types.TimeString("11:30"),
			EndTime:   types.TimeString("12:30"),
		}}

		_, err := env.uc.Execute(context.Background(), testRequest())
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("отмененная запись не создает конфликт", func(t *testing.T) {
		env := newTestEnv()
		env.repo.active = []*domain.Appointment{{
			ID:        100,
			Status:    domain.StatusCancelled,
			StartTime: types.TimeString("11:30"),
			EndTime:   types.TimeString("12:30"),
		}}

		_, err := env.uc.Execute(context.Background(), testRequest())
		assert.NoError(t, err)
	})

	t.Run("запись впритык допустима", func(t *testing.T) {
		env := newTestEnv()
		env.repo.active = []*domain.Appointment{{
			ID:        100,
			Status:    domain.StatusConfirmed,
			StartTime: types.TimeString("11:00"),
			EndTime:   types.TimeString("12:00"),
		}}

		_, err := env.uc.Execute(context.Background(), testRequest())
		assert.NoError(t, err)
	})

	t.Run("гонка на вставке отдается как конфликт", func(t *testing.T) {
		env := newTestEnv()
		env.repo.createErr = appointment.ErrSlotTaken

		_, err := env.uc.Execute(context.Background(), testRequest())
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("автоподбор мастера", func(t *testing.T) {
		env := newTestEnv()
		env.assigner.resp = &assign_master.Response{
			MasterID:        1,
			MasterName:      "Мария",
			StartTime:       types.TimeString("12:00"),
			EndTime:         types.TimeString("13:00"),
			DurationMinutes: 60,
			ConflictFree:    true,
		}

		req := testRequest()
		req.MasterID = nil

		resp, err := env.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, resp.AutoAssigned)
		assert.Equal(t, int64(1), resp.MasterID)
	})

	t.Run("автоподбор без кандидатов", func(t *testing.T) {
		env := newTestEnv()
		env.assigner.err = assign_master.ErrNoEligibleMaster

		req := testRequest()
		req.MasterID = nil

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrNoEligibleMaster)
	})

	t.Run("мастер не найден", func(t *testing.T) {
		env := newTestEnv()

		req := testRequest()
		req.MasterID = ptr.Ptr(int64(999))

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrMasterNotFound)
	})

	t.Run("неактивный мастер", func(t *testing.T) {
		env := newTestEnv()
		env.directory.master.Active = false

		_, err := env.uc.Execute(context.Background(), testRequest())
		assert.ErrorIs(t, err, ErrMasterNotFound)
	})

	t.Run("услуга не найдена", func(t *testing.T) {
		env := newTestEnv()

		req := testRequest()
		req.ServiceID = 999

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("отрицательная эффективная длительность", func(t *testing.T) {
		env := newTestEnv()
		env.catalog.offering = &catalogservice.Offering{
			MasterID:             1,
			ServiceID:            10,
			PriceModifier:        1,
			DurationDeltaMinutes: -60,
			Active:               true,
		}

		_, err := env.uc.Execute(context.Background(), testRequest())
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("невалидный запрос", func(t *testing.T) {
		env := newTestEnv()

		req := testRequest()
		req.ClientID = 0

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestStartsInPast(t *testing.T) {
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

	t.Run("вчерашняя дата", func(t *testing.T) {
		date := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
		assert.True(t, startsInPast(date, "18:00", now))
	})

	t.Run("сегодня раньше текущего времени", func(t *testing.T) {
		date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
		assert.True(t, startsInPast(date, "11:30", now))
	})

	t.Run("сегодня позже текущего времени", func(t *testing.T) {
		date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
		assert.False(t, startsInPast(date, "12:30", now))
	})

	t.Run("завтрашняя дата", func(t *testing.T) {
		date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		assert.False(t, startsInPast(date, "09:00", now))
	})
}
