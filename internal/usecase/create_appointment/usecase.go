package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	"github.com/elegantstudio/ES-SchedulingService/internal/infra/storage/appointment"
	"github.com/elegantstudio/ES-SchedulingService/internal/integrations/catalogservice"
	"github.com/elegantstudio/ES-SchedulingService/internal/integrations/masterdirectory"
	"github.com/elegantstudio/ES-SchedulingService/internal/usecase/assign_master"
)

// UseCase use case создания записи клиента
//
// Проверка пересечений и вставка выполняются внутри одной serializable
// транзакции (check-then-write); уникальный индекс
// (master_id, appointment_date, start_time) остается последним рубежом
// против двойного бронирования при конкурентных запросах
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogClient   CatalogServiceClient
	directoryClient MasterDirectoryClient
	assigner        MasterAssigner
	txManager       TransactionManager
	studioWindow    domain.WorkingWindow
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogClient CatalogServiceClient,
	directoryClient MasterDirectoryClient,
	assigner MasterAssigner,
	txManager TransactionManager,
	studioWindow domain.WorkingWindow,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogClient:   catalogClient,
		directoryClient: directoryClient,
		assigner:        assigner,
		txManager:       txManager,
		studioWindow:    studioWindow,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Запись в прошлое недопустима
	if startsInPast(req.Date, req.StartTime, now) {
		uc.logger.Warn("CreateAppointment: past date %s %s", req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrPastDate
	}

	// 3. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Определяем мастера: выбранного клиентом или через автоподбор
	masterID, autoAssigned, err := uc.resolveMaster(ctx, req)
	if err != nil {
		return nil, err
	}

	// 5. Эффективная длительность и цена с учетом настроек мастера
	offering, err := uc.masterOffering(ctx, masterID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	duration, err := domain.ResolveDuration(service.DurationMinutes, offering)
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid duration for master=%d, service=%d", masterID, req.ServiceID)
		return nil, ErrInvalidDuration
	}

	endTime, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		uc.logger.Warn("CreateAppointment: interval exceeds day bounds: %s + %d min", req.StartTime, duration)
		return nil, ErrOutsideWorkingHours
	}

	// 6. Интервал должен целиком лежать в рабочем окне мастера
	window, err := uc.workingWindow(ctx, masterID, req.Date)
	if err != nil {
		return nil, err
	}

	candidate := domain.Interval{Start: req.StartTime, End: endTime}
	if !window.Contains(candidate) {
		uc.logger.Warn("CreateAppointment: interval %s-%s outside working hours of master id=%d",
			req.StartTime, endTime, masterID)
		return nil, ErrOutsideWorkingHours
	}

	ap := &domain.Appointment{
		ClientID:     req.ClientID,
		MasterID:     masterID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      endTime,
		Status:       domain.StatusPending,
		ServiceName:  service.Name,
		ServicePrice: domain.ResolvePrice(service.Price, offering),
		Notes:        req.Notes,
	}

	// 7. Проверка пересечений и вставка в одной serializable транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		active, err := uc.appointmentRepo.FindActiveByMasterAndDate(txCtx, masterID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		if domain.HasConflict(candidate, active, 0) {
			return ErrSlotConflict
		}

		if _, err := uc.appointmentRepo.Create(txCtx, ap); err != nil {
			if errors.Is(err, appointment.ErrSlotTaken) {
				return ErrSlotConflict
			}
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			uc.logger.Warn("CreateAppointment: slot conflict for master=%d at %s %s",
				masterID, req.Date.Format(domain.DateFormat), req.StartTime)
			return nil, ErrSlotConflict
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d for client=%d, master=%d",
		ap.ID, ap.ClientID, ap.MasterID)

	return &Response{
		ID:           ap.ID,
		ClientID:     ap.ClientID,
		MasterID:     ap.MasterID,
		ServiceID:    ap.ServiceID,
		Date:         ap.Date,
		StartTime:    ap.StartTime,
		EndTime:      ap.EndTime,
		Status:       ap.Status,
		ServiceName:  ap.ServiceName,
		ServicePrice: ap.ServicePrice,
		Notes:        ap.Notes,
		AutoAssigned: autoAssigned,
		CreatedAt:    ap.CreatedAt,
	}, nil
}

// resolveMaster возвращает ID мастера: выбранного клиентом (с проверкой
// существования и активности) или подобранного автоматически
func (uc *UseCase) resolveMaster(ctx context.Context, req *Request) (int64, bool, error) {
	if req.MasterID != nil {
		master, err := uc.directoryClient.GetMaster(ctx, *req.MasterID)
		if err != nil {
			if errors.Is(err, masterdirectory.ErrMasterNotFound) {
				uc.logger.Warn("CreateAppointment: master id=%d not found", *req.MasterID)
				return 0, false, ErrMasterNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get master id=%d: %v", *req.MasterID, err)
			return 0, false, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
		}
		if !master.Active {
			uc.logger.Warn("CreateAppointment: master id=%d is inactive", *req.MasterID)
			return 0, false, ErrMasterNotFound
		}
		return master.ID, false, nil
	}

	assigned, err := uc.assigner.Execute(ctx, &assign_master.Request{
		ServiceID: req.ServiceID,
		Date:      req.Date,
		StartTime: req.StartTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, assign_master.ErrNoEligibleMaster):
			return 0, false, ErrNoEligibleMaster
		case errors.Is(err, assign_master.ErrServiceNotFound):
			return 0, false, ErrServiceNotFound
		default:
			uc.logger.Error("CreateAppointment: auto-assign failed: %v", err)
			return 0, false, fmt.Errorf("%w: failed to auto-assign master: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateAppointment: auto-assigned master id=%d (conflict free: %t)",
		assigned.MasterID, assigned.ConflictFree)
	return assigned.MasterID, true, nil
}

// masterOffering возвращает настройку услуги у мастера; nil, если настройки нет
func (uc *UseCase) masterOffering(ctx context.Context, masterID, serviceID int64) (*domain.MasterServiceOffering, error) {
	offering, err := uc.catalogClient.GetMasterOffering(ctx, masterID, serviceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrOfferingNotFound) {
			return nil, nil
		}
		uc.logger.Error("CreateAppointment: failed to get offering master=%d, service=%d: %v", masterID, serviceID, err)
		return nil, fmt.Errorf("%w: failed to get master offering: %v", ErrInternal, err)
	}
	return offering.ToDomain(), nil
}

// workingWindow возвращает рабочее окно мастера на дату
// Без недельного расписания (или без записи на этот день недели)
// действует окно студии
func (uc *UseCase) workingWindow(ctx context.Context, masterID int64, date time.Time) (domain.WorkingWindow, error) {
	raw, err := uc.directoryClient.GetWeeklySchedule(ctx, masterID)
	if err != nil {
		if errors.Is(err, masterdirectory.ErrScheduleNotFound) {
			return uc.studioWindow, nil
		}
		uc.logger.Error("CreateAppointment: failed to get schedule for master id=%d: %v", masterID, err)
		return domain.WorkingWindow{}, fmt.Errorf("%w: failed to get master schedule: %v", ErrInternal, err)
	}

	schedule, err := raw.ToDomain()
	if err != nil {
		uc.logger.Error("CreateAppointment: invalid schedule for master id=%d: %v", masterID, err)
		return domain.WorkingWindow{}, fmt.Errorf("%w: invalid master schedule: %v", ErrInternal, err)
	}

	return schedule.WindowFor(date, uc.studioWindow), nil
}
