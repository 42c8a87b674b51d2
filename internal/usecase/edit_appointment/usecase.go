package edit_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	"github.com/elegantstudio/ES-SchedulingService/internal/infra/storage/appointment"
	"github.com/elegantstudio/ES-SchedulingService/internal/integrations/catalogservice"
	"github.com/elegantstudio/ES-SchedulingService/internal/integrations/masterdirectory"
)

// UseCase use case редактирования записи клиента
//
// Перенос проходит те же проверки, что и создание (прошлое, рабочее окно,
// пересечения), но собственный интервал записи из проверки исключается -
// запись можно сдвинуть внутри её текущего слота. Статус при редактировании
// не меняется
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogClient   CatalogServiceClient
	directoryClient MasterDirectoryClient
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
	txManager TransactionManager,
	studioWindow domain.WorkingWindow,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogClient:   catalogClient,
		directoryClient: directoryClient,
		txManager:       txManager,
		studioWindow:    studioWindow,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case редактирования записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EditAppointment: id=%d, client=%d", req.AppointmentID, req.ClientID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EditAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запись и проверяем владельца и редактируемость
	existing, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			uc.logger.Warn("EditAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("EditAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if existing.ClientID != req.ClientID {
		uc.logger.Warn("EditAppointment: appointment id=%d belongs to client=%d, not %d",
			existing.ID, existing.ClientID, req.ClientID)
		return nil, ErrNotOwner
	}

	if !existing.CanBeEdited() {
		uc.logger.Warn("EditAppointment: appointment id=%d in terminal status %s", existing.ID, existing.Status)
		return nil, ErrInvalidTransition
	}

	// 3. Применяем изменения поверх текущих значений
	target := applyChanges(existing, req)

	now := uc.timeProvider.Now()
	if startsInPast(target.Date, target.StartTime, now) {
		uc.logger.Warn("EditAppointment: past date %s %s", target.Date.Format(domain.DateFormat), target.StartTime)
		return nil, ErrPastDate
	}

	// 4. Услуга и мастер должны существовать и быть активными
	service, err := uc.getService(ctx, target.ServiceID)
	if err != nil {
		return nil, err
	}

	if err := uc.checkMaster(ctx, target.MasterID); err != nil {
		return nil, err
	}

	// 5. Пересчитываем длительность, цену и денормализованные поля
	offering, err := uc.masterOffering(ctx, target.MasterID, target.ServiceID)
	if err != nil {
		return nil, err
	}

	duration, err := domain.ResolveDuration(service.DurationMinutes, offering)
	if err != nil {
		uc.logger.Warn("EditAppointment: invalid duration for master=%d, service=%d", target.MasterID, target.ServiceID)
		return nil, ErrInvalidDuration
	}

	endTime, err := target.StartTime.AddMinutes(duration)
	if err != nil {
		uc.logger.Warn("EditAppointment: interval exceeds day bounds: %s + %d min", target.StartTime, duration)
		return nil, ErrOutsideWorkingHours
	}

	target.EndTime = endTime
	target.ServiceName = service.Name
	target.ServicePrice = domain.ResolvePrice(service.Price, offering)

	// 6. Интервал должен лежать в рабочем окне мастера
	window, err := uc.workingWindow(ctx, target.MasterID, target.Date)
	if err != nil {
		return nil, err
	}

	candidate := domain.Interval{Start: target.StartTime, End: target.EndTime}
	if !window.Contains(candidate) {
		uc.logger.Warn("EditAppointment: interval %s-%s outside working hours of master id=%d",
			target.StartTime, target.EndTime, target.MasterID)
		return nil, ErrOutsideWorkingHours
	}

	// 7. Проверка пересечений и обновление в одной serializable транзакции
	// Собственный интервал записи исключается из проверки
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		active, err := uc.appointmentRepo.FindActiveByMasterAndDate(txCtx, target.MasterID, target.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		if domain.HasConflict(candidate, active, target.ID) {
			return ErrSlotConflict
		}

		if err := uc.appointmentRepo.Update(txCtx, target); err != nil {
			if errors.Is(err, appointment.ErrSlotTaken) {
				return ErrSlotConflict
			}
			if errors.Is(err, appointment.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotConflict) || errors.Is(err, ErrAppointmentNotFound) {
			uc.logger.Warn("EditAppointment: id=%d: %v", target.ID, err)
			return nil, err
		}
		uc.logger.Error("EditAppointment: transaction failed: %v", err)
		return nil, err
	}

	uc.logger.Info("EditAppointment: updated appointment id=%d", target.ID)

	return &Response{
		ID:           target.ID,
		ClientID:     target.ClientID,
		MasterID:     target.MasterID,
		ServiceID:    target.ServiceID,
		Date:         target.Date,
		StartTime:    target.StartTime,
		EndTime:      target.EndTime,
		Status:       target.Status,
		ServiceName:  target.ServiceName,
		ServicePrice: target.ServicePrice,
		Notes:        target.Notes,
		UpdatedAt:    now,
	}, nil
}

// applyChanges строит целевое состояние записи из текущего и запроса
func applyChanges(existing *domain.Appointment, req *Request) *domain.Appointment {
	target := *existing

	if req.MasterID != nil {
		target.MasterID = *req.MasterID
	}
	if req.ServiceID != nil {
		target.ServiceID = *req.ServiceID
	}
	if req.Date != nil {
		target.Date = *req.Date
	}
	if req.StartTime != nil {
		target.StartTime = *req.StartTime
	}
	if req.Notes != nil {
		target.Notes = req.Notes
	}

	return &target
}

func (uc *UseCase) getService(ctx context.Context, serviceID int64) (*catalogservice.Service, error) {
	service, err := uc.catalogClient.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("EditAppointment: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("EditAppointment: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("EditAppointment: service id=%d is inactive", serviceID)
		return nil, ErrServiceNotFound
	}
	return service, nil
}

func (uc *UseCase) checkMaster(ctx context.Context, masterID int64) error {
	master, err := uc.directoryClient.GetMaster(ctx, masterID)
	if err != nil {
		if errors.Is(err, masterdirectory.ErrMasterNotFound) {
			uc.logger.Warn("EditAppointment: master id=%d not found", masterID)
			return ErrMasterNotFound
		}
		uc.logger.Error("EditAppointment: failed to get master id=%d: %v", masterID, err)
		return fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}
	if !master.Active {
		uc.logger.Warn("EditAppointment: master id=%d is inactive", masterID)
		return ErrMasterNotFound
	}
	return nil
}

// masterOffering возвращает настройку услуги у мастера; nil, если настройки нет
func (uc *UseCase) masterOffering(ctx context.Context, masterID, serviceID int64) (*domain.MasterServiceOffering, error) {
	offering, err := uc.catalogClient.GetMasterOffering(ctx, masterID, serviceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrOfferingNotFound) {
			return nil, nil
		}
		uc.logger.Error("EditAppointment: failed to get offering master=%d, service=%d: %v", masterID, serviceID, err)
		return nil, fmt.Errorf("%w: failed to get master offering: %v", ErrInternal, err)
	}
	return offering.ToDomain(), nil
}

// workingWindow возвращает рабочее окно мастера на дату
func (uc *UseCase) workingWindow(ctx context.Context, masterID int64, date time.Time) (domain.WorkingWindow, error) {
	raw, err := uc.directoryClient.GetWeeklySchedule(ctx, masterID)
	if err != nil {
		if errors.Is(err, masterdirectory.ErrScheduleNotFound) {
			return uc.studioWindow, nil
		}
		uc.logger.Error("EditAppointment: failed to get schedule for master id=%d: %v", masterID, err)
		return domain.WorkingWindow{}, fmt.Errorf("%w: failed to get master schedule: %v", ErrInternal, err)
	}

	schedule, err := raw.ToDomain()
	if err != nil {
		uc.logger.Error("EditAppointment: invalid schedule for master id=%d: %v", masterID, err)
		return domain.WorkingWindow{}, fmt.Errorf("%w: invalid master schedule: %v", ErrInternal, err)
	}

	return schedule.WindowFor(date, uc.studioWindow), nil
}
