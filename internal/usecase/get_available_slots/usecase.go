package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	"github.com/elegantstudio/ES-SchedulingService/internal/integrations/catalogservice"
	"github.com/elegantstudio/ES-SchedulingService/internal/integrations/masterdirectory"
	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

// UseCase use case подбора свободных слотов мастера на дату
//
// Read-only путь: результат кешируется в Redis с коротким TTL.
// Слегка устаревший ответ допустим - финальную проверку пересечений
// делает создание записи внутри сериализуемой транзакции
type UseCase struct {
	appointmentRepo    AppointmentRepository
	catalogClient      CatalogServiceClient
	directoryClient    MasterDirectoryClient
	cache              SlotCache // nil - кеширование выключено
	studioWindow       domain.WorkingWindow
	granularityMinutes int
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogClient CatalogServiceClient,
	directoryClient MasterDirectoryClient,
	cache SlotCache,
	studioWindow domain.WorkingWindow,
	granularityMinutes int,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:    appointmentRepo,
		catalogClient:      catalogClient,
		directoryClient:    directoryClient,
		cache:              cache,
		studioWindow:       studioWindow,
		granularityMinutes: granularityMinutes,
		timeProvider:       timeProvider,
		logger:             logger,
	}
}

// Execute выполняет use case подбора свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: master=%d, service=%d, date=%s",
		req.MasterID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Пробуем кеш
	cacheKey := fmt.Sprintf("slots:%d:%d:%s", req.MasterID, req.ServiceID, req.Date.Format(domain.DateFormat))
	if cached := uc.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	// 3. Услуга и мастер должны существовать и быть активными
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		return nil, ErrServiceNotFound
	}

	master, err := uc.directoryClient.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, masterdirectory.ErrMasterNotFound) {
			uc.logger.Warn("GetAvailableSlots: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}
	if !master.Active {
		return nil, ErrMasterNotFound
	}

	// 4. Эффективная длительность у этого мастера
	duration, err := uc.effectiveDuration(ctx, req.MasterID, req.ServiceID, service)
	if err != nil {
		return nil, err
	}

	// 5. Рабочее окно мастера на дату
	window, err := uc.workingWindow(ctx, req.MasterID, req.Date)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		MasterID:        req.MasterID,
		ServiceID:       req.ServiceID,
		Date:            req.Date.Format(domain.DateFormat),
		DurationMinutes: duration,
		Slots:           []Slot{},
	}

	// Нерабочий день - слотов нет
	if !window.IsWorking {
		uc.toCache(ctx, cacheKey, resp)
		return resp, nil
	}

	// 6. Сетка кандидатов минус занятые и прошедшие слоты
	active, err := uc.appointmentRepo.FindActiveByMasterAndDate(ctx, req.MasterID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	available := filterAvailable(generateGrid(window, uc.granularityMinutes, duration), active)
	available = uc.dropPastSlots(available, req.Date)

	for _, slot := range available {
		resp.Slots = append(resp.Slots, Slot{StartTime: slot.Start, EndTime: slot.End})
	}

	uc.logger.Info("GetAvailableSlots: master=%d, date=%s: %d slots",
		req.MasterID, resp.Date, len(resp.Slots))

	uc.toCache(ctx, cacheKey, resp)
	return resp, nil
}

// effectiveDuration возвращает длительность услуги с учетом настройки мастера
func (uc *UseCase) effectiveDuration(ctx context.Context, masterID, serviceID int64, service *catalogservice.Service) (int, error) {
	var offering *domain.MasterServiceOffering

	raw, err := uc.catalogClient.GetMasterOffering(ctx, masterID, serviceID)
	if err != nil && !errors.Is(err, catalogservice.ErrOfferingNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get offering master=%d, service=%d: %v", masterID, serviceID, err)
		return 0, fmt.Errorf("%w: failed to get master offering: %v", ErrInternal, err)
	}
	if raw != nil {
		offering = raw.ToDomain()
	}

	duration, err := domain.ResolveDuration(service.DurationMinutes, offering)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid duration for master=%d, service=%d", masterID, serviceID)
		return 0, ErrInvalidDuration
	}
	return duration, nil
}

// workingWindow возвращает рабочее окно мастера на дату
func (uc *UseCase) workingWindow(ctx context.Context, masterID int64, date time.Time) (domain.WorkingWindow, error) {
	raw, err := uc.directoryClient.GetWeeklySchedule(ctx, masterID)
	if err != nil {
		if errors.Is(err, masterdirectory.ErrScheduleNotFound) {
			return uc.studioWindow, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule for master id=%d: %v", masterID, err)
		return domain.WorkingWindow{}, fmt.Errorf("%w: failed to get master schedule: %v", ErrInternal, err)
	}

	schedule, err := raw.ToDomain()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid schedule for master id=%d: %v", masterID, err)
		return domain.WorkingWindow{}, fmt.Errorf("%w: invalid master schedule: %v", ErrInternal, err)
	}

	return schedule.WindowFor(date, uc.studioWindow), nil
}

// dropPastSlots убирает слоты, начало которых уже прошло (для сегодняшней даты)
func (uc *UseCase) dropPastSlots(slots []domain.Interval, date time.Time) []domain.Interval {
	now := uc.timeProvider.Now()
	if date.Year() != now.Year() || date.YearDay() != now.YearDay() {
		return slots
	}

	cutoff := types.NewTimeString(now)
	future := make([]domain.Interval, 0, len(slots))
	for _, slot := range slots {
		if cutoff.IsBefore(slot.Start) {
			future = append(future, slot)
		}
	}
	return future
}

// fromCache возвращает закешированный ответ или nil при промахе/ошибке
// Ошибки кеша не фатальны - подбор продолжается без него
func (uc *UseCase) fromCache(ctx context.Context, key string) *Response {
	if uc.cache == nil {
		return nil
	}

	data, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cache get failed: %v", err)
		return nil
	}
	if !ok {
		return nil
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		uc.logger.Warn("GetAvailableSlots: cache entry is corrupted: %v", err)
		return nil
	}
	return &resp
}

func (uc *UseCase) toCache(ctx context.Context, key string, resp *Response) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cache marshal failed: %v", err)
		return
	}
	if err := uc.cache.Set(ctx, key, data); err != nil {
		uc.logger.Warn("GetAvailableSlots: cache set failed: %v", err)
	}
}
