package assign_master

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	"github.com/elegantstudio/ES-SchedulingService/internal/integrations/catalogservice"
	"github.com/elegantstudio/ES-SchedulingService/internal/integrations/masterdirectory"
)

// UseCase use case автоподбора мастера, когда клиент не выбрал конкретного
//
// Кандидаты перебираются в стабильном порядке (sort_priority, затем id);
// возвращается первый без пересечений. Если свободных нет, возвращается
// первый кандидат из пула - бронирование в этом случае упадет с конфликтом
// на этапе создания, что дает клиенту внятную ошибку вместо тихого
// двойного бронирования
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogClient   CatalogServiceClient
	directoryClient MasterDirectoryClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogClient CatalogServiceClient,
	directoryClient MasterDirectoryClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogClient:   catalogClient,
		directoryClient: directoryClient,
		logger:          logger,
	}
}

// Execute выполняет use case автоподбора мастера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AssignMaster: service=%d, date=%s, time=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AssignMaster: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("AssignMaster: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("AssignMaster: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("AssignMaster: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 3. Получаем пул кандидатов и упорядочиваем его детерминированно
	candidates, err := uc.eligibleCandidates(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		uc.logger.Warn("AssignMaster: no eligible masters for service id=%d", req.ServiceID)
		return nil, ErrNoEligibleMaster
	}

	// 4. Ищем первого кандидата без пересечений
	var fallback *Response

	for _, candidate := range candidates {
		resp, err := uc.tryCandidate(ctx, req, service, candidate)
		if err != nil {
			// Кандидат с некорректной длительностью пропускается
			uc.logger.Warn("AssignMaster: skipping master id=%d: %v", candidate.ID, err)
			continue
		}

		if resp.ConflictFree {
			uc.logger.Info("AssignMaster: assigned master id=%d for service=%d at %s",
				resp.MasterID, req.ServiceID, req.StartTime)
			return resp, nil
		}

		if fallback == nil {
			fallback = resp
		}
	}

	if fallback == nil {
		// Все кандидаты отсеялись по длительности
		return nil, ErrNoEligibleMaster
	}

	// 5. Свободных мастеров нет - возвращаем первого кандидата
	// Конфликт всплывет при создании записи
	uc.logger.Warn("AssignMaster: no conflict-free master for service=%d at %s, falling back to master id=%d",
		req.ServiceID, req.StartTime, fallback.MasterID)
	return fallback, nil
}

// eligibleCandidates возвращает активных мастеров услуги
// в порядке (sort_priority, id)
func (uc *UseCase) eligibleCandidates(ctx context.Context, serviceID int64) ([]masterdirectory.Master, error) {
	masters, err := uc.directoryClient.ListEligibleMasters(ctx, serviceID)
	if err != nil {
		uc.logger.Error("AssignMaster: failed to list masters for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to list eligible masters: %v", ErrInternal, err)
	}

	candidates := make([]masterdirectory.Master, 0, len(masters))
	for _, m := range masters {
		if m.Active {
			candidates = append(candidates, m)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].SortPriority != candidates[j].SortPriority {
			return candidates[i].SortPriority < candidates[j].SortPriority
		}
		return candidates[i].ID < candidates[j].ID
	})

	return candidates, nil
}

// tryCandidate вычисляет интервал кандидата и проверяет его на пересечения
func (uc *UseCase) tryCandidate(
	ctx context.Context,
	req *Request,
	service *catalogservice.Service,
	candidate masterdirectory.Master,
) (*Response, error) {
	// Длительность у конкретного мастера может отличаться от каталожной
	var offering *domain.MasterServiceOffering

	rawOffering, err := uc.catalogClient.GetMasterOffering(ctx, candidate.ID, req.ServiceID)
	if err != nil && !errors.Is(err, catalogservice.ErrOfferingNotFound) {
		return nil, fmt.Errorf("%w: failed to get offering: %v", ErrInternal, err)
	}
	if rawOffering != nil {
		offering = rawOffering.ToDomain()
	}

	duration, err := domain.ResolveDuration(service.DurationMinutes, offering)
	if err != nil {
		return nil, fmt.Errorf("%w: master id=%d: %v", ErrInvalidDuration, candidate.ID, err)
	}

	endTime, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		return nil, fmt.Errorf("%w: master id=%d: %v", ErrInvalidDuration, candidate.ID, err)
	}

	active, err := uc.appointmentRepo.FindActiveByMasterAndDate(ctx, candidate.ID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	candidateInterval := domain.Interval{Start: req.StartTime, End: endTime}

	return &Response{
		MasterID:        candidate.ID,
		MasterName:      candidate.Name,
		StartTime:       req.StartTime,
		EndTime:         endTime,
		DurationMinutes: duration,
		ConflictFree:    !domain.HasConflict(candidateInterval, active, 0),
	}, nil
}
