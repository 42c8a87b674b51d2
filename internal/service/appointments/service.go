package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	appointmentRepo "github.com/elegantstudio/ES-SchedulingService/internal/infra/storage/appointment"
	"github.com/elegantstudio/ES-SchedulingService/internal/service/appointments/models"
)

// Service сервис для работы с записями клиентов
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видят только её клиент и её мастер
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	ap, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ap, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainAppointment(ap), nil
}

// GetClientAppointments получает историю записей клиента
// с фильтрацией по статусу, мастеру, услуге и периоду
// Клиент видит только собственную историю
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%d, user=%d", req.ClientID, req.UserID)

	if req.UserID != req.ClientID {
		s.logger.Warn("GetClientAppointments: user=%d requested history of client=%d", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetClientAppointments: invalid filter for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByClientWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: fetched %d appointments for client=%d", len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetMasterDay получает дневной лист мастера - его записи на дату
// Доступен только самому мастеру
func (s *Service) GetMasterDay(ctx context.Context, req *models.GetMasterDayRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetMasterDay: fetching day sheet for master=%d, date=%s, user=%d",
		req.MasterID, req.Date.Format(domain.DateFormat), req.UserID)

	if req.UserID != req.MasterID {
		s.logger.Warn("GetMasterDay: user=%d requested day sheet of master=%d", req.UserID, req.MasterID)
		return nil, ErrAccessDenied
	}

	appointments, err := s.appointmentRepo.GetByMasterAndDate(ctx, domain.MasterDayFilter{
		MasterID:   req.MasterID,
		Date:       req.Date,
		OnlyActive: req.OnlyActive,
	})
	if err != nil {
		s.logger.Error("GetMasterDay: repository error for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: GetMasterDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMasterDay: fetched %d appointments for master=%d", len(appointments), req.MasterID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись с фиксацией времени отмены
// Отменить запись могут её клиент и её мастер; терминальные записи
// (completed, cancelled) отмене не подлежат - повторная отмена вернет ошибку
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	ap, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ap, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", req.UserID, appointmentID)
		return err
	}

	if !ap.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, ap.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}

// UpdateStatus обновляет статус записи с валидацией перехода
// Доступно только мастеру записи
// Разрешены переходы: pending -> confirmed/cancelled,
// confirmed -> completed/cancelled/no_show
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	ap, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if ap.MasterID != req.UserID {
		s.logger.Warn("UpdateStatus: access denied for user=%d to appointment id=%d", req.UserID, appointmentID)
		return ErrAccessDenied
	}

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return ErrInvalidStatus
	}

	if !ap.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for appointment id=%d",
			ap.Status, newStatus, appointmentID)
		return ErrInvalidTransition
	}

	// Отмена проходит через Cancel - с фиксацией cancelled_at
	if newStatus == domain.StatusCancelled {
		err = s.appointmentRepo.Cancel(ctx, appointmentID)
	} else {
		err = s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus)
	}
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d moved to status=%s", appointmentID, newStatus)
	return nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к записи
// Доступ есть у клиента записи и у её мастера
func (s *Service) checkUserAccess(ap *domain.Appointment, userID int64) error {
	if ap.ClientID == userID || ap.MasterID == userID {
		return nil
	}
	return ErrAccessDenied
}
