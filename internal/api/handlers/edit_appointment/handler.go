package edit_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/elegantstudio/ES-SchedulingService/internal/api/handlers"
	"github.com/elegantstudio/ES-SchedulingService/internal/api/middleware"
	editAppointment "github.com/elegantstudio/ES-SchedulingService/internal/usecase/edit_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgAlreadyFinished      = "завершенную или отмененную запись нельзя редактировать"
	msgServiceNotFound      = "услуга не найдена"
	msgMasterNotFound       = "мастер не найден"
	msgInvalidDuration      = "некорректная длительность услуги"
	msgPastDate             = "перенос на прошедшее время невозможен"
	msgOutsideWorkingHours  = "время выходит за рамки рабочих часов"
	msgSlotConflict         = "выбранное время уже занято"
)

type Handler struct {
	useCase EditAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase EditAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req EditAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID, clientID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, editAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id} - Invalid input: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, editAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, editAppointment.ErrNotOwner):
			h.logger.Warn("PATCH /appointments/{id} - Access denied: appointment_id=%d, user_id=%d", appointmentID, clientID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, editAppointment.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id} - Appointment is terminal: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyFinished)

		case errors.Is(err, editAppointment.ErrPastDate):
			h.logger.Warn("PATCH /appointments/{id} - Past date: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, editAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("PATCH /appointments/{id} - Outside working hours: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, editAppointment.ErrSlotConflict):
			h.logger.Warn("PATCH /appointments/{id} - Slot conflict: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, editAppointment.ErrServiceNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Service not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, editAppointment.ErrMasterNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Master not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, editAppointment.ErrInvalidDuration):
			h.logger.Warn("PATCH /appointments/{id} - Invalid duration: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidDuration)

		default:
			h.logger.Error("PATCH /appointments/{id} - Failed to edit appointment: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Appointment updated: appointment_id=%d, client_id=%d", appointmentID, clientID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
