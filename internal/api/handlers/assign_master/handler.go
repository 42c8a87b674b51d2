package assign_master

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/elegantstudio/ES-SchedulingService/internal/api/handlers"
	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	assignMaster "github.com/elegantstudio/ES-SchedulingService/internal/usecase/assign_master"
	"github.com/elegantstudio/ES-SchedulingService/pkg/types"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime      = "некорректный формат времени, ожидается HH:MM"
	msgMissingParams    = "не указаны serviceId, date или time"
	msgServiceNotFound  = "услуга не найдена"
	msgNoEligibleMaster = "нет мастеров, выполняющих эту услугу"
)

type Handler struct {
	useCase AssignMasterUseCase
	logger  Logger
}

func NewHandler(useCase AssignMasterUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/assign?serviceId=1&date=2026-09-15&time=10:00
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	serviceIDStr := query.Get("serviceId")
	dateStr := query.Get("date")
	timeStr := query.Get("time")

	if serviceIDStr == "" || dateStr == "" || timeStr == "" {
		h.logger.Warn("GET /masters/assign - Missing params")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/assign - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /masters/assign - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		h.logger.Warn("GET /masters/assign - Invalid time %q: %v", timeStr, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &assignMaster.Request{
		ServiceID: serviceID,
		Date:      date,
		StartTime: startTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, assignMaster.ErrInvalidInput):
			h.logger.Warn("GET /masters/assign - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgMissingParams)

		case errors.Is(err, assignMaster.ErrServiceNotFound):
			h.logger.Warn("GET /masters/assign - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, assignMaster.ErrNoEligibleMaster):
			h.logger.Warn("GET /masters/assign - No eligible master: service_id=%d", serviceID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNoEligibleMaster)

		default:
			h.logger.Error("GET /masters/assign - Failed to assign master: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/assign - Master assigned: master_id=%d, service_id=%d, conflict_free=%t",
		result.MasterID, serviceID, result.ConflictFree)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
