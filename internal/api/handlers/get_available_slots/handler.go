package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/elegantstudio/ES-SchedulingService/internal/api/handlers"
	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	getAvailableSlots "github.com/elegantstudio/ES-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidMasterID  = "некорректный ID мастера"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingParams    = "не указаны serviceId или date"
	msgServiceNotFound  = "услуга не найдена"
	msgMasterNotFound   = "мастер не найден"
	msgInvalidDuration  = "некорректная длительность услуги"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/available-slots?serviceId=1&date=2026-09-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{masterId}/available-slots - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	query := r.URL.Query()
	serviceIDStr := query.Get("serviceId")
	dateStr := query.Get("date")
	if serviceIDStr == "" || dateStr == "" {
		h.logger.Warn("GET /masters/{masterId}/available-slots - Missing params: master_id=%d", masterID)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{masterId}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /masters/{masterId}/available-slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		MasterID:  masterID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /masters/{masterId}/available-slots - Invalid input: master_id=%d, error=%v", masterID, err)
			handlers.RespondBadRequest(w, msgMissingParams)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /masters/{masterId}/available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrMasterNotFound):
			h.logger.Warn("GET /masters/{masterId}/available-slots - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDuration):
			h.logger.Warn("GET /masters/{masterId}/available-slots - Invalid duration: master_id=%d, service_id=%d", masterID, serviceID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidDuration)

		default:
			h.logger.Error("GET /masters/{masterId}/available-slots - Failed to get slots: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{masterId}/available-slots - Retrieved: master_id=%d, date=%s, count=%d",
		masterID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
