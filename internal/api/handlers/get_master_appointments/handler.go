package get_master_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/elegantstudio/ES-SchedulingService/internal/api/handlers"
	"github.com/elegantstudio/ES-SchedulingService/internal/api/middleware"
	"github.com/elegantstudio/ES-SchedulingService/internal/domain"
	"github.com/elegantstudio/ES-SchedulingService/internal/service/appointments"
	"github.com/elegantstudio/ES-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate     = "не указана дата"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/appointments?date=YYYY-MM-DD
// Query параметр onlyActive=true ограничивает лист статусами pending/confirmed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{masterId}/appointments - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /masters/{masterId}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /masters/{masterId}/appointments - Missing date: master_id=%d", masterID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /masters/{masterId}/appointments - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	onlyActive := r.URL.Query().Get("onlyActive") == "true"

	result, err := h.service.GetMasterDay(r.Context(), &models.GetMasterDayRequest{
		UserID:     userID,
		MasterID:   masterID,
		Date:       date,
		OnlyActive: onlyActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /masters/{masterId}/appointments - Access denied: master_id=%d, user_id=%d", masterID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /masters/{masterId}/appointments - Failed to get day sheet: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{masterId}/appointments - Retrieved: master_id=%d, date=%s, count=%d",
		masterID, dateStr, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
