package get_day_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations"
)

const (
	msgMissingDate = "отсутствует параметр date"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /reservations - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.service.GetDaySchedule(r.Context(), date)
	if err != nil {
		if errors.Is(err, reservations.ErrInvalidInput) {
			h.logger.Warn("GET /reservations - Invalid date: %s", date)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /reservations - Failed to get day schedule: date=%s, error=%v", date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations - Day schedule fetched: date=%s, reservations=%d",
		date, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
