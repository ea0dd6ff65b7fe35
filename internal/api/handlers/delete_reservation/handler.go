package delete_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgReservationNotFound  = "бронь не найдена"
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

// Handle DELETE /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	if err := h.service.Delete(r.Context(), reservationID); err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			h.logger.Warn("DELETE /reservations/{id} - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)
			return
		}
		h.logger.Error("DELETE /reservations/{id} - Failed to delete reservation: reservation_id=%d, error=%v",
			reservationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation deleted: reservation_id=%d", reservationID)
	handlers.RespondNoContent(w)
}
