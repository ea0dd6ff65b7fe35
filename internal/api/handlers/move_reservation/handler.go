package move_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	moveReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/move_reservation"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidSlot          = "некорректный формат слота, ожидается HH:MM"
	msgInvalidInput         = "некорректные данные переноса"
	msgSlotOffGrid          = "целевое время не лежит на сетке расписания"
	msgSlotInPast           = "целевой слот уже в прошлом"
	msgReservationNotFound  = "бронь не найдена"
	msgSpecialistNotFound   = "сотрудник не найден"
	msgTimeSlotConflict     = "интервал пересекается с другой бронью сотрудника"
	msgConcurrentWriteBusy  = "не удалось выполнить запись из-за параллельных операций, повторите запрос"
)

type Handler struct {
	useCase MoveReservationUseCase
	logger  Logger
}

func NewHandler(useCase MoveReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/move - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req MoveReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/move - Failed to parse slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, moveReservation.ErrSlotOffGrid):
			h.logger.Warn("PATCH /reservations/{id}/move - Slot off grid: slot=%s", req.Slot)
			handlers.RespondBadRequest(w, msgSlotOffGrid)

		case errors.Is(err, moveReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/move - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, moveReservation.ErrSlotInPast):
			h.logger.Warn("PATCH /reservations/{id}/move - Slot in past: date=%s, slot=%s", req.Date, req.Slot)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, moveReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/move - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, moveReservation.ErrSpecialistNotFound):
			h.logger.Warn("PATCH /reservations/{id}/move - Specialist not found: specialist_id=%d", req.SpecialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, moveReservation.ErrTimeSlotConflict):
			h.logger.Warn("PATCH /reservations/{id}/move - Time slot conflict: specialist_id=%d, date=%s, slot=%s",
				req.SpecialistID, req.Date, req.Slot)
			handlers.RespondError(w, http.StatusConflict, msgTimeSlotConflict)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("PATCH /reservations/{id}/move - Serialization retries exhausted: %v", err)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentWriteBusy)

		default:
			h.logger.Error("PATCH /reservations/{id}/move - Failed to move reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/move - Done: reservation_id=%d, moved=%t", result.ID, result.Moved)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
