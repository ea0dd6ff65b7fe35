package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	updateReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStartTime     = "некорректный формат времени начала, ожидается RFC3339"
	msgInvalidInput         = "некорректные данные брони"
	msgReservationNotFound  = "бронь не найдена"
	msgSpecialistNotFound   = "сотрудник не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgTimeSlotConflict     = "интервал пересекается с другой бронью сотрудника"
	msgConcurrentWriteBusy  = "не удалось выполнить запись из-за параллельных операций, повторите запрос"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Failed to parse startTime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, updateReservation.ErrSpecialistNotFound):
			h.logger.Warn("PUT /reservations/{id} - Specialist not found: specialist_id=%d", req.SpecialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, updateReservation.ErrServiceNotFound):
			h.logger.Warn("PUT /reservations/{id} - Service not found: service_ids=%v", req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateReservation.ErrTimeSlotConflict):
			h.logger.Warn("PUT /reservations/{id} - Time slot conflict: specialist_id=%d, start=%s",
				req.SpecialistID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgTimeSlotConflict)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("PUT /reservations/{id} - Serialization retries exhausted: %v", err)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentWriteBusy)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated: reservation_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
