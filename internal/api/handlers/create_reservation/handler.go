package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStartTime    = "некорректный формат времени начала, ожидается RFC3339"
	msgInvalidInput        = "некорректные данные брони"
	msgSpecialistNotFound  = "сотрудник не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgTimeSlotConflict    = "интервал пересекается с другой бронью сотрудника"
	msgConcurrentWriteBusy = "не удалось выполнить запись из-за параллельных операций, повторите запрос"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse startTime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrSpecialistNotFound):
			h.logger.Warn("POST /reservations - Specialist not found: specialist_id=%d", req.SpecialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, createReservation.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: service_ids=%v", req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createReservation.ErrTimeSlotConflict):
			h.logger.Warn("POST /reservations - Time slot conflict: specialist_id=%d, start=%s",
				req.SpecialistID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgTimeSlotConflict)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("POST /reservations - Serialization retries exhausted: %v", err)
			handlers.RespondError(w, http.StatusConflict, msgConcurrentWriteBusy)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, specialist_id=%d",
		result.ID, result.SpecialistID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
