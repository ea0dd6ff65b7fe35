package update_specialist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/specialists"
	"github.com/m04kA/SMC-ScheduleService/internal/service/specialists/models"
)

const (
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные сотрудника"
	msgNotFound           = "сотрудник не найден"
)

type Handler struct {
	service SpecialistService
	logger  Logger
}

func NewHandler(service SpecialistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/staff/{staffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /staff/{id} - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req models.UpdateSpecialistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), staffID, &req)
	if err != nil {
		switch {
		case errors.Is(err, specialists.ErrInvalidInput):
			h.logger.Warn("PUT /staff/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, specialists.ErrSpecialistNotFound):
			h.logger.Warn("PUT /staff/{id} - Not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("PUT /staff/{id} - Failed to update specialist: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff/{id} - Specialist updated: staff_id=%d", staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
