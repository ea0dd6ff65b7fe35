package create_specialist

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/specialists"
	"github.com/m04kA/SMC-ScheduleService/internal/service/specialists/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные сотрудника"
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

// Handle POST /api/v1/staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSpecialistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, specialists.ErrInvalidInput) {
			h.logger.Warn("POST /staff - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("POST /staff - Failed to create specialist: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /staff - Specialist created: specialist_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
