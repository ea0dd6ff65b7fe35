package create_custom_field

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/services"
	"github.com/m04kA/SMC-ScheduleService/internal/service/services/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректное название поля"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/services/custom-fields
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomFieldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/custom-fields - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateCustomField(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			h.logger.Warn("POST /services/custom-fields - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("POST /services/custom-fields - Failed to create custom field: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /services/custom-fields - Custom field created: field_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
