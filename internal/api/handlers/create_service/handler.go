package create_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/services"
	"github.com/m04kA/SMC-ScheduleService/internal/service/services/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные услуги"
	msgFieldNotFound      = "пользовательское поле не найдено"
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

// Handle POST /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			h.logger.Warn("POST /services - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, services.ErrFieldNotFound):
			h.logger.Warn("POST /services - Custom field not found: %v", err)
			handlers.RespondNotFound(w, msgFieldNotFound)
		default:
			h.logger.Error("POST /services - Failed to create service: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services - Service created: service_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
