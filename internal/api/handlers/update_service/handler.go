package update_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/services"
	"github.com/m04kA/SMC-ScheduleService/internal/service/services/models"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные услуги"
	msgServiceNotFound    = "услуга не найдена"
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

// Handle PUT /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), serviceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			h.logger.Warn("PUT /services/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, services.ErrServiceNotFound):
			h.logger.Warn("PUT /services/{id} - Not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, services.ErrFieldNotFound):
			h.logger.Warn("PUT /services/{id} - Custom field not found: %v", err)
			handlers.RespondNotFound(w, msgFieldNotFound)
		default:
			h.logger.Error("PUT /services/{id} - Failed to update service: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /services/{id} - Service updated: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
