package delete_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/services"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgServiceNotFound  = "услуга не найдена"
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

// Handle DELETE /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.Delete(r.Context(), serviceID); err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			h.logger.Warn("DELETE /services/{id} - Not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)
			return
		}
		h.logger.Error("DELETE /services/{id} - Failed to delete service: service_id=%d, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /services/{id} - Service deleted: service_id=%d", serviceID)
	handlers.RespondNoContent(w)
}
