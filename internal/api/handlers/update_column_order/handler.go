package update_column_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/services"
	"github.com/m04kA/SMC-ScheduleService/internal/service/services/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректный список колонок"
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

// Handle PUT /api/v1/services/column-order
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateColumnOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/column-order - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateColumnOrder(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			h.logger.Warn("PUT /services/column-order - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("PUT /services/column-order - Failed to update column order: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /services/column-order - Column order updated: %d columns", len(result.Columns))
	handlers.RespondJSON(w, http.StatusOK, result)
}
