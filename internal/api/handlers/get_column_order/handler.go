package get_column_order

import (
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
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

// Handle GET /api/v1/services/column-order
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetColumnOrder(r.Context())
	if err != nil {
		h.logger.Error("GET /services/column-order - Failed to get column order: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
