package list_custom_fields

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

// Handle GET /api/v1/services/custom-fields
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListCustomFields(r.Context())
	if err != nil {
		h.logger.Error("GET /services/custom-fields - Failed to list custom fields: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
