package list_services

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

// Handle GET /api/v1/services?q=<подстрока названия или значения поля>
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var search *string
	if q := r.URL.Query().Get("q"); q != "" {
		search = &q
	}

	result, err := h.service.List(r.Context(), search)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
