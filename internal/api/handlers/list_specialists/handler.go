package list_specialists

import (
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
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

// Handle GET /api/v1/staff?q=<подстрока имени>
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var search *string
	if q := r.URL.Query().Get("q"); q != "" {
		search = &q
	}

	result, err := h.service.List(r.Context(), search)
	if err != nil {
		h.logger.Error("GET /staff - Failed to list specialists: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
