package delete_specialist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/specialists"
)

const (
	msgInvalidStaffID = "некорректный ID сотрудника"
	msgNotFound       = "сотрудник не найден"
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

// Handle DELETE /api/v1/staff/{staffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /staff/{id} - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	if err := h.service.Delete(r.Context(), staffID); err != nil {
		if errors.Is(err, specialists.ErrSpecialistNotFound) {
			h.logger.Warn("DELETE /staff/{id} - Not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /staff/{id} - Failed to delete specialist: staff_id=%d, error=%v", staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /staff/{id} - Specialist deleted: staff_id=%d", staffID)
	handlers.RespondNoContent(w)
}
