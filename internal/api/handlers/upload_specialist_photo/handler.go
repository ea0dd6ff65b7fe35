package upload_specialist_photo

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/specialists"
)

const (
	// maxUploadSize максимальный размер фото (10 МБ)
	maxUploadSize = 10 << 20

	msgInvalidStaffID = "некорректный ID сотрудника"
	msgInvalidUpload  = "ожидается multipart форма с полем photo"
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

// Handle POST /api/v1/staff/{staffId}/photo
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /staff/{id}/photo - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.logger.Warn("POST /staff/{id}/photo - Failed to parse multipart form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUpload)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		h.logger.Warn("POST /staff/{id}/photo - Missing photo field: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUpload)
		return
	}
	defer file.Close()

	result, err := h.service.UploadPhoto(r.Context(), staffID, header.Filename, file)
	if err != nil {
		if errors.Is(err, specialists.ErrSpecialistNotFound) {
			h.logger.Warn("POST /staff/{id}/photo - Not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("POST /staff/{id}/photo - Failed to upload photo: staff_id=%d, error=%v", staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /staff/{id}/photo - Photo uploaded: staff_id=%d", staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
