package upload_specialist_photo

import (
	"context"
	"io"

	"github.com/m04kA/SMC-ScheduleService/internal/service/specialists/models"
)

type SpecialistService interface {
	UploadPhoto(ctx context.Context, id int64, originalName string, content io.Reader) (*models.SpecialistResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
