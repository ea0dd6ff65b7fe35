package create_specialist

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/specialists/models"
)

type SpecialistService interface {
	Create(ctx context.Context, req *models.CreateSpecialistRequest) (*models.SpecialistResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
