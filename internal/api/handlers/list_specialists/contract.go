package list_specialists

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/specialists/models"
)

type SpecialistService interface {
	List(ctx context.Context, search *string) (*models.SpecialistListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
