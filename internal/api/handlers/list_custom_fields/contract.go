package list_custom_fields

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/services/models"
)

type CatalogService interface {
	ListCustomFields(ctx context.Context) (*models.CustomFieldListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
