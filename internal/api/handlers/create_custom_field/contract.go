package create_custom_field

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/services/models"
)

type CatalogService interface {
	CreateCustomField(ctx context.Context, req *models.CreateCustomFieldRequest) (*models.CustomFieldResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
