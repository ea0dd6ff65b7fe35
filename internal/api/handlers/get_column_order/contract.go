package get_column_order

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/services/models"
)

type CatalogService interface {
	GetColumnOrder(ctx context.Context) (*models.ColumnOrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
