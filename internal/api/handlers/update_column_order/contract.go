package update_column_order

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/services/models"
)

type CatalogService interface {
	UpdateColumnOrder(ctx context.Context, req *models.UpdateColumnOrderRequest) (*models.ColumnOrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
