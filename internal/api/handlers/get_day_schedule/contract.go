package get_day_schedule

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
)

type ReservationService interface {
	GetDaySchedule(ctx context.Context, date string) (*models.DayScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
