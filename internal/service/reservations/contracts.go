package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
