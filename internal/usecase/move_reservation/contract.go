package move_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) error
	ExistsOverlapping(ctx context.Context, specialistID int64, date time.Time, start, end time.Time, excludeID *int64) (bool, error)
}

// SpecialistRepository интерфейс репозитория сотрудников
type SpecialistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Specialist, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
