package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	ReplaceServiceLinks(ctx context.Context, reservationID int64, serviceIDs []int64) error
	ExistsOverlapping(ctx context.Context, specialistID int64, date time.Time, start, end time.Time, excludeID *int64) (bool, error)
}

// SpecialistRepository интерфейс репозитория сотрудников
type SpecialistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Specialist, error)
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
