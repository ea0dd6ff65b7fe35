package services

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
	ReplaceCustomFieldValues(ctx context.Context, serviceID int64, values map[int64]string) error
	Delete(ctx context.Context, id int64) error

	ListCustomFields(ctx context.Context) ([]*domain.CustomField, error)
	CreateCustomField(ctx context.Context, f *domain.CustomField) (*domain.CustomField, error)
	GetColumnOrder(ctx context.Context) ([]*domain.ColumnOrder, error)
	UpsertColumnPosition(ctx context.Context, columnKey string, position int) error
	AppendColumnIfMissing(ctx context.Context, columnKey string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
