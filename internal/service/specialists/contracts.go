package specialists

import (
	"context"
	"io"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// SpecialistRepository интерфейс репозитория сотрудников
type SpecialistRepository interface {
	Create(ctx context.Context, s *domain.Specialist) (*domain.Specialist, error)
	GetByID(ctx context.Context, id int64) (*domain.Specialist, error)
	List(ctx context.Context, search *string) ([]*domain.Specialist, error)
	Update(ctx context.Context, s *domain.Specialist) error
	UpdatePhotoURL(ctx context.Context, id int64, photoURL string) error
	Delete(ctx context.Context, id int64) error
}

// FileStorage интерфейс хранилища загружаемых файлов
type FileStorage interface {
	Save(ctx context.Context, originalName string, content io.Reader) (publicURL string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
