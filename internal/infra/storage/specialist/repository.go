package specialist

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с сотрудниками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового сотрудника
func (r *Repository) Create(ctx context.Context, s *domain.Specialist) (*domain.Specialist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("specialists").
		Columns("first_name", "last_name", "photo_url").
		Values(s.FirstName, s.LastName, s.PhotoURL).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает сотрудника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Specialist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"first_name",
		"last_name",
		"photo_url",
		"created_at",
		"updated_at",
	).
		From("specialists").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Specialist
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.PhotoURL,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSpecialistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan specialist: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// List получает список сотрудников, опционально фильтруя по подстроке
// имени или фамилии (регистронезависимо)
func (r *Repository) List(ctx context.Context, search *string) ([]*domain.Specialist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"first_name",
		"last_name",
		"photo_url",
		"created_at",
		"updated_at",
	).
		From("specialists").
		OrderBy("id ASC")

	if search != nil && *search != "" {
		pattern := "%" + *search + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	specialists := make([]*domain.Specialist, 0)

	for rows.Next() {
		var s domain.Specialist
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.FirstName,
			&s.LastName,
			&s.PhotoURL,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		specialists = append(specialists, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return specialists, nil
}

// Update обновляет данные сотрудника
func (r *Repository) Update(ctx context.Context, s *domain.Specialist) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("specialists").
		Set("first_name", s.FirstName).
		Set("last_name", s.LastName).
		Set("photo_url", s.PhotoURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)

	if err == sql.ErrNoRows {
		return ErrSpecialistNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	s.UpdatedAt = updatedAt.Time
	return nil
}

// UpdatePhotoURL обновляет ссылку на фото сотрудника
func (r *Repository) UpdatePhotoURL(ctx context.Context, id int64, photoURL string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("specialists").
		Set("photo_url", photoURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePhotoURL - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePhotoURL - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePhotoURL - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSpecialistNotFound
	}

	return nil
}

// Delete удаляет сотрудника; его брони удаляются каскадно
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("specialists").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSpecialistNotFound
	}

	return nil
}
