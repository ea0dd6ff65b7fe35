package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с каталогом услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую услугу (без значений пользовательских полей -
// см. ReplaceCustomFieldValues, вызывается в одной транзакции)
func (r *Repository) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns("name", "price", "color").
		Values(s.Name, s.Price, s.Color).
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

// GetByID получает услугу по ID вместе со значениями пользовательских полей
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	services, err := r.getByIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, ErrServiceNotFound
	}
	return services[0], nil
}

// GetByIDs получает услуги по списку ID. Если какая-то из услуг не найдена,
// возвращает ErrServiceNotFound - используется usecase'ами для проверки
// существования всех услуг брони.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	services, err := r.getByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	// Восстанавливаем порядок запрошенных ID и проверяем полноту
	ordered := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
		ordered = append(ordered, s)
	}

	return ordered, nil
}

// List получает все услуги со значениями пользовательских полей
func (r *Repository) List(ctx context.Context) ([]*domain.Service, error) {
	return r.getByIDs(ctx, nil)
}

// getByIDs общая выборка услуг; ids == nil означает все услуги
func (r *Repository) getByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"price",
		"color",
		"created_at",
		"updated_at",
	).
		From("services").
		OrderBy("id ASC")

	if ids != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"id": ids})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)

	for rows.Next() {
		var s domain.Service
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Price,
			&s.Color,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: getByIDs - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time
		s.CustomFields = make(map[int64]string)

		services = append(services, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getByIDs - rows error: %v", ErrScanRow, err)
	}

	if err := r.attachCustomFieldValues(ctx, services); err != nil {
		return nil, err
	}

	return services, nil
}

// attachCustomFieldValues загружает значения пользовательских полей
func (r *Repository) attachCustomFieldValues(ctx context.Context, services []*domain.Service) error {
	if len(services) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]int64, len(services))
	byID := make(map[int64]*domain.Service, len(services))
	for i, s := range services {
		ids[i] = s.ID
		byID[s.ID] = s
	}

	query, args, err := psqlbuilder.Select("service_id", "field_id", "value").
		From("service_custom_field_values").
		Where(squirrel.Eq{"service_id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachCustomFieldValues - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachCustomFieldValues - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var serviceID, fieldID int64
		var value string

		if err := rows.Scan(&serviceID, &fieldID, &value); err != nil {
			return fmt.Errorf("%w: attachCustomFieldValues - scan row: %v", ErrScanRow, err)
		}

		if s, ok := byID[serviceID]; ok {
			s.CustomFields[fieldID] = value
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachCustomFieldValues - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// Update обновляет основные поля услуги
func (r *Repository) Update(ctx context.Context, s *domain.Service) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("name", s.Name).
		Set("price", s.Price).
		Set("color", s.Color).
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
		return ErrServiceNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	s.UpdatedAt = updatedAt.Time
	return nil
}

// ReplaceCustomFieldValues полностью заменяет значения пользовательских
// полей услуги (replace-not-diff, как у услуг брони)
func (r *Repository) ReplaceCustomFieldValues(ctx context.Context, serviceID int64, values map[int64]string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	delQuery, delArgs, err := psqlbuilder.Delete("service_custom_field_values").
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceCustomFieldValues - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, delQuery, delArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceCustomFieldValues - execute delete: %v", ErrExecQuery, err)
	}

	if len(values) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("service_custom_field_values").
		Columns("service_id", "field_id", "value")
	for fieldID, value := range values {
		insertBuilder = insertBuilder.Values(serviceID, fieldID, value)
	}

	insQuery, insArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceCustomFieldValues - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insQuery, insArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceCustomFieldValues - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет услугу; значения полей и ссылки из броней удаляются каскадно
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("services").
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
		return ErrServiceNotFound
	}

	return nil
}
