package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Методы работы с пользовательскими полями и порядком колонок таблицы услуг

// ListCustomFields получает все определения пользовательских полей
func (r *Repository) ListCustomFields(ctx context.Context) ([]*domain.CustomField, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "created_at").
		From("service_custom_fields").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCustomFields - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCustomFields - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	fields := make([]*domain.CustomField, 0)

	for rows.Next() {
		var f domain.CustomField
		var createdAt sql.NullTime

		if err := rows.Scan(&f.ID, &f.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListCustomFields - scan row: %v", ErrScanRow, err)
		}

		f.CreatedAt = createdAt.Time
		fields = append(fields, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCustomFields - rows error: %v", ErrScanRow, err)
	}

	return fields, nil
}

// CreateCustomField создает определение пользовательского поля
func (r *Repository) CreateCustomField(ctx context.Context, f *domain.CustomField) (*domain.CustomField, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_custom_fields").
		Columns("name").
		Values(f.Name).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateCustomField - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&f.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateCustomField - execute insert: %v", ErrExecQuery, err)
	}

	f.CreatedAt = createdAt.Time
	return f, nil
}

// GetColumnOrder получает порядок колонок таблицы услуг
func (r *Repository) GetColumnOrder(ctx context.Context) ([]*domain.ColumnOrder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("column_key", "position").
		From("service_column_order").
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetColumnOrder - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetColumnOrder - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	columns := make([]*domain.ColumnOrder, 0)

	for rows.Next() {
		var c domain.ColumnOrder
		if err := rows.Scan(&c.ColumnKey, &c.Position); err != nil {
			return nil, fmt.Errorf("%w: GetColumnOrder - scan row: %v", ErrScanRow, err)
		}
		columns = append(columns, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetColumnOrder - rows error: %v", ErrScanRow, err)
	}

	return columns, nil
}

// UpsertColumnPosition вставляет или обновляет позицию одной колонки
func (r *Repository) UpsertColumnPosition(ctx context.Context, columnKey string, position int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_column_order").
		Columns("column_key", "position").
		Values(columnKey, position).
		Suffix("ON CONFLICT (column_key) DO UPDATE SET position = EXCLUDED.position").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertColumnPosition - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertColumnPosition - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// AppendColumnIfMissing добавляет колонку в конец порядка, если её ещё нет.
// Используется при создании пользовательского поля: новая колонка
// появляется последней.
func (r *Repository) AppendColumnIfMissing(ctx context.Context, columnKey string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(position), 0)").
		From("service_column_order").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AppendColumnIfMissing - build select query: %v", ErrBuildQuery, err)
	}

	var maxPosition int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&maxPosition); err != nil {
		return fmt.Errorf("%w: AppendColumnIfMissing - scan max position: %v", ErrScanRow, err)
	}

	insQuery, insArgs, err := psqlbuilder.Insert("service_column_order").
		Columns("column_key", "position").
		Values(columnKey, maxPosition+1).
		Suffix("ON CONFLICT (column_key) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AppendColumnIfMissing - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insQuery, insArgs...); err != nil {
		return fmt.Errorf("%w: AppendColumnIfMissing - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
