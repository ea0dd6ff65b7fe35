package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую бронь (без услуг - см. ReplaceServiceLinks)
// Если в контексте передана активная транзакция, использует её.
//
// Создание брони всегда должно выполняться в транзакции вместе с
// авторитетной проверкой пересечений (ExistsOverlapping) и вставкой
// ссылок на услуги - иначе возможна гонка между проверкой и записью.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"specialist_id",
			"reservation_date",
			"start_time",
			"end_time",
			"duration_minutes",
		).
		Values(
			res.SpecialistID,
			res.ReservationDate,
			res.StartTime,
			res.EndTime,
			res.DurationMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// Update обновляет временные поля и специалиста брони
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("specialist_id", res.SpecialistID).
		Set("reservation_date", res.ReservationDate).
		Set("start_time", res.StartTime).
		Set("end_time", res.EndTime).
		Set("duration_minutes", res.DurationMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)

	if err == sql.ErrNoRows {
		return ErrReservationNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	res.UpdatedAt = updatedAt.Time
	return nil
}

// ReplaceServiceLinks полностью заменяет набор услуг брони.
// Стратегия replace-not-diff: сначала удаляем все существующие ссылки,
// затем вставляем новый набор с sort_order = индекс в списке (0-based).
// Порядок обязан точно восстанавливаться при чтении.
func (r *Repository) ReplaceServiceLinks(ctx context.Context, reservationID int64, serviceIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	delQuery, delArgs, err := psqlbuilder.Delete("reservation_services").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceServiceLinks - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, delQuery, delArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceServiceLinks - execute delete: %v", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("reservation_services").
		Columns("reservation_id", "service_id", "sort_order")
	for i, serviceID := range serviceIDs {
		insertBuilder = insertBuilder.Values(reservationID, serviceID, i)
	}

	insQuery, insArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceServiceLinks - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insQuery, insArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceServiceLinks - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронь по ID вместе с упорядоченным списком услуг
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"specialist_id",
		"reservation_date",
		"start_time",
		"end_time",
		"duration_minutes",
		"created_at",
		"updated_at",
	).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.SpecialistID,
		&res.ReservationDate,
		&res.StartTime,
		&res.EndTime,
		&res.DurationMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	if err := r.attachServiceRefs(ctx, []*domain.Reservation{&res}); err != nil {
		return nil, err
	}

	return &res, nil
}

// ListByDate получает все брони на календарную дату (по всем специалистам),
// отсортированные по времени начала, с упорядоченными списками услуг
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"specialist_id",
		"reservation_date",
		"start_time",
		"end_time",
		"duration_minutes",
		"created_at",
		"updated_at",
	).
		From("reservations").
		Where(squirrel.Eq{"reservation_date": date}).
		OrderBy("start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachServiceRefs(ctx, reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// ExistsOverlapping авторитетная проверка пересечения: есть ли у специалиста
// бронь, чей полуоткрытый интервал [start_time, end_time) пересекается с
// [start, end). Касание границ пересечением не считается (строгие < и >).
//
// excludeID исключает собственную запись при update/move (nil при создании).
//
// Внутри транзакции добавляет FOR UPDATE, чтобы конкурирующая запись
// дождалась коммита и увидела конфликт.
func (r *Repository) ExistsOverlapping(
	ctx context.Context,
	specialistID int64,
	date time.Time,
	start, end time.Time,
	excludeID *int64,
) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("reservations").
		Where(squirrel.Eq{"specialist_id": specialistID}).
		Where(squirrel.Eq{"reservation_date": date}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		Limit(1)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsOverlapping - scan id: %v", ErrScanRow, err)
	}

	return true, nil
}

// Delete удаляет бронь; ссылки на услуги удаляются каскадно (ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
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
		return ErrReservationNotFound
	}

	return nil
}

// attachServiceRefs загружает упорядоченные услуги для набора броней
func (r *Repository) attachServiceRefs(ctx context.Context, reservations []*domain.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]int64, len(reservations))
	byID := make(map[int64]*domain.Reservation, len(reservations))
	for i, res := range reservations {
		ids[i] = res.ID
		byID[res.ID] = res
		res.Services = make([]domain.ServiceRef, 0, 1)
	}

	query, args, err := psqlbuilder.Select(
		"rs.reservation_id",
		"s.id",
		"s.name",
		"s.color",
	).
		From("reservation_services rs").
		Join("services s ON s.id = rs.service_id").
		Where(squirrel.Eq{"rs.reservation_id": ids}).
		OrderBy("rs.reservation_id ASC, rs.sort_order ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachServiceRefs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachServiceRefs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var reservationID int64
		var ref domain.ServiceRef

		if err := rows.Scan(&reservationID, &ref.ID, &ref.Name, &ref.Color); err != nil {
			return fmt.Errorf("%w: attachServiceRefs - scan row: %v", ErrScanRow, err)
		}

		if res, ok := byID[reservationID]; ok {
			res.Services = append(res.Services, ref)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachServiceRefs - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// scanReservations сканирует результаты запроса в слайс броней
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.SpecialistID,
			&res.ReservationDate,
			&res.StartTime,
			&res.EndTime,
			&res.DurationMinutes,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
