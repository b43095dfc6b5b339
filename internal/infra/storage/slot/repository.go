package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// insertBatchSize ограничивает число строк в одном INSERT (лимит плейсхолдеров PostgreSQL 65535)
const insertBatchSize = 500

var slotColumns = []string{
	"id",
	"service_id",
	"arrangement_id",
	"segment_id",
	"slot_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"max_concurrent",
	"current_count",
	"is_available",
	"created_at",
	"updated_at",
}

// Repository репозиторий слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch сохраняет слоты пачками
// Уже существующие слоты (arrangement_id, segment_id, slot_date, start_time) пропускаются,
// поэтому повторная генерация не создает дублей. Возвращает количество реально вставленных строк.
func (r *Repository) CreateBatch(ctx context.Context, slots []domain.Slot) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inserted := 0
	for start := 0; start < len(slots); start += insertBatchSize {
		end := min(start+insertBatchSize, len(slots))

		insertBuilder := psqlbuilder.Insert("slots").
			Columns(
				"service_id",
				"arrangement_id",
				"segment_id",
				"slot_date",
				"start_time",
				"end_time",
				"duration_minutes",
				"max_concurrent",
				"current_count",
				"is_available",
			)

		for _, s := range slots[start:end] {
			insertBuilder = insertBuilder.Values(
				s.ServiceID,
				s.ArrangementID,
				s.SegmentID,
				s.Date,
				s.StartTime,
				s.EndTime,
				s.DurationMinutes,
				s.MaxConcurrent,
				s.CurrentCount,
				s.IsAvailable,
			)
		}

		query, args, err := insertBuilder.
			Suffix("ON CONFLICT (arrangement_id, segment_id, slot_date, start_time) DO NOTHING").
			ToSql()
		if err != nil {
			return inserted, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("%w: CreateBatch - get rows affected: %w", ErrExecQuery, err)
		}
		inserted += int(affected)
	}

	return inserted, nil
}

// ExistsForArrangementDate проверяет, сгенерированы ли уже слоты привязки на дату
func (r *Repository) ExistsForArrangementDate(ctx context.Context, arrangementID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("slots").
		Where(squirrel.Eq{"arrangement_id": arrangementID, "slot_date": domain.DateOnly(date)}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForArrangementDate - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForArrangementDate - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// GetByID получает слот по ID
// Внутри транзакции блокирует строку (FOR UPDATE): строка слота единственная точка конкуренции при бронировании
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return s, nil
}

// Reserve атомарно занимает одно место в слоте
// Условие current_count < max_concurrent проверяется в самом UPDATE,
// поэтому даже без блокировки счетчик не превысит вместимость
func (r *Repository) Reserve(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("current_count", squirrel.Expr("current_count + 1")).
		Set("is_available", squirrel.Expr("current_count + 1 < max_concurrent")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("current_count < max_concurrent").
		Suffix("RETURNING " + strings.Join(slotColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Reserve - execute update: %w", ErrExecQuery, err)
	}

	return s, nil
}

// Release освобождает одно место в слоте (не ниже нуля) и делает слот доступным
func (r *Repository) Release(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("current_count", squirrel.Expr("GREATEST(current_count - 1, 0)")).
		Set("is_available", squirrel.Expr("GREATEST(current_count - 1, 0) < max_concurrent")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(slotColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Release - execute update: %w", ErrExecQuery, err)
	}

	return s, nil
}

// DeleteUnbookedByArrangement удаляет слоты привязки, на которые никто не записывался
// Слоты с историей записей остаются, после удаления привязки arrangement_id обнуляется
func (r *Repository) DeleteUnbookedByArrangement(ctx context.Context, arrangementID int64) (int64, error) {
	return r.deleteUnbooked(ctx, "DeleteUnbookedByArrangement", squirrel.Eq{"arrangement_id": arrangementID})
}

// DeleteUnbookedByTemplate удаляет слоты всех привязок шаблона, на которые никто не записывался
func (r *Repository) DeleteUnbookedByTemplate(ctx context.Context, templateID int64) (int64, error) {
	return r.deleteUnbooked(ctx, "DeleteUnbookedByTemplate",
		squirrel.Expr("arrangement_id IN (SELECT id FROM arrangements WHERE template_id = ?)", templateID))
}

func (r *Repository) deleteUnbooked(ctx context.Context, op string, scope squirrel.Sqlizer) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(scope).
		Where(squirrel.Eq{"current_count": 0}).
		Where("NOT EXISTS (SELECT 1 FROM appointments WHERE appointments.slot_id = slots.id)").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute delete: %w", ErrExecQuery, op, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	return deleted, nil
}

// ListByServiceAndDate получает слоты услуги на дату, отсортированные по времени начала
func (r *Repository) ListByServiceAndDate(ctx context.Context, serviceID int64, date time.Time, onlyAvailable bool) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"service_id": serviceID, "slot_date": domain.DateOnly(date)}).
		OrderBy("start_time ASC", "id ASC")

	if onlyAvailable {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_available": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByServiceAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByServiceAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListByArrangement получает слоты привязки в диапазоне дат [from, through]
func (r *Repository) ListByArrangement(ctx context.Context, arrangementID int64, from, through time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"arrangement_id": arrangementID}).
		Where(squirrel.GtOrEq{"slot_date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"slot_date": domain.DateOnly(through)}).
		OrderBy("slot_date ASC", "start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByArrangement - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByArrangement - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// CountAvailableByMonth считает доступные слоты услуги по дням месяца
// Ключ: номер дня месяца, дни без доступных слотов в карту не попадают
func (r *Repository) CountAvailableByMonth(ctx context.Context, serviceID int64, year int, month time.Month) (map[int]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	query, args, err := psqlbuilder.Select("EXTRACT(DAY FROM slot_date)::int AS day", "COUNT(*)").
		From("slots").
		Where(squirrel.Eq{"service_id": serviceID, "is_available": true}).
		Where(squirrel.GtOrEq{"slot_date": first}).
		Where(squirrel.Lt{"slot_date": next}).
		GroupBy("day").
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountAvailableByMonth - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountAvailableByMonth - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var day, count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("%w: CountAvailableByMonth - scan row: %w", ErrScanRow, err)
		}
		counts[day] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountAvailableByMonth - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	var arrangementID, segmentID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.ServiceID,
		&arrangementID,
		&segmentID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.DurationMinutes,
		&s.MaxConcurrent,
		&s.CurrentCount,
		&s.IsAvailable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if arrangementID.Valid {
		s.ArrangementID = &arrangementID.Int64
	}
	if segmentID.Valid {
		s.SegmentID = &segmentID.Int64
	}
	s.Date = domain.DateOnly(s.Date)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}
