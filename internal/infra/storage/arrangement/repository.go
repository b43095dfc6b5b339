package arrangement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var arrangementColumns = []string{
	"id",
	"service_id",
	"template_id",
	"arrangement_index",
	"start_date",
	"repeat_times",
	"repeat_interval_weeks",
	"created_at",
}

// Repository репозиторий привязок шаблонов к услугам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория привязок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает привязку
// Если Index не задан, назначается следующий свободный индекс услуги
func (r *Repository) Create(ctx context.Context, arrangement *domain.Arrangement) (*domain.Arrangement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var index interface{} = arrangement.Index
	if arrangement.Index <= 0 {
		index = squirrel.Expr(
			"(SELECT COALESCE(MAX(arrangement_index), 0) + 1 FROM arrangements WHERE service_id = ?)",
			arrangement.ServiceID,
		)
	}

	query, args, err := psqlbuilder.Insert("arrangements").
		Columns(
			"service_id",
			"template_id",
			"arrangement_index",
			"start_date",
			"repeat_times",
			"repeat_interval_weeks",
		).
		Values(
			arrangement.ServiceID,
			arrangement.TemplateID,
			index,
			domain.DateOnly(arrangement.StartDate),
			arrangement.RepeatTimes,
			arrangement.RepeatIntervalWeeks,
		).
		Suffix("RETURNING id, arrangement_index, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&arrangement.ID, &arrangement.Index, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: service=%d index=%d", ErrDuplicateIndex, arrangement.ServiceID, arrangement.Index)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	arrangement.StartDate = domain.DateOnly(arrangement.StartDate)
	arrangement.CreatedAt = createdAt.Time

	return arrangement, nil
}

// GetByID получает привязку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Arrangement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(arrangementColumns...).
		From("arrangements").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanArrangement(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArrangementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan arrangement: %w", ErrScanRow, err)
	}

	return a, nil
}

// ListByService получает привязки услуги, отсортированные по индексу
func (r *Repository) ListByService(ctx context.Context, serviceID int64) ([]*domain.Arrangement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(arrangementColumns...).
		From("arrangements").
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("arrangement_index ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByService - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	arrangements := make([]*domain.Arrangement, 0)
	for rows.Next() {
		a, err := scanArrangement(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByService - scan row: %w", ErrScanRow, err)
		}
		arrangements = append(arrangements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByService - rows error: %w", ErrScanRow, err)
	}

	return arrangements, nil
}

// Delete удаляет привязку
// Уже сгенерированные слоты остаются (arrangement_id = NULL), история записей не теряется
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("arrangements").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrArrangementNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArrangement(row rowScanner) (*domain.Arrangement, error) {
	var a domain.Arrangement
	var createdAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.ServiceID,
		&a.TemplateID,
		&a.Index,
		&a.StartDate,
		&a.RepeatTimes,
		&a.RepeatIntervalWeeks,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	a.StartDate = domain.DateOnly(a.StartDate)
	a.CreatedAt = createdAt.Time

	return &a, nil
}
