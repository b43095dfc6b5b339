package template

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

// Repository репозиторий для работы с деревом шаблона (templates -> template_days -> template_segments)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись шаблона без дней и сегментов
func (r *Repository) Create(ctx context.Context, template *domain.Template) (*domain.Template, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("templates").
		Columns("provider_id", "name").
		Values(template.ProviderID, template.Name).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&template.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	template.CreatedAt = createdAt.Time
	template.UpdatedAt = updatedAt.Time

	return template, nil
}

// GetByID получает шаблон без дней
// Внутри транзакции блокирует строку (FOR UPDATE), чтобы параллельные upsert'ы одного шаблона шли последовательно
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Template, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "provider_id", "name", "created_at", "updated_at").
		From("templates").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var template domain.Template
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&template.ID,
		&template.ProviderID,
		&template.Name,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan template: %w", ErrScanRow, err)
	}

	template.CreatedAt = createdAt.Time
	template.UpdatedAt = updatedAt.Time

	return &template, nil
}

// GetTree получает шаблон вместе с днями и сегментами
// Дни отсортированы по индексу, сегменты по времени начала
func (r *Repository) GetTree(ctx context.Context, id int64) (*domain.Template, error) {
	template, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	days, err := r.GetDays(ctx, id)
	if err != nil {
		return nil, err
	}

	segments, err := r.getSegmentsByTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	for i := range days {
		days[i].Segments = segments[days[i].ID]
		if days[i].Segments == nil {
			days[i].Segments = []domain.Segment{}
		}
	}
	template.Days = days

	return template, nil
}

// ListByProvider получает шаблоны провайдера без дней
func (r *Repository) ListByProvider(ctx context.Context, providerID int64) ([]*domain.Template, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "provider_id", "name", "created_at", "updated_at").
		From("templates").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]*domain.Template, 0)
	for rows.Next() {
		var template domain.Template
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&template.ID, &template.ProviderID, &template.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByProvider - scan row: %w", ErrScanRow, err)
		}
		template.CreatedAt = createdAt.Time
		template.UpdatedAt = updatedAt.Time
		templates = append(templates, &template)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - rows error: %w", ErrScanRow, err)
	}

	return templates, nil
}

// UpdateName обновляет название шаблона и updated_at
func (r *Repository) UpdateName(ctx context.Context, id int64, name string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("templates").
		Set("name", name).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateName - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateName - execute update: %w", ErrExecQuery, err)
	}

	return requireAffected(result, ErrTemplateNotFound, "UpdateName")
}

// Delete удаляет шаблон, дни и сегменты удаляются каскадно (ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	return requireAffected(result, ErrTemplateNotFound, "Delete")
}

// GetDays получает дни шаблона без сегментов
func (r *Repository) GetDays(ctx context.Context, templateID int64) ([]domain.Day, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "template_id", "day_index").
		From("template_days").
		Where(squirrel.Eq{"template_id": templateID}).
		OrderBy("day_index ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDays - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]domain.Day, 0)
	for rows.Next() {
		var day domain.Day
		if err := rows.Scan(&day.ID, &day.TemplateID, &day.Index); err != nil {
			return nil, fmt.Errorf("%w: GetDays - scan row: %w", ErrScanRow, err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDays - rows error: %w", ErrScanRow, err)
	}

	return days, nil
}

// CreateDay создает день шаблона
func (r *Repository) CreateDay(ctx context.Context, day *domain.Day) (*domain.Day, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("template_days").
		Columns("template_id", "day_index").
		Values(day.TemplateID, day.Index).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateDay - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&day.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: template=%d index=%d", ErrDuplicateDayIndex, day.TemplateID, day.Index)
		}
		return nil, fmt.Errorf("%w: CreateDay - execute insert: %w", ErrExecQuery, err)
	}

	return day, nil
}

// DeleteDays удаляет дни по ID, сегменты удаляются каскадно
func (r *Repository) DeleteDays(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("template_days").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteDays - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteDays - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// DeleteSegmentsByDay удаляет все сегменты дня (полная замена при upsert)
func (r *Repository) DeleteSegmentsByDay(ctx context.Context, dayID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("template_segments").
		Where(squirrel.Eq{"day_id": dayID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteSegmentsByDay - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteSegmentsByDay - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// CreateSegment создает сегмент дня
func (r *Repository) CreateSegment(ctx context.Context, segment *domain.Segment) (*domain.Segment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("template_segments").
		Columns(
			"day_id",
			"template_id",
			"start_time",
			"end_time",
			"slot_duration_minutes",
			"max_concurrent",
		).
		Values(
			segment.DayID,
			segment.TemplateID,
			segment.StartTime,
			segment.EndTime,
			segment.SlotDurationMinutes,
			segment.MaxConcurrent,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateSegment - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&segment.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateSegment - execute insert: %w", ErrExecQuery, err)
	}

	return segment, nil
}

// getSegmentsByTemplate получает все сегменты шаблона, сгруппированные по day_id
func (r *Repository) getSegmentsByTemplate(ctx context.Context, templateID int64) (map[int64][]domain.Segment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"day_id",
		"template_id",
		"start_time",
		"end_time",
		"slot_duration_minutes",
		"max_concurrent",
	).
		From("template_segments").
		Where(squirrel.Eq{"template_id": templateID}).
		OrderBy("day_id ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getSegmentsByTemplate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getSegmentsByTemplate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	byDay := make(map[int64][]domain.Segment)
	for rows.Next() {
		var s domain.Segment
		err := rows.Scan(
			&s.ID,
			&s.DayID,
			&s.TemplateID,
			&s.StartTime,
			&s.EndTime,
			&s.SlotDurationMinutes,
			&s.MaxConcurrent,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getSegmentsByTemplate - scan row: %w", ErrScanRow, err)
		}
		byDay[s.DayID] = append(byDay[s.DayID], s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getSegmentsByTemplate - rows error: %w", ErrScanRow, err)
	}

	return byDay, nil
}

func requireAffected(result sql.Result, notFound error, method string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
