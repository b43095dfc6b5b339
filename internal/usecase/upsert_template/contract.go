package upsert_template

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// TemplateRepository интерфейс репозитория шаблонов
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.Template) (*domain.Template, error)
	GetByID(ctx context.Context, id int64) (*domain.Template, error)
	GetTree(ctx context.Context, id int64) (*domain.Template, error)
	UpdateName(ctx context.Context, id int64, name string) error
	CreateDay(ctx context.Context, day *domain.Day) (*domain.Day, error)
	DeleteDays(ctx context.Context, ids []int64) error
	DeleteSegmentsByDay(ctx context.Context, dayID int64) error
	CreateSegment(ctx context.Context, segment *domain.Segment) (*domain.Segment, error)
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
