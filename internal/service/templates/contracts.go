package templates

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// TemplateRepository интерфейс репозитория шаблонов
type TemplateRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Template, error)
	GetTree(ctx context.Context, id int64) (*domain.Template, error)
	ListByProvider(ctx context.Context, providerID int64) ([]*domain.Template, error)
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	DeleteUnbookedByTemplate(ctx context.Context, templateID int64) (int64, error)
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
