package arrangements

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ArrangementRepository интерфейс репозитория привязок
type ArrangementRepository interface {
	Create(ctx context.Context, arrangement *domain.Arrangement) (*domain.Arrangement, error)
	GetByID(ctx context.Context, id int64) (*domain.Arrangement, error)
	ListByService(ctx context.Context, serviceID int64) ([]*domain.Arrangement, error)
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	DeleteUnbookedByArrangement(ctx context.Context, arrangementID int64) (int64, error)
}

// ServiceRepository интерфейс справочника услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// TemplateRepository интерфейс репозитория шаблонов
type TemplateRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Template, error)
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
