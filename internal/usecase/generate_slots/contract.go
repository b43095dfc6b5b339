package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ArrangementRepository интерфейс репозитория привязок
type ArrangementRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Arrangement, error)
}

// TemplateRepository интерфейс репозитория шаблонов
type TemplateRepository interface {
	GetTree(ctx context.Context, id int64) (*domain.Template, error)
}

// ServiceRepository интерфейс справочника услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ExistsForArrangementDate(ctx context.Context, arrangementID int64, date time.Time) (bool, error)
	CreateBatch(ctx context.Context, slots []domain.Slot) (int, error)
	ListByArrangement(ctx context.Context, arrangementID int64, from, through time.Time) ([]*domain.Slot, error)
}

// MetricsRecorder счетчик сгенерированных слотов
type MetricsRecorder interface {
	AddGeneratedSlots(count int)
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
