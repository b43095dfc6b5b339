package upsert_template

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание или слияние шаблона
type Request struct {
	ProviderID int64    // ID провайдера (из X-User-ID)
	TemplateID int64    // 0 - создать новый шаблон
	Name       string   // Название шаблона
	Days       []DayInput
}

// DayInput день недели шаблона (0 = воскресенье)
type DayInput struct {
	Index    int
	Segments []SegmentInput
}

// SegmentInput интервал внутри дня
type SegmentInput struct {
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes *int // nil - значение по умолчанию
	MaxConcurrent       *int // nil - значение по умолчанию
}

// Response модель ответа с полным деревом шаблона
type Response struct {
	Template *domain.Template
	Created  bool // true - шаблон создан, false - обновлён
}
