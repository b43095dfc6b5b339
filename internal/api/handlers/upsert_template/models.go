package upsert_template

import (
	upsertTemplate "github.com/m04kA/SMC-AppointmentService/internal/usecase/upsert_template"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UpsertTemplateRequest HTTP request model
// Без id создается новый шаблон, с id дерево сливается с существующим
type UpsertTemplateRequest struct {
	ID   int64        `json:"id,omitempty" validate:"gte=0"`
	Name string       `json:"name" validate:"required,max=255"`
	Days []DayRequest `json:"days" validate:"dive"`
}

// DayRequest день недели, 0 = воскресенье
type DayRequest struct {
	Index    int              `json:"index" validate:"gte=0,lte=6"`
	Segments []SegmentRequest `json:"segments" validate:"dive"`
}

// SegmentRequest интервал внутри дня
type SegmentRequest struct {
	StartTime           types.TimeString `json:"startTime" validate:"required"` // "09:00"
	EndTime             types.TimeString `json:"endTime" validate:"required"`   // "12:00"
	SlotDurationMinutes *int             `json:"slotDurationMinutes,omitempty"`
	MaxConcurrent       *int             `json:"maxConcurrent,omitempty" validate:"omitempty,gte=1"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpsertTemplateRequest) ToUseCaseRequest(providerID int64) *upsertTemplate.Request {
	days := make([]upsertTemplate.DayInput, 0, len(r.Days))
	for _, d := range r.Days {
		segments := make([]upsertTemplate.SegmentInput, 0, len(d.Segments))
		for _, s := range d.Segments {
			segments = append(segments, upsertTemplate.SegmentInput{
				StartTime:           s.StartTime,
				EndTime:             s.EndTime,
				SlotDurationMinutes: s.SlotDurationMinutes,
				MaxConcurrent:       s.MaxConcurrent,
			})
		}
		days = append(days, upsertTemplate.DayInput{
			Index:    d.Index,
			Segments: segments,
		})
	}

	return &upsertTemplate.Request{
		ProviderID: providerID,
		TemplateID: r.ID,
		Name:       r.Name,
		Days:       days,
	}
}
