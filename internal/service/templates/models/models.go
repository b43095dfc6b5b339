package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// TemplateResponse шаблон с полным деревом дней и сегментов
type TemplateResponse struct {
	ID         int64         `json:"id"`
	ProviderID int64         `json:"providerId"`
	Name       string        `json:"name"`
	Days       []DayResponse `json:"days"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// DayResponse день шаблона, index как time.Weekday (0 = воскресенье)
type DayResponse struct {
	ID       int64             `json:"id"`
	Index    int               `json:"index"`
	Segments []SegmentResponse `json:"segments"`
}

// SegmentResponse интервал дня
type SegmentResponse struct {
	ID                  int64  `json:"id"`
	StartTime           string `json:"startTime"` // "09:00"
	EndTime             string `json:"endTime"`   // "12:00"
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	MaxConcurrent       int    `json:"maxConcurrent"`
}

// TemplateListResponse список шаблонов провайдера
type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

// FromDomainTemplate конвертирует domain модель в DTO
func FromDomainTemplate(t *domain.Template) *TemplateResponse {
	if t == nil {
		return nil
	}

	resp := &TemplateResponse{
		ID:         t.ID,
		ProviderID: t.ProviderID,
		Name:       t.Name,
		Days:       make([]DayResponse, 0, len(t.Days)),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}

	for _, d := range t.Days {
		day := DayResponse{
			ID:       d.ID,
			Index:    d.Index,
			Segments: make([]SegmentResponse, 0, len(d.Segments)),
		}
		for _, s := range d.Segments {
			day.Segments = append(day.Segments, SegmentResponse{
				ID:                  s.ID,
				StartTime:           s.StartTime.String(),
				EndTime:             s.EndTime.String(),
				SlotDurationMinutes: s.SlotDurationMinutes,
				MaxConcurrent:       s.MaxConcurrent,
			})
		}
		resp.Days = append(resp.Days, day)
	}

	return resp
}

// FromDomainTemplateList конвертирует список domain моделей в DTO
func FromDomainTemplateList(templates []*domain.Template) *TemplateListResponse {
	resp := &TemplateListResponse{
		Templates: make([]TemplateResponse, 0, len(templates)),
	}

	for _, t := range templates {
		if tr := FromDomainTemplate(t); tr != nil {
			resp.Templates = append(resp.Templates, *tr)
		}
	}

	return resp
}
