package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// CreateArrangementRequest запрос на привязку шаблона к услуге
type CreateArrangementRequest struct {
	ProviderID          int64
	ServiceID           int64
	TemplateID          int64
	Index               int // 0 - следующий свободный
	StartDate           time.Time
	RepeatTimes         int
	RepeatIntervalWeeks int
}

// Response модели

// ArrangementResponse ответ с данными привязки
type ArrangementResponse struct {
	ID                  int64     `json:"id"`
	ServiceID           int64     `json:"serviceId"`
	TemplateID          int64     `json:"templateId"`
	Index               int       `json:"index"`
	StartDate           string    `json:"startDate"` // "2025-01-06"
	LastDate            string    `json:"lastDate"`  // дата последнего повторения
	RepeatTimes         int       `json:"repeatTimes"`
	RepeatIntervalWeeks int       `json:"repeatIntervalWeeks"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ArrangementListResponse ответ со списком привязок
type ArrangementListResponse struct {
	Arrangements []ArrangementResponse `json:"arrangements"`
}

// FromDomainArrangement конвертирует domain модель в DTO
func FromDomainArrangement(a *domain.Arrangement) *ArrangementResponse {
	if a == nil {
		return nil
	}

	return &ArrangementResponse{
		ID:                  a.ID,
		ServiceID:           a.ServiceID,
		TemplateID:          a.TemplateID,
		Index:               a.Index,
		StartDate:           a.StartDate.Format(domain.DateFormat),
		LastDate:            a.LastDate().Format(domain.DateFormat),
		RepeatTimes:         a.RepeatTimes,
		RepeatIntervalWeeks: a.RepeatIntervalWeeks,
		CreatedAt:           a.CreatedAt,
	}
}

// FromDomainArrangementList конвертирует список domain моделей в DTO
func FromDomainArrangementList(arrangements []*domain.Arrangement) *ArrangementListResponse {
	resp := &ArrangementListResponse{
		Arrangements: make([]ArrangementResponse, 0, len(arrangements)),
	}

	for _, a := range arrangements {
		if ar := FromDomainArrangement(a); ar != nil {
			resp.Arrangements = append(resp.Arrangements, *ar)
		}
	}

	return resp
}
