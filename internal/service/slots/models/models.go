package models

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID                int64  `json:"id"`
	ServiceID         int64  `json:"serviceId"`
	ArrangementID     *int64 `json:"arrangementId,omitempty"`
	Date              string `json:"date"`      // "2025-01-06"
	StartTime         string `json:"startTime"` // "09:00"
	EndTime           string `json:"endTime"`   // "09:30"
	DurationMinutes   int    `json:"durationMinutes"`
	MaxConcurrent     int    `json:"maxConcurrent"`
	CurrentCount      int    `json:"currentCount"`
	RemainingCapacity int    `json:"remainingCapacity"`
	IsAvailable       bool   `json:"isAvailable"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// MonthAvailabilityResponse количество доступных слотов по дням месяца
// Дни без доступных слотов отсутствуют в карте
type MonthAvailabilityResponse struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Days  map[int]int `json:"days"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:                s.ID,
		ServiceID:         s.ServiceID,
		ArrangementID:     s.ArrangementID,
		Date:              s.Date.Format(domain.DateFormat),
		StartTime:         s.StartTime.String(),
		EndTime:           s.EndTime.String(),
		DurationMinutes:   s.DurationMinutes,
		MaxConcurrent:     s.MaxConcurrent,
		CurrentCount:      s.CurrentCount,
		RemainingCapacity: s.RemainingCapacity(),
		IsAvailable:       s.IsAvailable,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for _, s := range slots {
		if sr := FromDomainSlot(s); sr != nil {
			resp.Slots = append(resp.Slots, *sr)
		}
	}

	return resp
}
