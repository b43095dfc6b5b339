package generate_slots

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
	generateSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	ThroughDate string `json:"throughDate" validate:"required"` // "2025-03-31"
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	Created int                   `json:"created"`
	Slots   []models.SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		Created: resp.Created,
		Slots:   models.FromDomainSlotList(resp.Slots).Slots,
	}
}
