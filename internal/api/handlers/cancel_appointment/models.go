package cancel_appointment

import (
	"time"

	cancelAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
)

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	ID           int64  `json:"id"`
	SlotID       int64  `json:"slotId"`
	Status       string `json:"status"`
	CurrentCount int    `json:"currentCount"`
	UpdatedAt    string `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.Response) *CancelAppointmentResponse {
	return &CancelAppointmentResponse{
		ID:           resp.ID,
		SlotID:       resp.SlotID,
		Status:       resp.Status,
		CurrentCount: resp.CurrentCount,
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
