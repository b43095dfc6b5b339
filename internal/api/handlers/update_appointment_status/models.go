package update_appointment_status

import (
	"time"

	updateStatus "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled no_show"`
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	ID             int64  `json:"id"`
	ServiceID      int64  `json:"serviceId"`
	SlotID         int64  `json:"slotId"`
	PreviousStatus string `json:"previousStatus"`
	Status         string `json:"status"`
	UpdatedAt      string `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *UpdateStatusResponse {
	return &UpdateStatusResponse{
		ID:             resp.ID,
		ServiceID:      resp.ServiceID,
		SlotID:         resp.SlotID,
		PreviousStatus: resp.PreviousStatus,
		Status:         resp.Status,
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
