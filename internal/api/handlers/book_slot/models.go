package book_slot

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_slot"
)

// BookSlotRequest HTTP request model
type BookSlotRequest struct {
	ServiceID int64   `json:"serviceId" validate:"required,gt=0"`
	SlotID    int64   `json:"slotId" validate:"required,gt=0"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"userId"`
	ServiceID    int64   `json:"serviceId"`
	SlotID       int64   `json:"slotId"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
	SlotDate     string  `json:"slotDate"`  // "2025-01-06"
	StartTime    string  `json:"startTime"` // "09:00"
	EndTime      string  `json:"endTime"`   // "09:30"
	CurrentCount int     `json:"currentCount"`
	IsAvailable  bool    `json:"isAvailable"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSlotRequest) ToUseCaseRequest(userID int64, idempotencyKey string) *bookSlot.Request {
	return &bookSlot.Request{
		UserID:         userID,
		ServiceID:      r.ServiceID,
		SlotID:         r.SlotID,
		Notes:          r.Notes,
		IdempotencyKey: idempotencyKey,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           resp.ID,
		UserID:       resp.UserID,
		ServiceID:    resp.ServiceID,
		SlotID:       resp.SlotID,
		Status:       resp.Status,
		Notes:        resp.Notes,
		SlotDate:     resp.SlotDate.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		CurrentCount: resp.CurrentCount,
		IsAvailable:  resp.IsAvailable,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
