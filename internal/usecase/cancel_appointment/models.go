package cancel_appointment

import "time"

// Request модель запроса на отмену записи
type Request struct {
	UserID        int64 // ID пользователя (из X-User-ID)
	AppointmentID int64 // ID записи
}

// Response модель ответа
type Response struct {
	ID           int64
	SlotID       int64
	Status       string
	CurrentCount int // Занятость слота после отмены
	UpdatedAt    time.Time
}
