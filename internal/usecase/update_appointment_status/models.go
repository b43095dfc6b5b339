package update_appointment_status

import "time"

// Request модель запроса на смену статуса записи провайдером
type Request struct {
	ProviderID    int64  // ID провайдера (из X-User-ID)
	AppointmentID int64  // ID записи
	Status        string // Новый статус
}

// Response модель ответа
type Response struct {
	ID             int64
	ServiceID      int64
	SlotID         int64
	PreviousStatus string
	Status         string
	UpdatedAt      time.Time
}
