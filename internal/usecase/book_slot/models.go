package book_slot

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	UserID         int64   // ID пользователя (из X-User-ID)
	ServiceID      int64   // ID услуги
	SlotID         int64   // ID слота
	Notes          *string // Комментарий пользователя
	IdempotencyKey string  // Необязательный заголовок Idempotency-Key
}

// Response модель ответа с созданной записью
type Response struct {
	ID        int64
	UserID    int64
	ServiceID int64
	SlotID    int64
	Status    string
	Notes     *string

	SlotDate     time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	CurrentCount int
	IsAvailable  bool

	CreatedAt time.Time
	UpdatedAt time.Time

	Replayed bool // true - ответ взят из кэша идемпотентности
}
