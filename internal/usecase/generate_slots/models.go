package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на генерацию слотов
type Request struct {
	ProviderID    int64     // ID провайдера (из X-User-ID)
	ArrangementID int64     // ID привязки
	ThroughDate   time.Time // Последняя дата генерации (включительно)
}

// Response модель ответа
type Response struct {
	Slots   []*domain.Slot // Все слоты привязки до ThroughDate
	Created int            // Сколько слотов создано этим вызовом
}
