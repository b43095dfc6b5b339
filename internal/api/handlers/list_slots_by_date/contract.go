package list_slots_by_date

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
)

type SlotService interface {
	ListByDate(ctx context.Context, serviceID int64, date time.Time, onlyAvailable bool) (*models.SlotListResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
