package list_slots_by_month

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
)

type SlotService interface {
	ListByMonth(ctx context.Context, serviceID int64, year int, month int) (*models.MonthAvailabilityResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
