package list_arrangements

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/arrangements/models"
)

type ArrangementService interface {
	ListByService(ctx context.Context, serviceID int64) (*models.ArrangementListResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
