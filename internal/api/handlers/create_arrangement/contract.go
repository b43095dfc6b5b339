package create_arrangement

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/arrangements/models"
)

type ArrangementService interface {
	Create(ctx context.Context, req *models.CreateArrangementRequest) (*models.ArrangementResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
