package list_templates

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/templates/models"
)

type TemplateService interface {
	ListByProvider(ctx context.Context, providerID int64) (*models.TemplateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
