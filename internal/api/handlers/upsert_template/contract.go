package upsert_template

import (
	"context"

	upsertTemplate "github.com/m04kA/SMC-AppointmentService/internal/usecase/upsert_template"
)

type UpsertTemplateUseCase interface {
	Execute(ctx context.Context, req *upsertTemplate.Request) (*upsertTemplate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
