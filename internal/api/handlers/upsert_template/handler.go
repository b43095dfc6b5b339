package upsert_template

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/templates/models"
	upsertTemplate "github.com/m04kA/SMC-AppointmentService/internal/usecase/upsert_template"
)

const (
	msgUnauthorized       = "не удалось определить пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTemplate    = "некорректная структура шаблона"
	msgNotFound           = "шаблон не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase UpsertTemplateUseCase
	logger  Logger
}

func NewHandler(useCase UpsertTemplateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/templates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req UpsertTemplateRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /templates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(providerID))
	if err != nil {
		switch {
		case errors.Is(err, upsertTemplate.ErrInvalidInput):
			h.logger.Warn("PUT /templates - Invalid template: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidTemplate+": "+err.Error())

		case errors.Is(err, upsertTemplate.ErrTemplateNotFound):
			h.logger.Warn("PUT /templates - Template not found: template_id=%d", req.ID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, upsertTemplate.ErrAccessDenied):
			h.logger.Warn("PUT /templates - Access denied: template_id=%d, provider_id=%d", req.ID, providerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /templates - Failed to upsert template: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /templates - Template saved: template_id=%d, provider_id=%d, created=%t",
		result.Template.ID, providerID, result.Created)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainTemplate(result.Template))
}
