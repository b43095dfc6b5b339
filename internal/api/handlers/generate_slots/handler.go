package generate_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	generateSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_slots"
)

const (
	msgUnauthorized         = "не удалось определить пользователя"
	msgInvalidArrangementID = "некорректный ID привязки"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidThroughDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput         = "некорректные параметры генерации"
	msgArrangementNotFound  = "привязка не найдена"
	msgServiceNotFound      = "услуга не найдена"
	msgTemplateNotFound     = "шаблон не найден"
	msgForbidden            = "доступ запрещен"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/arrangements/{arrangementId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	arrangementID, err := strconv.ParseInt(mux.Vars(r)["arrangementId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /arrangements/{id}/slots - Invalid arrangement ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArrangementID)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /arrangements/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	throughDate, err := time.Parse(domain.DateFormat, req.ThroughDate)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidThroughDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &generateSlots.Request{
		ProviderID:    providerID,
		ArrangementID: arrangementID,
		ThroughDate:   throughDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())
		case errors.Is(err, generateSlots.ErrArrangementNotFound):
			handlers.RespondNotFound(w, msgArrangementNotFound)
		case errors.Is(err, generateSlots.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, generateSlots.ErrTemplateNotFound):
			handlers.RespondNotFound(w, msgTemplateNotFound)
		case errors.Is(err, generateSlots.ErrAccessDenied):
			h.logger.Warn("POST /arrangements/{id}/slots - Access denied: arrangement_id=%d, provider_id=%d",
				arrangementID, providerID)
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("POST /arrangements/{id}/slots - Failed to generate slots: arrangement_id=%d, error=%v",
				arrangementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /arrangements/{id}/slots - Slots generated: arrangement_id=%d, created=%d, total=%d",
		arrangementID, result.Created, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
