package delete_arrangement

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/arrangements"
)

const (
	msgUnauthorized         = "не удалось определить пользователя"
	msgInvalidArrangementID = "некорректный ID привязки"
	msgNotFound             = "привязка не найдена"
	msgForbidden            = "доступ запрещен"
)

type Handler struct {
	service ArrangementService
	logger  Logger
}

func NewHandler(service ArrangementService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/arrangements/{arrangementId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	arrangementID, err := strconv.ParseInt(mux.Vars(r)["arrangementId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /arrangements/{id} - Invalid arrangement ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArrangementID)
		return
	}

	if err := h.service.Delete(r.Context(), arrangementID, providerID); err != nil {
		switch {
		case errors.Is(err, arrangements.ErrArrangementNotFound), errors.Is(err, arrangements.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, arrangements.ErrAccessDenied):
			h.logger.Warn("DELETE /arrangements/{id} - Access denied: arrangement_id=%d, provider_id=%d",
				arrangementID, providerID)
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("DELETE /arrangements/{id} - Failed to delete arrangement: arrangement_id=%d, error=%v",
				arrangementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /arrangements/{id} - Arrangement deleted: arrangement_id=%d", arrangementID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
