package create_arrangement

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
	msgUnauthorized       = "не удалось определить пользователя"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartDate   = "некорректный формат даты начала, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры привязки"
	msgServiceNotFound    = "услуга не найдена"
	msgTemplateNotFound   = "шаблон не найден"
	msgForbidden          = "доступ запрещен"
	msgAlreadyExists      = "привязка с таким индексом уже существует"
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

// Handle POST /api/v1/services/{serviceId}/arrangements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /services/{id}/arrangements - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req CreateArrangementRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/arrangements - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
		return
	}

	serviceReq, err := req.ToServiceRequest(providerID, serviceID)
	if err != nil {
		h.logger.Warn("POST /services/{id}/arrangements - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, arrangements.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())
		case errors.Is(err, arrangements.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, arrangements.ErrTemplateNotFound):
			handlers.RespondNotFound(w, msgTemplateNotFound)
		case errors.Is(err, arrangements.ErrAccessDenied):
			h.logger.Warn("POST /services/{id}/arrangements - Access denied: service_id=%d, provider_id=%d",
				serviceID, providerID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, arrangements.ErrArrangementExists):
			handlers.RespondConflict(w, msgAlreadyExists)
		default:
			h.logger.Error("POST /services/{id}/arrangements - Failed to create arrangement: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services/{id}/arrangements - Arrangement created: arrangement_id=%d, service_id=%d",
		result.ID, serviceID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
