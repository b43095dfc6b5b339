package create_arrangement

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/arrangements/models"
)

// CreateArrangementRequest HTTP request model
type CreateArrangementRequest struct {
	TemplateID          int64  `json:"templateId" validate:"required,gt=0"`
	Index               int    `json:"index,omitempty" validate:"gte=0"` // 0 - следующий свободный
	StartDate           string `json:"startDate" validate:"required"`    // "2025-01-06"
	RepeatTimes         int    `json:"repeatTimes" validate:"required,gte=1"`
	RepeatIntervalWeeks int    `json:"repeatIntervalWeeks" validate:"required,gte=1"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateArrangementRequest) ToServiceRequest(providerID, serviceID int64) (*models.CreateArrangementRequest, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	return &models.CreateArrangementRequest{
		ProviderID:          providerID,
		ServiceID:           serviceID,
		TemplateID:          r.TemplateID,
		Index:               r.Index,
		StartDate:           startDate,
		RepeatTimes:         r.RepeatTimes,
		RepeatIntervalWeeks: r.RepeatIntervalWeeks,
	}, nil
}
