package update_appointment_status

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные и разбирает новый статус
func validateRequest(req *Request) (domain.AppointmentStatus, error) {
	if req.ProviderID <= 0 {
		return "", fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.AppointmentID <= 0 {
		return "", fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	status, err := domain.ParseAppointmentStatus(req.Status)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return status, nil
}
