package cancel_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateLeadTime проверяет, что до начала слота осталось не меньше leadTime
func validateLeadTime(slot *domain.Slot, now time.Time, leadTime time.Duration) error {
	startsAt := slot.StartsAt()
	if startsAt.Sub(now) < leadTime {
		return fmt.Errorf("%w: slot starts at %s, cancellation requires %s notice",
			ErrTooLateToCancel, startsAt.Format(time.DateTime), leadTime)
	}
	return nil
}
