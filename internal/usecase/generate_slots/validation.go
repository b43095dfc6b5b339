package generate_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.ArrangementID <= 0 {
		return fmt.Errorf("%w: arrangementID must be positive", ErrInvalidInput)
	}

	if req.ThroughDate.IsZero() {
		return fmt.Errorf("%w: throughDate is required", ErrInvalidInput)
	}

	return nil
}
