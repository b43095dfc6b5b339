package domain

// Service represents a provider's service that slots are generated for
type Service struct {
	ID         int64
	ProviderID int64
	Name       string
	IsActive   bool
}

// IsOwnedBy returns true if the service belongs to the provider
func (s *Service) IsOwnedBy(providerID int64) bool {
	return s.ProviderID == providerID
}
