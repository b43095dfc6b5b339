package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
)

const (
	minYear = 2000
	maxYear = 2100
)

// Service сервис чтения слотов
type Service struct {
	slotRepo    SlotRepository
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		slotRepo:    slotRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// ListByDate получает слоты услуги на дату по времени начала
func (s *Service) ListByDate(ctx context.Context, serviceID int64, date time.Time, onlyAvailable bool) (*models.SlotListResponse, error) {
	s.logger.Info("ListSlotsByDate: service=%d, date=%s, onlyAvailable=%t",
		serviceID, date.Format(domain.DateFormat), onlyAvailable)

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := s.ensureService(ctx, serviceID, "ListSlotsByDate"); err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.ListByServiceAndDate(ctx, serviceID, date, onlyAvailable)
	if err != nil {
		s.logger.Error("ListSlotsByDate: repository error for service=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListSlotsByDate: found %d slots for service=%d", len(slots), serviceID)
	return models.FromDomainSlotList(slots), nil
}

// ListByMonth считает доступные слоты услуги по дням месяца
func (s *Service) ListByMonth(ctx context.Context, serviceID int64, year int, month int) (*models.MonthAvailabilityResponse, error) {
	s.logger.Info("ListSlotsByMonth: service=%d, year=%d, month=%d", serviceID, year, month)

	if year < minYear || year > maxYear {
		return nil, fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, minYear, maxYear)
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}

	if err := s.ensureService(ctx, serviceID, "ListSlotsByMonth"); err != nil {
		return nil, err
	}

	counts, err := s.slotRepo.CountAvailableByMonth(ctx, serviceID, year, time.Month(month))
	if err != nil {
		s.logger.Error("ListSlotsByMonth: repository error for service=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: ListByMonth - repository error: %v", ErrInternal, err)
	}

	return &models.MonthAvailabilityResponse{
		Year:  year,
		Month: month,
		Days:  counts,
	}, nil
}

func (s *Service) ensureService(ctx context.Context, serviceID int64, op string) error {
	if _, err := s.serviceRepo.GetByID(ctx, serviceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", op, serviceID)
			return ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%d: %v", op, serviceID, err)
		return fmt.Errorf("%w: get service: %v", ErrInternal, err)
	}
	return nil
}
