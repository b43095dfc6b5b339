package arrangements

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	arrangementRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/arrangement"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	templateRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/template"
	"github.com/m04kA/SMC-AppointmentService/internal/service/arrangements/models"
)

// Service сервис привязок шаблонов к услугам
type Service struct {
	arrangementRepo ArrangementRepository
	slotRepo        SlotRepository
	serviceRepo     ServiceRepository
	templateRepo    TemplateRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса привязок
func NewService(
	arrangementRepo ArrangementRepository,
	slotRepo SlotRepository,
	serviceRepo ServiceRepository,
	templateRepo TemplateRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		arrangementRepo: arrangementRepo,
		slotRepo:        slotRepo,
		serviceRepo:     serviceRepo,
		templateRepo:    templateRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Create привязывает шаблон к услуге
// Провайдер должен владеть и услугой, и шаблоном
func (s *Service) Create(ctx context.Context, req *models.CreateArrangementRequest) (*models.ArrangementResponse, error) {
	s.logger.Info("CreateArrangement: provider=%d, service=%d, template=%d, start=%s, repeat=%d every %d weeks",
		req.ProviderID, req.ServiceID, req.TemplateID, req.StartDate.Format(domain.DateFormat),
		req.RepeatTimes, req.RepeatIntervalWeeks)

	arrangement := &domain.Arrangement{
		ServiceID:           req.ServiceID,
		TemplateID:          req.TemplateID,
		Index:               req.Index,
		StartDate:           domain.DateOnly(req.StartDate),
		RepeatTimes:         req.RepeatTimes,
		RepeatIntervalWeeks: req.RepeatIntervalWeeks,
	}
	if err := arrangement.Validate(); err != nil {
		s.logger.Warn("CreateArrangement: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Index < 0 {
		return nil, fmt.Errorf("%w: index must not be negative", ErrInvalidInput)
	}

	var created *domain.Arrangement

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.checkServiceOwner(txCtx, req.ServiceID, req.ProviderID, "CreateArrangement"); err != nil {
			return err
		}

		template, err := s.templateRepo.GetByID(txCtx, req.TemplateID)
		if err != nil {
			if errors.Is(err, templateRepo.ErrTemplateNotFound) {
				s.logger.Warn("CreateArrangement: template id=%d not found", req.TemplateID)
				return ErrTemplateNotFound
			}
			s.logger.Error("CreateArrangement: repository error for template id=%d: %v", req.TemplateID, err)
			return fmt.Errorf("%w: Create - get template: %v", ErrInternal, err)
		}
		if template.ProviderID != req.ProviderID {
			s.logger.Warn("CreateArrangement: access denied for provider=%d to template id=%d", req.ProviderID, req.TemplateID)
			return ErrAccessDenied
		}

		created, err = s.arrangementRepo.Create(txCtx, arrangement)
		if err != nil {
			if errors.Is(err, arrangementRepo.ErrDuplicateIndex) {
				s.logger.Warn("CreateArrangement: index %d already used by service id=%d", req.Index, req.ServiceID)
				return ErrArrangementExists
			}
			s.logger.Error("CreateArrangement: failed to create arrangement: %v", err)
			return fmt.Errorf("%w: Create - create arrangement: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateArrangement: arrangement id=%d created with index=%d", created.ID, created.Index)
	return models.FromDomainArrangement(created), nil
}

// ListByService получает привязки услуги
func (s *Service) ListByService(ctx context.Context, serviceID int64) (*models.ArrangementListResponse, error) {
	s.logger.Info("ListArrangements: fetching arrangements for service=%d", serviceID)

	if _, err := s.serviceRepo.GetByID(ctx, serviceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("ListArrangements: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("ListArrangements: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: ListByService - get service: %v", ErrInternal, err)
	}

	arrangements, err := s.arrangementRepo.ListByService(ctx, serviceID)
	if err != nil {
		s.logger.Error("ListArrangements: repository error for service=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: ListByService - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainArrangementList(arrangements), nil
}

// Delete удаляет привязку
// Свободные слоты привязки удаляются в той же транзакции, слоты с записями остаются
func (s *Service) Delete(ctx context.Context, id int64, providerID int64) error {
	s.logger.Info("DeleteArrangement: deleting arrangement id=%d by provider=%d", id, providerID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		arrangement, err := s.arrangementRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, arrangementRepo.ErrArrangementNotFound) {
				s.logger.Warn("DeleteArrangement: arrangement id=%d not found", id)
				return ErrArrangementNotFound
			}
			s.logger.Error("DeleteArrangement: repository error for arrangement id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - get arrangement: %v", ErrInternal, err)
		}

		if err := s.checkServiceOwner(txCtx, arrangement.ServiceID, providerID, "DeleteArrangement"); err != nil {
			return err
		}

		deleted, err := s.slotRepo.DeleteUnbookedByArrangement(txCtx, id)
		if err != nil {
			s.logger.Error("DeleteArrangement: failed to delete slots of arrangement id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - delete slots: %v", ErrInternal, err)
		}
		s.logger.Info("DeleteArrangement: removed %d unbooked slots of arrangement id=%d", deleted, id)

		if err := s.arrangementRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, arrangementRepo.ErrArrangementNotFound) {
				return ErrArrangementNotFound
			}
			s.logger.Error("DeleteArrangement: failed to delete arrangement id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - delete arrangement: %v", ErrInternal, err)
		}

		s.logger.Info("DeleteArrangement: arrangement id=%d deleted", id)
		return nil
	})
}

// checkServiceOwner проверяет, что услуга существует и принадлежит провайдеру
func (s *Service) checkServiceOwner(ctx context.Context, serviceID, providerID int64, op string) error {
	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", op, serviceID)
			return ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%d: %v", op, serviceID, err)
		return fmt.Errorf("%w: get service: %v", ErrInternal, err)
	}

	if !service.IsOwnedBy(providerID) {
		s.logger.Warn("%s: access denied for provider=%d to service id=%d", op, providerID, serviceID)
		return ErrAccessDenied
	}

	return nil
}
