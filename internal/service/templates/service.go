package templates

import (
	"context"
	"errors"
	"fmt"

	templateRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/template"
	"github.com/m04kA/SMC-AppointmentService/internal/service/templates/models"
)

// Service сервис для чтения и удаления шаблонов
type Service struct {
	templateRepo TemplateRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса шаблонов
func NewService(
	templateRepo TemplateRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		templateRepo: templateRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает полное дерево шаблона
// Шаблон видит только его владелец
func (s *Service) GetByID(ctx context.Context, id int64, providerID int64) (*models.TemplateResponse, error) {
	s.logger.Info("GetTemplate: fetching template id=%d for provider=%d", id, providerID)

	template, err := s.templateRepo.GetTree(ctx, id)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("GetTemplate: template id=%d not found", id)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("GetTemplate: repository error for template id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if template.ProviderID != providerID {
		s.logger.Warn("GetTemplate: access denied for provider=%d to template id=%d", providerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainTemplate(template), nil
}

// ListByProvider получает шаблоны провайдера без дерева дней
func (s *Service) ListByProvider(ctx context.Context, providerID int64) (*models.TemplateListResponse, error) {
	s.logger.Info("ListTemplates: fetching templates for provider=%d", providerID)

	templates, err := s.templateRepo.ListByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("ListTemplates: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListByProvider - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListTemplates: successfully fetched %d templates for provider=%d", len(templates), providerID)
	return models.FromDomainTemplateList(templates), nil
}

// Delete удаляет шаблон вместе с днями и сегментами
// Привязки шаблона удаляются каскадно, их свободные слоты удаляются до этого в той же транзакции.
// Слоты с записями остаются.
func (s *Service) Delete(ctx context.Context, id int64, providerID int64) error {
	s.logger.Info("DeleteTemplate: deleting template id=%d by provider=%d", id, providerID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		template, err := s.templateRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, templateRepo.ErrTemplateNotFound) {
				s.logger.Warn("DeleteTemplate: template id=%d not found", id)
				return ErrTemplateNotFound
			}
			s.logger.Error("DeleteTemplate: repository error for template id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - get template: %v", ErrInternal, err)
		}

		if template.ProviderID != providerID {
			s.logger.Warn("DeleteTemplate: access denied for provider=%d to template id=%d", providerID, id)
			return ErrAccessDenied
		}

		deleted, err := s.slotRepo.DeleteUnbookedByTemplate(txCtx, id)
		if err != nil {
			s.logger.Error("DeleteTemplate: failed to delete slots of template id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - delete slots: %v", ErrInternal, err)
		}
		s.logger.Info("DeleteTemplate: removed %d unbooked slots of template id=%d", deleted, id)

		if err := s.templateRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, templateRepo.ErrTemplateNotFound) {
				return ErrTemplateNotFound
			}
			s.logger.Error("DeleteTemplate: failed to delete template id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - delete template: %v", ErrInternal, err)
		}

		s.logger.Info("DeleteTemplate: template id=%d deleted", id)
		return nil
	})
}
