package upsert_template

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	templateRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/template"
)

// UseCase use case для создания и слияния шаблона доступности
type UseCase struct {
	templateRepo TemplateRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	templateRepo TemplateRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		templateRepo: templateRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute создаёт новый шаблон (TemplateID = 0) или сливает дерево с существующим
// Слияние идёт по индексу дня: новые дни добавляются, отсутствующие удаляются,
// у совпавших дней сегменты заменяются целиком. Всё дерево меняется в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpsertTemplate: provider=%d, template=%d, days=%d", req.ProviderID, req.TemplateID, len(req.Days))

	// 1. Валидация дерева до любых записей
	days, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpsertTemplate: validation failed: %v", err)
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	created := req.TemplateID == 0

	var result *domain.Template

	// 2. Все изменения дерева в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var templateID int64

		if created {
			// 2.1. Новый шаблон: вставляем шаблон, дни и сегменты
			template, err := uc.templateRepo.Create(txCtx, &domain.Template{
				ProviderID: req.ProviderID,
				Name:       name,
			})
			if err != nil {
				uc.logger.Error("UpsertTemplate: failed to create template: %v", err)
				return fmt.Errorf("%w: failed to create template: %w", ErrInternal, err)
			}
			templateID = template.ID

			if err := uc.insertDays(txCtx, templateID, days); err != nil {
				return err
			}
		} else {
			// 2.2. Существующий шаблон: блокируем и проверяем владельца
			existing, err := uc.templateRepo.GetByID(txCtx, req.TemplateID)
			if err != nil {
				if errors.Is(err, templateRepo.ErrTemplateNotFound) {
					uc.logger.Warn("UpsertTemplate: template id=%d not found", req.TemplateID)
					return ErrTemplateNotFound
				}
				uc.logger.Error("UpsertTemplate: failed to get template id=%d: %v", req.TemplateID, err)
				return fmt.Errorf("%w: failed to get template: %w", ErrInternal, err)
			}

			if existing.ProviderID != req.ProviderID {
				uc.logger.Warn("UpsertTemplate: provider=%d is not owner of template id=%d", req.ProviderID, req.TemplateID)
				return ErrAccessDenied
			}
			templateID = existing.ID

			// 2.3. Слияние дней
			if err := uc.mergeDays(txCtx, existing, name, days); err != nil {
				return err
			}
		}

		// 2.4. Возвращаем полностью гидрированное дерево
		tree, err := uc.templateRepo.GetTree(txCtx, templateID)
		if err != nil {
			uc.logger.Error("UpsertTemplate: failed to load template tree id=%d: %v", templateID, err)
			return fmt.Errorf("%w: failed to load template tree: %w", ErrInternal, err)
		}

		result = tree
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpsertTemplate: template id=%d saved, days=%d, segments=%d, created=%t",
		result.ID, len(result.Days), result.SegmentsCount(), created)

	return &Response{
		Template: result,
		Created:  created,
	}, nil
}

// mergeDays применяет разницу между сохранёнными и входящими днями
func (uc *UseCase) mergeDays(ctx context.Context, existing *domain.Template, name string, incoming []domain.Day) error {
	persisted, err := uc.templateRepo.GetTree(ctx, existing.ID)
	if err != nil {
		uc.logger.Error("UpsertTemplate: failed to load template tree id=%d: %v", existing.ID, err)
		return fmt.Errorf("%w: failed to load template tree: %w", ErrInternal, err)
	}

	diff := diffDays(persisted.Days, incoming)

	if diff.isEmpty() && existing.Name == name {
		uc.logger.Info("UpsertTemplate: template id=%d unchanged", existing.ID)
		return nil
	}

	uc.logger.Info("UpsertTemplate: template id=%d merge: insert=%d, replace=%d, delete=%d",
		existing.ID, len(diff.toInsert), len(diff.toReplace), len(diff.toDelete))

	// Удаление дней, сегменты удаляются каскадно
	if err := uc.templateRepo.DeleteDays(ctx, dayIDs(diff.toDelete)); err != nil {
		uc.logger.Error("UpsertTemplate: failed to delete days: %v", err)
		return fmt.Errorf("%w: failed to delete days: %w", ErrInternal, err)
	}

	// Полная замена сегментов в сохранённых днях
	for _, r := range diff.toReplace {
		if err := uc.templateRepo.DeleteSegmentsByDay(ctx, r.existing.ID); err != nil {
			uc.logger.Error("UpsertTemplate: failed to delete segments of day id=%d: %v", r.existing.ID, err)
			return fmt.Errorf("%w: failed to delete segments: %w", ErrInternal, err)
		}
		if err := uc.insertSegments(ctx, existing.ID, r.existing.ID, r.incoming.Segments); err != nil {
			return err
		}
	}

	if err := uc.insertDays(ctx, existing.ID, diff.toInsert); err != nil {
		return err
	}

	// updated_at шаблона обновляется при любом изменении дерева
	if err := uc.templateRepo.UpdateName(ctx, existing.ID, name); err != nil {
		uc.logger.Error("UpsertTemplate: failed to update template id=%d: %v", existing.ID, err)
		return fmt.Errorf("%w: failed to update template: %w", ErrInternal, err)
	}

	return nil
}

// insertDays вставляет дни вместе с их сегментами
func (uc *UseCase) insertDays(ctx context.Context, templateID int64, days []domain.Day) error {
	for _, day := range days {
		created, err := uc.templateRepo.CreateDay(ctx, &domain.Day{
			TemplateID: templateID,
			Index:      day.Index,
		})
		if err != nil {
			uc.logger.Error("UpsertTemplate: failed to create day index=%d: %v", day.Index, err)
			return fmt.Errorf("%w: failed to create day: %w", ErrInternal, err)
		}

		if err := uc.insertSegments(ctx, templateID, created.ID, day.Segments); err != nil {
			return err
		}
	}
	return nil
}

func (uc *UseCase) insertSegments(ctx context.Context, templateID, dayID int64, segments []domain.Segment) error {
	for _, s := range segments {
		segment := s
		segment.ID = 0
		segment.DayID = dayID
		segment.TemplateID = templateID

		if _, err := uc.templateRepo.CreateSegment(ctx, &segment); err != nil {
			uc.logger.Error("UpsertTemplate: failed to create segment %s-%s for day id=%d: %v",
				segment.StartTime, segment.EndTime, dayID, err)
			return fmt.Errorf("%w: failed to create segment: %w", ErrInternal, err)
		}
	}
	return nil
}
