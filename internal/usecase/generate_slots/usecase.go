package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	arrangementRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/arrangement"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	templateRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/template"
)

// UseCase use case для генерации слотов по привязке шаблона
type UseCase struct {
	arrangementRepo ArrangementRepository
	templateRepo    TemplateRepository
	serviceRepo     ServiceRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	metrics         MetricsRecorder
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	arrangementRepo ArrangementRepository,
	templateRepo TemplateRepository,
	serviceRepo ServiceRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		arrangementRepo: arrangementRepo,
		templateRepo:    templateRepo,
		serviceRepo:     serviceRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute разворачивает привязку в даты до ThroughDate и генерирует слоты
// Даты, для которых слоты привязки уже есть, пропускаются: повторный вызов ничего не дублирует
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: provider=%d, arrangement=%d, through=%s",
		req.ProviderID, req.ArrangementID, req.ThroughDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	through := domain.DateOnly(req.ThroughDate)

	var result *Response

	// 2. Генерация и сохранение в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем привязку
		arrangement, err := uc.arrangementRepo.GetByID(txCtx, req.ArrangementID)
		if err != nil {
			if errors.Is(err, arrangementRepo.ErrArrangementNotFound) {
				uc.logger.Warn("GenerateSlots: arrangement id=%d not found", req.ArrangementID)
				return ErrArrangementNotFound
			}
			uc.logger.Error("GenerateSlots: failed to get arrangement id=%d: %v", req.ArrangementID, err)
			return fmt.Errorf("%w: failed to get arrangement: %w", ErrInternal, err)
		}

		// 2.2. Проверяем, что услуга принадлежит провайдеру
		service, err := uc.serviceRepo.GetByID(txCtx, arrangement.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("GenerateSlots: service id=%d not found", arrangement.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("GenerateSlots: failed to get service id=%d: %v", arrangement.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}
		if !service.IsOwnedBy(req.ProviderID) {
			uc.logger.Warn("GenerateSlots: provider=%d is not owner of service id=%d", req.ProviderID, service.ID)
			return ErrAccessDenied
		}

		// 2.3. Получаем дерево шаблона
		template, err := uc.templateRepo.GetTree(txCtx, arrangement.TemplateID)
		if err != nil {
			if errors.Is(err, templateRepo.ErrTemplateNotFound) {
				uc.logger.Warn("GenerateSlots: template id=%d not found", arrangement.TemplateID)
				return ErrTemplateNotFound
			}
			uc.logger.Error("GenerateSlots: failed to get template id=%d: %v", arrangement.TemplateID, err)
			return fmt.Errorf("%w: failed to get template: %w", ErrInternal, err)
		}

		// 2.4. Генерируем слоты только для дат без слотов
		pending := make([]domain.Slot, 0)
		skipped := 0
		for date := range arrangement.DatesThrough(through) {
			exists, err := uc.slotRepo.ExistsForArrangementDate(txCtx, arrangement.ID, date)
			if err != nil {
				uc.logger.Error("GenerateSlots: failed to check slots on %s: %v", date.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: failed to check existing slots: %w", ErrInternal, err)
			}
			if exists {
				skipped++
				continue
			}

			single := *arrangement
			single.StartDate = date
			single.RepeatTimes = 1
			generated, err := domain.ExpandSlots(single, template, date)
			if err != nil {
				uc.logger.Error("GenerateSlots: failed to generate slots on %s: %v", date.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: failed to generate slots: %w", ErrInternal, err)
			}
			pending = append(pending, generated...)
		}

		// 2.5. Сохраняем новые слоты
		created := 0
		if len(pending) > 0 {
			created, err = uc.slotRepo.CreateBatch(txCtx, pending)
			if err != nil {
				uc.logger.Error("GenerateSlots: failed to save %d slots: %v", len(pending), err)
				return fmt.Errorf("%w: failed to save slots: %w", ErrInternal, err)
			}
		}

		// 2.6. Возвращаем все слоты привязки в пределах окна
		last := arrangement.LastDate()
		if through.Before(last) {
			last = through
		}
		slots, err := uc.slotRepo.ListByArrangement(txCtx, arrangement.ID, arrangement.StartDate, last)
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to list slots: %v", err)
			return fmt.Errorf("%w: failed to list slots: %w", ErrInternal, err)
		}

		uc.logger.Info("GenerateSlots: arrangement id=%d, created=%d, skipped dates=%d", arrangement.ID, created, skipped)

		result = &Response{
			Slots:   slots,
			Created: created,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.AddGeneratedSlots(result.Created)

	return result, nil
}
