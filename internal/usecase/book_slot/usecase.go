package book_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	slotRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

// UseCase use case для бронирования слота
type UseCase struct {
	serviceRepo     ServiceRepository
	slotRepo        SlotRepository
	appointmentRepo AppointmentRepository
	idempotency     IdempotencyStore
	txManager       TransactionManager
	metrics         MetricsRecorder
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	slotRepo SlotRepository,
	appointmentRepo AppointmentRepository,
	idempotency IdempotencyStore,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:     serviceRepo,
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		idempotency:     idempotency,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет бронирование слота
// Проверка вместимости, увеличение счетчика и создание записи идут в одной сериализуемой транзакции
// с блокировкой строки слота. Проигравший конкурентный запрос получает ErrSlotNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: user=%d, service=%d, slot=%d", req.UserID, req.ServiceID, req.SlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		uc.metrics.ObserveBooking(metrics.BookingResultInvalid)
		return nil, err
	}

	if req.IdempotencyKey == "" {
		return uc.book(ctx, req)
	}

	// 2. Повтор запроса с тем же ключом возвращает исходный ответ
	// Конкурентный повтор ждет завершения первого запроса, а не бронирует второй раз
	resp, replayed, err := uc.idempotency.Do(req.UserID, req.IdempotencyKey, func() (*Response, error) {
		return uc.book(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	if !replayed {
		return resp, nil
	}

	uc.logger.Info("BookSlot: replaying appointment id=%d for key %q", resp.ID, req.IdempotencyKey)
	uc.metrics.ObserveBooking(metrics.BookingResultReplayed)
	replay := *resp
	replay.Replayed = true
	return &replay, nil
}

// book бронирует слот в сериализуемой транзакции
func (uc *UseCase) book(ctx context.Context, req *Request) (*Response, error) {
	var (
		appointment *domain.Appointment
		slot        *domain.Slot
	)

	// 3. Бронирование в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Услуга существует и активна
		service, err := uc.serviceRepo.GetByID(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("BookSlot: service id=%d not found", req.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("BookSlot: failed to get service id=%d: %v", req.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}
		if !service.IsActive {
			uc.logger.Warn("BookSlot: service id=%d is inactive", req.ServiceID)
			return ErrServiceNotFound
		}

		// 3.2. Слот существует и принадлежит услуге (FOR UPDATE)
		current, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("BookSlot: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("BookSlot: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}
		if current.ServiceID != req.ServiceID {
			uc.logger.Warn("BookSlot: slot id=%d belongs to service id=%d, not %d",
				req.SlotID, current.ServiceID, req.ServiceID)
			return ErrSlotNotFound
		}

		// 3.3. Проверка вместимости
		if !current.HasCapacity() {
			uc.logger.Warn("BookSlot: slot id=%d is full, %d/%d spots taken",
				req.SlotID, current.CurrentCount, current.MaxConcurrent)
			return ErrSlotNotAvailable
		}

		// 3.4. Условное увеличение счетчика
		reserved, err := uc.slotRepo.Reserve(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("BookSlot: slot id=%d was taken concurrently", req.SlotID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("BookSlot: failed to reserve slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to reserve slot: %w", ErrInternal, err)
		}

		uc.logger.Info("BookSlot: slot id=%d reserved, %d/%d spots taken",
			reserved.ID, reserved.CurrentCount, reserved.MaxConcurrent)

		// 3.5. Создаем запись в статусе Pending
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			UserID:    req.UserID,
			ServiceID: req.ServiceID,
			SlotID:    req.SlotID,
			Status:    domain.StatusPending,
			Notes:     req.Notes,
		})
		if err != nil {
			uc.logger.Error("BookSlot: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		appointment = created
		slot = reserved
		return nil
	})
	if err != nil {
		uc.metrics.ObserveBooking(bookingResult(err))
		return nil, err
	}

	uc.logger.Info("BookSlot: successfully created appointment id=%d", appointment.ID)
	uc.metrics.ObserveBooking(metrics.BookingResultCreated)

	resp := &Response{
		ID:           appointment.ID,
		UserID:       appointment.UserID,
		ServiceID:    appointment.ServiceID,
		SlotID:       appointment.SlotID,
		Status:       string(appointment.Status),
		Notes:        appointment.Notes,
		SlotDate:     slot.Date,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		CurrentCount: slot.CurrentCount,
		IsAvailable:  slot.IsAvailable,
		CreatedAt:    appointment.CreatedAt,
		UpdatedAt:    appointment.UpdatedAt,
	}

	return resp, nil
}

// bookingResult метка исхода для метрики
func bookingResult(err error) string {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		return metrics.BookingResultConflict
	case errors.Is(err, ErrServiceNotFound), errors.Is(err, ErrSlotNotFound):
		return metrics.BookingResultNotFound
	default:
		return metrics.BookingResultError
	}
}
