package update_appointment_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
)

// UseCase use case для смены статуса записи провайдером
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	slotRepo        SlotRepository
	billingClient   BillingClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	slotRepo SlotRepository,
	billingClient BillingClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		slotRepo:        slotRepo,
		billingClient:   billingClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переводит запись в новый статус по машине состояний
// Переход в Cancelled освобождает место в слоте в той же транзакции.
// BillingService уведомляется после коммита, его ошибки статус не откатывают.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointmentStatus: provider=%d, appointment=%d, status=%s",
		req.ProviderID, req.AppointmentID, req.Status)

	// 1. Валидация входных данных
	next, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateAppointmentStatus: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *Response

	// 2. Смена статуса в транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем запись (FOR UPDATE)
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointmentStatus: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointmentStatus: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		// 2.2. Услуга записи принадлежит провайдеру
		service, err := uc.serviceRepo.GetByID(txCtx, appointment.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("UpdateAppointmentStatus: service id=%d not found", appointment.ServiceID)
				return ErrAccessDenied
			}
			uc.logger.Error("UpdateAppointmentStatus: failed to get service id=%d: %v", appointment.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}
		if !service.IsOwnedBy(req.ProviderID) {
			uc.logger.Warn("UpdateAppointmentStatus: provider=%d is not owner of service id=%d",
				req.ProviderID, service.ID)
			return ErrAccessDenied
		}

		// 2.3. Проверяем переход
		if !appointment.Status.CanTransitionTo(next) {
			uc.logger.Warn("UpdateAppointmentStatus: transition %s -> %s is not allowed for appointment id=%d",
				appointment.Status, next, appointment.ID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, next)
		}

		// 2.4. Сохраняем статус
		if err := uc.appointmentRepo.UpdateStatus(txCtx, appointment.ID, next, now); err != nil {
			uc.logger.Error("UpdateAppointmentStatus: failed to update appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		// 2.5. Отмена провайдером освобождает место
		if next == domain.StatusCancelled {
			if _, err := uc.slotRepo.Release(txCtx, appointment.SlotID); err != nil {
				uc.logger.Error("UpdateAppointmentStatus: failed to release slot id=%d: %v", appointment.SlotID, err)
				return fmt.Errorf("%w: failed to release slot: %w", ErrInternal, err)
			}
		}

		result = &Response{
			ID:             appointment.ID,
			ServiceID:      appointment.ServiceID,
			SlotID:         appointment.SlotID,
			PreviousStatus: string(appointment.Status),
			Status:         string(next),
			UpdatedAt:      now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointmentStatus: appointment id=%d %s -> %s",
		result.ID, result.PreviousStatus, result.Status)

	// 3. Уведомляем BillingService (graceful degradation)
	uc.notifyBilling(ctx, result.ID, next)

	return result, nil
}

// notifyBilling синхронизирует счёт записи с её статусом
func (uc *UseCase) notifyBilling(ctx context.Context, appointmentID int64, status domain.AppointmentStatus) {
	var err error
	switch status {
	case domain.StatusCompleted:
		err = uc.billingClient.MarkPaid(ctx, appointmentID)
	case domain.StatusCancelled:
		err = uc.billingClient.MarkCancelled(ctx, appointmentID)
	default:
		return
	}

	if err != nil {
		uc.logger.Error("UpdateAppointmentStatus: billing update failed for appointment id=%d (status %s): %v",
			appointmentID, status, err)
	}
}
