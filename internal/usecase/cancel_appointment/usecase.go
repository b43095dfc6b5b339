package cancel_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// UseCase use case для отмены записи пользователем
type UseCase struct {
	appointmentRepo AppointmentRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	leadTime        time.Duration
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// leadTime - минимальное время до начала слота, при котором отмена ещё разрешена
func NewUseCase(
	appointmentRepo AppointmentRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	leadTime time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		leadTime:        leadTime,
		logger:          logger,
	}
}

// Execute отменяет запись и освобождает место в слоте
// Запись и слот блокируются в одной транзакции: повторная отмена не освободит место дважды
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: user=%d, appointment=%d", req.UserID, req.AppointmentID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Получаем запись (FOR UPDATE)
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CancelAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		// 3. Проверяем владельца
		if !appointment.IsOwnedBy(req.UserID) {
			uc.logger.Warn("CancelAppointment: user=%d is not owner of appointment id=%d", req.UserID, req.AppointmentID)
			return ErrAccessDenied
		}

		// 4. Completed, Cancelled и NoShow отменить нельзя
		if !appointment.CanBeCancelled() {
			uc.logger.Warn("CancelAppointment: appointment id=%d has status %s", appointment.ID, appointment.Status)
			return fmt.Errorf("%w: status is %s", ErrCannotCancel, appointment.Status)
		}

		// 5. Проверяем время до начала слота (FOR UPDATE)
		slot, err := uc.slotRepo.GetByID(txCtx, appointment.SlotID)
		if err != nil {
			uc.logger.Error("CancelAppointment: failed to get slot id=%d: %v", appointment.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}
		if err := validateLeadTime(slot, domain.WallClock(now), uc.leadTime); err != nil {
			uc.logger.Warn("CancelAppointment: %v", err)
			return err
		}

		// 6. Меняем статус
		if err := uc.appointmentRepo.UpdateStatus(txCtx, appointment.ID, domain.StatusCancelled, now); err != nil {
			uc.logger.Error("CancelAppointment: failed to update appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		// 7. Освобождаем место
		released, err := uc.slotRepo.Release(txCtx, slot.ID)
		if err != nil {
			uc.logger.Error("CancelAppointment: failed to release slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to release slot: %w", ErrInternal, err)
		}

		result = &Response{
			ID:           appointment.ID,
			SlotID:       released.ID,
			Status:       string(domain.StatusCancelled),
			CurrentCount: released.CurrentCount,
			UpdatedAt:    now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelAppointment: appointment id=%d cancelled, slot id=%d now has %d booked",
		result.ID, result.SlotID, result.CurrentCount)

	return result, nil
}
