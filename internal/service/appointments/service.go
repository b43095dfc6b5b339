package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис чтения записей
type Service struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видят её владелец и провайдер услуги
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetAppointment: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetAppointment: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetAppointment: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(ctx, appointment, userID); err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListByUser получает записи пользователя, новые сначала
// Опционально фильтрует по статусу
func (s *Service) ListByUser(ctx context.Context, userID int64, status *string) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListUserAppointments: fetching appointments for user=%d, status=%v", userID, status)

	var domainStatus *domain.AppointmentStatus
	if status != nil {
		parsed, err := domain.ParseAppointmentStatus(*status)
		if err != nil {
			s.logger.Warn("ListUserAppointments: invalid status=%s for user=%d", *status, userID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		domainStatus = &parsed
	}

	appointments, err := s.appointmentRepo.GetByUserID(ctx, userID, domainStatus)
	if err != nil {
		s.logger.Error("ListUserAppointments: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListUserAppointments: successfully fetched %d appointments for user=%d", len(appointments), userID)
	return models.FromDomainAppointmentList(appointments), nil
}

// checkAccess пропускает владельца записи и провайдера услуги
func (s *Service) checkAccess(ctx context.Context, appointment *domain.Appointment, userID int64) error {
	if appointment.IsOwnedBy(userID) {
		return nil
	}

	service, err := s.serviceRepo.GetByID(ctx, appointment.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetAppointment: access denied for user=%d to appointment id=%d", userID, appointment.ID)
			return ErrAccessDenied
		}
		s.logger.Error("GetAppointment: failed to get service id=%d: %v", appointment.ServiceID, err)
		return fmt.Errorf("%w: checkAccess - get service: %v", ErrInternal, err)
	}

	if !service.IsOwnedBy(userID) {
		s.logger.Warn("GetAppointment: access denied for user=%d to appointment id=%d", userID, appointment.ID)
		return ErrAccessDenied
	}

	return nil
}
