package update_appointment_status

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	slotRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
)

type store struct {
	services     map[int64]domain.Service
	slots        map[int64]domain.Slot
	appointments map[int64]domain.Appointment
}

type fakeAppointments struct{ s *store }

func (f fakeAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.s.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return &a, nil
}

func (f fakeAppointments) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus, updatedAt time.Time) error {
	a := f.s.appointments[id]
	a.Status = status
	a.UpdatedAt = updatedAt
	f.s.appointments[id] = a
	return nil
}

type fakeServices struct{ s *store }

func (f fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.s.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &svc, nil
}

type fakeSlots struct{ s *store }

func (f fakeSlots) Release(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := f.s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	slot.Release()
	f.s.slots[id] = slot
	return &slot, nil
}

// fakeBilling запоминает вызовы, fail имитирует недоступность сервиса
type fakeBilling struct {
	paid      []int64
	cancelled []int64
	fail      bool
}

var errBillingDown = errors.New("billing is down")

func (f *fakeBilling) MarkPaid(_ context.Context, appointmentID int64) error {
	if f.fail {
		return errBillingDown
	}
	f.paid = append(f.paid, appointmentID)
	return nil
}

func (f *fakeBilling) MarkCancelled(_ context.Context, appointmentID int64) error {
	if f.fail {
		return errBillingDown
	}
	f.cancelled = append(f.cancelled, appointmentID)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
