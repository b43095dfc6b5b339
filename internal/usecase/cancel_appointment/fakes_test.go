package cancel_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	slotRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
)

type store struct {
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
	a, ok := f.s.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.Status = status
	a.UpdatedAt = updatedAt
	f.s.appointments[id] = a
	return nil
}

type fakeSlots struct{ s *store }

func (f fakeSlots) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := f.s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (f fakeSlots) Release(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := f.s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	slot.Release()
	f.s.slots[id] = slot
	return &slot, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
