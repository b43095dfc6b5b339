package book_slot

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	slotRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
)

// store общее состояние фейковых репозиториев
// serializingTx держит mu на время транзакции, как блокировка строки слота
type store struct {
	mu           sync.Mutex
	services     map[int64]domain.Service
	slots        map[int64]domain.Slot
	appointments []domain.Appointment
}

func newStore() *store {
	return &store{
		services: map[int64]domain.Service{},
		slots:    map[int64]domain.Slot{},
	}
}

type serializingTx struct{ s *store }

func (tx serializingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()
	return fn(ctx)
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

func (f fakeSlots) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := f.s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (f fakeSlots) Reserve(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := f.s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	if !slot.Reserve() {
		return nil, slotRepo.ErrSlotNotAvailable
	}
	f.s.slots[id] = slot
	return &slot, nil
}

type fakeAppointments struct{ s *store }

func (f fakeAppointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	a.ID = int64(len(f.s.appointments) + 1)
	f.s.appointments = append(f.s.appointments, *a)
	return a, nil
}

type recordingMetrics struct {
	mu      sync.Mutex
	results map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{results: map[string]int{}}
}

func (m *recordingMetrics) ObserveBooking(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[result]++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// slowTx держит транзакцию открытой delay, чтобы повтор с тем же ключом пришел во время бронирования
type slowTx struct {
	inner serializingTx
	delay time.Duration
}

func (tx slowTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return tx.inner.DoSerializable(ctx, func(ctx context.Context) error {
		time.Sleep(tx.delay)
		return fn(ctx)
	})
}
