package generate_slots

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	arrangementRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/arrangement"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	templateRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/template"
)

type fakeArrangements map[int64]domain.Arrangement

func (f fakeArrangements) GetByID(_ context.Context, id int64) (*domain.Arrangement, error) {
	a, ok := f[id]
	if !ok {
		return nil, arrangementRepo.ErrArrangementNotFound
	}
	return &a, nil
}

type fakeTemplates map[int64]domain.Template

func (f fakeTemplates) GetTree(_ context.Context, id int64) (*domain.Template, error) {
	t, ok := f[id]
	if !ok {
		return nil, templateRepo.ErrTemplateNotFound
	}
	return &t, nil
}

type fakeServices map[int64]domain.Service

func (f fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &s, nil
}

// fakeSlots повторяет уникальный ключ таблицы slots
type fakeSlots struct {
	nextID int64
	slots  []domain.Slot
}

func slotKey(s domain.Slot) string {
	return s.Date.Format(domain.DateFormat) + " " + s.StartTime.String()
}

func (f *fakeSlots) ExistsForArrangementDate(_ context.Context, arrangementID int64, date time.Time) (bool, error) {
	for _, s := range f.slots {
		if s.ArrangementID != nil && *s.ArrangementID == arrangementID && domain.SameDay(s.Date, date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSlots) CreateBatch(_ context.Context, slots []domain.Slot) (int, error) {
	existing := make(map[string]struct{}, len(f.slots))
	for _, s := range f.slots {
		existing[slotKey(s)] = struct{}{}
	}

	inserted := 0
	for _, s := range slots {
		if _, ok := existing[slotKey(s)]; ok {
			continue
		}
		f.nextID++
		s.ID = f.nextID
		f.slots = append(f.slots, s)
		existing[slotKey(s)] = struct{}{}
		inserted++
	}
	return inserted, nil
}

func (f *fakeSlots) ListByArrangement(_ context.Context, arrangementID int64, from, through time.Time) ([]*domain.Slot, error) {
	out := make([]*domain.Slot, 0)
	for i := range f.slots {
		s := f.slots[i]
		if s.ArrangementID == nil || *s.ArrangementID != arrangementID {
			continue
		}
		if s.Date.Before(domain.DateOnly(from)) || s.Date.After(domain.DateOnly(through)) {
			continue
		}
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt().Before(out[j].StartsAt()) })
	return out, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type countingMetrics struct{ generated int }

func (m *countingMetrics) AddGeneratedSlots(count int) { m.generated += count }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
