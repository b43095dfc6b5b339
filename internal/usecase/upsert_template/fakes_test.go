package upsert_template

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	templateRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/template"
)

// memoryRepo хранит дерево шаблонов в плоских таблицах, как в БД
type memoryRepo struct {
	nextID    int64
	templates map[int64]domain.Template
	days      map[int64]domain.Day
	segments  map[int64]domain.Segment
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		templates: map[int64]domain.Template{},
		days:      map[int64]domain.Day{},
		segments:  map[int64]domain.Segment{},
	}
}

func (m *memoryRepo) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memoryRepo) Create(_ context.Context, t *domain.Template) (*domain.Template, error) {
	t.ID = m.id()
	m.templates[t.ID] = *t
	return t, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id int64) (*domain.Template, error) {
	t, ok := m.templates[id]
	if !ok {
		return nil, templateRepo.ErrTemplateNotFound
	}
	return &t, nil
}

func (m *memoryRepo) GetTree(ctx context.Context, id int64) (*domain.Template, error) {
	t, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Days = nil
	for _, d := range m.days {
		if d.TemplateID != id {
			continue
		}
		for _, s := range m.segments {
			if s.DayID == d.ID {
				d.Segments = append(d.Segments, s)
			}
		}
		sort.Slice(d.Segments, func(i, j int) bool { return d.Segments[i].StartTime.IsBefore(d.Segments[j].StartTime) })
		t.Days = append(t.Days, d)
	}
	sort.Slice(t.Days, func(i, j int) bool { return t.Days[i].Index < t.Days[j].Index })
	return t, nil
}

func (m *memoryRepo) UpdateName(_ context.Context, id int64, name string) error {
	t, ok := m.templates[id]
	if !ok {
		return templateRepo.ErrTemplateNotFound
	}
	t.Name = name
	m.templates[id] = t
	return nil
}

func (m *memoryRepo) CreateDay(_ context.Context, d *domain.Day) (*domain.Day, error) {
	for _, existing := range m.days {
		if existing.TemplateID == d.TemplateID && existing.Index == d.Index {
			return nil, templateRepo.ErrDuplicateDayIndex
		}
	}
	d.ID = m.id()
	m.days[d.ID] = domain.Day{ID: d.ID, TemplateID: d.TemplateID, Index: d.Index}
	return d, nil
}

func (m *memoryRepo) DeleteDays(_ context.Context, ids []int64) error {
	for _, id := range ids {
		delete(m.days, id)
		for sid, s := range m.segments {
			if s.DayID == id {
				delete(m.segments, sid)
			}
		}
	}
	return nil
}

func (m *memoryRepo) DeleteSegmentsByDay(_ context.Context, dayID int64) error {
	for sid, s := range m.segments {
		if s.DayID == dayID {
			delete(m.segments, sid)
		}
	}
	return nil
}

func (m *memoryRepo) CreateSegment(_ context.Context, s *domain.Segment) (*domain.Segment, error) {
	s.ID = m.id()
	m.segments[s.ID] = *s
	return s, nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

