package arrangements

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	arrangementRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/arrangement"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	templateRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/template"
	"github.com/m04kA/SMC-AppointmentService/internal/service/arrangements/models"
)

type fakeArrangements struct {
	items map[int64]domain.Arrangement
}

func (f *fakeArrangements) Create(_ context.Context, a *domain.Arrangement) (*domain.Arrangement, error) {
	next := 1
	for _, existing := range f.items {
		if existing.ServiceID != a.ServiceID {
			continue
		}
		if a.Index > 0 && existing.Index == a.Index {
			return nil, arrangementRepo.ErrDuplicateIndex
		}
		if existing.Index >= next {
			next = existing.Index + 1
		}
	}
	if a.Index <= 0 {
		a.Index = next
	}
	a.ID = int64(len(f.items) + 1)
	f.items[a.ID] = *a
	return a, nil
}

func (f *fakeArrangements) GetByID(_ context.Context, id int64) (*domain.Arrangement, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, arrangementRepo.ErrArrangementNotFound
	}
	return &a, nil
}

func (f *fakeArrangements) ListByService(_ context.Context, serviceID int64) ([]*domain.Arrangement, error) {
	out := make([]*domain.Arrangement, 0)
	for _, a := range f.items {
		if a.ServiceID == serviceID {
			out = append(out, &a)
		}
	}
	return out, nil
}

func (f *fakeArrangements) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return arrangementRepo.ErrArrangementNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeServices map[int64]domain.Service

func (f fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &s, nil
}

type fakeTemplates map[int64]domain.Template

func (f fakeTemplates) GetByID(_ context.Context, id int64) (*domain.Template, error) {
	t, ok := f[id]
	if !ok {
		return nil, templateRepo.ErrTemplateNotFound
	}
	return &t, nil
}

type fakeSlots struct {
	cleared []int64
	err     error
}

func (f *fakeSlots) DeleteUnbookedByArrangement(_ context.Context, arrangementID int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.cleared = append(f.cleared, arrangementID)
	return 2, nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *fakeArrangements, *fakeSlots) {
	repo := &fakeArrangements{items: map[int64]domain.Arrangement{}}
	slots := &fakeSlots{}
	svc := NewService(
		repo,
		slots,
		fakeServices{1: {ID: 1, ProviderID: 10, IsActive: true}, 2: {ID: 2, ProviderID: 20, IsActive: true}},
		fakeTemplates{5: {ID: 5, ProviderID: 10}, 6: {ID: 6, ProviderID: 20}},
		passthroughTx{},
		nopLogger{},
	)
	return svc, repo, slots
}

func validRequest() *models.CreateArrangementRequest {
	return &models.CreateArrangementRequest{
		ProviderID:          10,
		ServiceID:           1,
		TemplateID:          5,
		StartDate:           time.Date(2025, time.January, 6, 15, 30, 0, 0, time.UTC),
		RepeatTimes:         3,
		RepeatIntervalWeeks: 1,
	}
}

func TestCreate_AssignsIndexAndLastDate(t *testing.T) {
	svc, _, _ := newService()

	first, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, "2025-01-06", first.StartDate)
	assert.Equal(t, "2025-01-20", first.LastDate)

	second, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, second.Index)

	req := validRequest()
	req.Index = 1
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrArrangementExists)
}

func TestCreate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *models.CreateArrangementRequest)
		want   error
	}{
		{"foreign service", func(r *models.CreateArrangementRequest) { r.ServiceID = 2 }, ErrAccessDenied},
		{"foreign template", func(r *models.CreateArrangementRequest) { r.TemplateID = 6 }, ErrAccessDenied},
		{"unknown service", func(r *models.CreateArrangementRequest) { r.ServiceID = 9 }, ErrServiceNotFound},
		{"unknown template", func(r *models.CreateArrangementRequest) { r.TemplateID = 9 }, ErrTemplateNotFound},
		{"zero repeat", func(r *models.CreateArrangementRequest) { r.RepeatTimes = 0 }, ErrInvalidInput},
		{"interval too large", func(r *models.CreateArrangementRequest) { r.RepeatIntervalWeeks = 53 }, ErrInvalidInput},
		{"no start date", func(r *models.CreateArrangementRequest) { r.StartDate = time.Time{} }, ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, _ := newService()
			req := validRequest()
			tc.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, repo.items)
		})
	}
}

func TestDelete_ChecksServiceOwner(t *testing.T) {
	svc, repo, slots := newService()
	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID, 20), ErrAccessDenied)
	assert.ErrorIs(t, svc.Delete(context.Background(), 99, 10), ErrArrangementNotFound)
	assert.Empty(t, slots.cleared)

	require.NoError(t, svc.Delete(context.Background(), created.ID, 10))
	assert.Empty(t, repo.items)
	assert.Equal(t, []int64{created.ID}, slots.cleared, "free slots of the arrangement must be removed")
}

func TestDelete_SlotCleanupFailureKeepsArrangement(t *testing.T) {
	svc, repo, slots := newService()
	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	slots.err = errors.New("connection reset")

	err = svc.Delete(context.Background(), created.ID, 10)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Contains(t, repo.items, created.ID)
}
