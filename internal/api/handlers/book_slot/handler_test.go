package book_slot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	bookSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_slot"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeUseCase struct {
	executeFn func(ctx context.Context, req *bookSlot.Request) (*bookSlot.Response, error)
}

func (f *fakeUseCase) Execute(ctx context.Context, req *bookSlot.Request) (*bookSlot.Response, error) {
	return f.executeFn(ctx, req)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(t *testing.T, body string, userID int64) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if userID > 0 {
		r = r.WithContext(middleware.WithUserID(r.Context(), userID))
	}
	return r
}

func TestHandle_Created(t *testing.T) {
	var got *bookSlot.Request
	uc := &fakeUseCase{executeFn: func(ctx context.Context, req *bookSlot.Request) (*bookSlot.Response, error) {
		got = req
		return &bookSlot.Response{
			ID:           10,
			UserID:       req.UserID,
			ServiceID:    req.ServiceID,
			SlotID:       req.SlotID,
			Status:       "pending",
			SlotDate:     time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			StartTime:    types.TimeString("09:00"),
			EndTime:      types.TimeString("09:30"),
			CurrentCount: 1,
		}, nil
	}}
	h := NewHandler(uc, nopLogger{})

	r := newRequest(t, `{"serviceId":1,"slotId":5}`, 7)
	r.Header.Set(IdempotencyKeyHeader, "key-1")
	w := httptest.NewRecorder()
	h.Handle(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "key-1", got.IdempotencyKey)
	assert.Empty(t, w.Header().Get(ReplayedHeader))

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "2025-01-06", resp.SlotDate)
	assert.Equal(t, "09:00", resp.StartTime)
}

func TestHandle_ReplayedHeader(t *testing.T) {
	uc := &fakeUseCase{executeFn: func(ctx context.Context, req *bookSlot.Request) (*bookSlot.Response, error) {
		return &bookSlot.Response{ID: 10, Replayed: true}, nil
	}}
	h := NewHandler(uc, nopLogger{})

	w := httptest.NewRecorder()
	h.Handle(w, newRequest(t, `{"serviceId":1,"slotId":5}`, 7))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "true", w.Header().Get(ReplayedHeader))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     int64
		err        error
		wantStatus int
	}{
		{name: "no user", body: `{"serviceId":1,"slotId":5}`, wantStatus: http.StatusUnauthorized},
		{name: "missing slot", body: `{"serviceId":1}`, userID: 7, wantStatus: http.StatusBadRequest},
		{name: "broken json", body: `{`, userID: 7, wantStatus: http.StatusBadRequest},
		{name: "full slot", body: `{"serviceId":1,"slotId":5}`, userID: 7,
			err: bookSlot.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "unknown service", body: `{"serviceId":1,"slotId":5}`, userID: 7,
			err: bookSlot.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "unknown slot", body: `{"serviceId":1,"slotId":5}`, userID: 7,
			err: bookSlot.ErrSlotNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid input", body: `{"serviceId":1,"slotId":5}`, userID: 7,
			err: fmt.Errorf("%w: notes too long", bookSlot.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "internal", body: `{"serviceId":1,"slotId":5}`, userID: 7,
			err: bookSlot.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{executeFn: func(ctx context.Context, req *bookSlot.Request) (*bookSlot.Response, error) {
				return nil, tt.err
			}}
			h := NewHandler(uc, nopLogger{})

			w := httptest.NewRecorder()
			h.Handle(w, newRequest(t, tt.body, tt.userID))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
