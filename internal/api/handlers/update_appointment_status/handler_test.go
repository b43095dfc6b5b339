package update_appointment_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	updateStatus "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment_status"
)

type fakeUseCase struct {
	executeFn func(ctx context.Context, req *updateStatus.Request) (*updateStatus.Response, error)
}

func (f *fakeUseCase) Execute(ctx context.Context, req *updateStatus.Request) (*updateStatus.Response, error) {
	return f.executeFn(ctx, req)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, "/appointments/3/status", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"appointmentId": "3"})
	r = r.WithContext(middleware.WithUserID(r.Context(), 100))
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Updated(t *testing.T) {
	uc := &fakeUseCase{executeFn: func(ctx context.Context, req *updateStatus.Request) (*updateStatus.Response, error) {
		assert.Equal(t, int64(100), req.ProviderID)
		assert.Equal(t, "confirmed", req.Status)
		return &updateStatus.Response{ID: 3, PreviousStatus: "pending", Status: "confirmed"}, nil
	}}

	w := serve(NewHandler(uc, nopLogger{}), `{"status":"confirmed"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"previousStatus":"pending"`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "unknown status", body: `{"status":"lost"}`, wantStatus: http.StatusBadRequest},
		{name: "empty body", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "not found", body: `{"status":"confirmed"}`, err: updateStatus.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign service", body: `{"status":"confirmed"}`, err: updateStatus.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "transition", body: `{"status":"pending"}`, err: updateStatus.ErrInvalidTransition, wantStatus: http.StatusUnprocessableEntity},
		{name: "internal", body: `{"status":"confirmed"}`, err: updateStatus.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{executeFn: func(ctx context.Context, req *updateStatus.Request) (*updateStatus.Response, error) {
				return nil, tt.err
			}}

			w := serve(NewHandler(uc, nopLogger{}), tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
