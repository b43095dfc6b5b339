package billingservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestMarkPaid_SendsStatus(t *testing.T) {
	var got UpdateBillStatusRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/internal/bills/by-appointment/15/status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nopLogger{})
	require.NoError(t, client.MarkPaid(context.Background(), 15))
	assert.Equal(t, BillStatusPaid, got.Status)
}

func TestMarkCancelled_MissingBillIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nopLogger{})
	assert.NoError(t, client.MarkCancelled(context.Background(), 15))
	assert.ErrorIs(t, client.UpdateBillStatus(context.Background(), 15, BillStatusCancelled), ErrBillNotFound)
}

func TestMarkPaid_Degrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":500,"message":"db down"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nopLogger{})
	err := client.MarkPaid(context.Background(), 15)
	assert.ErrorIs(t, err, ErrServiceDegraded)
	assert.Contains(t, err.Error(), "db down")
}

func TestDisabledClientIsNoop(t *testing.T) {
	client := NewClient("", time.Second, nopLogger{})
	assert.False(t, client.Enabled())
	assert.NoError(t, client.MarkPaid(context.Background(), 15))
}
