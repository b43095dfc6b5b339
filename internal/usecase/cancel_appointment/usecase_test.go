package cancel_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	ownerID = int64(42)
	slotID  = int64(100)
)

// слот 10 января 2025 в 09:00, заняты два места из трёх
func newFixture(now time.Time, status domain.AppointmentStatus) (*UseCase, *store) {
	s := &store{
		slots: map[int64]domain.Slot{
			slotID: {
				ID:            slotID,
				ServiceID:     1,
				Date:          time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
				StartTime:     "09:00",
				EndTime:       "09:30",
				MaxConcurrent: 3,
				CurrentCount:  2,
				IsAvailable:   true,
			},
		},
		appointments: map[int64]domain.Appointment{
			1: {ID: 1, UserID: ownerID, ServiceID: 1, SlotID: slotID, Status: status},
		},
	}

	uc := NewUseCase(fakeAppointments{s}, fakeSlots{s}, passthroughTx{}, 24*time.Hour, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc, s
}

func TestExecute_ReleasesCapacity(t *testing.T) {
	now := time.Date(2025, time.January, 8, 12, 0, 0, 0, time.UTC)
	uc, s := newFixture(now, domain.StatusConfirmed)

	resp, err := uc.Execute(context.Background(), &Request{UserID: ownerID, AppointmentID: 1})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, 1, resp.CurrentCount)
	assert.Equal(t, domain.StatusCancelled, s.appointments[1].Status)
	assert.Equal(t, now, s.appointments[1].UpdatedAt)
	assert.Equal(t, 1, s.slots[slotID].CurrentCount)
	assert.True(t, s.slots[slotID].IsAvailable)
}

func TestExecute_RepeatCancelDoesNotReleaseTwice(t *testing.T) {
	uc, s := newFixture(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), domain.StatusPending)

	_, err := uc.Execute(context.Background(), &Request{UserID: ownerID, AppointmentID: 1})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{UserID: ownerID, AppointmentID: 1})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, 1, s.slots[slotID].CurrentCount)
}

func TestExecute_Rejections(t *testing.T) {
	early := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		now    time.Time
		status domain.AppointmentStatus
		req    Request
		want   error
	}{
		{"not found", early, domain.StatusPending, Request{UserID: ownerID, AppointmentID: 9}, ErrAppointmentNotFound},
		{"foreign user", early, domain.StatusPending, Request{UserID: 7, AppointmentID: 1}, ErrAccessDenied},
		{"completed", early, domain.StatusCompleted, Request{UserID: ownerID, AppointmentID: 1}, ErrCannotCancel},
		{"no show", early, domain.StatusNoShow, Request{UserID: ownerID, AppointmentID: 1}, ErrCannotCancel},
		{
			"inside lead time",
			time.Date(2025, time.January, 9, 9, 30, 0, 0, time.UTC),
			domain.StatusConfirmed,
			Request{UserID: ownerID, AppointmentID: 1},
			ErrTooLateToCancel,
		},
		{"invalid input", early, domain.StatusPending, Request{UserID: ownerID}, ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, s := newFixture(tc.now, tc.status)

			req := tc.req
			_, err := uc.Execute(context.Background(), &req)
			assert.ErrorIs(t, err, tc.want)

			assert.Equal(t, tc.status, s.appointments[1].Status, "rejected cancel must not change status")
			assert.Equal(t, 2, s.slots[slotID].CurrentCount)
		})
	}
}

func TestExecute_ExactlyAtLeadTimeIsAllowed(t *testing.T) {
	uc, _ := newFixture(time.Date(2025, time.January, 9, 9, 0, 0, 0, time.UTC), domain.StatusPending)

	_, err := uc.Execute(context.Background(), &Request{UserID: ownerID, AppointmentID: 1})
	assert.NoError(t, err)
}
