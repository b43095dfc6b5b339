package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func segment(start, end string, duration int) Segment {
	return Segment{
		ID:                  7,
		StartTime:           types.TimeString(start),
		EndTime:             types.TimeString(end),
		SlotDurationMinutes: duration,
		MaxConcurrent:       2,
	}
}

func startTimes(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime.String()
	}
	return out
}

func TestGenerateSlots_FullMorning(t *testing.T) {
	seg := segment("09:00", "12:00", 30)
	date := time.Date(2025, 1, 6, 15, 30, 0, 0, time.UTC)

	slots, err := seg.GenerateSlots(42, date)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, startTimes(slots))
	for _, s := range slots {
		assert.False(t, s.EndTime.IsAfter("12:00"), "slot %s ends after segment", s.StartTime)
		assert.Equal(t, int64(42), s.ServiceID)
		assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), s.Date)
		assert.Equal(t, 2, s.MaxConcurrent)
		assert.Equal(t, 0, s.CurrentCount)
		assert.True(t, s.IsAvailable)
		require.NotNil(t, s.SegmentID)
		assert.Equal(t, int64(7), *s.SegmentID)
	}
	assert.Equal(t, types.TimeString("12:00"), slots[5].EndTime)
}

func TestGenerateSlots_DropsTrailingRemainder(t *testing.T) {
	seg := segment("09:00", "09:40", 30)

	slots, err := seg.GenerateSlots(1, time.Now())
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("09:30"), slots[0].EndTime)
}

func TestGenerateSlots_ShorterThanOneSlot(t *testing.T) {
	seg := segment("09:00", "09:20", 30)

	slots, err := seg.GenerateSlots(1, time.Now())
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_CountIsFloorOfSpan(t *testing.T) {
	cases := []struct {
		start, end string
		duration   int
	}{
		{"08:00", "17:00", 45},
		{"10:15", "10:50", 5},
		{"00:00", "23:59", 60},
		{"00:00", "24:00", 60},
		{"13:00", "13:59", 20},
	}

	for _, c := range cases {
		seg := segment(c.start, c.end, c.duration)
		slots, err := seg.GenerateSlots(1, time.Now())
		require.NoError(t, err)

		span := seg.EndTime.Minutes() - seg.StartTime.Minutes()
		assert.Len(t, slots, span/c.duration, "%s-%s/%d", c.start, c.end, c.duration)
		for _, s := range slots {
			assert.False(t, s.EndTime.IsAfter(seg.EndTime))
		}
	}
}

func TestGenerateSlots_SegmentEndingAtMidnight(t *testing.T) {
	seg := segment("22:00", "24:00", 30)

	slots, err := seg.GenerateSlots(1, time.Now())
	require.NoError(t, err)
	require.Len(t, slots, 4)
	assert.Equal(t, types.TimeString("23:30"), slots[3].StartTime)
	assert.Equal(t, types.EndOfDay, slots[3].EndTime)
}

func TestGenerateSlots_InvalidSegment(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
	}{
		{name: "start equals end", seg: segment("10:00", "10:00", 30)},
		{name: "start after end", seg: segment("11:00", "10:00", 30)},
		{name: "zero duration", seg: segment("09:00", "10:00", 0)},
		{name: "bad time", seg: segment("9:00", "10:00", 15)},
		{name: "zero capacity", seg: Segment{StartTime: "09:00", EndTime: "10:00", SlotDurationMinutes: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.seg.GenerateSlots(1, time.Now())
			assert.ErrorIs(t, err, ErrInvalidSegment)
		})
	}
}
