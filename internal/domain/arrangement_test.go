package domain

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestArrangement_Dates_Weekly(t *testing.T) {
	a := Arrangement{StartDate: date(2025, 1, 6), RepeatTimes: 3, RepeatIntervalWeeks: 1}

	got := slices.Collect(a.Dates())

	assert.Equal(t, []time.Time{date(2025, 1, 6), date(2025, 1, 13), date(2025, 1, 20)}, got)
	assert.Equal(t, date(2025, 1, 20), a.LastDate())
}

func TestArrangement_Dates_IntervalAndRestart(t *testing.T) {
	a := Arrangement{StartDate: date(2025, 12, 22), RepeatTimes: 3, RepeatIntervalWeeks: 2}

	first := slices.Collect(a.Dates())
	second := slices.Collect(a.Dates())

	assert.Equal(t, []time.Time{date(2025, 12, 22), date(2026, 1, 5), date(2026, 1, 19)}, first)
	assert.Equal(t, first, second)
}

func TestArrangement_Dates_EarlyBreak(t *testing.T) {
	a := Arrangement{StartDate: date(2025, 1, 6), RepeatTimes: 50, RepeatIntervalWeeks: 1}

	count := 0
	for range a.Dates() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestArrangement_DatesThrough(t *testing.T) {
	a := Arrangement{StartDate: date(2025, 1, 6), RepeatTimes: 10, RepeatIntervalWeeks: 1}

	got := slices.Collect(a.DatesThrough(time.Date(2025, 1, 13, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, []time.Time{date(2025, 1, 6), date(2025, 1, 13)}, got)
}

func TestArrangement_Validate(t *testing.T) {
	valid := Arrangement{StartDate: date(2025, 1, 6), RepeatTimes: 1, RepeatIntervalWeeks: 1}
	require.NoError(t, valid.Validate())

	zeroRepeat := valid
	zeroRepeat.RepeatTimes = 0
	assert.ErrorIs(t, zeroRepeat.Validate(), ErrInvalidRecurrence)

	zeroInterval := valid
	zeroInterval.RepeatIntervalWeeks = 0
	assert.ErrorIs(t, zeroInterval.Validate(), ErrInvalidRecurrence)

	noStart := valid
	noStart.StartDate = time.Time{}
	assert.ErrorIs(t, noStart.Validate(), ErrInvalidRecurrence)
}

func TestExpandSlots_OnlyMatchingWeekday(t *testing.T) {
	monday := int(time.Monday)
	wednesday := int(time.Wednesday)

	tpl := &Template{
		ID: 1,
		Days: []Day{
			{Index: monday, Segments: []Segment{segment("09:00", "10:00", 30)}},
			{Index: wednesday, Segments: []Segment{segment("14:00", "16:00", 60)}},
		},
	}
	a := Arrangement{ID: 5, ServiceID: 9, StartDate: date(2025, 1, 6), RepeatTimes: 2, RepeatIntervalWeeks: 1}

	slots, err := ExpandSlots(a, tpl, date(2025, 12, 31))
	require.NoError(t, err)

	// two Mondays with two slots each, Wednesdays are not in the date sequence
	require.Len(t, slots, 4)
	for _, s := range slots {
		assert.Equal(t, time.Monday, s.Date.Weekday())
		assert.Equal(t, int64(9), s.ServiceID)
		require.NotNil(t, s.ArrangementID)
		assert.Equal(t, int64(5), *s.ArrangementID)
	}
}

func TestExpandSlots_NoMatchingDay(t *testing.T) {
	tpl := &Template{Days: []Day{{Index: int(time.Sunday), Segments: []Segment{segment("09:00", "10:00", 30)}}}}
	a := Arrangement{ServiceID: 1, StartDate: date(2025, 1, 6), RepeatTimes: 4, RepeatIntervalWeeks: 1}

	slots, err := ExpandSlots(a, tpl, date(2025, 12, 31))
	require.NoError(t, err)
	assert.Empty(t, slots)
}
