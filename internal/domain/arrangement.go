package domain

import (
	"fmt"
	"iter"
	"time"
)

// Arrangement binds a template to a service with a start date and weekly recurrence
type Arrangement struct {
	ID                  int64
	ServiceID           int64
	TemplateID          int64
	Index               int // distinguishes arrangements of the same service
	StartDate           time.Time
	RepeatTimes         int
	RepeatIntervalWeeks int

	CreatedAt time.Time
}

// Validate checks the recurrence parameters
func (a *Arrangement) Validate() error {
	if a.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidRecurrence)
	}
	if a.RepeatTimes < MinRepeatTimes || a.RepeatTimes > MaxRepeatTimes {
		return fmt.Errorf("%w: repeat times must be between %d and %d",
			ErrInvalidRecurrence, MinRepeatTimes, MaxRepeatTimes)
	}
	if a.RepeatIntervalWeeks < MinRepeatIntervalWeeks || a.RepeatIntervalWeeks > MaxRepeatIntervalWeeks {
		return fmt.Errorf("%w: repeat interval must be between %d and %d weeks",
			ErrInvalidRecurrence, MinRepeatIntervalWeeks, MaxRepeatIntervalWeeks)
	}
	return nil
}

// Dates yields StartDate + k*RepeatIntervalWeeks weeks for k = 0..RepeatTimes-1
// The sequence is lazy and finite, every range starts it over
func (a Arrangement) Dates() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		start := DateOnly(a.StartDate)
		for k := 0; k < a.RepeatTimes; k++ {
			if !yield(start.AddDate(0, 0, 7*a.RepeatIntervalWeeks*k)) {
				return
			}
		}
	}
}

// DatesThrough is Dates stopped at the first date after through
func (a Arrangement) DatesThrough(through time.Time) iter.Seq[time.Time] {
	limit := DateOnly(through)
	return func(yield func(time.Time) bool) {
		for date := range a.Dates() {
			if date.After(limit) || !yield(date) {
				return
			}
		}
	}
}

// LastDate returns the last date of the recurrence
func (a Arrangement) LastDate() time.Time {
	if a.RepeatTimes <= 0 {
		return DateOnly(a.StartDate)
	}
	return DateOnly(a.StartDate).AddDate(0, 0, 7*a.RepeatIntervalWeeks*(a.RepeatTimes-1))
}

// ExpandSlots builds slots for every date up to and including through
// Each date uses only the template day with the matching weekday
func ExpandSlots(arrangement Arrangement, template *Template, through time.Time) ([]Slot, error) {
	slots := make([]Slot, 0)

	for date := range arrangement.DatesThrough(through) {
		day, ok := template.DayForDate(date)
		if !ok {
			continue
		}
		for i := range day.Segments {
			generated, err := day.Segments[i].GenerateSlots(arrangement.ServiceID, date)
			if err != nil {
				return nil, err
			}
			for j := range generated {
				if arrangement.ID != 0 {
					arrangementID := arrangement.ID
					generated[j].ArrangementID = &arrangementID
				}
			}
			slots = append(slots, generated...)
		}
	}

	return slots, nil
}
