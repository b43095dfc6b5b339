package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Template represents a provider's weekly availability
// Tree: Template -> Days (per weekday) -> Segments (intervals within a day)
type Template struct {
	ID         int64
	ProviderID int64
	Name       string
	Days       []Day

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Day is a weekday of a template, Index matches time.Weekday (0 = Sunday)
type Day struct {
	ID         int64
	TemplateID int64
	Index      int
	Segments   []Segment
}

// Segment is a continuous interval within a day, cut into fixed length slots
type Segment struct {
	ID                  int64
	DayID               int64
	TemplateID          int64
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	MaxConcurrent       int
}

// DayByIndex returns the template day for the weekday index
func (t *Template) DayByIndex(index int) (*Day, bool) {
	for i := range t.Days {
		if t.Days[i].Index == index {
			return &t.Days[i], true
		}
	}
	return nil, false
}

// DayForDate returns the template day matching the weekday of date
func (t *Template) DayForDate(date time.Time) (*Day, bool) {
	return t.DayByIndex(int(date.Weekday()))
}

// SegmentsCount returns the total number of segments in the tree
func (t *Template) SegmentsCount() int {
	count := 0
	for _, d := range t.Days {
		count += len(d.Segments)
	}
	return count
}

// Validate checks the segment invariants
func (s *Segment) Validate() error {
	if err := s.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidSegment, err)
	}
	if err := s.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidSegment, err)
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidSegment, s.StartTime, s.EndTime)
	}
	if s.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: slot duration must be positive", ErrInvalidSegment)
	}
	if s.MaxConcurrent <= 0 {
		return fmt.Errorf("%w: max concurrent must be positive", ErrInvalidSegment)
	}
	return nil
}

// Overlaps returns true if the segments intersect, touching bounds do not count
func (s *Segment) Overlaps(other *Segment) bool {
	return s.StartTime.IsBefore(other.EndTime) && s.EndTime.IsAfter(other.StartTime)
}
