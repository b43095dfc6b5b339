package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Slot represents a dated interval with limited capacity
// Invariant: 0 <= CurrentCount <= MaxConcurrent, IsAvailable <=> CurrentCount < MaxConcurrent
type Slot struct {
	ID              int64
	ServiceID       int64
	ArrangementID   *int64
	SegmentID       *int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	MaxConcurrent   int
	CurrentCount    int
	IsAvailable     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCapacity returns true if the slot has a free spot
func (s *Slot) HasCapacity() bool {
	return s.IsAvailable && s.CurrentCount < s.MaxConcurrent
}

// RemainingCapacity returns the number of free spots
func (s *Slot) RemainingCapacity() int {
	remaining := s.MaxConcurrent - s.CurrentCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// StartsAt returns the moment the slot starts
func (s *Slot) StartsAt() time.Time {
	return s.StartTime.On(s.Date)
}

// Reserve takes one spot and returns false if the slot is full
func (s *Slot) Reserve() bool {
	if !s.HasCapacity() {
		return false
	}
	s.CurrentCount++
	s.IsAvailable = s.CurrentCount < s.MaxConcurrent
	return true
}

// Release frees one spot, never going below zero
func (s *Slot) Release() {
	if s.CurrentCount > 0 {
		s.CurrentCount--
	}
	s.IsAvailable = s.CurrentCount < s.MaxConcurrent
}
