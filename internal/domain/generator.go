package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// GenerateSlots cuts the segment into SlotDurationMinutes long slots on the given date
//
// Slots run back to back from the segment start while cursor+duration <= EndTime.
// A remainder shorter than one slot is dropped:
// 09:00-09:40 with 30 minutes gives a single 09:00-09:30 slot.
// A segment shorter than one slot gives an empty list, not an error.
func (s *Segment) GenerateSlots(serviceID int64, date time.Time) ([]Slot, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	start := s.StartTime.Minutes()
	end := s.EndTime.Minutes()
	duration := s.SlotDurationMinutes
	day := DateOnly(date)

	slots := make([]Slot, 0, (end-start)/duration)
	for cursor := start; cursor+duration <= end; cursor += duration {
		slotStart, err := types.NewTimeStringFromMinutes(cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSegment, err)
		}

		slotEnd, err := types.NewTimeStringFromMinutes(cursor + duration)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSegment, err)
		}

		slot := Slot{
			ServiceID:       serviceID,
			Date:            day,
			StartTime:       slotStart,
			EndTime:         slotEnd,
			DurationMinutes: duration,
			MaxConcurrent:   s.MaxConcurrent,
			CurrentCount:    0,
			IsAvailable:     true,
		}
		if s.ID != 0 {
			segmentID := s.ID
			slot.SegmentID = &segmentID
		}

		slots = append(slots, slot)
	}

	return slots, nil
}
