package upsert_template

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входное дерево и строит из него доменные дни
// Все ошибки возвращаются до первой записи в БД
func validateRequest(req *Request) ([]domain.Day, error) {
	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.TemplateID < 0 {
		return nil, fmt.Errorf("%w: templateID must not be negative", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxTemplateNameLength {
		return nil, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxTemplateNameLength)
	}

	seen := make(map[int]struct{}, len(req.Days))
	days := make([]domain.Day, 0, len(req.Days))

	for _, in := range req.Days {
		if in.Index < domain.MinDayIndex || in.Index > domain.MaxDayIndex {
			return nil, fmt.Errorf("%w: day index %d out of range [%d, %d]",
				ErrInvalidInput, in.Index, domain.MinDayIndex, domain.MaxDayIndex)
		}
		if _, dup := seen[in.Index]; dup {
			return nil, fmt.Errorf("%w: duplicate day index %d", ErrInvalidInput, in.Index)
		}
		seen[in.Index] = struct{}{}

		segments, err := buildSegments(in)
		if err != nil {
			return nil, err
		}

		days = append(days, domain.Day{
			Index:    in.Index,
			Segments: segments,
		})
	}

	return days, nil
}

// buildSegments проверяет сегменты дня и подставляет значения по умолчанию
func buildSegments(day DayInput) ([]domain.Segment, error) {
	segments := make([]domain.Segment, 0, len(day.Segments))

	for i, in := range day.Segments {
		segment := domain.Segment{
			StartTime:           in.StartTime,
			EndTime:             in.EndTime,
			SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
			MaxConcurrent:       domain.DefaultMaxConcurrent,
		}
		if in.SlotDurationMinutes != nil {
			segment.SlotDurationMinutes = *in.SlotDurationMinutes
		}
		if in.MaxConcurrent != nil {
			segment.MaxConcurrent = *in.MaxConcurrent
		}

		if err := segment.Validate(); err != nil {
			return nil, fmt.Errorf("%w: day %d segment %d: %v", ErrInvalidInput, day.Index, i, err)
		}
		if segment.SlotDurationMinutes < domain.MinSlotDurationMinutes || segment.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
			return nil, fmt.Errorf("%w: day %d segment %d: slot duration must be between %d and %d minutes",
				ErrInvalidInput, day.Index, i, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}
		if segment.MaxConcurrent < domain.MinConcurrent || segment.MaxConcurrent > domain.MaxConcurrent {
			return nil, fmt.Errorf("%w: day %d segment %d: max concurrent must be between %d and %d",
				ErrInvalidInput, day.Index, i, domain.MinConcurrent, domain.MaxConcurrent)
		}

		segments = append(segments, segment)
	}

	// Сегменты одного дня не должны пересекаться
	sorted := sortedByStart(segments)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Overlaps(&sorted[i]) {
			return nil, fmt.Errorf("%w: day %d: segments %s-%s and %s-%s overlap", ErrInvalidInput, day.Index,
				sorted[i-1].StartTime, sorted[i-1].EndTime, sorted[i].StartTime, sorted[i].EndTime)
		}
	}

	sort.SliceStable(segments, func(i, j int) bool { return segments[i].StartTime.IsBefore(segments[j].StartTime) })

	return segments, nil
}
