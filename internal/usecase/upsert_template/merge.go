package upsert_template

import (
	"sort"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// dayDiff набор изменений, необходимых для приведения сохранённых дней к входящему дереву
type dayDiff struct {
	toInsert  []domain.Day
	toReplace []dayReplacement
	toDelete  []domain.Day
}

// dayReplacement день, присутствующий в обоих деревьях, чьи сегменты заменяются целиком
type dayReplacement struct {
	existing domain.Day
	incoming domain.Day
}

// isEmpty true, если дерево уже совпадает с входящим
func (d dayDiff) isEmpty() bool {
	return len(d.toInsert) == 0 && len(d.toReplace) == 0 && len(d.toDelete) == 0
}

// diffDays сопоставляет дни по индексу дня недели
// Сегменты сравниваются по содержимому: совпавший день остаётся нетронутым и сохраняет ID сегментов
func diffDays(existing, incoming []domain.Day) dayDiff {
	var diff dayDiff

	existingByIndex := make(map[int]domain.Day, len(existing))
	for _, day := range existing {
		existingByIndex[day.Index] = day
	}

	incomingIndexes := make(map[int]struct{}, len(incoming))
	for _, day := range incoming {
		incomingIndexes[day.Index] = struct{}{}

		current, ok := existingByIndex[day.Index]
		if !ok {
			diff.toInsert = append(diff.toInsert, day)
			continue
		}
		if !sameSegments(current.Segments, day.Segments) {
			diff.toReplace = append(diff.toReplace, dayReplacement{existing: current, incoming: day})
		}
	}

	for _, day := range existing {
		if _, ok := incomingIndexes[day.Index]; !ok {
			diff.toDelete = append(diff.toDelete, day)
		}
	}

	sort.Slice(diff.toInsert, func(i, j int) bool { return diff.toInsert[i].Index < diff.toInsert[j].Index })
	sort.Slice(diff.toDelete, func(i, j int) bool { return diff.toDelete[i].Index < diff.toDelete[j].Index })

	return diff
}

// sameSegments сравнивает сегменты без учёта ID, порядок по времени начала
func sameSegments(a, b []domain.Segment) bool {
	if len(a) != len(b) {
		return false
	}

	left := sortedByStart(a)
	right := sortedByStart(b)
	for i := range left {
		if left[i].StartTime != right[i].StartTime ||
			left[i].EndTime != right[i].EndTime ||
			left[i].SlotDurationMinutes != right[i].SlotDurationMinutes ||
			left[i].MaxConcurrent != right[i].MaxConcurrent {
			return false
		}
	}
	return true
}

func sortedByStart(segments []domain.Segment) []domain.Segment {
	out := make([]domain.Segment, len(segments))
	copy(out, segments)
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.IsBefore(out[j].StartTime) })
	return out
}

// dayIDs собирает ID дней
func dayIDs(days []domain.Day) []int64 {
	ids := make([]int64, 0, len(days))
	for _, d := range days {
		ids = append(ids, d.ID)
	}
	return ids
}
