// Package schedule holds the pure slot arithmetic: expanding an
// open-hours window into discrete start times and testing interval
// overlap. No storage, no side effects.
package schedule

import (
	"sort"

	"github.com/openroad/driveschool-api/internal/model"
)

// SlotLengthMinutes is the fixed granularity of bookable slots. The
// lesson a student books may run longer, but slots always start on this
// grid.
const SlotLengthMinutes = 60

// Slots expands [start, end) into ordered slot start times. A start time
// is emitted only when the full slot fits before end, so a window
// shorter than one slot yields nothing.
func Slots(start, end model.ClockTime) []model.ClockTime {
	var slots []model.ClockTime
	for t := start; t.Add(SlotLengthMinutes) <= end; t = t.Add(SlotLengthMinutes) {
		slots = append(slots, t)
	}
	return slots
}

// MergeSlots unions several slot sequences into one sorted, de-duplicated
// sequence. Used when an instructor has more than one open window on the
// same day.
func MergeSlots(sets ...[]model.ClockTime) []model.ClockTime {
	seen := make(map[model.ClockTime]struct{})
	var merged []model.ClockTime
	for _, set := range sets {
		for _, t := range set {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			merged = append(merged, t)
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })
	return merged
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd model.ClockTime) bool {
	return aStart < bEnd && bStart < aEnd
}
