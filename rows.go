package main

import "sort"

// sortByDuration orders timers by reported duration, shortest first, so that
// short timers claim the low rows. Equal durations keep their input order.
func sortByDuration(timers []Timer) {
	sort.SliceStable(timers, func(i, j int) bool {
		return timers[i].DurationNs < timers[j].DurationNs
	})
}

// intersects reports whether two timers overlap. Bounds are inclusive, so
// timers that merely touch, or a zero-width timer at either edge, overlap.
func intersects(a, b Timer) bool {
	start1, end1 := a.Span()
	start2, end2 := b.Span()
	return !(end2 < start1 || end1 < start2)
}

// assignRows places every timer, in the given order, on the lowest row whose
// occupants it does not overlap. The result is parallel to timers.
func assignRows(timers []Timer) []int {
	rows := make([]int, len(timers))
	var occupants [][]int // row -> indices of timers placed on it

	for i, timer := range timers {
		row := 0
		for ; row < len(occupants); row++ {
			if !overlapsAny(timer, timers, occupants[row]) {
				break
			}
		}
		if row == len(occupants) {
			occupants = append(occupants, nil)
		}
		occupants[row] = append(occupants[row], i)
		rows[i] = row
	}

	return rows
}

func overlapsAny(timer Timer, timers []Timer, placed []int) bool {
	for _, j := range placed {
		if intersects(timers[j], timer) {
			return true
		}
	}
	return false
}
