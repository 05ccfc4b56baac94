package tech

import "sort"

// Compare is the total order used whenever the collection is read for
// display. It surfaces urgent, active work first through a fixed tie-break
// chain:
//
//  1. priority, descending
//  2. status rank (in-progress, not-started, completed), ascending
//  3. deadline, ascending, when both records have one; a record with a
//     deadline sorts before one without
//  4. createdAt, descending
//
// It returns a negative value when a sorts before b, positive when after,
// and zero when the chain cannot separate them.
func Compare(a, b Technology) int {
	if a.Priority != b.Priority {
		return b.Priority - a.Priority
	}

	if a.Status.Rank() != b.Status.Rank() {
		return a.Status.Rank() - b.Status.Rank()
	}

	switch {
	case a.Deadline != nil && b.Deadline != nil:
		if a.Deadline.Before(*b.Deadline) {
			return -1
		}
		if b.Deadline.Before(*a.Deadline) {
			return 1
		}
	case a.Deadline != nil:
		return -1
	case b.Deadline != nil:
		return 1
	}

	if a.CreatedAt.After(b.CreatedAt) {
		return -1
	}
	if b.CreatedAt.After(a.CreatedAt) {
		return 1
	}
	return 0
}

// SortForDisplay returns a copy of techs in the derived display order. The
// input is not mutated.
func SortForDisplay(techs []Technology) []Technology {
	sorted := make([]Technology, len(techs))
	copy(sorted, techs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Compare(sorted[i], sorted[j]) < 0
	})
	return sorted
}
