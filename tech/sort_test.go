package tech

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(d int) *time.Time {
	t := day(d)
	return &t
}

func displayIDs(techs []Technology) []int {
	ids := make([]int, len(techs))
	for i, t := range techs {
		ids[i] = t.ID
	}
	return ids
}

func TestComparePriorityWinsOverStatus(t *testing.T) {
	flaggedDone := Technology{ID: 1, Priority: 1, Status: StatusCompleted}
	plainActive := Technology{ID: 2, Priority: 0, Status: StatusInProgress}

	assert.Negative(t, Compare(flaggedDone, plainActive))
}

func TestCompareStatusOrder(t *testing.T) {
	active := Technology{Status: StatusInProgress}
	waiting := Technology{Status: StatusNotStarted}
	done := Technology{Status: StatusCompleted}

	assert.Negative(t, Compare(active, waiting))
	assert.Negative(t, Compare(waiting, done))
	assert.Negative(t, Compare(active, done))
}

func TestCompareDeadlines(t *testing.T) {
	early := Technology{Deadline: dayPtr(1)}
	late := Technology{Deadline: dayPtr(20)}
	none := Technology{}

	assert.Negative(t, Compare(early, late))
	assert.Negative(t, Compare(late, none))
	assert.Positive(t, Compare(none, early))
}

func TestCompareCreatedAtDescending(t *testing.T) {
	older := Technology{CreatedAt: day(1)}
	newer := Technology{CreatedAt: day(5)}

	assert.Negative(t, Compare(newer, older))
	assert.Positive(t, Compare(older, newer))
}

func TestSortForDisplayChain(t *testing.T) {
	techs := []Technology{
		{ID: 1, Status: StatusCompleted, CreatedAt: day(1)},
		{ID: 2, Status: StatusNotStarted, CreatedAt: day(2)},
		{ID: 3, Status: StatusInProgress, Deadline: dayPtr(15), CreatedAt: day(3)},
		{ID: 4, Status: StatusInProgress, Deadline: dayPtr(5), CreatedAt: day(4)},
		{ID: 5, Status: StatusInProgress, CreatedAt: day(5)},
		{ID: 6, Priority: 1, Status: StatusCompleted, CreatedAt: day(6)},
		{ID: 7, Status: StatusNotStarted, CreatedAt: day(7)},
	}

	sorted := SortForDisplay(techs)

	assert.Equal(t, []int{6, 4, 3, 5, 7, 2, 1}, displayIDs(sorted))
	// Input order untouched.
	assert.Equal(t, 1, techs[0].ID)
}

func TestSortForDisplayIsStableForTies(t *testing.T) {
	same := day(1)
	techs := []Technology{
		{ID: 1, CreatedAt: same},
		{ID: 2, CreatedAt: same},
		{ID: 3, CreatedAt: same},
	}

	sorted := SortForDisplay(techs)
	assert.Equal(t, []int{1, 2, 3}, displayIDs(sorted))
}
