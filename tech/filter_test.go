package tech

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func filterFixture() []Technology {
	return []Technology{
		{ID: 1, Title: "React", Description: "Frontend library", Status: StatusCompleted},
		{ID: 2, Title: "Go", Description: "Backend language", Status: StatusInProgress},
		{ID: 3, Title: "Docker", Description: "Containers for backend services", Status: StatusNotStarted},
	}
}

func TestFilterByStatus(t *testing.T) {
	techs := filterFixture()

	assert.Len(t, FilterByStatus(techs, FilterAll), 3)

	active := FilterByStatus(techs, "in-progress")
	assert.Len(t, active, 1)
	assert.Equal(t, 2, active[0].ID)

	// Unknown filter values match nothing rather than everything.
	assert.Empty(t, FilterByStatus(techs, "archived"))
}

func TestSearch(t *testing.T) {
	techs := filterFixture()

	assert.Len(t, Search(techs, ""), 3)
	assert.Len(t, Search(techs, "   "), 3)

	byTitle := Search(techs, "reACT")
	assert.Len(t, byTitle, 1)
	assert.Equal(t, 1, byTitle[0].ID)

	byDescription := Search(techs, "backend")
	assert.Equal(t, []int{2, 3}, displayIDs(byDescription))

	assert.Empty(t, Search(techs, "kubernetes"))
}

func TestDebouncerCoalescesCalls(t *testing.T) {
	var calls atomic.Int32
	var last atomic.Value

	d := NewDebouncer(20*time.Millisecond, func(value string) {
		calls.Add(1)
		last.Store(value)
	})
	defer d.Stop()

	d.Call("r")
	d.Call("re")
	d.Call("react")

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "react", last.Load())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	var calls atomic.Int32

	d := NewDebouncer(20*time.Millisecond, func(string) {
		calls.Add(1)
	})

	d.Call("value")
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestSelectionClick(t *testing.T) {
	var s Selection

	s.Click(1)
	s.Click(2)

	assert.Equal(t, []int{2}, s.IDs())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(1))
}

func TestSelectionToggleClick(t *testing.T) {
	var s Selection

	s.ToggleClick(1)
	s.ToggleClick(2)
	assert.Equal(t, []int{1, 2}, s.IDs())

	s.ToggleClick(1)
	assert.Equal(t, []int{2}, s.IDs())
}

func TestSelectionRangeClick(t *testing.T) {
	displayed := []Technology{{ID: 10}, {ID: 20}, {ID: 30}, {ID: 40}}

	var s Selection
	s.Click(20)
	s.RangeClick(40, displayed)

	assert.ElementsMatch(t, []int{20, 30, 40}, s.IDs())
}

func TestSelectionRangeClickBackward(t *testing.T) {
	displayed := []Technology{{ID: 10}, {ID: 20}, {ID: 30}, {ID: 40}}

	var s Selection
	s.Click(30)
	s.RangeClick(10, displayed)

	assert.ElementsMatch(t, []int{10, 20, 30}, s.IDs())
}

func TestSelectionRangeClickWithoutAnchor(t *testing.T) {
	displayed := []Technology{{ID: 10}, {ID: 20}}

	var s Selection
	s.RangeClick(20, displayed)

	assert.Equal(t, []int{20}, s.IDs())
}

func TestSelectionClear(t *testing.T) {
	var s Selection
	s.ToggleClick(1)
	s.Clear()

	assert.Zero(t, s.Len())
}
