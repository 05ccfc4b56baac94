package tech

import (
	"strings"
	"sync"
	"time"
)

// FilterAll is the filter value that passes every record.
const FilterAll = "all"

// FilterByStatus returns the records matching the filter value. "all"
// passes everything; any other value is an exact status match.
func FilterByStatus(techs []Technology, filter string) []Technology {
	if filter == FilterAll {
		result := make([]Technology, len(techs))
		copy(result, techs)
		return result
	}

	result := make([]Technology, 0, len(techs))
	for _, t := range techs {
		if string(t.Status) == filter {
			result = append(result, t)
		}
	}
	return result
}

// Search returns the records whose title or description contains the query,
// case-insensitively. An empty query matches everything.
func Search(techs []Technology, query string) []Technology {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		result := make([]Technology, len(techs))
		copy(result, techs)
		return result
	}

	result := make([]Technology, 0, len(techs))
	for _, t := range techs {
		if strings.Contains(strings.ToLower(t.Title), query) ||
			strings.Contains(strings.ToLower(t.Description), query) {
			result = append(result, t)
		}
	}
	return result
}

// DefaultSearchDelay is the settling delay applied to interactive search
// input before re-filtering.
const DefaultSearchDelay = 300 * time.Millisecond

// Debouncer coalesces rapid calls, invoking fn only after the delay has
// elapsed with no further calls. This is a latency contract for interactive
// search, not a correctness one.
type Debouncer struct {
	delay time.Duration
	fn    func(string)

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer returns a debouncer that calls fn with the last value seen.
func NewDebouncer(delay time.Duration, fn func(string)) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Call schedules fn(value), replacing any pending call.
func (d *Debouncer) Call(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fn(value)
	})
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Selection tracks the multi-selected record ids for bulk editing. The
// last id in the selection acts as the anchor for range extension.
type Selection struct {
	ids []int
}

// IDs returns the selected ids in selection order.
func (s *Selection) IDs() []int {
	result := make([]int, len(s.ids))
	copy(result, s.ids)
	return result
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id int) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = nil
}

// Click replaces the selection with the single id.
func (s *Selection) Click(id int) {
	s.ids = []int{id}
}

// ToggleClick toggles membership of id without clearing other selections.
func (s *Selection) ToggleClick(id int) {
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
	s.ids = append(s.ids, id)
}

// RangeClick extends the selection to every record between the anchor (the
// last-selected id) and the clicked id, inclusive, according to the
// displayed order, unioned with the existing selection. When nothing is
// selected yet it behaves like Click.
func (s *Selection) RangeClick(id int, displayed []Technology) {
	if len(s.ids) == 0 {
		s.Click(id)
		return
	}

	anchor := s.ids[len(s.ids)-1]
	anchorIdx, clickedIdx := -1, -1
	for i, t := range displayed {
		if t.ID == anchor {
			anchorIdx = i
		}
		if t.ID == id {
			clickedIdx = i
		}
	}
	if anchorIdx == -1 || clickedIdx == -1 {
		s.Click(id)
		return
	}

	start, end := anchorIdx, clickedIdx
	if start > end {
		start, end = end, start
	}

	for _, t := range displayed[start : end+1] {
		if !s.Contains(t.ID) {
			s.ids = append(s.ids, t.ID)
		}
	}
}
