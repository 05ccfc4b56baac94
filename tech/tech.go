package tech

import "time"

// Technology represents a single tracked learning item.
//
// JSON field names match the persisted layout, so stored collections and
// export documents round-trip without translation.
type Technology struct {
	// ID is a unique positive integer, assigned at creation as one more
	// than the highest id currently in the collection.
	ID int `json:"id"`

	// Title is the short name of the technology (max 100 chars).
	Title string `json:"title"`

	// Description provides context about what to learn (max 500 chars).
	Description string `json:"description"`

	// Status is the current progress state.
	Status Status `json:"status"`

	// Deadline is the optional target date (nil when unset).
	Deadline *time.Time `json:"deadline"`

	// Tags label the technology for per-tag statistics. Order is
	// preserved as inserted; comparison is case-sensitive.
	Tags []string `json:"tags"`

	// Notes is free-form text (max 500 chars).
	Notes string `json:"notes,omitempty"`

	// Priority is the importance weight (0 = none). It is the primary
	// display sort key.
	Priority int `json:"priority"`

	// CreatedAt is when the record was created. Immutable.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the record was last mutated (zero until the
	// first update).
	UpdatedAt time.Time `json:"updatedAt,omitempty"`

	// CompletedAt is set when the status transitions to completed. It is
	// deliberately not cleared when the status later moves away from
	// completed, preserving the historical completion date.
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// Version counts mutations to this record. It is a change counter
	// only, not a conflict-resolution token.
	Version int `json:"version,omitempty"`
}

// HasDeadline reports whether the record carries a deadline.
func (t Technology) HasDeadline() bool {
	return t.Deadline != nil
}

// HasTag reports whether the record carries the exact tag.
func (t Technology) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// Draft is the partial input for creating a technology. Zero values are
// filled with defaults during construction.
type Draft struct {
	Title       string
	Description string
	Status      Status
	Deadline    *time.Time
	Tags        []string
	Notes       string
	Priority    int
}

// NewTechnology builds a complete record from a draft. The id must come
// from NextID; createdAt is set to now and optional fields are defaulted.
// No side effects.
func NewTechnology(draft Draft, id int, now time.Time) Technology {
	tags := draft.Tags
	if tags == nil {
		tags = []string{}
	}

	return Technology{
		ID:          id,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status.Coerce(),
		Deadline:    draft.Deadline,
		Tags:        tags,
		Notes:       draft.Notes,
		Priority:    draft.Priority,
		CreatedAt:   now,
	}
}

// NextID returns an id strictly greater than every existing id, or 1 when
// the collection is empty.
func NextID(techs []Technology) int {
	max := 0
	for _, t := range techs {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}
