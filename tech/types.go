// Package tech implements the technology record lifecycle for a personal
// learning roadmap.
//
// A Technology is a single trackable learning item: it moves through a
// three-state status lifecycle, carries tags, an optional deadline, and a
// priority weight, and lives in a Repository backed by a persistence
// gateway. The Repository owns the canonical in-memory collection; every
// read exposed to consumers is the derived display ordering, never raw
// insertion order.
//
// The public API mirrors the application's mutation intents:
//   - Add, Update, Remove for the record lifecycle
//   - SetStatus, BulkSetStatus, SetAllStatuses, TogglePriority for state
//   - ResetToDefault, ImportReplace for wholesale replacement
//   - FilterByStatus, Search, Selection for querying
package tech

import "strings"

// Status represents the progress state of a technology.
type Status string

const (
	// StatusNotStarted indicates the technology has not been picked up yet.
	StatusNotStarted Status = "not-started"

	// StatusInProgress indicates the technology is actively being studied.
	StatusInProgress Status = "in-progress"

	// StatusCompleted indicates the technology has been finished.
	StatusCompleted Status = "completed"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Coerce maps any input onto the valid status set. Unknown values become
// StatusNotStarted.
func (s Status) Coerce() Status {
	if normalized := normalizeStatus(s); normalized.IsValid() {
		return normalized
	}
	return StatusNotStarted
}

// Rank returns the display sort rank for a status. Active work sorts first.
func (s Status) Rank() int {
	switch s {
	case StatusInProgress:
		return 0
	case StatusNotStarted:
		return 1
	case StatusCompleted:
		return 2
	default:
		return 3
	}
}

func normalizeStatus(status Status) Status {
	return Status(strings.ToLower(strings.TrimSpace(string(status))))
}

// Priority constants. The model allows any priority >= 0; the simplified UI
// only toggles between none and flagged.
const (
	PriorityNone    = 0
	PriorityFlagged = 1

	// PriorityFormMax is the highest priority accepted by the strict form
	// validator.
	PriorityFormMax = 2
)

// Field length limits.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxNotesLength       = 500
	MaxTags              = 10
	MaxTagLength         = 20

	// MinFormTitleLength and MinFormDescriptionLength apply only to the
	// strict form validator, not to the record-level validator.
	MinFormTitleLength       = 2
	MinFormDescriptionLength = 10
)
