package tech

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
)

// DuplicateTitleThreshold is the edit distance below which two titles are
// considered near-duplicates.
const DuplicateTitleThreshold = 3

// tagPattern allows letters (including non-ASCII), digits, spaces, hyphens
// and underscores.
var tagPattern = regexp.MustCompile(`^[\p{L}0-9\s\-_]+$`)

// Validators return a map from field name to a human-readable message. An
// empty map means the input is valid. They are pure and never mutate their
// inputs.

// ValidateDeadline checks a deadline and its accompanying notes. The
// deadline is required and must not be before now.
func ValidateDeadline(deadline *time.Time, notes string, now time.Time) map[string]string {
	errors := map[string]string{}

	if deadline == nil {
		errors["deadline"] = "please choose a deadline date"
	} else if deadline.Before(now) {
		errors["deadline"] = "deadline cannot be in the past"
	}

	if len([]rune(notes)) > MaxNotesLength {
		errors["notes"] = fmt.Sprintf("notes cannot exceed %d characters", MaxNotesLength)
	}

	return errors
}

// ValidateTechnology checks a record against the lenient record-level
// constraints: non-empty bounded title and description, valid status.
func ValidateTechnology(t Technology) map[string]string {
	errors := map[string]string{}

	if strings.TrimSpace(t.Title) == "" {
		errors["title"] = "technology title is required"
	} else if len([]rune(t.Title)) > MaxTitleLength {
		errors["title"] = fmt.Sprintf("title cannot exceed %d characters", MaxTitleLength)
	}

	if strings.TrimSpace(t.Description) == "" {
		errors["description"] = "description is required"
	} else if len([]rune(t.Description)) > MaxDescriptionLength {
		errors["description"] = fmt.Sprintf("description cannot exceed %d characters", MaxDescriptionLength)
	}

	if !t.Status.IsValid() {
		errors["status"] = "invalid status"
	}

	return errors
}

// ValidateForm checks a draft against the strict form-level constraints,
// including tag shape, deadline, and priority range.
func ValidateForm(draft Draft, now time.Time) map[string]string {
	errors := map[string]string{}

	trimmedTitle := strings.TrimSpace(draft.Title)
	switch {
	case trimmedTitle == "":
		errors["title"] = "technology title is required"
	case len([]rune(trimmedTitle)) < MinFormTitleLength:
		errors["title"] = fmt.Sprintf("title must be at least %d characters", MinFormTitleLength)
	case len([]rune(draft.Title)) > MaxTitleLength:
		errors["title"] = fmt.Sprintf("title cannot exceed %d characters", MaxTitleLength)
	}

	trimmedDescription := strings.TrimSpace(draft.Description)
	switch {
	case trimmedDescription == "":
		errors["description"] = "description is required"
	case len([]rune(trimmedDescription)) < MinFormDescriptionLength:
		errors["description"] = fmt.Sprintf("description must be at least %d characters", MinFormDescriptionLength)
	case len([]rune(draft.Description)) > MaxDescriptionLength:
		errors["description"] = fmt.Sprintf("description cannot exceed %d characters", MaxDescriptionLength)
	}

	if !draft.Status.IsValid() {
		errors["status"] = "invalid status"
	}

	if msg := validateTags(draft.Tags); msg != "" {
		errors["tags"] = msg
	}

	if draft.Deadline != nil && draft.Deadline.Before(now) {
		errors["deadline"] = "deadline cannot be in the past"
	}

	if draft.Priority < PriorityNone || draft.Priority > PriorityFormMax {
		errors["priority"] = "invalid priority value"
	}

	return errors
}

func validateTags(tags []string) string {
	if len(tags) > MaxTags {
		return fmt.Sprintf("at most %d tags are allowed", MaxTags)
	}
	for _, tag := range tags {
		if len([]rune(tag)) > MaxTagLength {
			return fmt.Sprintf("a tag cannot exceed %d characters", MaxTagLength)
		}
		if !tagPattern.MatchString(tag) {
			return "a tag may only contain letters, digits, spaces, hyphens and underscores"
		}
	}
	return ""
}

// ValidateDuplicate checks a candidate title against the existing
// collection. It fails on an exact match (case-insensitive, trimmed) or
// when the edit distance to any existing title falls below
// DuplicateTitleThreshold.
func ValidateDuplicate(existing []Technology, title string) map[string]string {
	errors := map[string]string{}
	candidate := foldTitle(title)

	for _, t := range existing {
		if foldTitle(t.Title) == candidate {
			errors["title"] = "a technology with this title already exists"
			return errors
		}
	}

	for _, t := range existing {
		if levenshtein.ComputeDistance(foldTitle(t.Title), candidate) < DuplicateTitleThreshold {
			errors["title"] = "a similar technology already exists"
			break
		}
	}

	return errors
}

func foldTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
