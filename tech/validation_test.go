package tech

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validDraft() Draft {
	return Draft{
		Title:       "Kubernetes",
		Description: "Container orchestration for production workloads",
		Status:      StatusNotStarted,
	}
}

func TestValidateFormAcceptsValidDraft(t *testing.T) {
	assert.Empty(t, ValidateForm(validDraft(), time.Now()))
}

func TestValidateFormTitle(t *testing.T) {
	now := time.Now()

	draft := validDraft()
	draft.Title = "   "
	assert.Contains(t, ValidateForm(draft, now), "title")

	draft.Title = "G"
	assert.Contains(t, ValidateForm(draft, now), "title")

	draft.Title = strings.Repeat("a", MaxTitleLength+1)
	assert.Contains(t, ValidateForm(draft, now), "title")
}

func TestValidateFormDescription(t *testing.T) {
	now := time.Now()

	draft := validDraft()
	draft.Description = ""
	assert.Contains(t, ValidateForm(draft, now), "description")

	draft.Description = "too short"
	assert.Contains(t, ValidateForm(draft, now), "description")

	draft.Description = strings.Repeat("a", MaxDescriptionLength+1)
	assert.Contains(t, ValidateForm(draft, now), "description")
}

func TestValidateFormTags(t *testing.T) {
	now := time.Now()

	draft := validDraft()
	draft.Tags = []string{"backend", "infra-tools", "облачные технологии"}
	assert.Empty(t, ValidateForm(draft, now))

	draft.Tags = []string{"bad#tag"}
	assert.Contains(t, ValidateForm(draft, now), "tags")

	draft.Tags = []string{strings.Repeat("a", MaxTagLength+1)}
	assert.Contains(t, ValidateForm(draft, now), "tags")

	draft.Tags = make([]string, MaxTags+1)
	for i := range draft.Tags {
		draft.Tags[i] = "tag"
	}
	assert.Contains(t, ValidateForm(draft, now), "tags")
}

func TestValidateFormDeadlineAndPriority(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	draft := validDraft()
	past := now.AddDate(0, 0, -1)
	draft.Deadline = &past
	assert.Contains(t, ValidateForm(draft, now), "deadline")

	future := now.AddDate(0, 1, 0)
	draft.Deadline = &future
	assert.Empty(t, ValidateForm(draft, now))

	draft.Priority = PriorityFormMax + 1
	assert.Contains(t, ValidateForm(draft, now), "priority")

	draft.Priority = -1
	assert.Contains(t, ValidateForm(draft, now), "priority")
}

func TestValidateFormStatus(t *testing.T) {
	draft := validDraft()
	draft.Status = "paused"
	assert.Contains(t, ValidateForm(draft, time.Now()), "status")
}

func TestValidateDeadline(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	errs := ValidateDeadline(nil, "", now)
	assert.Contains(t, errs, "deadline")

	past := now.AddDate(0, 0, -1)
	errs = ValidateDeadline(&past, "", now)
	assert.Contains(t, errs, "deadline")

	future := now.AddDate(0, 0, 1)
	errs = ValidateDeadline(&future, strings.Repeat("a", MaxNotesLength+1), now)
	assert.NotContains(t, errs, "deadline")
	assert.Contains(t, errs, "notes")
}

func TestValidateTechnology(t *testing.T) {
	record := Technology{
		Title:       "Go",
		Description: "ok",
		Status:      StatusInProgress,
	}
	assert.Empty(t, ValidateTechnology(record))

	record.Title = ""
	record.Status = "paused"
	errs := ValidateTechnology(record)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "status")
}

func TestValidateDuplicateExactMatch(t *testing.T) {
	existing := []Technology{{Title: "React"}}

	errs := ValidateDuplicate(existing, "react ")
	assert.Equal(t, "a technology with this title already exists", errs["title"])
}

func TestValidateDuplicateNearMatch(t *testing.T) {
	existing := []Technology{{Title: "React"}}

	// Distance 1: flagged as similar.
	errs := ValidateDuplicate(existing, "Reactt")
	assert.Equal(t, "a similar technology already exists", errs["title"])

	// Distance 2: still flagged.
	assert.NotEmpty(t, ValidateDuplicate(existing, "Rea"))

	// Distance exactly at the threshold: allowed.
	assert.Empty(t, ValidateDuplicate(existing, "Re"))
}

func TestValidateDuplicateDistinctTitles(t *testing.T) {
	existing := []Technology{{Title: "React"}, {Title: "Vue"}}
	assert.Empty(t, ValidateDuplicate(existing, "Angular"))
}
