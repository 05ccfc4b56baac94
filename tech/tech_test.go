package tech

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTechnologyDefaults(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	created := NewTechnology(Draft{Title: "Go"}, 7, now)

	assert.Equal(t, 7, created.ID)
	assert.Equal(t, "Go", created.Title)
	assert.Equal(t, StatusNotStarted, created.Status)
	assert.NotNil(t, created.Tags)
	assert.Empty(t, created.Tags)
	assert.Equal(t, now, created.CreatedAt)
	assert.True(t, created.UpdatedAt.IsZero())
	assert.Nil(t, created.CompletedAt)
	assert.Zero(t, created.Version)
}

func TestNewTechnologyCoercesUnknownStatus(t *testing.T) {
	created := NewTechnology(Draft{Title: "Go", Status: "paused"}, 1, time.Now())
	assert.Equal(t, StatusNotStarted, created.Status)
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, NextID(nil))

	techs := []Technology{{ID: 5}, {ID: 2}}
	assert.Equal(t, 6, NextID(techs))
}

func TestStatusCoerce(t *testing.T) {
	assert.Equal(t, StatusInProgress, Status(" In-Progress ").Coerce())
	assert.Equal(t, StatusNotStarted, Status("bogus").Coerce())
	assert.Equal(t, StatusCompleted, StatusCompleted.Coerce())
}

func TestStatusRank(t *testing.T) {
	assert.Less(t, StatusInProgress.Rank(), StatusNotStarted.Rank())
	assert.Less(t, StatusNotStarted.Rank(), StatusCompleted.Rank())
}

func TestHasTagIsCaseSensitive(t *testing.T) {
	record := Technology{Tags: []string{"backend", "Go"}}

	assert.True(t, record.HasTag("Go"))
	assert.False(t, record.HasTag("go"))
}

func TestDefaultTechnologies(t *testing.T) {
	techs := DefaultTechnologies()
	assert.Len(t, techs, 10)

	seen := map[int]bool{}
	for _, record := range techs {
		assert.True(t, record.Status.IsValid(), "status of %q", record.Title)
		assert.NotNil(t, record.Tags, "tags of %q", record.Title)
		assert.False(t, seen[record.ID], "duplicate id %d", record.ID)
		seen[record.ID] = true
	}
}
