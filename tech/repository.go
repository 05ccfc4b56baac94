package tech

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"techroadmap/storage"
)

var (
	// ErrTechnologyNotFound is returned when a record with the given id
	// doesn't exist.
	ErrTechnologyNotFound = errors.New("technology not found")

	// ErrInvalidImport is returned when an import document is malformed
	// or has the wrong shape. The collection is left untouched.
	ErrInvalidImport = errors.New("invalid import document: expected a technology array or an export map")
)

// DefaultResourceDelay is the artificial latency of the simulated resource
// fetch.
const DefaultResourceDelay = 800 * time.Millisecond

// Repository owns the canonical technology collection for the active
// session. Mutations are applied in memory first and then persisted
// fire-and-forget through the gateway: a failed write is logged and the
// in-memory state stays authoritative.
type Repository struct {
	mu      sync.Mutex
	gateway *storage.Gateway
	logger  zerolog.Logger

	defaultStatus Status
	resourceDelay time.Duration

	techs     []Technology
	lastSaved time.Time
}

// RepositoryOptions configures a Repository.
type RepositoryOptions struct {
	// Logger receives absorbed persistence failures.
	Logger zerolog.Logger

	// DefaultStatus applies to drafts that carry no status. Defaults to
	// StatusNotStarted.
	DefaultStatus Status

	// ResourceDelay overrides the simulated resource-fetch latency.
	ResourceDelay time.Duration
}

// NewRepository loads the persisted collection through the gateway. When
// nothing is persisted yet, the default seed data set is installed and
// saved.
func NewRepository(gateway *storage.Gateway, opts RepositoryOptions) *Repository {
	if opts.DefaultStatus == "" {
		opts.DefaultStatus = StatusNotStarted
	}
	if opts.ResourceDelay <= 0 {
		opts.ResourceDelay = DefaultResourceDelay
	}

	r := &Repository{
		gateway:       gateway,
		logger:        opts.Logger,
		defaultStatus: opts.DefaultStatus.Coerce(),
		resourceDelay: opts.ResourceDelay,
	}

	var techs []Technology
	if gateway.Load(storage.KeyTechnologies, &techs) {
		r.techs = techs
	} else {
		r.techs = DefaultTechnologies()
		r.persist()
	}

	return r
}

// All returns the collection in the derived display order.
func (r *Repository) All() []Technology {
	r.mu.Lock()
	defer r.mu.Unlock()
	return SortForDisplay(r.techs)
}

// Raw returns the collection in underlying storage order.
func (r *Repository) Raw() []Technology {
	r.mu.Lock()
	defer r.mu.Unlock()
	raw := make([]Technology, len(r.techs))
	copy(raw, r.techs)
	return raw
}

// Get returns the record with the given id.
func (r *Repository) Get(id int) (Technology, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.techs {
		if t.ID == id {
			return t, true
		}
	}
	return Technology{}, false
}

// Count returns the collection size.
func (r *Repository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.techs)
}

// LastSaved returns when the collection was last persisted successfully.
func (r *Repository) LastSaved() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastSaved
}

// Add builds a complete record from the draft, prepends it to the
// collection, persists, and returns the new record.
func (r *Repository) Add(draft Draft) Technology {
	r.mu.Lock()
	defer r.mu.Unlock()

	if draft.Status == "" {
		draft.Status = r.defaultStatus
	}

	t := NewTechnology(draft, NextID(r.techs), time.Now())
	r.techs = append([]Technology{t}, r.techs...)
	r.persist()
	return t
}

// Patch is a typed partial update. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	Status      *Status
	Deadline    *time.Time
	Tags        []string
	Notes       *string
	Priority    *int

	// ClearDeadline removes the deadline. It wins over Deadline.
	ClearDeadline bool
}

// Update merges the patch into the matching record and bumps updatedAt and
// version. A missing id is a silent no-op: concurrent deletion from
// another session is an expected benign race.
func (r *Repository) Update(id int, patch Patch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applyPatch(id, patch, time.Now()) {
		r.persist()
	}
}

func (r *Repository) applyPatch(id int, patch Patch, now time.Time) bool {
	for i := range r.techs {
		if r.techs[i].ID != id {
			continue
		}

		if patch.Title != nil {
			r.techs[i].Title = *patch.Title
		}
		if patch.Description != nil {
			r.techs[i].Description = *patch.Description
		}
		if patch.Status != nil {
			r.techs[i].Status = patch.Status.Coerce()
		}
		if patch.ClearDeadline {
			r.techs[i].Deadline = nil
		} else if patch.Deadline != nil {
			r.techs[i].Deadline = patch.Deadline
		}
		if patch.Tags != nil {
			r.techs[i].Tags = patch.Tags
		}
		if patch.Notes != nil {
			r.techs[i].Notes = *patch.Notes
		}
		if patch.Priority != nil {
			r.techs[i].Priority = *patch.Priority
		}

		r.techs[i].UpdatedAt = now
		r.techs[i].Version++
		return true
	}
	return false
}

// Remove hard-deletes the matching record. A missing id is a no-op.
func (r *Repository) Remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.techs {
		if r.techs[i].ID == id {
			r.techs = append(r.techs[:i], r.techs[i+1:]...)
			r.persist()
			return
		}
	}
}

// SetStatus changes the record's status. When the new status is completed,
// completedAt is set to now; it is never cleared by other transitions.
func (r *Repository) SetStatus(id int, status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applyStatus(id, status, time.Now()) {
		r.persist()
	}
}

func (r *Repository) applyStatus(id int, status Status, now time.Time) bool {
	status = status.Coerce()
	for i := range r.techs {
		if r.techs[i].ID != id {
			continue
		}
		r.techs[i].Status = status
		if status == StatusCompleted {
			completedAt := now
			r.techs[i].CompletedAt = &completedAt
		}
		r.techs[i].UpdatedAt = now
		r.techs[i].Version++
		return true
	}
	return false
}

// BulkSetStatus applies the SetStatus semantics to every id in one batch
// with a single persistence write. Missing ids are skipped.
func (r *Repository) BulkSetStatus(ids []int, status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	changed := false
	for _, id := range ids {
		if r.applyStatus(id, status, now) {
			changed = true
		}
	}
	if changed {
		r.persist()
	}
}

// SetAllStatuses applies the status to every record in the collection.
func (r *Repository) SetAllStatuses(status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for i := range r.techs {
		r.applyStatus(r.techs[i].ID, status, now)
	}
	if len(r.techs) > 0 {
		r.persist()
	}
}

// TogglePriority flags or unflags the record: priority becomes 1 when
// flagged, 0 otherwise.
func (r *Repository) TogglePriority(id int, flagged bool) {
	priority := PriorityNone
	if flagged {
		priority = PriorityFlagged
	}
	r.Update(id, Patch{Priority: &priority})
}

// ResetToDefault replaces the entire collection with the seed data set and
// persists.
func (r *Repository) ResetToDefault() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.techs = DefaultTechnologies()
	r.persist()
}

// ImportReplace sanitizes the incoming records and replaces the collection
// wholesale. Unknown or colliding ids get freshly generated ones, invalid
// statuses become not-started, and absent tags and notes default to empty.
// Returns the number of records imported.
func (r *Repository) ImportReplace(records []Technology) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	sanitized := make([]Technology, 0, len(records))
	seen := make(map[int]bool, len(records))
	for _, record := range records {
		if record.ID <= 0 || seen[record.ID] {
			record.ID = NextID(sanitized)
		}
		seen[record.ID] = true

		if record.Title == "" {
			record.Title = "Untitled"
		}
		record.Status = record.Status.Coerce()
		if record.Tags == nil {
			record.Tags = []string{}
		}

		sanitized = append(sanitized, record)
	}

	r.techs = sanitized
	r.persist()
	return len(sanitized)
}

// ImportDocument routes a JSON import by shape: an array is treated as a
// technology list and replaces the collection; an object matching the
// export-map shape is routed to the gateway's ImportAll and the collection
// reloaded. Malformed input returns ErrInvalidImport with no mutation.
func (r *Repository) ImportDocument(data []byte) (int, error) {
	var records []Technology
	if err := json.Unmarshal(data, &records); err == nil {
		return r.ImportReplace(records), nil
	}

	var export map[string]json.RawMessage
	if err := json.Unmarshal(data, &export); err != nil {
		return 0, ErrInvalidImport
	}
	if !r.gateway.ImportAll(export) {
		return 0, fmt.Errorf("%w: import failed", ErrInvalidImport)
	}

	r.Reload()
	return r.Count(), nil
}

// ExportJSON renders the collection, in storage order, as an indented JSON
// array.
func (r *Repository) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(r.Raw(), "", "  ")
}

// Reload replaces the in-memory collection with the persisted value,
// last-writer-wins. Used when another session changed the store.
func (r *Repository) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var techs []Technology
	if !r.gateway.Load(storage.KeyTechnologies, &techs) {
		return
	}
	r.techs = techs
}

// Watch subscribes the repository to external store changes, reloading on
// every notification until ctx is cancelled.
func (r *Repository) Watch(ctx context.Context, watcher *storage.Watcher) {
	watcher.Run(ctx, r.Reload)
}

// PickRandom returns a uniformly random record from the collection.
func (r *Repository) PickRandom() (Technology, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.techs) == 0 {
		return Technology{}, false
	}
	return r.techs[rand.Intn(len(r.techs))], true
}

// ResourceSuggestions simulates fetching study resources for a record. It
// waits an artificial delay before returning a canned resource list, and
// returns early when ctx is cancelled.
func (r *Repository) ResourceSuggestions(ctx context.Context, id int) ([]string, error) {
	t, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrTechnologyNotFound, id)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(r.resourceDelay):
	}

	return []string{
		fmt.Sprintf("Official documentation for %s", t.Title),
		"Practical tasks and exercises",
		"Video courses and tutorials",
		"Code examples on GitHub",
		"Community forums for discussion",
	}, nil
}

// persist writes the collection through the gateway. Callers must hold the
// mutex. Failures leave the in-memory state authoritative.
func (r *Repository) persist() {
	if !r.gateway.Save(storage.KeyTechnologies, r.techs) {
		r.logger.Warn().Msg("technology collection not persisted")
		return
	}
	r.lastSaved = time.Now()
}
