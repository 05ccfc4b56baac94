package storage

import (
	"context"
	"hash/fnv"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPollInterval is the watcher's polling interval when none is
// configured.
const DefaultPollInterval = 2 * time.Second

// Watcher polls a Store and reports external changes, providing the
// best-effort cross-session reconciliation signal. Consumers reload their
// state wholesale on each notification; reconciliation is
// last-writer-wins, with no merge or conflict detection.
type Watcher struct {
	store    Store
	interval time.Duration
	logger   zerolog.Logger
}

// NewWatcher returns a watcher over the store. A non-positive interval
// falls back to DefaultPollInterval.
func NewWatcher(store Store, interval time.Duration, logger zerolog.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{store: store, interval: interval, logger: logger}
}

// Run polls until ctx is cancelled, invoking onChange whenever the store's
// content differs from the previous poll. The first poll establishes the
// baseline without firing.
func (w *Watcher) Run(ctx context.Context, onChange func()) {
	last, ok := w.fingerprint()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current, currentOK := w.fingerprint()
			if !currentOK {
				continue
			}
			if !ok || current != last {
				if ok {
					onChange()
				}
				last, ok = current, true
			}
		}
	}
}

// fingerprint hashes the full store content. Key order is normalized so
// the hash is stable across backends.
func (w *Watcher) fingerprint() (uint64, bool) {
	keys, err := w.store.Keys()
	if err != nil {
		w.logger.Warn().Err(err).Msg("poll store keys")
		return 0, false
	}
	sort.Strings(keys)

	hash := fnv.New64a()
	for _, key := range keys {
		value, ok, err := w.store.Get(key)
		if err != nil {
			w.logger.Warn().Err(err).Str("key", key).Msg("poll store value")
			return 0, false
		}
		if !ok {
			continue
		}
		hash.Write([]byte(key))
		hash.Write([]byte{0})
		hash.Write([]byte(value))
		hash.Write([]byte{0})
	}
	return hash.Sum64(), true
}
