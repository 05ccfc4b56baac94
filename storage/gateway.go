package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/rs/zerolog"
)

// DefaultBackupRetentionDays is how long backups are kept when no retention
// interval is configured.
const DefaultBackupRetentionDays = 7

// Gateway provides namespaced, typed access to a Store. All failures are
// logged and reported as boolean results; no operation panics or returns an
// error to callers.
type Gateway struct {
	store  Store
	logger zerolog.Logger
}

// NewGateway wraps the store.
func NewGateway(store Store, logger zerolog.Logger) *Gateway {
	return &Gateway{store: store, logger: logger}
}

// Store returns the underlying store, for watchers that poll it directly.
func (g *Gateway) Store() Store {
	return g.store
}

// Save serializes value as JSON and stores it under key. Returns false when
// serialization or the store write fails.
func (g *Gateway) Save(key string, value any) bool {
	encoded, err := json.Marshal(value)
	if err != nil {
		g.logger.Error().Err(err).Str("key", key).Msg("serialize value")
		return false
	}
	if err := g.store.Set(key, string(encoded)); err != nil {
		g.logger.Error().Err(err).Str("key", key).Msg("save value")
		return false
	}
	return true
}

// Load deserializes the value stored under key into out. Returns false,
// leaving out untouched, when the key is missing or the value cannot be
// deserialized; the caller's default stays in place.
func (g *Gateway) Load(key string, out any) bool {
	raw, ok, err := g.store.Get(key)
	if err != nil {
		g.logger.Error().Err(err).Str("key", key).Msg("load value")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		g.logger.Error().Err(err).Str("key", key).Msg("deserialize value")
		return false
	}
	return true
}

// Remove deletes the key.
func (g *Gateway) Remove(key string) bool {
	if err := g.store.Delete(key); err != nil {
		g.logger.Error().Err(err).Str("key", key).Msg("remove value")
		return false
	}
	return true
}

// Clear removes every stored key, including backups.
func (g *Gateway) Clear() bool {
	if err := g.store.Clear(); err != nil {
		g.logger.Error().Err(err).Msg("clear store")
		return false
	}
	return true
}

// ExportAll returns every known namespaced key with its current raw value
// for portability. Missing keys export as JSON null.
func (g *Gateway) ExportAll() map[string]json.RawMessage {
	export := make(map[string]json.RawMessage, len(KnownKeys()))
	for _, key := range KnownKeys() {
		raw, ok, err := g.store.Get(key)
		if err != nil {
			g.logger.Error().Err(err).Str("key", key).Msg("export value")
			ok = false
		}
		if !ok {
			export[key] = json.RawMessage("null")
			continue
		}
		export[key] = json.RawMessage(raw)
	}
	return export
}

// ExportJSON renders ExportAll as an indented JSON document.
func (g *Gateway) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(g.ExportAll(), "", "  ")
}

// ImportAll overwrites each recognized namespace present in data.
// Unrecognized keys are ignored. Returns whether the import succeeded;
// there is no partial-failure detail.
func (g *Gateway) ImportAll(data map[string]json.RawMessage) bool {
	for key, raw := range data {
		if !isKnownKey(key) {
			continue
		}
		if err := g.store.Set(key, string(raw)); err != nil {
			g.logger.Error().Err(err).Str("key", key).Msg("import value")
			return false
		}
	}
	return true
}

func isKnownKey(key string) bool {
	for _, known := range KnownKeys() {
		if key == known {
			return true
		}
	}
	return false
}

// KeyInfo describes one stored key for display purposes.
type KeyInfo struct {
	// SizeBytes estimates the value's footprint as UTF-16 code units
	// times two.
	SizeBytes int

	// HasValue reports whether the key currently holds a value.
	HasValue bool
}

// Info summarizes the store's byte footprint. It is informational only;
// nothing enforces a budget.
type Info struct {
	TotalBytes int
	TotalKeys  int
	Keys       []string
	ByKey      map[string]KeyInfo
}

// Info returns the storage footprint summary. Keys are sorted for stable
// display.
func (g *Gateway) Info() Info {
	keys, err := g.store.Keys()
	if err != nil {
		g.logger.Error().Err(err).Msg("list keys")
		return Info{ByKey: map[string]KeyInfo{}}
	}
	sort.Strings(keys)

	info := Info{
		TotalKeys: len(keys),
		Keys:      keys,
		ByKey:     make(map[string]KeyInfo, len(keys)),
	}
	for _, key := range keys {
		value, ok, err := g.store.Get(key)
		if err != nil {
			g.logger.Error().Err(err).Str("key", key).Msg("size value")
			ok = false
		}
		size := 0
		if ok {
			size = utf16Size(value)
		}
		info.ByKey[key] = KeyInfo{SizeBytes: size, HasValue: ok}
		info.TotalBytes += size
	}
	return info
}

// utf16Size estimates the stored byte footprint of a string: UTF-16 code
// units times two, matching the origin storage layer's accounting.
func utf16Size(value string) int {
	return 2 * len(utf16.Encode([]rune(value)))
}

// backupPayload is the stored shape of one backup.
type backupPayload struct {
	Timestamp time.Time                  `json:"timestamp"`
	Data      map[string]json.RawMessage `json:"data"`
}

// CreateBackup snapshots ExportAll under a new timestamped backup key and
// returns that key.
func (g *Gateway) CreateBackup() (string, bool) {
	now := time.Now()
	key := fmt.Sprintf("%s%d", BackupPrefix, now.UnixMilli())
	payload := backupPayload{
		Timestamp: now,
		Data:      g.ExportAll(),
	}
	if !g.Save(key, payload) {
		return "", false
	}
	return key, true
}

// RestoreFromBackup loads the backup stored under key and, when it carries
// a data payload, imports it. Returns whether restoration succeeded.
func (g *Gateway) RestoreFromBackup(key string) bool {
	var payload backupPayload
	if !g.Load(key, &payload) {
		return false
	}
	if payload.Data == nil {
		g.logger.Warn().Str("key", key).Msg("backup has no data payload")
		return false
	}
	return g.ImportAll(payload.Data)
}

// BackupKeys returns all backup keys, newest first.
func (g *Gateway) BackupKeys() []string {
	keys, err := g.store.Keys()
	if err != nil {
		g.logger.Error().Err(err).Msg("list keys")
		return nil
	}
	backups := make([]string, 0)
	for _, key := range keys {
		if strings.HasPrefix(key, BackupPrefix) {
			backups = append(backups, key)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	return backups
}

// CleanOldBackups deletes every backup whose recorded timestamp is older
// than maxAgeDays. A non-positive maxAgeDays uses the default retention.
// Returns the number of backups removed.
func (g *Gateway) CleanOldBackups(maxAgeDays int) int {
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultBackupRetentionDays
	}
	maxAge := time.Duration(maxAgeDays) * 24 * time.Hour
	now := time.Now()

	removed := 0
	for _, key := range g.BackupKeys() {
		var payload backupPayload
		if !g.Load(key, &payload) {
			continue
		}
		if payload.Timestamp.IsZero() {
			continue
		}
		if now.Sub(payload.Timestamp) > maxAge {
			if g.Remove(key) {
				removed++
			}
		}
	}
	return removed
}
