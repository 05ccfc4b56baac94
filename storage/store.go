// Package storage implements the persistence gateway for the roadmap.
//
// State lives in a namespaced key-value store holding serialized JSON
// strings, mirroring the browser-storage layout the data set originated
// from. The Gateway wraps a Store with typed save/load, export/import,
// byte-size accounting, and timestamped backups. Storage failures are
// logged and absorbed at this boundary; callers observe them only as
// boolean results and keep their in-memory state authoritative.
package storage

// Storage keys. Each names one logical slice of persisted state.
const (
	// KeyTechnologies holds the technology collection as a JSON array.
	KeyTechnologies = "technologiesData"

	// KeySettings holds the settings object.
	KeySettings = "roadmap-settings"

	// KeyTheme holds the theme mode string.
	KeyTheme = "themeMode"

	// BackupPrefix prefixes dynamically-named backup keys. The full key
	// is backup_<epoch-millis>.
	BackupPrefix = "backup_"
)

// KnownKeys returns the fixed namespaces included in exports. Backup keys
// are dynamic and excluded.
func KnownKeys() []string {
	return []string{KeyTechnologies, KeySettings, KeyTheme}
}

// Store is a flat key-value store of serialized values.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)

	// Set stores the value under key, overwriting any existing value.
	Set(key, value string) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(key string) error

	// Keys returns all stored keys in unspecified order.
	Keys() ([]string, error)

	// Clear removes every key.
	Clear() error
}
