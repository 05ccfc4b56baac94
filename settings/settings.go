// Package settings persists user preferences through the storage gateway.
package settings

import (
	"techroadmap/storage"
	"techroadmap/tech"
)

// Theme modes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Settings is the persisted preference document. Unknown keys in stored
// data are dropped on the next save.
type Settings struct {
	Theme          string `json:"theme"`
	Notifications  bool   `json:"notifications"`
	AutoSave       bool   `json:"autoSave"`
	DefaultStatus  string `json:"defaultStatus"`
	ItemsPerPage   int    `json:"itemsPerPage"`
	ExportFormat   string `json:"exportFormat"`
	Language       string `json:"language"`
	BackupInterval int    `json:"backupInterval"`
}

// Defaults returns the out-of-box preferences.
func Defaults() Settings {
	return Settings{
		Theme:          ThemeLight,
		Notifications:  true,
		AutoSave:       true,
		DefaultStatus:  string(tech.StatusNotStarted),
		ItemsPerPage:   10,
		ExportFormat:   "json",
		Language:       "en",
		BackupInterval: 7,
	}
}

// Store reads and writes settings through a gateway.
type Store struct {
	gateway *storage.Gateway
}

// NewStore returns a settings store backed by the gateway.
func NewStore(gateway *storage.Gateway) *Store {
	return &Store{gateway: gateway}
}

// Load returns the persisted settings merged over the defaults: fields
// absent from the stored document keep their default values. Missing or
// corrupt data yields the plain defaults.
func (s *Store) Load() Settings {
	settings := Defaults()
	s.gateway.Load(storage.KeySettings, &settings)
	if !tech.Status(settings.DefaultStatus).IsValid() {
		settings.DefaultStatus = string(tech.StatusNotStarted)
	}
	return settings
}

// Save persists the settings document.
func (s *Store) Save(settings Settings) bool {
	return s.gateway.Save(storage.KeySettings, settings)
}

// Reset restores and persists the defaults, returning them.
func (s *Store) Reset() Settings {
	defaults := Defaults()
	s.Save(defaults)
	return defaults
}

// ThemeMode returns the standalone theme-mode value, which is persisted
// under its own key so theme switches survive a settings reset.
func (s *Store) ThemeMode() string {
	var mode string
	if !s.gateway.Load(storage.KeyTheme, &mode) || (mode != ThemeLight && mode != ThemeDark) {
		return ThemeLight
	}
	return mode
}

// SetThemeMode persists the standalone theme-mode value.
func (s *Store) SetThemeMode(mode string) bool {
	if mode != ThemeLight && mode != ThemeDark {
		mode = ThemeLight
	}
	return s.gateway.Save(storage.KeyTheme, mode)
}
