// Package config handles loading roadmap.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the roadmap.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	Tracker Tracker `toml:"tracker"`
	Log     Log     `toml:"log"`
}

// Storage contains persistence-related configuration.
type Storage struct {
	// Dir is where the data file and lock live. Defaults to
	// ~/.local/share/roadmap.
	Dir string `toml:"dir"`

	// PollInterval is how often the store is polled for changes made by
	// other sessions, e.g. "2s". Defaults to 2 seconds.
	PollInterval string `toml:"poll-interval"`
}

// Tracker contains collection-related configuration.
type Tracker struct {
	// DefaultStatus applies to newly added records that don't specify
	// one.
	DefaultStatus string `toml:"default-status"`
}

// Log contains logging configuration.
type Log struct {
	// Level is a zerolog level name such as "debug" or "warn".
	Level string `toml:"level"`
}

// Load loads configuration from the working directory and the global
// config file, with working-directory values taking precedence. Returns an
// empty config if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	localCfg, localMeta, err := loadConfigFile(filepath.Join(dir, "roadmap.toml"))
	if err != nil {
		return nil, err
	}

	return mergeConfigs(globalCfg, localCfg, globalMeta, localMeta), nil
}

// DataDir resolves the configured storage directory, falling back to
// ~/.local/share/roadmap.
func (c *Config) DataDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "roadmap"), nil
}

// PollInterval parses the configured poll interval. Zero means unset.
func (c *Config) PollInterval() (time.Duration, error) {
	if c.Storage.PollInterval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Storage.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("parse poll-interval: %w", err)
	}
	return d, nil
}

func globalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "roadmap", "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, localCfg *Config, globalMeta, localMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if localCfg == nil {
		localCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Dir = mergeString(localMeta.IsDefined("storage", "dir"), localCfg.Storage.Dir, globalCfg.Storage.Dir)
	merged.Storage.PollInterval = mergeString(localMeta.IsDefined("storage", "poll-interval"), localCfg.Storage.PollInterval, globalCfg.Storage.PollInterval)
	merged.Tracker.DefaultStatus = mergeString(localMeta.IsDefined("tracker", "default-status"), localCfg.Tracker.DefaultStatus, globalCfg.Tracker.DefaultStatus)
	merged.Log.Level = mergeString(localMeta.IsDefined("log", "level"), localCfg.Log.Level, globalCfg.Log.Level)

	return &merged
}

func mergeString(localDefined bool, localValue, globalValue string) string {
	value := globalValue
	if localDefined {
		value = localValue
	}
	return strings.TrimSpace(value)
}
