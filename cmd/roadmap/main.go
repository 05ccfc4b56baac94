// Package main implements the roadmap CLI tool.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"techroadmap/internal/config"
	"techroadmap/settings"
	"techroadmap/storage"
	"techroadmap/tech"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Roadmap - track the technologies you are learning",
}

var ephemeralFlag bool

func init() {
	// Accept underscore spellings of multi-word flags.
	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	rootCmd.PersistentFlags().BoolVar(&ephemeralFlag, "ephemeral", false, "keep data in memory only, discarding it on exit")
}

// app bundles the wired-up services a command needs.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	gateway  *storage.Gateway
	repo     *tech.Repository
	settings *settings.Store
}

// openApp loads configuration and opens the data store in the configured
// directory.
func openApp() (*app, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := config.Load(workDir)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Log.Level)

	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	var store storage.Store = storage.NewFileStore(filepath.Join(dataDir, "roadmap.json"))
	if ephemeralFlag {
		store = storage.NewMemoryStore()
	}
	gateway := storage.NewGateway(store, logger)
	settingsStore := settings.NewStore(gateway)

	defaultStatus := tech.Status(settingsStore.Load().DefaultStatus)
	if cfg.Tracker.DefaultStatus != "" {
		defaultStatus = tech.Status(cfg.Tracker.DefaultStatus)
	}

	repo := tech.NewRepository(gateway, tech.RepositoryOptions{
		Logger:        logger,
		DefaultStatus: defaultStatus,
	})

	return &app{
		cfg:      cfg,
		logger:   logger,
		gateway:  gateway,
		repo:     repo,
		settings: settingsStore,
	}, nil
}

func newLogger(level string) zerolog.Logger {
	logLevel := zerolog.WarnLevel
	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			logLevel = parsed
		}
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(logLevel).With().Timestamp().Logger()
}

// confirm prompts for a yes/no answer on stdin. Only an explicit "y" or
// "yes" counts as confirmation.
func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
