package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"techroadmap/internal/ui"
	"techroadmap/settings"
	"techroadmap/storage"
)

// roadmap backup
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage full-state backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Snapshot all stored keys into a backup",
	RunE:  runBackupCreate,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	RunE:  runBackupList,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [key]",
	Short: "Restore stored keys from a backup (defaults to the newest)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackupRestore,
}

var backupRestoreYes bool

var backupCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete backups older than the retention window",
	RunE:  runBackupClean,
}

var backupCleanDays int

var backupExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the full stored state to a JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackupExport,
}

// roadmap info
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show storage usage per key",
	RunE:  runInfo,
}

// roadmap settings
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Change one preference",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default preferences",
	RunE:  runSettingsReset,
}

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark]",
	Short: "Show or switch the theme mode",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTheme,
}

func init() {
	rootCmd.AddCommand(backupCmd, infoCmd, settingsCmd, themeCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd, backupCleanCmd, backupExportCmd)
	settingsCmd.AddCommand(settingsSetCmd, settingsResetCmd)

	backupRestoreCmd.Flags().BoolVarP(&backupRestoreYes, "yes", "y", false, "Skip confirmation")
	backupCleanCmd.Flags().IntVar(&backupCleanDays, "days", storage.DefaultBackupRetentionDays, "Maximum backup age in days")
}

func runBackupCreate(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	key, ok := app.gateway.CreateBackup()
	if !ok {
		return fmt.Errorf("backup failed")
	}
	fmt.Printf("Created backup %s\n", key)
	return nil
}

func runBackupList(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	keys := app.gateway.BackupKeys()
	if len(keys) == 0 {
		fmt.Println("No backups")
		return nil
	}

	builder := ui.NewTableBuilder([]string{"KEY", "CREATED"}, len(keys))
	for _, key := range keys {
		builder.AddRow([]string{key, formatBackupTime(key)})
	}
	fmt.Print(builder.String())
	return nil
}

func formatBackupTime(key string) string {
	millis, err := strconv.ParseInt(strings.TrimPrefix(key, storage.BackupPrefix), 10, 64)
	if err != nil {
		return "-"
	}
	return time.UnixMilli(millis).Format("2006-01-02 15:04:05")
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	key := ""
	if len(args) == 1 {
		key = args[0]
	} else {
		keys := app.gateway.BackupKeys()
		if len(keys) == 0 {
			return fmt.Errorf("no backups to restore")
		}
		key = keys[0]
	}

	if !backupRestoreYes && !confirm(fmt.Sprintf("Restore %s over the current state?", key)) {
		return nil
	}

	if !app.gateway.RestoreFromBackup(key) {
		return fmt.Errorf("restore from %s failed", key)
	}
	fmt.Printf("Restored from %s\n", key)
	return nil
}

func runBackupClean(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	removed := app.gateway.CleanOldBackups(backupCleanDays)
	fmt.Printf("Removed %d old backups\n", removed)
	return nil
}

func runBackupExport(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	data, err := app.gateway.ExportJSON()
	if err != nil {
		return err
	}

	path := storage.BackupFileName(time.Now())
	if len(args) == 1 {
		path = args[0]
	}
	if path == "-" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup export: %w", err)
	}
	fmt.Printf("Exported state to %s\n", path)
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	info := app.gateway.Info()
	fmt.Printf("Keys:  %d\n", info.TotalKeys)
	fmt.Printf("Size:  %s\n", ui.FormatBytes(info.TotalBytes))
	fmt.Println()

	builder := ui.NewTableBuilder([]string{"KEY", "SIZE", "SET"}, len(info.Keys))
	for _, key := range info.Keys {
		keyInfo := info.ByKey[key]
		set := "no"
		if keyInfo.HasValue {
			set = "yes"
		}
		builder.AddRow([]string{key, ui.FormatBytes(keyInfo.SizeBytes), set})
	}
	fmt.Print(builder.String())
	return nil
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	current := app.settings.Load()
	fmt.Printf("theme:           %s\n", current.Theme)
	fmt.Printf("notifications:   %t\n", current.Notifications)
	fmt.Printf("auto-save:       %t\n", current.AutoSave)
	fmt.Printf("default-status:  %s\n", current.DefaultStatus)
	fmt.Printf("items-per-page:  %d\n", current.ItemsPerPage)
	fmt.Printf("export-format:   %s\n", current.ExportFormat)
	fmt.Printf("language:        %s\n", current.Language)
	fmt.Printf("backup-interval: %d\n", current.BackupInterval)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	current := app.settings.Load()
	name, value := args[0], args[1]

	switch name {
	case "theme":
		current.Theme = value
	case "notifications":
		current.Notifications, err = strconv.ParseBool(value)
	case "auto-save":
		current.AutoSave, err = strconv.ParseBool(value)
	case "default-status":
		current.DefaultStatus = value
	case "items-per-page":
		current.ItemsPerPage, err = strconv.Atoi(value)
	case "export-format":
		current.ExportFormat = value
	case "language":
		current.Language = value
	case "backup-interval":
		current.BackupInterval, err = strconv.Atoi(value)
	default:
		return fmt.Errorf("unknown setting %q", name)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", name, err)
	}

	if !app.settings.Save(current) {
		return fmt.Errorf("save settings failed")
	}
	fmt.Printf("Set %s = %s\n", name, value)
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	app.settings.Reset()
	fmt.Println("Settings restored to defaults")
	return nil
}

func runTheme(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Println(app.settings.ThemeMode())
		return nil
	}

	mode := args[0]
	if mode != settings.ThemeLight && mode != settings.ThemeDark {
		return fmt.Errorf("invalid theme %q (valid: light, dark)", mode)
	}
	if !app.settings.SetThemeMode(mode) {
		return fmt.Errorf("save theme failed")
	}
	fmt.Printf("Theme set to %s\n", mode)
	return nil
}
