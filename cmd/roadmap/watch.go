package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"techroadmap/storage"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow changes made by other sessions",
	RunE:  runWatch,
}

var watchInterval time.Duration

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", storage.DefaultPollInterval, "Poll interval")
}

func runWatch(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	interval := watchInterval
	if configured, err := app.cfg.PollInterval(); err != nil {
		return err
	} else if configured > 0 && !cmd.Flags().Changed("interval") {
		interval = configured
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := storage.NewWatcher(app.gateway.Store(), interval, app.logger)
	fmt.Printf("Watching for changes every %s (ctrl-c to stop)\n", interval)
	watcher.Run(ctx, func() {
		app.repo.Reload()
		summaryLine(app)
	})
	return nil
}

func summaryLine(app *app) {
	counts := map[string]int{}
	for _, t := range app.repo.Raw() {
		counts[string(t.Status)]++
	}
	fmt.Printf("[%s] changed: %d total (%d in-progress, %d completed)\n",
		time.Now().Format("15:04:05"), app.repo.Count(),
		counts["in-progress"], counts["completed"])
}
