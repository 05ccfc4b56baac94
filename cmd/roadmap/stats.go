package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"techroadmap/internal/ui"
	"techroadmap/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress statistics",
	RunE:  runStats,
}

var (
	statsTags     bool
	statsMonths   bool
	statsTimeline bool
	statsJSON     bool
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsTags, "tags", false, "Per-tag completion rollup")
	statsCmd.Flags().BoolVar(&statsMonths, "months", false, "Deadlines per month")
	statsCmd.Flags().BoolVar(&statsTimeline, "timeline", false, "Cumulative deadline timeline")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	techs := app.repo.Raw()

	if statsJSON {
		report := struct {
			Summary         stats.Summary         `json:"summary"`
			Tags            []stats.TagStat       `json:"tags"`
			Months          []stats.MonthBucket   `json:"months"`
			Timeline        []stats.TimelinePoint `json:"timeline"`
			AverageDaysDone int                   `json:"averageDaysToComplete"`
		}{
			Summary:         stats.Summarize(techs),
			Tags:            stats.ByTag(techs),
			Months:          stats.ByMonth(techs),
			Timeline:        stats.Timeline(techs),
			AverageDaysDone: stats.AverageDuration(techs),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	switch {
	case statsTags:
		printTagStats(stats.ByTag(techs))
	case statsMonths:
		printMonthStats(stats.ByMonth(techs))
	case statsTimeline:
		printTimeline(stats.Timeline(techs))
	default:
		printSummary(stats.Summarize(techs), stats.AverageDuration(techs))
	}
	return nil
}

func printSummary(summary stats.Summary, averageDays int) {
	fmt.Printf("Total:       %d\n", summary.Total)
	fmt.Printf("Completed:   %d\n", summary.Completed)
	fmt.Printf("In progress: %d\n", summary.InProgress)
	fmt.Printf("Not started: %d\n", summary.NotStarted)
	fmt.Printf("Progress:    %d%%\n", summary.ProgressPercentage)
	if averageDays > 0 {
		fmt.Printf("Avg. days to complete: %d\n", averageDays)
	}
}

func printTagStats(tagStats []stats.TagStat) {
	if len(tagStats) == 0 {
		fmt.Println("No tags yet")
		return
	}

	builder := ui.NewTableBuilder([]string{"TAG", "TOTAL", "DONE", "DOING", "TODO", "RATE"}, len(tagStats))
	for _, stat := range tagStats {
		builder.AddRow([]string{
			stat.Tag,
			strconv.Itoa(stat.Total),
			strconv.Itoa(stat.Completed),
			strconv.Itoa(stat.InProgress),
			strconv.Itoa(stat.NotStarted),
			fmt.Sprintf("%d%%", stat.CompletionRate),
		})
	}
	fmt.Print(builder.String())
}

func printMonthStats(buckets []stats.MonthBucket) {
	if len(buckets) == 0 {
		fmt.Println("No deadlines set")
		return
	}

	builder := ui.NewTableBuilder([]string{"MONTH", "TOTAL", "DONE", "DOING", "TODO"}, len(buckets))
	for _, bucket := range buckets {
		builder.AddRow([]string{
			bucket.Label,
			strconv.Itoa(bucket.Total),
			strconv.Itoa(bucket.Completed),
			strconv.Itoa(bucket.InProgress),
			strconv.Itoa(bucket.NotStarted),
		})
	}
	fmt.Print(builder.String())
}

func printTimeline(points []stats.TimelinePoint) {
	if len(points) == 0 {
		fmt.Println("No deadlines set")
		return
	}

	builder := ui.NewTableBuilder([]string{"DEADLINE", "TECHNOLOGY", "DONE SO FAR", "OF ROADMAP"}, len(points))
	for _, point := range points {
		builder.AddRow([]string{
			point.Date.Format("2006-01-02"),
			point.Technology,
			strconv.Itoa(point.Cumulative),
			fmt.Sprintf("%d%%", point.Percentage),
		})
	}
	fmt.Print(builder.String())
}
