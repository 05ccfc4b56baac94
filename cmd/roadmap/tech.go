package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"techroadmap/internal/ui"
	"techroadmap/storage"
	"techroadmap/tech"
)

// roadmap add
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a technology to the roadmap",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var (
	addDescription string
	addStatus      string
	addDeadline    string
	addTags        []string
	addNotes       string
	addPriority    int
	addForce       bool
)

// roadmap list
var listTechCmd = &cobra.Command{
	Use:   "list",
	Short: "List technologies in display order",
	RunE:  runListTech,
}

var (
	listStatus string
	listSearch string
	listJSON   bool
)

// roadmap show
var showCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about technologies",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

var showJSON bool

// roadmap update
var updateCmd = &cobra.Command{
	Use:   "update <id>...",
	Short: "Update one or more technologies",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUpdate,
}

var (
	updateTitle         string
	updateDescription   string
	updateStatus        string
	updateDeadline      string
	updateClearDeadline bool
	updateTags          []string
	updateNotes         string
	updatePriority      int
)

// roadmap status
var statusCmd = &cobra.Command{
	Use:   "status <status> [<id>...]",
	Short: "Set the status of one or more technologies",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStatus,
}

var statusAll bool

// roadmap start
var startCmd = &cobra.Command{
	Use:   "start <id>...",
	Short: "Mark technologies as in progress",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatuses(string(tech.StatusInProgress), args)
	},
}

// roadmap done
var doneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark technologies as completed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatuses(string(tech.StatusCompleted), args)
	},
}

// roadmap flag
var flagCmd = &cobra.Command{
	Use:   "flag <id>...",
	Short: "Toggle the priority flag on technologies",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFlag,
}

// roadmap delete
var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete technologies from the roadmap",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

var deleteYes bool

// roadmap random
var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Pick a random technology to work on",
	RunE:  runRandom,
}

// roadmap resources
var resourcesCmd = &cobra.Command{
	Use:   "resources <id>",
	Short: "Suggest study resources for a technology",
	Args:  cobra.ExactArgs(1),
	RunE:  runResources,
}

// roadmap reset
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the collection with the default data set",
	RunE:  runReset,
}

var resetYes bool

// roadmap export
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the collection as a JSON array",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

// roadmap import
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import technologies from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var importYes bool

func init() {
	rootCmd.AddCommand(addCmd, listTechCmd, showCmd, updateCmd, statusCmd,
		startCmd, doneCmd, flagCmd, deleteCmd, randomCmd, resourcesCmd,
		resetCmd, exportCmd, importCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Description")
	addCmd.Flags().StringVarP(&addStatus, "status", "s", "", "Initial status (not-started, in-progress, completed)")
	addCmd.Flags().StringVar(&addDeadline, "deadline", "", "Target date (YYYY-MM-DD)")
	addCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "Tags (repeatable)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Notes")
	addCmd.Flags().IntVarP(&addPriority, "priority", "p", 0, "Priority (0-2)")
	addCmd.Flags().BoolVar(&addForce, "force", false, "Skip the near-duplicate title check")

	listTechCmd.Flags().StringVar(&listStatus, "status", tech.FilterAll, "Filter by status")
	listTechCmd.Flags().StringVar(&listSearch, "search", "", "Filter by title or description substring")
	listTechCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "New description")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "New status")
	updateCmd.Flags().StringVar(&updateDeadline, "deadline", "", "New target date (YYYY-MM-DD)")
	updateCmd.Flags().BoolVar(&updateClearDeadline, "clear-deadline", false, "Remove the target date")
	updateCmd.Flags().StringSliceVar(&updateTags, "tag", nil, "Replace tags (repeatable)")
	updateCmd.Flags().StringVar(&updateNotes, "notes", "", "New notes")
	updateCmd.Flags().IntVar(&updatePriority, "priority", 0, "New priority (0-2)")

	statusCmd.Flags().BoolVar(&statusAll, "all", false, "Apply to every technology")

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip confirmation")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip confirmation")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Skip confirmation")
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseDeadline(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline %q: expected YYYY-MM-DD", value)
	}
	return &parsed, nil
}

func formatValidationErrors(errs map[string]string) error {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var lines []string
	for _, field := range fields {
		lines = append(lines, fmt.Sprintf("%s: %s", field, errs[field]))
	}
	return fmt.Errorf("invalid technology:\n  %s", strings.Join(lines, "\n  "))
}

func runAdd(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	deadline, err := parseDeadline(addDeadline)
	if err != nil {
		return err
	}

	draft := tech.Draft{
		Title:       strings.TrimSpace(args[0]),
		Description: addDescription,
		Status:      tech.Status(addStatus),
		Deadline:    deadline,
		Tags:        addTags,
		Notes:       addNotes,
		Priority:    addPriority,
	}

	check := draft
	if check.Status == "" {
		check.Status = tech.StatusNotStarted
	}
	if errs := tech.ValidateForm(check, time.Now()); len(errs) > 0 {
		return formatValidationErrors(errs)
	}
	if !addForce {
		if errs := tech.ValidateDuplicate(app.repo.Raw(), draft.Title); len(errs) > 0 {
			return formatValidationErrors(errs)
		}
	}

	created := app.repo.Add(draft)
	fmt.Printf("Added technology %d: %s\n", created.ID, created.Title)
	return nil
}

func runListTech(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	techs := tech.FilterByStatus(app.repo.All(), listStatus)
	if listSearch != "" {
		techs = tech.Search(techs, listSearch)
	}

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(techs)
	}

	if len(techs) == 0 {
		fmt.Println("No technologies found")
		return nil
	}

	builder := ui.NewTableBuilder([]string{"ID", "TITLE", "STATUS", "DEADLINE", "TAGS", ""}, len(techs))
	now := time.Now()
	for _, t := range techs {
		overdue := t.HasDeadline() && t.Deadline.Before(now) && t.Status != tech.StatusCompleted
		builder.AddRow([]string{
			strconv.Itoa(t.ID),
			ui.TruncateTableCell(t.Title),
			ui.StatusLabel(t.Status),
			ui.DeadlineLabel(ui.FormatDate(t.Deadline), overdue),
			ui.TruncateTableCell(strings.Join(t.Tags, ", ")),
			ui.PriorityMarker(t.Priority),
		})
	}
	fmt.Print(builder.String())
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	var techs []tech.Technology
	for _, id := range ids {
		t, ok := app.repo.Get(id)
		if !ok {
			return fmt.Errorf("%w: %d", tech.ErrTechnologyNotFound, id)
		}
		techs = append(techs, t)
	}

	if showJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(techs)
	}

	for i, t := range techs {
		if i > 0 {
			fmt.Println()
		}
		printTechnology(t)
	}
	return nil
}

func printTechnology(t tech.Technology) {
	fmt.Printf("%d: %s%s\n", t.ID, t.Title, priorityMarkerSuffix(t.Priority))
	fmt.Printf("  Status:   %s\n", ui.StatusLabel(t.Status))
	if t.Description != "" {
		fmt.Printf("  About:    %s\n", t.Description)
	}
	fmt.Printf("  Deadline: %s\n", ui.FormatDate(t.Deadline))
	if len(t.Tags) > 0 {
		fmt.Printf("  Tags:     %s\n", strings.Join(t.Tags, ", "))
	}
	if t.Notes != "" {
		fmt.Printf("  Notes:    %s\n", t.Notes)
	}
	fmt.Printf("  Created:  %s\n", ui.Muted(t.CreatedAt.Format("2006-01-02")))
	if t.CompletedAt != nil {
		fmt.Printf("  Finished: %s\n", t.CompletedAt.Format("2006-01-02"))
	}
}

func priorityMarkerSuffix(priority int) string {
	marker := ui.PriorityMarker(priority)
	if marker == "" {
		return ""
	}
	return " " + marker
}

func runUpdate(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	patch := tech.Patch{}
	if cmd.Flags().Changed("title") {
		patch.Title = &updateTitle
	}
	if cmd.Flags().Changed("description") {
		patch.Description = &updateDescription
	}
	if cmd.Flags().Changed("status") {
		status := tech.Status(updateStatus)
		if !status.IsValid() {
			return fmt.Errorf("invalid status %q", updateStatus)
		}
		patch.Status = &status
	}
	if cmd.Flags().Changed("deadline") {
		deadline, err := parseDeadline(updateDeadline)
		if err != nil {
			return err
		}
		if deadline != nil && deadline.Before(time.Now()) {
			return formatValidationErrors(map[string]string{
				"deadline": "deadline cannot be in the past",
			})
		}
		patch.Deadline = deadline
	}
	if updateClearDeadline {
		patch.ClearDeadline = true
	}
	if cmd.Flags().Changed("tag") {
		patch.Tags = updateTags
	}
	if cmd.Flags().Changed("notes") {
		patch.Notes = &updateNotes
	}
	if cmd.Flags().Changed("priority") {
		patch.Priority = &updatePriority
	}

	for _, id := range ids {
		t, ok := app.repo.Get(id)
		if !ok {
			return fmt.Errorf("%w: %d", tech.ErrTechnologyNotFound, id)
		}
		app.repo.Update(id, patch)
		if updated, ok := app.repo.Get(id); ok {
			t = updated
		}
		fmt.Printf("Updated %d: %s\n", t.ID, t.Title)
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	if statusAll {
		status := tech.Status(args[0])
		if !status.IsValid() {
			return fmt.Errorf("invalid status %q (valid: %s)", args[0], strings.Join(statusNames(), ", "))
		}
		app, err := openApp()
		if err != nil {
			return err
		}
		app.repo.SetAllStatuses(status)
		fmt.Printf("Set %d technologies to %s\n", app.repo.Count(), status)
		return nil
	}
	if len(args) < 2 {
		return fmt.Errorf("expected at least one id (or --all)")
	}
	return setStatuses(args[0], args[1:])
}

func setStatuses(statusArg string, idArgs []string) error {
	status := tech.Status(statusArg)
	if !status.IsValid() {
		return fmt.Errorf("invalid status %q (valid: %s)", statusArg, strings.Join(statusNames(), ", "))
	}

	app, err := openApp()
	if err != nil {
		return err
	}

	ids, err := parseIDs(idArgs)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := app.repo.Get(id); !ok {
			return fmt.Errorf("%w: %d", tech.ErrTechnologyNotFound, id)
		}
	}

	app.repo.BulkSetStatus(ids, status)
	for _, id := range ids {
		if t, ok := app.repo.Get(id); ok {
			fmt.Printf("%s: %s\n", t.Status, t.Title)
		}
	}
	return nil
}

func statusNames() []string {
	statuses := tech.ValidStatuses()
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return names
}

func runFlag(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	for _, id := range ids {
		t, ok := app.repo.Get(id)
		if !ok {
			return fmt.Errorf("%w: %d", tech.ErrTechnologyNotFound, id)
		}
		flagged := t.Priority <= tech.PriorityNone
		app.repo.TogglePriority(id, flagged)
		if flagged {
			fmt.Printf("Flagged %d: %s\n", t.ID, t.Title)
		} else {
			fmt.Printf("Unflagged %d: %s\n", t.ID, t.Title)
		}
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	for _, id := range ids {
		t, ok := app.repo.Get(id)
		if !ok {
			return fmt.Errorf("%w: %d", tech.ErrTechnologyNotFound, id)
		}
		if !deleteYes && !confirm(fmt.Sprintf("Delete %q?", t.Title)) {
			continue
		}
		app.repo.Remove(id)
		fmt.Printf("Deleted %d: %s\n", t.ID, t.Title)
	}
	return nil
}

func runRandom(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	t, ok := app.repo.PickRandom()
	if !ok {
		return fmt.Errorf("roadmap is empty")
	}

	printTechnology(t)
	return nil
}

func runResources(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	resources, err := app.repo.ResourceSuggestions(cmd.Context(), ids[0])
	if err != nil {
		return err
	}

	for _, resource := range resources {
		fmt.Printf("- %s\n", resource)
	}
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	if !resetYes && !confirm("Replace the collection with the default data set?") {
		return nil
	}

	app.repo.ResetToDefault()
	fmt.Printf("Reset to %d default technologies\n", app.repo.Count())
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	data, err := app.repo.ExportJSON()
	if err != nil {
		return err
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		path = storage.ExportFileName(time.Now())
	}

	if path == "-" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Printf("Exported %d technologies to %s\n", app.repo.Count(), path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	if !importYes && !confirm("Importing replaces the current collection. Continue?") {
		return nil
	}

	count, err := app.repo.ImportDocument(data)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d technologies\n", count)
	return nil
}
