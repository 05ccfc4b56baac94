package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"techroadmap/tech"
)

var (
	notStartedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	inProgressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	completedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	flaggedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	overdueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// StatusLabel renders a status name with its color when output is a
// terminal.
func StatusLabel(status tech.Status) string {
	label := string(status)
	if !ansiEnabled() {
		return label
	}
	switch status {
	case tech.StatusInProgress:
		return inProgressStyle.Render(label)
	case tech.StatusCompleted:
		return completedStyle.Render(label)
	default:
		return notStartedStyle.Render(label)
	}
}

// PriorityMarker renders a flag for prioritized records.
func PriorityMarker(priority int) string {
	if priority <= tech.PriorityNone {
		return ""
	}
	if !ansiEnabled() {
		return "!"
	}
	return flaggedStyle.Render("!")
}

// DeadlineLabel renders a deadline date, highlighted when overdue.
func DeadlineLabel(label string, overdue bool) string {
	if !overdue || !ansiEnabled() {
		return label
	}
	return overdueStyle.Render(label)
}

// Muted renders de-emphasized text.
func Muted(value string) string {
	if !ansiEnabled() {
		return value
	}
	return mutedStyle.Render(value)
}

func ansiEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
