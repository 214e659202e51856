// Package display provides terminal output formatting for feedsim.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/nammasuttu/feedsim/internal/event"
)

const separator = " • "

// TerminalFormatter formats canonical events for terminal display.
type TerminalFormatter struct{}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{}
}

// FormatEvent formats a single event for display.
func (f *TerminalFormatter) FormatEvent(e event.Event) string {
	var lines []string

	// Header: [CATEGORY] Title
	header := fmt.Sprintf("[%s] %s", strings.ToUpper(e.Category), e.Title)
	lines = append(lines, header)

	// Location and timestamp
	meta := fmt.Sprintf("  at %s%s%s", e.Location, separator, f.FormatTimestamp(e.Timestamp))
	lines = append(lines, meta)

	if e.Description != "" {
		lines = append(lines, "  "+f.TruncateText(e.Description, 100))
	}

	if e.Latitude != nil && e.Longitude != nil {
		lines = append(lines, fmt.Sprintf("  (%.4f, %.4f)", *e.Latitude, *e.Longitude))
	}

	return strings.Join(lines, "\n") + "\n"
}

// FormatPage formats one page of a platform's pool for display.
func (f *TerminalFormatter) FormatPage(platform string, events []event.Event) string {
	if len(events) == 0 {
		return fmt.Sprintf("No events for %s.\n", platform)
	}

	var formatted []string
	for _, e := range events {
		formatted = append(formatted, f.FormatEvent(e))
	}

	header := fmt.Sprintf("=== %s (%d events) ===\n\n", platform, len(events))
	return header + strings.Join(formatted, "\n---\n\n")
}

// FormatTimestamp formats a timestamp as relative time.
func (f *TerminalFormatter) FormatTimestamp(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return pluralize(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralize(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return pluralize(int(diff.Hours()/24), "day")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// pluralize returns "N unit ago" or "N units ago" based on count.
func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// TruncateText truncates text to maxLen, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return text[:maxLen-3] + "..."
}
