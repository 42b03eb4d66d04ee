// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/api"
	"taskdeck/internal/view"
)

// FormatTask formats a task header line.
// Format: "{N:>4}  {TITLE}  [{K}/{T}] {P}% {STATUS}\n"
func FormatTask(w io.Writer, num int, task api.Task) {
	title := normalizeTitle(task.Title)
	p := view.TaskProgress(task)
	fmt.Fprintf(w, "%4d  %s  [%d/%d] %d%% %s\n",
		num, title, p.Completed, p.Total, p.Percent, view.StatusFor(p.Percent))
}

// FormatDescription formats a task description line under the header.
func FormatDescription(w io.Writer, description string) {
	fmt.Fprintf(w, "      %s\n", normalizeTitle(description))
}

// FormatChecklistItem formats one checklist item line.
// Format: "      [x] {N}  {TEXT}\n" with [ ] for open items.
func FormatChecklistItem(w io.Writer, num int, item api.ChecklistItem) {
	box := "[ ]"
	if item.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "      %s %d  %s\n", box, num, normalizeTitle(item.Text))
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
