package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/insightboard/internal/client"
	"github.com/phrazzld/insightboard/internal/domain"
)

const (
	// chartWidth is the number of cells in the completion bar.
	chartWidth = 40

	// maxTextWidth is the widest task text shown in the table.
	maxTextWidth = 60

	createdLayout = "2006-01-02 15:04"
)

// RenderTasks writes tasks as a table, one row per task, in the order given.
func RenderTasks(w io.Writer, tasks []*domain.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks yet.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-4s  %-6s  %-16s  %s\n", "ID", "DONE", "PRIO", "CREATED", "TEXT")
	for _, t := range tasks {
		fmt.Fprintf(w, "%-36s  %-4s  %-6s  %-16s  %s\n",
			t.ID,
			checkbox(t.Status),
			t.Priority,
			t.CreatedAt.Local().Format(createdLayout),
			displayText(t.Text))
	}
}

// RenderSummary writes a completion bar followed by the counts.
//
//	[################........................]  40.0% done
//	2 of 5 completed, 3 pending
func RenderSummary(w io.Writer, s domain.Summary) {
	filled := 0
	if s.Total > 0 {
		filled = s.Completed * chartWidth / s.Total
	}
	bar := strings.Repeat("#", filled) + strings.Repeat(".", chartWidth-filled)

	fmt.Fprintf(w, "[%s] %5.1f%% done\n", bar, s.CompletedPercent)
	fmt.Fprintf(w, "%d of %d completed, %d pending\n", s.Completed, s.Total, s.Pending)
}

// RenderCreated reports the outcome of a transcript submission.
func RenderCreated(w io.Writer, res *client.CreateResult) {
	fmt.Fprintf(w, "Extracted %d task(s) via %s extraction.\n", len(res.Tasks), sourceLabel(res.Source))
	if len(res.Tasks) > 0 {
		RenderTasks(w, res.Tasks)
	}
	if len(res.Unpersisted) > 0 {
		fmt.Fprintf(w, "warning: %d task(s) could not be saved: %s\n",
			len(res.Unpersisted), strings.Join(res.Unpersisted, ", "))
	}
}

func checkbox(s domain.Status) string {
	if s == domain.StatusDone {
		return "[x]"
	}
	return "[ ]"
}

func sourceLabel(source string) string {
	if source == "" {
		return "unknown"
	}
	return source
}

// displayText flattens newlines and shortens long text to one table cell.
func displayText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}

	runes := []rune(text)
	if len(runes) > maxTextWidth {
		return string(runes[:maxTextWidth-3]) + "..."
	}
	return text
}
