// File: pkg/formatter/run_formatter.go
package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"b2mirror/internal/report"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Border(lipgloss.DoubleBorder()).Padding(0, 2)

var warnStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

// RunFormatter renders run reports for terminal display.
type RunFormatter struct{}

func NewRunFormatter() *RunFormatter {
	return &RunFormatter{}
}

// FormatRunSummary renders the post-run summary: a styled title followed
// by the per-action counts.
func (f *RunFormatter) FormatRunSummary(r *report.RunReport) string {
	meta := r.RunMetadata

	var sb strings.Builder
	title := fmt.Sprintf("%s summary: %s", capitalize(meta.Operation), meta.BucketName)
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")

	table := NewTable("Metric", "Value").
		AddRow("Total files", fmt.Sprintf("%d", meta.TotalFiles)).
		AddRow("Uploaded", fmt.Sprintf("%d", meta.FilesUploaded)).
		AddRow("Updated", fmt.Sprintf("%d", meta.FilesUpdated)).
		AddRow("Deleted", fmt.Sprintf("%d", meta.FilesDeleted)).
		AddRow("Skipped", fmt.Sprintf("%d", meta.FilesSkipped)).
		AddRow("Failed", fmt.Sprintf("%d", meta.FilesFailed)).
		AddRow("Execution time", fmt.Sprintf("%.2fs", meta.ExecutionTimeSeconds))
	sb.WriteString(table.String())

	if len(r.Errors) > 0 {
		sb.WriteString("\n")
		sb.WriteString(warnStyle.Render(fmt.Sprintf("%d errors recorded, see FAILURE.md", len(r.Errors))))
	}

	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
