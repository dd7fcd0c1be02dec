package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"b2mirror/internal/report"
)

func TestTableAlignsColumns(t *testing.T) {
	table := NewTable("Metric", "Value").
		AddRow("Total files", "12").
		AddRow("Up", "3")

	rendered := table.String()
	lines := strings.Split(rendered, "\n")

	assert.Contains(t, lines[1], "| Metric")
	assert.Contains(t, rendered, "| Total files | 12")
	// Every line is the same width.
	for _, line := range lines[1:] {
		assert.Len(t, line, len(lines[0]))
	}
}

func TestTableEmptyHeaders(t *testing.T) {
	assert.Empty(t, NewTable().String())
}

func TestFormatRunSummary(t *testing.T) {
	r := &report.RunReport{
		RunMetadata: report.RunMetadata{
			Operation:            "sync",
			BucketName:           "my-bucket",
			TotalFiles:           3,
			FilesUploaded:        1,
			FilesSkipped:         2,
			ExecutionTimeSeconds: 1.5,
		},
	}

	out := NewRunFormatter().FormatRunSummary(r)

	assert.Contains(t, out, "Sync summary: my-bucket")
	assert.Contains(t, out, "Total files")
	assert.Contains(t, out, "1.50s")
	assert.NotContains(t, out, "FAILURE.md")
}

func TestFormatRunSummaryMentionsErrors(t *testing.T) {
	r := &report.RunReport{
		RunMetadata: report.RunMetadata{Operation: "sync", BucketName: "bkt"},
		Errors:      []report.RunError{{File: "sync_operation"}},
	}

	out := NewRunFormatter().FormatRunSummary(r)

	assert.Contains(t, out, "FAILURE.md")
}
