// File: internal/report/report.go
package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"b2mirror/pkg/b2"
)

const timestampLayout = "20060102_150405"

// RunMetadata summarizes one run. Field order is the serialization order
// downstream log consumers rely on.
type RunMetadata struct {
	Timestamp            string  `json:"timestamp"`
	Operation            string  `json:"operation"`
	TotalFiles           int     `json:"total_files"`
	ExecutionTimeSeconds float64 `json:"execution_time_seconds"`
	FilesUploaded        int     `json:"files_uploaded"`
	FilesUpdated         int     `json:"files_updated"`
	FilesDeleted         int     `json:"files_deleted"`
	FilesSkipped         int     `json:"files_skipped"`
	FilesFailed          int     `json:"files_failed"`
	BucketName           string  `json:"bucket_name"`
}

// RunError is one failure entry in the log and the failure report.
type RunError struct {
	File         string `json:"file"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
	Timestamp    string `json:"timestamp"`
}

// RunReport is the full JSON log document for one run.
type RunReport struct {
	RunMetadata    RunMetadata `json:"run_metadata"`
	FilesProcessed []b2.Record `json:"files_processed"`
	Errors         []RunError  `json:"errors"`
}

// Reporter builds run reports and writes the log artifacts.
type Reporter struct {
	fs     afero.Fs
	logger *slog.Logger
}

func NewReporter(fs afero.Fs, logger *slog.Logger) *Reporter {
	return &Reporter{
		fs:     fs,
		logger: logger.With("component", "report"),
	}
}

// Build assembles the report for a finished operation: per-action counts,
// and a best-effort file size for upload and update records whose local
// file still exists. The caller's record slice is never modified. Empty
// collections marshal as [], never null.
func (r *Reporter) Build(operation, bucket string, records []b2.Record, errs []RunError, elapsed time.Duration) *RunReport {
	processed := make([]b2.Record, len(records))
	copy(processed, records)

	meta := RunMetadata{
		Timestamp:            time.Now().Format(time.RFC3339),
		Operation:            operation,
		TotalFiles:           len(processed),
		ExecutionTimeSeconds: elapsed.Seconds(),
		BucketName:           bucket,
	}

	for i := range processed {
		switch processed[i].Action {
		case b2.ActionUpload:
			meta.FilesUploaded++
		case b2.ActionUpdate:
			meta.FilesUpdated++
		case b2.ActionDelete:
			meta.FilesDeleted++
		case b2.ActionSkip:
			meta.FilesSkipped++
		}
		if processed[i].Status == b2.StatusFailed {
			meta.FilesFailed++
		}

		if processed[i].LocalPath == "" {
			continue
		}
		if processed[i].Action != b2.ActionUpload && processed[i].Action != b2.ActionUpdate {
			continue
		}
		if info, err := r.fs.Stat(processed[i].LocalPath); err == nil {
			processed[i].FileSizeBytes = info.Size()
		}
	}

	if errs == nil {
		errs = []RunError{}
	}

	return &RunReport{
		RunMetadata:    meta,
		FilesProcessed: processed,
		Errors:         errs,
	}
}

// CreateRunDir makes the timestamped directory all of this run's artifacts
// land in.
func (r *Reporter) CreateRunDir(root string) (string, error) {
	dir := filepath.Join(root, time.Now().Format(timestampLayout))
	if err := r.fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory %s: %w", dir, err)
	}

	r.logger.Info("Created output directory", "dir", dir)
	return dir, nil
}

// WriteJSON writes the indented log file into dir and returns its path.
func (r *Reporter) WriteJSON(dir string, report *RunReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding run log: %w", err)
	}

	name := fmt.Sprintf("%s_%s_log.json", time.Now().Format(timestampLayout), report.RunMetadata.Operation)
	logPath := filepath.Join(dir, name)
	if err := afero.WriteFile(r.fs, logPath, data, 0644); err != nil {
		return "", fmt.Errorf("error writing run log: %w", err)
	}

	r.logger.Info("Generated JSON log", "path", logPath)
	return logPath, nil
}

// WriteFailureMarkdown writes the human-readable FAILURE.md next to the
// JSON log. No errors means no file is written.
func (r *Reporter) WriteFailureMarkdown(dir, operation string, errs []RunError) (string, error) {
	if len(errs) == 0 {
		return "", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Sync Failure Report\n")
	fmt.Fprintf(&b, "**Date**: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Operation**: %s\n\n", operation)

	fmt.Fprintf(&b, "## Summary\n")
	fmt.Fprintf(&b, "- **Failed Files**: %d\n\n", len(errs))

	fmt.Fprintf(&b, "## Failed Files\n")
	for _, e := range errs {
		file := e.File
		if file == "" {
			file = "Unknown"
		}
		errType := e.ErrorType
		if errType == "" {
			errType = "Unknown"
		}
		message := e.ErrorMessage
		if message == "" {
			message = "No details available"
		}

		fmt.Fprintf(&b, "### %s\n", file)
		fmt.Fprintf(&b, "- **Error**: %s\n", message)
		fmt.Fprintf(&b, "- **Type**: %s\n\n", errType)
	}

	fmt.Fprintf(&b, "## Next Steps\n")
	fmt.Fprintf(&b, "1. Fix the identified issues with failed files\n")
	fmt.Fprintf(&b, "2. Re-run the sync script to update changes\n")

	failurePath := filepath.Join(dir, "FAILURE.md")
	if err := afero.WriteFile(r.fs, failurePath, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("error writing failure report: %w", err)
	}

	r.logger.Warn("Generated failure report", "path", failurePath)
	return failurePath, nil
}
