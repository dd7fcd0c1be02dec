package report

import (
	"encoding/json"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"b2mirror/pkg/b2"
)

func testReporter(fs afero.Fs) *Reporter {
	return NewReporter(fs, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBuildCountsActions(t *testing.T) {
	records := []b2.Record{
		{RemoteKey: "a.jpg", Action: b2.ActionUpload, Status: b2.StatusSuccess},
		{RemoteKey: "b.jpg", Action: b2.ActionUpload, Status: b2.StatusSuccess},
		{RemoteKey: "c.jpg", Action: b2.ActionUpdate, Status: b2.StatusSuccess},
		{RemoteKey: "d.jpg", Action: b2.ActionDelete, Status: b2.StatusSuccess},
		{RemoteKey: "e.jpg", Action: b2.ActionSkip, Status: b2.StatusFailed},
	}

	report := testReporter(afero.NewMemMapFs()).Build("sync", "bkt", records, nil, 2500*time.Millisecond)

	meta := report.RunMetadata
	assert.Equal(t, "sync", meta.Operation)
	assert.Equal(t, "bkt", meta.BucketName)
	assert.Equal(t, 5, meta.TotalFiles)
	assert.Equal(t, 2.5, meta.ExecutionTimeSeconds)
	assert.Equal(t, 2, meta.FilesUploaded)
	assert.Equal(t, 1, meta.FilesUpdated)
	assert.Equal(t, 1, meta.FilesDeleted)
	assert.Equal(t, 1, meta.FilesSkipped)
	assert.Equal(t, 1, meta.FilesFailed)
}

func TestBuildAddsFileSizes(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "in/a.jpg", []byte("12345"), 0644))
	records := []b2.Record{
		{LocalPath: "in/a.jpg", RemoteKey: "a.jpg", Action: b2.ActionUpload},
		{LocalPath: "in/missing.jpg", RemoteKey: "missing.jpg", Action: b2.ActionUpdate},
		{RemoteKey: "gone.jpg", Action: b2.ActionDelete},
	}

	report := testReporter(fs).Build("sync", "bkt", records, nil, time.Second)

	assert.Equal(t, int64(5), report.FilesProcessed[0].FileSizeBytes)
	assert.Zero(t, report.FilesProcessed[1].FileSizeBytes)
	assert.Zero(t, report.FilesProcessed[2].FileSizeBytes)

	// The caller's slice is never touched.
	assert.Zero(t, records[0].FileSizeBytes)
}

func TestBuildSkipsSizeForSkippedFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "in/same.jpg", []byte("123"), 0644))
	records := []b2.Record{
		{LocalPath: "in/same.jpg", RemoteKey: "same.jpg", Action: b2.ActionSkip},
	}

	report := testReporter(fs).Build("sync", "bkt", records, nil, time.Second)

	assert.Zero(t, report.FilesProcessed[0].FileSizeBytes)
}

func TestReportSerializesEmptyCollectionsAsArrays(t *testing.T) {
	report := testReporter(afero.NewMemMapFs()).Build("sync", "bkt", nil, nil, time.Second)

	data, err := json.Marshal(report)

	require.NoError(t, err)
	assert.Contains(t, string(data), `"files_processed":[]`)
	assert.Contains(t, string(data), `"errors":[]`)
}

func TestRecordSerialization(t *testing.T) {
	record := b2.Record{RemoteKey: "gone.jpg", Action: b2.ActionDelete, Status: b2.StatusSuccess}

	data, err := json.Marshal(record)

	require.NoError(t, err)
	// Deletes keep an explicit empty local_path; unset optionals disappear.
	assert.Contains(t, string(data), `"local_path":""`)
	assert.NotContains(t, string(data), "file_size_bytes")
	assert.NotContains(t, string(data), "file_count")
	assert.NotContains(t, string(data), "timestamp")
}

func TestCreateRunDir(t *testing.T) {
	fs := afero.NewMemMapFs()

	dir, err := testReporter(fs).CreateRunDir("out")

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^out[/\\]\d{8}_\d{6}$`), dir)

	ok, err := afero.DirExists(fs, dir)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWriteJSONNamesFileAfterOperation(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := testReporter(fs)
	report := r.Build("clean", "bkt", nil, nil, time.Second)

	path, err := r.WriteJSON("out", report)

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`\d{8}_\d{6}_clean_log\.json$`), path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	var decoded RunReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "clean", decoded.RunMetadata.Operation)
}

func TestWriteFailureMarkdownOnlyOnErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := testReporter(fs)

	path, err := r.WriteFailureMarkdown("out", "sync", nil)

	require.NoError(t, err)
	assert.Empty(t, path)

	ok, _ := afero.Exists(fs, "out/FAILURE.md")
	assert.False(t, ok)
}

func TestWriteFailureMarkdownTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := testReporter(fs)
	errs := []RunError{{
		File:         "sync_operation",
		ErrorType:    "B2SyncFailure",
		ErrorMessage: "connection reset",
		Timestamp:    time.Now().Format(time.RFC3339),
	}}

	path, err := r.WriteFailureMarkdown("out", "sync", errs)

	require.NoError(t, err)
	assert.Equal(t, "out/FAILURE.md", path)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# Sync Failure Report")
	assert.Contains(t, content, "**Operation**: sync")
	assert.Contains(t, content, "- **Failed Files**: 1")
	assert.Contains(t, content, "### sync_operation")
	assert.Contains(t, content, "- **Error**: connection reset")
	assert.Contains(t, content, "- **Type**: B2SyncFailure")
	assert.Contains(t, content, "## Next Steps")
}

func TestWriteFailureMarkdownFillsUnknowns(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := testReporter(fs)

	path, err := r.WriteFailureMarkdown("out", "sync", []RunError{{}})

	require.NoError(t, err)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "### Unknown")
	assert.Contains(t, string(data), "- **Error**: No details available")
	assert.Contains(t, string(data), "- **Type**: Unknown")
}
