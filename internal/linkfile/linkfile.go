// File: internal/linkfile/linkfile.go
package linkfile

import (
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"b2mirror/pkg/b2"
)

// Writer materializes one .txt link artifact per remote file, mirroring the
// bucket's directory layout under the run directory.
type Writer struct {
	fs     afero.Fs
	logger *slog.Logger
}

func NewWriter(fs afero.Fs, logger *slog.Logger) *Writer {
	return &Writer{
		fs:     fs,
		logger: logger.With("component", "linkfile"),
	}
}

// WriteAll writes a link file for every pair and returns how many were
// created. A failing pair is logged and skipped, never aborting the batch.
// Keys sharing a directory and stem collapse into one file, last write
// wins.
func (w *Writer) WriteAll(outputDir string, pairs []b2.LinkPair) int {
	created := 0
	for _, pair := range pairs {
		if err := w.write(outputDir, pair); err != nil {
			w.logger.Error("Failed to create link file", "path", pair.Path, "error", err)
			continue
		}
		created++
	}

	w.logger.Info("Generated individual link files", "count", created, "dir", outputDir)
	return created
}

// The artifact holds exactly the URL with no trailing newline.
func (w *Writer) write(outputDir string, pair b2.LinkPair) error {
	// Bucket keys always use forward slashes.
	dir := path.Dir(pair.Path)
	target := outputDir
	if dir != "." {
		target = filepath.Join(outputDir, filepath.FromSlash(dir))
		if err := w.fs.MkdirAll(target, 0755); err != nil {
			return err
		}
	}

	base := path.Base(pair.Path)
	stem := strings.TrimSuffix(base, path.Ext(base))
	if stem == "" {
		// Dotfiles keep their full name.
		stem = base
	}

	linkPath := filepath.Join(target, stem+".txt")
	if err := afero.WriteFile(w.fs, linkPath, []byte(pair.URL), 0644); err != nil {
		return err
	}

	w.logger.Debug("Created link file", "path", linkPath)
	return nil
}

// FallbackPairs reconstructs download URLs straight from sync records for
// when the bucket listing produced nothing. Only upload and update records
// carry a file worth linking, and the fixed default endpoint stands in for
// the real one.
func FallbackPairs(records []b2.Record, bucket string) []b2.LinkPair {
	var pairs []b2.LinkPair
	for _, record := range records {
		if record.RemoteKey == "" {
			continue
		}
		if record.Action != b2.ActionUpload && record.Action != b2.ActionUpdate {
			continue
		}
		pairs = append(pairs, b2.LinkPair{
			URL:  b2.DownloadURL(b2.DefaultEndpoint, bucket, record.RemoteKey),
			Path: record.RemoteKey,
		})
	}

	return pairs
}
