// File: internal/logger/logger.go
package logger

import (
	"log/slog"
	"os"
)

// Builds the application logger and installs it as the slog default.
// Logs go to stderr; stdout is reserved for summaries and prompts.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler)

	slog.SetDefault(logger)
	return logger
}
