// File: internal/service/sync_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"b2mirror/internal/auth"
	"b2mirror/internal/config"
	"b2mirror/internal/env"
	"b2mirror/internal/linkfile"
	"b2mirror/internal/report"
	"b2mirror/internal/runner"
	"b2mirror/internal/ui/prompt"
	"b2mirror/pkg/b2"
)

// SyncService orchestrates the mirror and clean operations end to end:
// environment checks, authentication, the external sync tool, and all run
// artifacts.
type SyncService struct {
	cfg           *config.Config
	environment   env.Env
	authenticator *auth.Authenticator
	client        *b2.Client
	links         *linkfile.Writer
	reporter      *report.Reporter
	prompter      prompt.Prompter
	logger        *slog.Logger
}

func NewSyncService(
	cfg *config.Config,
	environment env.Env,
	authenticator *auth.Authenticator,
	client *b2.Client,
	links *linkfile.Writer,
	reporter *report.Reporter,
	prompter prompt.Prompter,
	logger *slog.Logger,
) *SyncService {
	return &SyncService{
		cfg:           cfg,
		environment:   environment,
		authenticator: authenticator,
		client:        client,
		links:         links,
		reporter:      reporter,
		prompter:      prompter,
		logger:        logger.With("service", "SyncService"),
	}
}

// Sync mirrors the input directory to the bucket and produces the run
// artifacts: link files, the JSON log and, on failure, FAILURE.md. The
// returned report is nil only when an error is returned.
func (s *SyncService) Sync(ctx context.Context, dryRun bool) (*report.RunReport, error) {
	start := time.Now()
	s.logger.Info("Starting B2 sync operation")

	if err := s.environment.Validate(); err != nil {
		return nil, err
	}

	creds, err := s.authenticator.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	bucket := s.authenticator.ResolveBucket(creds)

	runDir, err := s.reporter.CreateRunDir(s.environment.OutputDir)
	if err != nil {
		return nil, err
	}

	if dryRun {
		s.logger.Info("DRY RUN MODE - No actual changes will be made")
	}

	res := s.client.Sync(ctx, b2.SyncOptions{
		InputDir:        s.environment.InputDir,
		Bucket:          bucket,
		Threads:         s.cfg.B2.SyncThreads,
		ExcludePatterns: s.cfg.Processing.ExcludePatterns,
		DryRun:          dryRun,
		Timeout:         s.cfg.SyncTimeout(),
	})

	elapsed := time.Since(start)

	if res.Code != 0 {
		return nil, s.reportSyncFailure(runDir, bucket, res, elapsed)
	}

	records := b2.ParseSyncOutput(res.Stdout)

	pairs := s.client.ResolveDownloadURLs(ctx, bucket)
	if len(pairs) == 0 {
		s.logger.Warn("No URLs found, using fallback method")
		pairs = linkfile.FallbackPairs(records, bucket)
	}
	s.links.WriteAll(runDir, pairs)

	runReport := s.reporter.Build("sync", bucket, records, nil, elapsed)
	if _, err := s.reporter.WriteJSON(runDir, runReport); err != nil {
		return nil, err
	}

	s.logger.Info("Sync completed successfully",
		"execution_time", fmt.Sprintf("%.2fs", elapsed.Seconds()),
		"files_processed", len(records),
		"output_dir", runDir)

	return runReport, nil
}

// Clean removes every file from the bucket after confirmation. A nil
// report with a nil error means nothing was deleted: dry run, or the user
// declined.
func (s *SyncService) Clean(ctx context.Context, force, dryRun bool) (*report.RunReport, error) {
	start := time.Now()
	s.logger.Info("Starting B2 clean operation")

	if err := s.environment.Validate(); err != nil {
		return nil, err
	}

	creds, err := s.authenticator.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	bucket := s.authenticator.ResolveBucket(creds)

	runDir, err := s.reporter.CreateRunDir(s.environment.OutputDir)
	if err != nil {
		return nil, err
	}

	if err := s.client.VerifyBucketAccess(ctx, bucket); err != nil {
		return nil, err
	}

	fileCount, err := s.client.CountFiles(ctx, bucket)
	if err != nil {
		return nil, err
	}

	if dryRun {
		s.logger.Info("DRY RUN: Would delete all files from bucket", "count", fileCount, "bucket", bucket)
		return nil, nil
	}

	if !force {
		message := fmt.Sprintf("\nWARNING: This will permanently delete %d files from bucket '%s'", fileCount, bucket)
		confirmed, err := s.prompter.Confirm(message)
		if err != nil {
			return nil, fmt.Errorf("error reading confirmation: %w", err)
		}
		if !confirmed {
			s.logger.Info("Clean operation cancelled by user")
			return nil, nil
		}
	}

	if err := s.client.RemoveAll(ctx, bucket); err != nil {
		s.logger.Error("B2 clean failed", "error", err)
		return nil, err
	}

	s.client.CancelUnfinishedLargeFiles(ctx, bucket)

	elapsed := time.Since(start)
	records := []b2.Record{{
		RemoteKey: "bucket://" + bucket,
		Action:    b2.ActionDeleteAll,
		Status:    b2.StatusSuccess,
		FileCount: fileCount,
	}}

	runReport := s.reporter.Build("clean", bucket, records, nil, elapsed)
	// The synthetic record stands for every deleted file.
	runReport.RunMetadata.FilesDeleted = fileCount

	if _, err := s.reporter.WriteJSON(runDir, runReport); err != nil {
		return nil, err
	}

	s.logger.Info("Clean completed successfully",
		"execution_time", fmt.Sprintf("%.2fs", elapsed.Seconds()),
		"files_deleted", fileCount,
		"output_dir", runDir)

	return runReport, nil
}

// Writes the failure artifacts for a sync that exited non-zero. The run
// log carries one synthetic error entry describing the exit.
func (s *SyncService) reportSyncFailure(runDir, bucket string, res runner.Result, elapsed time.Duration) error {
	s.logger.Error("B2 sync failed", "code", res.Code, "stderr", res.Stderr)

	errs := []report.RunError{{
		File:         "sync_operation",
		ErrorType:    "B2SyncFailure",
		ErrorMessage: res.Stderr,
		Timestamp:    time.Now().Format(time.RFC3339),
	}}

	failed := s.reporter.Build("sync", bucket, nil, errs, elapsed)
	if _, err := s.reporter.WriteJSON(runDir, failed); err != nil {
		s.logger.Error("Failed to write run log", "error", err)
	}
	if _, err := s.reporter.WriteFailureMarkdown(runDir, "sync", errs); err != nil {
		s.logger.Error("Failed to write failure report", "error", err)
	}

	return fmt.Errorf("b2 sync failed with exit code %d", res.Code)
}
