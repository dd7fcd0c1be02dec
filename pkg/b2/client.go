// File: pkg/b2/client.go
package b2

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"b2mirror/internal/runner"
)

// Subprocess budgets. Sync runs under its own configurable budget; account
// calls are short, everything else gets the generous default.
const (
	defaultTimeout   = 30 * time.Minute
	authorizeTimeout = time.Minute
	accountTimeout   = 30 * time.Second
)

// Client drives the b2 command-line tool. All storage work is delegated to
// that tool; the client only builds argv vectors and interprets exit codes
// and output.
type Client struct {
	bin    string
	runner runner.Runner
	logger *slog.Logger
}

func NewClient(bin string, run runner.Runner, logger *slog.Logger) *Client {
	return &Client{
		bin:    bin,
		runner: run,
		logger: logger.With("component", "b2"),
	}
}

// SyncOptions carries everything needed to build one sync invocation.
type SyncOptions struct {
	InputDir        string
	Bucket          string
	Threads         int
	ExcludePatterns []string
	DryRun          bool
	Timeout         time.Duration
}

// Sync mirrors the input directory into the bucket. The raw Result is
// returned; callers parse stdout on success and report stderr on failure.
func (c *Client) Sync(ctx context.Context, opts SyncOptions) runner.Result {
	argv := []string{
		c.bin, "sync",
		"--threads", strconv.Itoa(opts.Threads),
		"--replace-newer",
		"--delete",
	}
	for _, pattern := range opts.ExcludePatterns {
		argv = append(argv, "--exclude-regex", pattern)
	}
	argv = append(argv, opts.InputDir, "b2://"+opts.Bucket+"/")
	if opts.DryRun {
		argv = append(argv, "--dry-run")
	}

	c.logger.Info("Executing sync command", "command", strings.Join(argv, " "))

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return c.runner.Run(ctx, argv, timeout)
}

// VerifyBucketAccess checks that the bucket exists and is reachable with
// the current authorization.
func (c *Client) VerifyBucketAccess(ctx context.Context, bucket string) error {
	res := c.runner.Run(ctx, []string{c.bin, "ls", "b2://" + bucket}, defaultTimeout)
	if res.Code != 0 {
		c.logger.Error("Failed to access bucket", "bucket", bucket, "stderr", res.Stderr)
		return fmt.Errorf("%w: bucket %q: %s", ErrBucketAccess, bucket, strings.TrimSpace(res.Stderr))
	}

	return nil
}

// CountFiles returns the number of files in the bucket, counted from the
// long listing.
func (c *Client) CountFiles(ctx context.Context, bucket string) (int, error) {
	res := c.runner.Run(ctx, []string{c.bin, "ls", "--long", "b2://" + bucket}, defaultTimeout)
	if res.Code != 0 {
		c.logger.Error("Failed to list bucket contents", "stderr", res.Stderr)
		return 0, fmt.Errorf("%w: listing bucket %q: %s", ErrBucketAccess, bucket, strings.TrimSpace(res.Stderr))
	}

	count := 0
	for _, line := range strings.Split(res.Stdout, "\n") {
		if strings.TrimSpace(line) != "" && !strings.HasPrefix(line, "--") {
			count++
		}
	}

	return count, nil
}

// RemoveAll deletes every file version in the bucket.
func (c *Client) RemoveAll(ctx context.Context, bucket string) error {
	argv := []string{c.bin, "rm", "--versions", "--recursive", "b2://" + bucket}
	c.logger.Info("Executing clean command", "command", strings.Join(argv, " "))

	res := c.runner.Run(ctx, argv, defaultTimeout)
	if res.Code != 0 {
		return fmt.Errorf("b2 rm failed with exit code %d: %s", res.Code, strings.TrimSpace(res.Stderr))
	}

	return nil
}

// CancelUnfinishedLargeFiles aborts any dangling large-file uploads left in
// the bucket. Best-effort, a failure is not reported.
func (c *Client) CancelUnfinishedLargeFiles(ctx context.Context, bucket string) {
	res := c.runner.Run(ctx, []string{c.bin, "cancel-all-unfinished-large-files", bucket}, defaultTimeout)
	if res.Code == 0 {
		c.logger.Info("Cleaned up unfinished large files")
	}
}

// Authorize logs the CLI into the account with the given application key.
func (c *Client) Authorize(ctx context.Context, keyID, applicationKey string) error {
	res := c.runner.Run(ctx, []string{c.bin, "account", "authorize", keyID, applicationKey}, authorizeTimeout)
	if res.Code != 0 {
		c.logger.Error("B2 authorization failed", "stderr", res.Stderr)
		return fmt.Errorf("b2 authorization failed with exit code %d", res.Code)
	}

	return nil
}

// ClearAccount drops the CLI's cached authorization so the next authorize
// starts from a clean slate. Best-effort: there may be nothing to clear.
func (c *Client) ClearAccount(ctx context.Context) {
	res := c.runner.Run(ctx, []string{c.bin, "account", "clear"}, accountTimeout)
	if res.Code != 0 {
		c.logger.Debug("Account clear returned non-zero", "code", res.Code)
	}
}

// VerifyAuthorization reports whether the CLI currently holds a working
// authorization.
func (c *Client) VerifyAuthorization(ctx context.Context) bool {
	res := c.runner.Run(ctx, []string{c.bin, "account", "get"}, accountTimeout)
	return res.Code == 0
}
