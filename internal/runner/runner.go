// File: internal/runner/runner.go
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// FailureExitCode is reported when a command could not run at all: the
// binary was missing, the timeout expired, or the run was interrupted.
// Callers treat it like any other non-zero exit.
const FailureExitCode = -1

// Result carries everything a subprocess produced. Nothing in this package
// returns an error; callers inspect Code.
type Result struct {
	Code   int
	Stdout string
	Stderr string
}

// Runner executes an external command and reports its outcome.
// The abstraction allows tests to inject a scripted runner.
type Runner interface {
	Run(ctx context.Context, argv []string, timeout time.Duration) Result
}

// ShellRunner executes commands through os/exec. A timeout of zero means
// the command is bounded only by the caller's context.
type ShellRunner struct{}

func NewShellRunner() *ShellRunner {
	return &ShellRunner{}
}

var _ Runner = (*ShellRunner)(nil)

func (r *ShellRunner) Run(ctx context.Context, argv []string, timeout time.Duration) Result {
	if len(argv) == 0 {
		return Result{Code: FailureExitCode, Stderr: "empty command"}
	}

	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return Result{
			Code:   FailureExitCode,
			Stdout: stdout.String(),
			Stderr: fmt.Sprintf("command timed out after %s: %s", timeout, strings.Join(argv, " ")),
		}
	}
	if errors.Is(runCtx.Err(), context.Canceled) {
		return Result{
			Code:   FailureExitCode,
			Stdout: stdout.String(),
			Stderr: fmt.Sprintf("command interrupted: %s", strings.Join(argv, " ")),
		}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{Code: exitErr.ExitCode(), Stdout: stdout.String(), Stderr: stderr.String()}
		}
		// The process never started (binary missing, not executable).
		return Result{Code: FailureExitCode, Stdout: stdout.String(), Stderr: err.Error()}
	}

	return Result{Code: 0, Stdout: stdout.String(), Stderr: stderr.String()}
}
