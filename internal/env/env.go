// File: internal/env/env.go
package env

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrEnvironment reports that required tools or directories are missing.
var ErrEnvironment = errors.New("environment validation failed")

// Env describes the external pieces a run depends on: the two CLI tools
// and the working directories. It is built once at startup and passed by
// value.
type Env struct {
	B2Bin     string
	OpBin     string
	InputDir  string
	OutputDir string
}

// Discover locates the b2 and op binaries on PATH and records the
// configured directories. A missing binary leaves its field empty for
// Validate to report.
func Discover(inputDir, outputDir string) Env {
	e := Env{InputDir: inputDir, OutputDir: outputDir}

	if path, err := exec.LookPath("b2"); err == nil {
		e.B2Bin = path
	}
	if path, err := exec.LookPath("op"); err == nil {
		e.OpBin = path
	}

	return e
}

// Validate checks every requirement and reports all failures at once
// instead of stopping at the first. The output directory is created if
// absent; a missing input directory is an error since there would be
// nothing to mirror.
func (e Env) Validate() error {
	var problems []string

	if e.B2Bin == "" {
		problems = append(problems, "b2 CLI tool not found in PATH, please install it first")
	}
	if e.OpBin == "" {
		problems = append(problems, "1Password CLI tool (op) not found in PATH, please install it first")
	}
	if _, err := os.Stat(e.InputDir); err != nil {
		problems = append(problems, fmt.Sprintf("input directory %q does not exist", e.InputDir))
	}
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		problems = append(problems, fmt.Sprintf("cannot create output directory %q: %v", e.OutputDir, err))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrEnvironment, strings.Join(problems, "\n  - "))
	}

	return nil
}
