// File: internal/flags/flags.go
package flags

// Centralized definitions for CLI flags used across the application

const (
	// Config points at an alternative configuration file. Without it the
	// tool reads the default path under USER-FILES/01.CONFIG.
	Config      = "config"
	ConfigShort = "c"

	// Verbose switches the logger to debug level
	Verbose      = "verbose"
	VerboseShort = "v"

	// DryRun previews an operation without touching the bucket
	DryRun = "dry-run"

	// Force bypasses the interactive confirmation prompt for destructive operations
	Force      = "force"
	ForceShort = "f"
)
