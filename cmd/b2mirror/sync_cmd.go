// File: cmd/b2mirror/sync_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"b2mirror/internal/flags"
)

type syncFlags struct {
	dryRun bool
}

func newSyncCmd() *cobra.Command {
	cmdFlags := syncFlags{}

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror the input directory to the B2 bucket",
		Long: `Runs b2 sync against the configured bucket, mirroring the input directory
exactly: new files are uploaded, changed files are replaced and files removed
locally are deleted remotely. Afterwards a link file is written for every
mirrored file along with a JSON log of the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, cmdFlags.dryRun)
		},
	}
	syncCmd.Flags().BoolVar(&cmdFlags.dryRun, flags.DryRun, false, "Show what would be transferred without making changes")
	return syncCmd
}

// runSync backs both the sync subcommand and a bare invocation of the tool.
func runSync(cmd *cobra.Command, dryRun bool) error {
	app, err := appFromContext(cmd.Context())
	if err != nil {
		return err
	}

	runReport, err := app.SyncService.Sync(cmd.Context(), dryRun)
	if err != nil {
		return err
	}

	if runReport != nil {
		fmt.Println(app.RunFormatter.FormatRunSummary(runReport))
	}
	return nil
}
