// File: cmd/b2mirror/clean_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"b2mirror/internal/flags"
)

type cleanFlags struct {
	force  bool
	dryRun bool
}

func newCleanCmd() *cobra.Command {
	cmdFlags := cleanFlags{}

	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete every file from the B2 bucket",
		Long: `Removes every file version from the configured bucket and cancels any
unfinished large file uploads. Asks for confirmation first unless --force is
given. A JSON log of the deletion is written to the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd.Context())
			if err != nil {
				return err
			}

			runReport, err := app.SyncService.Clean(cmd.Context(), cmdFlags.force, cmdFlags.dryRun)
			if err != nil {
				return err
			}

			if runReport != nil {
				fmt.Println(app.RunFormatter.FormatRunSummary(runReport))
			}
			return nil
		},
	}
	cleanCmd.Flags().BoolVarP(&cmdFlags.force, flags.Force, flags.ForceShort, false, "Skip the confirmation prompt")
	cleanCmd.Flags().BoolVar(&cmdFlags.dryRun, flags.DryRun, false, "Show what would be deleted without making changes")
	return cleanCmd
}
