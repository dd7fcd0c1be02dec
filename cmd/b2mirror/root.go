// File: cmd/b2mirror/root.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"b2mirror/internal/config"
	"b2mirror/internal/flags"
)

type contextKey string

const appKey contextKey = "appContainer"

// appFromContext retrieves the shared application container placed on the
// command context by the root command's PersistentPreRunE.
func appFromContext(ctx context.Context) (*appContainer, error) {
	app, ok := ctx.Value(appKey).(*appContainer)
	if !ok || app == nil {
		return nil, errors.New("application container not initialized")
	}
	return app, nil
}

type rootFlags struct {
	configPath string
	verbose    bool
	dryRun     bool
}

func newRootCmd() *cobra.Command {
	cmdFlags := rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "b2mirror",
		Short: "b2mirror mirrors a local directory to a Backblaze B2 bucket.",
		Long: `b2mirror mirrors the contents of a local input directory to a Backblaze B2
bucket using the b2 command-line tool, authenticating with credentials stored
in 1Password. Every run writes a timestamped output directory with public
download links for the mirrored files and a JSON log of the run.

Running b2mirror without a subcommand performs a sync.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// init-config must be able to run before a configuration file exists
			if cmd.Name() == initConfigName {
				return nil
			}

			app, err := newApp(cmdFlags.configPath, cmdFlags.verbose)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, app))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, cmdFlags.dryRun)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cmdFlags.configPath, flags.Config, flags.ConfigShort, "", "Path to the configuration file (default "+config.DefaultConfigPath+")")
	rootCmd.PersistentFlags().BoolVarP(&cmdFlags.verbose, flags.Verbose, flags.VerboseShort, false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&cmdFlags.dryRun, flags.DryRun, false, "Show what would be transferred without making changes")

	rootCmd.AddCommand(newSyncCmd(), newCleanCmd(), newInitConfigCmd())
	return rootCmd
}

func Execute(ctx context.Context) {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
