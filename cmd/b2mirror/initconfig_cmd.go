// File: cmd/b2mirror/initconfig_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"b2mirror/internal/config"
	"b2mirror/internal/flags"
)

const initConfigName = "init-config"

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   initConfigName,
		Short: "Write a default configuration file",
		Long: `Writes a configuration file populated with defaults to the path given by
--config, or to ` + config.DefaultConfigPath + ` when no path is given.
Refuses to overwrite an existing file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString(flags.Config)
			if err != nil {
				return err
			}
			if path == "" {
				path = config.DefaultConfigPath
			}

			if err := config.WriteDefault(path); err != nil {
				return fmt.Errorf("error writing default configuration: %w", err)
			}

			fmt.Printf("Default configuration written to %s\n", path)
			fmt.Println("Edit it to set your bucket name and 1Password item before running a sync.")
			return nil
		},
	}
}
