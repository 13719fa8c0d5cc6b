// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trove-launcher/trove/internal/config"
)

// newConfigCommand creates the `trove config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage trove configuration",
		Long: `Manage trove configuration.

Configuration is stored in:
  - Linux: ~/.config/trove/config.cue
  - macOS: ~/Library/Application Support/trove/config.cue
  - Windows: %APPDATA%\trove\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, existed, err := config.FilePath(app.loadOptions())
			if err != nil {
				return err
			}
			if existed {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			if path, err = config.CreateDefaultConfig(app.loadOptions()); err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, exists, err := config.FilePath(app.loadOptions())
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			if !exists {
				fmt.Fprintln(app.stderr, SubtitleStyle.Render("(file does not exist, using defaults)"))
			}
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	cfg, err := app.LoadConfig(cmd.Context())
	if err != nil {
		return &configError{err: err}
	}

	path, exists, err := config.FilePath(app.loadOptions())
	if err != nil {
		return err
	}
	source := path
	if !exists {
		source = "(using defaults)"
	}
	fmt.Fprintf(app.stdout, "// source: %s\n\n", source)
	fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
	return nil
}
