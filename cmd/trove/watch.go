// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// newWatchCommand creates the `trove watch` command.
func newWatchCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep catalogs indexed while their folders change",
		Long: `Index every static catalog, then watch the configured folders and
rescan the catalogs whose folders change. Press Ctrl+C to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := app.Catalogs(ctx)
			if err != nil {
				return err
			}
			roots := cat.WatchRoots()
			fmt.Fprintf(app.stdout, "%s %d folders\n", TitleStyle.Render("Watching"), len(roots))
			for _, r := range roots {
				fmt.Fprintf(app.stdout, "  %s %s\n", CmdStyle.Render(r.Path), VerboseStyle.Render(fmt.Sprintf("(depth %d)", r.Depth)))
			}
			if err := cat.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
