// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trove-launcher/trove/pkg/catalog"
)

// newRescanCommand creates the `trove rescan` command.
func newRescanCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rescan <catalog>",
		Short: "Force a catalog to be indexed again",
		Long: `Force a catalog to be indexed again. The catalog is selected by its
canonical id or, case-insensitively, by name. Dynamic catalogs are never
cached, so rescanning one does nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := app.Catalogs(ctx)
			if err != nil {
				return err
			}
			p, err := cat.Find(args[0])
			if err != nil {
				return err
			}
			if _, err := catalog.Apply(cat.Context(ctx), catalog.Rescan{}, catalog.NewProviderItem(p)); err != nil {
				return err
			}
			if p.IsDynamic() {
				fmt.Fprintf(app.stdout, "%s %s is dynamic and never cached; nothing to rescan\n",
					WarningStyle.Render("!"), CmdStyle.Render(p.Name()))
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Rescanned %s (%d catalogs cached)\n",
				SuccessStyle.Render("✓"), CmdStyle.Render(p.Name()), cat.Cache().Len())
			return nil
		},
	}
}
