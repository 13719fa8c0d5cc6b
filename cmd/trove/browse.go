// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	trove "github.com/trove-launcher/trove/internal/app"
	"github.com/trove-launcher/trove/internal/config"
	"github.com/trove-launcher/trove/pkg/catalog"
	"github.com/trove-launcher/trove/pkg/types"
)

type browseFlagValues struct {
	up     int
	format string
}

// newBrowseCommand creates the `trove browse` command.
func newBrowseCommand(app *App) *cobra.Command {
	var flags browseFlagValues
	browseCmd := &cobra.Command{
		Use:   "browse <path>",
		Short: "List the contents of a folder",
		Long: `List the contents of a folder. With --up, the listing starts that many
levels above the folder.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, app, args[0], flags)
		},
	}
	browseCmd.Flags().IntVar(&flags.up, "up", 0, "number of parent levels to go up")
	browseCmd.Flags().StringVarP(&flags.format, "format", "f", string(formatText), "output format: text or json")
	return browseCmd
}

func runBrowse(cmd *cobra.Command, app *App, path string, flags browseFlagValues) error {
	format, err := parseFormat(flags.format, formatText, formatJSON)
	if err != nil {
		return err
	}
	if flags.up < 0 {
		return usageError("--up must not be negative, got %d", flags.up)
	}
	ctx := cmd.Context()
	cat, err := app.Catalogs(ctx)
	if err != nil {
		return err
	}

	item, err := itemForArg(cat, path)
	if err != nil {
		return err
	}
	content, err := item.ContentProvider()
	if err != nil {
		return err
	}

	nav := catalog.NewNavigator(cat.Cache(), content)
	for range flags.up {
		if err := nav.Up(); err != nil {
			return err
		}
	}
	items, errs, err := navItems(ctx, cat, nav)
	if err != nil {
		return err
	}
	if format == formatText {
		fmt.Fprintln(app.stdout, TitleStyle.Render(nav.Current().Description()))
	}
	return writeItems(app.stdout, app.stderr, items, errs, format)
}

// itemForArg expands a command line path and returns its item.
func itemForArg(cat *trove.App, arg string) (catalog.Item, error) {
	path, err := config.ExpandPath(types.FilesystemPath(arg))
	if err != nil {
		return nil, err
	}
	return cat.ItemForPath(path)
}

func navItems(ctx context.Context, cat *trove.App, nav *catalog.Navigator) ([]catalog.Item, []error, error) {
	seq, err := nav.Items(cat.Context(ctx))
	if err != nil {
		return nil, nil, err
	}
	items, errs := catalog.Collect(seq)
	return items, errs, nil
}
