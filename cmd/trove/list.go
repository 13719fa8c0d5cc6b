// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trove-launcher/trove/pkg/catalog"
)

type (
	listFlagValues struct {
		refresh bool
		catalog string
		format  string
	}

	// catalogView is the serialized form of a catalog.
	catalogView struct {
		Name        string `json:"name" toml:"name"`
		Description string `json:"description,omitempty" toml:"description,omitempty"`
		ID          string `json:"id" toml:"id"`
		Dynamic     bool   `json:"dynamic" toml:"dynamic"`
		State       string `json:"state" toml:"state"`
	}

	catalogListing struct {
		Catalogs []catalogView `json:"catalogs" toml:"catalogs"`
	}
)

// newListCommand creates the `trove list` command.
func newListCommand(app *App) *cobra.Command {
	var flags listFlagValues
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the items of a catalog",
		Long: `List the items of a catalog. Without --catalog, every catalog is listed
together with the catalog of catalogs.

A catalog is selected by its canonical id or, case-insensitively, by name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, flags)
		},
	}
	listCmd.Flags().BoolVar(&flags.refresh, "refresh", false, "rescan static catalogs instead of using cached items")
	listCmd.Flags().StringVarP(&flags.catalog, "catalog", "c", "", "catalog to list (id or name)")
	listCmd.Flags().StringVarP(&flags.format, "format", "f", string(formatText), "output format: text or json")
	return listCmd
}

func runList(cmd *cobra.Command, app *App, flags listFlagValues) error {
	format, err := parseFormat(flags.format, formatText, formatJSON)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	cat, err := app.Catalogs(ctx)
	if err != nil {
		return err
	}

	provider := cat.Root()
	if flags.catalog != "" {
		if provider, err = cat.Find(flags.catalog); err != nil {
			return err
		}
	}

	items, errs, err := cat.Enumerate(ctx, provider, flags.refresh)
	if err != nil {
		return err
	}
	return writeItems(app.stdout, app.stderr, items, errs, format)
}

// newCatalogsCommand creates the `trove catalogs` command.
func newCatalogsCommand(app *App) *cobra.Command {
	var format string
	catalogsCmd := &cobra.Command{
		Use:   "catalogs",
		Short: "Show the configured catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format, formatText, formatJSON)
			if err != nil {
				return err
			}
			return showCatalogs(cmd, app, f)
		},
	}
	catalogsCmd.Flags().StringVarP(&format, "format", "f", string(formatText), "output format: text or json")
	return catalogsCmd
}

func showCatalogs(cmd *cobra.Command, app *App, format outputFormat) error {
	cat, err := app.Catalogs(cmd.Context())
	if err != nil {
		return err
	}

	cache := cat.Cache()
	var out catalogListing
	for _, p := range cat.Catalogs().Children() {
		out.Catalogs = append(out.Catalogs, catalogView{
			Name:        p.Name(),
			Description: p.Description(),
			ID:          p.CanonicalID(),
			Dynamic:     p.IsDynamic(),
			State:       cache.State(p).String(),
		})
	}
	if format != formatText {
		return encode(app.stdout, out, format)
	}

	if len(out.Catalogs) == 0 {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("(no catalogs configured)"))
		return nil
	}
	for _, c := range out.Catalogs {
		fmt.Fprintf(app.stdout, "%s %s\n", CmdStyle.Render(c.Name), SubtitleStyle.Render(c.Description))
		fmt.Fprintf(app.stdout, "  %s %s\n", VerboseStyle.Render("id:"), c.ID)
		fmt.Fprintf(app.stdout, "  %s %s\n", VerboseStyle.Render("state:"), stateLabel(c))
	}
	return nil
}

func stateLabel(c catalogView) string {
	if c.Dynamic {
		return "dynamic"
	}
	if c.State == catalog.StateCached.String() {
		return SuccessStyle.Render(c.State)
	}
	return c.State
}
