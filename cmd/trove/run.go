// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trove-launcher/trove/internal/issue"
	"github.com/trove-launcher/trove/pkg/catalog"
)

type runFlagValues struct {
	op     int
	format string
}

// newRunCommand creates the `trove run` command.
func newRunCommand(app *App) *cobra.Command {
	var flags runFlagValues
	runCmd := &cobra.Command{
		Use:   "run <path>",
		Short: "Apply an action to an item",
		Long: `Apply an action to an item. Without --op the default action runs.
Use 'trove describe' to see the actions an item offers and their indexes.

Actions that produce a catalog, such as browsing a folder, list it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, app, args[0], flags)
		},
	}
	runCmd.Flags().IntVar(&flags.op, "op", 0, "index of the action to apply")
	runCmd.Flags().StringVarP(&flags.format, "format", "f", string(formatText), "output format for produced catalogs: text or json")
	return runCmd
}

func runOperation(cmd *cobra.Command, app *App, path string, flags runFlagValues) error {
	format, err := parseFormat(flags.format, formatText, formatJSON)
	if err != nil {
		return err
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

	ops := item.Operations()
	if flags.op < 0 || flags.op >= len(ops) {
		return usageError("%q has %d actions, --op must be between 0 and %d", item.Name(), len(ops), len(ops)-1)
	}
	op := ops[flags.op]

	nav := catalog.NewNavigator(cat.Cache(), cat.Root())
	out, err := nav.Activate(ctx, item, op)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation(fmt.Sprintf("apply %q", op.Name())).
			WithResource(item.Name()).
			WithSuggestion("Run 'trove describe' to list the actions this item offers").
			Wrap(err).
			BuildError()
	}

	if out.Kind() == catalog.OutcomeEffect {
		app.newLogger().Debug("applied action", "action", op.Name(), "item", item.Name())
		if format == formatText {
			fmt.Fprintf(app.stdout, "%s %s: %s\n", SuccessStyle.Render("✓"), op.Name(), item.Name())
		}
		return nil
	}

	items, errs, err := navItems(ctx, cat, nav)
	if err != nil {
		return err
	}
	if format == formatText {
		fmt.Fprintln(app.stdout, TitleStyle.Render(nav.Current().Name()))
	}
	return writeItems(app.stdout, app.stderr, items, errs, format)
}
