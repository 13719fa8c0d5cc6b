// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDescribeCommand creates the `trove describe` command.
func newDescribeCommand(app *App) *cobra.Command {
	var format string
	describeCmd := &cobra.Command{
		Use:   "describe <path>",
		Short: "Show an item and the actions it offers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormat(format, formatText, formatJSON, formatTOML)
			if err != nil {
				return err
			}
			return runDescribe(cmd, app, args[0], f)
		},
	}
	describeCmd.Flags().StringVarP(&format, "format", "f", string(formatText), "output format: text, json or toml")
	return describeCmd
}

func runDescribe(cmd *cobra.Command, app *App, path string, format outputFormat) error {
	cat, err := app.Catalogs(cmd.Context())
	if err != nil {
		return err
	}
	item, err := itemForArg(cat, path)
	if err != nil {
		return err
	}

	view := newItemView(item, cat.Icons(), true)
	if format != formatText {
		return encode(app.stdout, view, format)
	}

	w := app.stdout
	fmt.Fprintln(w, TitleStyle.Render(view.Name))
	if view.Description != "" {
		fmt.Fprintln(w, SubtitleStyle.Render(view.Description))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("kind"), view.Kind)
	if view.Icon != "" {
		fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("icon"), view.Icon)
	}
	if view.IconFile != "" {
		fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("icon file"), view.IconFile)
	}
	fmt.Fprintf(w, "%s: %v\n", CmdStyle.Render("browsable"), view.HasContent)
	fmt.Fprintln(w)
	fmt.Fprintln(w, SubtitleStyle.Render("Actions:"))
	for _, op := range view.Operations {
		line := indexStyle.Render(fmt.Sprint(op.Index)) + " " + CmdStyle.Render(op.Name)
		if op.Description != "" {
			line += "  " + SubtitleStyle.Render(op.Description)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
