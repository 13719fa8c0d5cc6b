// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	trove "github.com/trove-launcher/trove/internal/app"
	"github.com/trove-launcher/trove/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trove",
		Short: "Browse and launch files, applications and places",
		Long: TitleStyle.Render("trove") + SubtitleStyle.Render(" - Browse and launch files, applications and places") + `

trove indexes your configured folders, installed applications, bookmarked
places and recent documents into catalogs, and lets you list, browse and
act on their items from the command line.

` + SubtitleStyle.Render("Examples:") + `
  trove list                     List everything in all catalogs
  trove list --catalog places    List one catalog
  trove catalogs                 Show catalogs and their cache state
  trove browse ~/Documents       List a folder
  trove describe notes.txt       Show an item and its actions
  trove run notes.txt --op 1     Apply the second action to an item
  trove config init              Create a default configuration`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is $HOME/.config/trove/config.cue)")

	rootCmd.AddCommand(
		newListCommand(app),
		newCatalogsCommand(app),
		newBrowseCommand(app),
		newDescribeCommand(app),
		newRunCommand(app),
		newRescanCommand(app),
		newWatchCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute runs the trove command line. It is called by main.main.
func Execute() {
	app := NewApp(Dependencies{})
	err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return
	}
	if !errors.Is(err, context.Canceled) {
		if app.Verbose() {
			fmt.Fprintln(app.stderr, formatErrorForDisplay(err, true))
		}
		app.explain(app.stderr, err)
	}
	os.Exit(int(exitCodeFor(err)))
}

// explain writes the long-form guidance for err, when there is some.
func (a *App) explain(w io.Writer, err error) {
	iss := classify(err)
	if iss == nil {
		return
	}
	rendered, renderErr := iss.Render(a.stylePath())
	if renderErr != nil {
		a.newLogger().Debug("failed to render guidance", "error", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}

// classify extends issue.Classify with the errors of the catalog registry
// and the guides attached to actionable errors.
func classify(err error) *issue.Issue {
	var (
		cfgErr *configError
		ae     *issue.ActionableError
	)
	switch {
	case errors.As(err, &cfgErr):
		return issue.Get(issue.ConfigLoadFailedId)
	case errors.Is(err, trove.ErrCatalogNotFound):
		return issue.Get(issue.CatalogNotFoundId)
	case errors.As(err, &ae) && ae.Guide() != nil:
		return ae.Guide()
	default:
		return issue.Classify(err)
	}
}

// formatErrorForDisplay formats an error for user display.
// An ActionableError is formatted with its suggestions; in verbose mode the
// full error chain is shown.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
