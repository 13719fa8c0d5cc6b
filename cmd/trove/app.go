// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	trove "github.com/trove-launcher/trove/internal/app"
	"github.com/trove-launcher/trove/internal/config"
	"github.com/trove-launcher/trove/pkg/sources"
	"github.com/trove-launcher/trove/pkg/types"
)

type (
	// App is the composition root for the CLI layer. Command handlers load
	// configuration and catalogs through it.
	App struct {
		Config    config.Provider
		configDir types.FilesystemPath
		launcher  sources.Launcher
		now       func() time.Time
		stdout    io.Writer
		stderr    io.Writer
		flags     rootFlagValues

		once    sync.Once
		cfg     *config.Config
		catalog *trove.App
		err     error
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// ConfigDir replaces the platform configuration directory.
		ConfigDir types.FilesystemPath
		// Launcher replaces the process launcher.
		Launcher sources.Launcher
		Now      func() time.Time
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// rootFlagValues holds the persistent flags of the root command.
	rootFlagValues struct {
		verbose    bool
		configPath string
	}

	// configError marks a failure to load the configuration.
	configError struct {
		err error
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &App{
		Config:    deps.Config,
		configDir: deps.ConfigDir,
		launcher:  deps.Launcher,
		now:       deps.Now,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(a.flags.configPath),
		ConfigDirPath:  a.configDir,
	}
}

// LoadConfig loads the configuration selected by the --config flag.
func (a *App) LoadConfig(ctx context.Context) (*config.Config, error) {
	return a.Config.Load(ctx, a.loadOptions())
}

// Catalogs loads the configuration and assembles the catalogs. The result
// is built once per invocation.
func (a *App) Catalogs(ctx context.Context) (*trove.App, error) {
	a.once.Do(func() {
		a.cfg, a.err = a.LoadConfig(ctx)
		if a.err != nil {
			a.err = &configError{err: a.err}
			return
		}
		a.catalog, a.err = trove.New(trove.Options{
			Config:   a.cfg,
			Logger:   a.newLogger(),
			Now:      a.now,
			Launcher: a.launcher,
		})
	})
	return a.catalog, a.err
}

// Verbose reports whether verbose output was requested by flag or config.
func (a *App) Verbose() bool {
	return a.flags.verbose || (a.cfg != nil && a.cfg.UI.Verbose)
}

func (a *App) newLogger() *log.Logger {
	level := log.InfoLevel
	if a.Verbose() {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// stylePath is the glamour style matching the configured color scheme.
func (a *App) stylePath() string {
	if a.cfg == nil || a.cfg.UI.ColorScheme == "" {
		return string(config.ColorSchemeAuto)
	}
	return string(a.cfg.UI.ColorScheme)
}

func (e *configError) Error() string { return e.err.Error() }

func (e *configError) Unwrap() error { return e.err }
