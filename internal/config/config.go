// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/trove-launcher/trove/internal/issue"
	"github.com/trove-launcher/trove/pkg/cueutil"
	"github.com/trove-launcher/trove/pkg/types"
)

const (
	// AppName is the application name.
	AppName = "trove"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

var (
	//go:embed config_schema.cue
	configSchema string

	configDef = sync.OnceValue(func() *cueutil.Schema {
		return cueutil.MustCompile(configSchema, "#Config")
	})
)

// ConfigDir returns the trove directory below the user configuration
// directory: $XDG_CONFIG_HOME on Unix, %AppData% on Windows and
// ~/Library/Application Support on macOS.
//
//nolint:revive // config.ConfigDir reads better than config.Dir at call sites
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// FilePath returns the config file selected by opts and whether it exists.
func FilePath(opts LoadOptions) (string, bool, error) {
	if opts.ConfigFilePath != "" {
		p := string(opts.ConfigFilePath)
		return p, fileExists(p), nil
	}
	cfgDir := string(opts.ConfigDirPath)
	if cfgDir == "" {
		var err error
		if cfgDir, err = ConfigDir(); err != nil {
			return "", false, err
		}
	}
	p := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	return p, fileExists(p), nil
}

// ExpandPath expands a leading "~" to the user's home directory and
// cleans the result.
func ExpandPath(p types.FilesystemPath) (string, error) {
	s := string(p)
	if p.HomeRelative() {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		s = filepath.Join(home, strings.TrimPrefix(s, "~"))
	}
	return filepath.Clean(s), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}
	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	path, exists, err := FilePath(opts)
	if err != nil {
		return nil, "", err
	}
	resolvedPath := ""
	switch {
	case exists:
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'trove config show' to see the effective configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
		resolvedPath = path
	case opts.ConfigFilePath != "":
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Run 'trove config init' to create a default configuration").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(fmt.Errorf("config file not found: %s", path)).
			BuildError()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateTrees(cfg.Trees); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("List each tree path once; raise its depth instead of repeating it").
			Wrap(err).
			BuildError()
	}
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("trees", defaults.Trees)
	v.SetDefault("directories", defaults.Directories)
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("applications.enabled", defaults.Applications.Enabled)
	v.SetDefault("places.enabled", defaults.Places.Enabled)
	v.SetDefault("recents.enabled", defaults.Recents.Enabled)
	v.SetDefault("recents.max_days", defaults.Recents.MaxDays)
	v.SetDefault("cache.max_catalogs", defaults.Cache.MaxCatalogs)
	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMS)
	v.SetDefault("terminal.command", defaults.Terminal.Command)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
}

// loadCUEIntoViper validates the file at path against #Config and merges
// the fields it sets over the defaults already in v.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Config fields are optional, so validation is not concrete.
	values, err := cueutil.Decode[map[string]any](configDef(), data,
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// validateTrees rejects tree paths listed more than once.
func validateTrees(trees []TreeEntry) error {
	seen := make(map[string]int, len(trees))
	for i, entry := range trees {
		clean := filepath.Clean(string(entry.Path))
		if first, ok := seen[clean]; ok {
			return fmt.Errorf("trees[%d]: duplicate path %q (same as trees[%d])", i, entry.Path, first)
		}
		seen[clean] = i
	}
	return nil
}

// fileExists reports whether path is a regular file or symlink to one.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to the config
// directory unless a config file already exists. It returns the file path.
func CreateDefaultConfig(opts LoadOptions) (string, error) {
	path, exists, err := FilePath(opts)
	if err != nil {
		return "", err
	}
	if exists {
		return path, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// GenerateCUE renders cfg as a config file that Load accepts.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// trove configuration file\n\n")

	sb.WriteString("trees: [\n")
	for _, t := range cfg.Trees {
		fmt.Fprintf(&sb, "\t{path: %q, depth: %d},\n", t.Path, t.Depth)
	}
	sb.WriteString("]\n")

	writeList(&sb, "", "directories", paths(cfg.Directories))
	writeList(&sb, "", "exclude", cfg.Exclude)

	sb.WriteString("\napplications: {\n")
	fmt.Fprintf(&sb, "\tenabled: %v\n", cfg.Applications.Enabled)
	if len(cfg.Applications.DataDirs) > 0 {
		writeList(&sb, "\t", "data_dirs", paths(cfg.Applications.DataDirs))
	}
	sb.WriteString("}\n")

	sb.WriteString("\nplaces: {\n")
	fmt.Fprintf(&sb, "\tenabled: %v\n", cfg.Places.Enabled)
	if len(cfg.Places.Files) > 0 {
		writeList(&sb, "\t", "files", paths(cfg.Places.Files))
	}
	sb.WriteString("}\n")

	sb.WriteString("\nrecents: {\n")
	fmt.Fprintf(&sb, "\tenabled: %v\n", cfg.Recents.Enabled)
	if cfg.Recents.File != "" {
		fmt.Fprintf(&sb, "\tfile: %q\n", cfg.Recents.File)
	}
	fmt.Fprintf(&sb, "\tmax_days: %d\n", cfg.Recents.MaxDays)
	sb.WriteString("}\n")

	fmt.Fprintf(&sb, "\ncache: {\n\tmax_catalogs: %d\n}\n", cfg.Cache.MaxCatalogs)
	fmt.Fprintf(&sb, "\nwatch: {\n\tdebounce_ms: %d\n}\n", cfg.Watch.DebounceMS)
	fmt.Fprintf(&sb, "\nterminal: {\n\tcommand: %q\n}\n", cfg.Terminal.Command)

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	if cfg.UI.IconTheme != "" {
		fmt.Fprintf(&sb, "\ticon_theme: %q\n", cfg.UI.IconTheme)
	}
	sb.WriteString("}\n")

	return sb.String()
}

func writeList(sb *strings.Builder, indent, key string, values []string) {
	if indent == "" {
		sb.WriteString("\n")
	}
	if len(values) == 0 {
		fmt.Fprintf(sb, "%s%s: []\n", indent, key)
		return
	}
	fmt.Fprintf(sb, "%s%s: [\n", indent, key)
	for _, v := range values {
		fmt.Fprintf(sb, "%s\t%q,\n", indent, v)
	}
	fmt.Fprintf(sb, "%s]\n", indent)
}

func paths(ps []types.FilesystemPath) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}
