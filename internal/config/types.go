// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/trove-launcher/trove/pkg/types"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// MaxTreeDepth is the deepest a file tree may be listed.
	MaxTreeDepth = 16
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidTreeEntry is the sentinel error wrapped by InvalidTreeEntryError.
	ErrInvalidTreeEntry = errors.New("invalid tree entry")
	// ErrInvalidCacheConfig is the sentinel error wrapped by InvalidCacheConfigError.
	ErrInvalidCacheConfig = errors.New("invalid cache config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidTreeEntryError is returned when a TreeEntry has invalid fields.
	InvalidTreeEntryError struct {
		Path   types.FilesystemPath
		Reason string
	}

	// InvalidCacheConfigError is returned when a CacheConfig is out of range.
	InvalidCacheConfigError struct {
		MaxCatalogs int
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// TreeEntry indexes the files below Path, down to Depth directory levels.
	TreeEntry struct {
		Path  types.FilesystemPath `json:"path" mapstructure:"path"`
		Depth int                  `json:"depth" mapstructure:"depth"`
	}

	// Config holds the application configuration.
	Config struct {
		// Trees are indexed recursively, one catalog per entry.
		Trees []TreeEntry `json:"trees" mapstructure:"trees"`
		// Directories are indexed one level deep, one catalog per directory.
		Directories []types.FilesystemPath `json:"directories" mapstructure:"directories"`
		// Exclude holds glob patterns of paths never indexed.
		Exclude []string `json:"exclude" mapstructure:"exclude"`
		// Applications configures the installed applications catalog.
		Applications ApplicationsConfig `json:"applications" mapstructure:"applications"`
		// Places configures the bookmarked places catalog.
		Places PlacesConfig `json:"places" mapstructure:"places"`
		// Recents configures the recent documents catalog.
		Recents RecentsConfig `json:"recents" mapstructure:"recents"`
		// Cache bounds the snapshot cache.
		Cache CacheConfig `json:"cache" mapstructure:"cache"`
		// Watch configures `trove watch`.
		Watch WatchConfig `json:"watch" mapstructure:"watch"`
		// Terminal configures how programs run in a terminal.
		Terminal TerminalConfig `json:"terminal" mapstructure:"terminal"`
		// UI configures the command line output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// ApplicationsConfig configures the installed applications catalog.
	ApplicationsConfig struct {
		Enabled bool `json:"enabled" mapstructure:"enabled"`
		// DataDirs overrides the XDG data directories when non-empty.
		DataDirs []types.FilesystemPath `json:"data_dirs,omitempty" mapstructure:"data_dirs"`
	}

	// PlacesConfig configures the bookmarked places catalog.
	PlacesConfig struct {
		Enabled bool `json:"enabled" mapstructure:"enabled"`
		// Files overrides the GTK bookmark files when non-empty.
		Files []types.FilesystemPath `json:"files,omitempty" mapstructure:"files"`
	}

	// RecentsConfig configures the recent documents catalog.
	RecentsConfig struct {
		Enabled bool `json:"enabled" mapstructure:"enabled"`
		// File overrides the recently-used.xbel location when set.
		File types.FilesystemPath `json:"file,omitempty" mapstructure:"file"`
		// MaxDays drops documents not used for longer.
		MaxDays int `json:"max_days" mapstructure:"max_days"`
	}

	// CacheConfig bounds the snapshot cache.
	CacheConfig struct {
		MaxCatalogs int `json:"max_catalogs" mapstructure:"max_catalogs"`
	}

	// WatchConfig configures the root watcher.
	WatchConfig struct {
		DebounceMS int `json:"debounce_ms" mapstructure:"debounce_ms"`
	}

	// TerminalConfig configures how programs run in a terminal.
	TerminalConfig struct {
		// Command is the terminal command line; the program is appended to it.
		Command string `json:"command" mapstructure:"command"`
	}

	// UIConfig configures the command line output.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// IconTheme is searched before hicolor when resolving icons
		IconTheme string `json:"icon_theme,omitempty" mapstructure:"icon_theme"`
	}
)

// IsValid returns whether the entry has a path and a depth within range.
func (e TreeEntry) IsValid() (bool, []error) {
	var errs []error
	if valid, pathErrs := e.Path.IsValid(); !valid {
		errs = append(errs, pathErrs...)
	}
	if e.Depth < 0 || e.Depth > MaxTreeDepth {
		errs = append(errs, &InvalidTreeEntryError{Path: e.Path, Reason: fmt.Sprintf("depth %d outside 0..%d", e.Depth, MaxTreeDepth)})
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// Error implements the error interface for InvalidTreeEntryError.
func (e *InvalidTreeEntryError) Error() string {
	return fmt.Sprintf("invalid tree %q: %s", e.Path, e.Reason)
}

// Unwrap returns ErrInvalidTreeEntry for errors.Is() compatibility.
func (e *InvalidTreeEntryError) Unwrap() error { return ErrInvalidTreeEntry }

// IsValid returns whether the cache bound is positive.
func (c CacheConfig) IsValid() (bool, []error) {
	if c.MaxCatalogs <= 0 {
		return false, []error{&InvalidCacheConfigError{MaxCatalogs: c.MaxCatalogs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCacheConfigError.
func (e *InvalidCacheConfigError) Error() string {
	return fmt.Sprintf("invalid cache size %d: must be positive", e.MaxCatalogs)
}

// Unwrap returns ErrInvalidCacheConfig for errors.Is() compatibility.
func (e *InvalidCacheConfigError) Unwrap() error { return ErrInvalidCacheConfig }

// IsValid returns whether the Config has valid fields.
// Paths, tree depths, the cache bound and the color scheme are checked;
// schema-level constraints are left to the CUE schema.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, entry := range c.Trees {
		if valid, fieldErrs := entry.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	for _, dir := range c.Directories {
		if valid, fieldErrs := dir.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.Cache.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Trees:       []TreeEntry{{Path: "~/Documents", Depth: 1}},
		Directories: []types.FilesystemPath{"~"},
		Exclude:     []string{},
		Applications: ApplicationsConfig{
			Enabled: true,
		},
		Places: PlacesConfig{
			Enabled: true,
		},
		Recents: RecentsConfig{
			Enabled: true,
			MaxDays: 14,
		},
		Cache: CacheConfig{
			MaxCatalogs: 1024,
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
		Terminal: TerminalConfig{
			Command: "x-terminal-emulator -e",
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
