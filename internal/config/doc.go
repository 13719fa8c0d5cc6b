// SPDX-License-Identifier: MPL-2.0

// Package config handles trove configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/trove/config.cue (or $XDG_CONFIG_HOME on Linux,
// ~/Library/Application Support/trove/config.cue on macOS, %APPDATA%\trove\config.cue
// on Windows). It selects which catalogs are indexed (file trees, directories,
// applications, places, recent documents) and tunes the snapshot cache, the
// root watcher, the terminal used to run programs and the CLI output.
//
// Files are validated against the embedded CUE schema (config_schema.cue) before
// being merged over the defaults.
package config
