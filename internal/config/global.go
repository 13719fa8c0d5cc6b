// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform configuration directory in ConfigDir.
var configDirOverride string

// Reset clears the configuration directory override.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride makes ConfigDir return dir. Tests use it where
// os.UserHomeDir cannot be redirected through HOME, as on macOS.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
