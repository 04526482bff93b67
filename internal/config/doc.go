// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/mayabundle/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/mayabundle/config.cue on macOS, %APPDATA%\mayabundle\config.cue
// on Windows). The package provides type-safe configuration access and covers the default
// output directory, vendor string, import search roots, ignore globs, UI settings,
// watch-mode debounce, and bundle history recording.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
