// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOutputDirPath is returned when an OutputDirPath value is whitespace-only.
	ErrInvalidOutputDirPath = errors.New("invalid output dir path")
	// ErrInvalidSearchRootPath is the sentinel error wrapped by InvalidSearchRootPathError.
	ErrInvalidSearchRootPath = errors.New("invalid search root path")
	// ErrInvalidDatabasePath is returned when a DatabasePath value is whitespace-only.
	ErrInvalidDatabasePath = errors.New("invalid database path")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidWatchConfig is the sentinel error wrapped by InvalidWatchConfigError.
	ErrInvalidWatchConfig = errors.New("invalid watch config")
	// ErrInvalidHistoryConfig is the sentinel error wrapped by InvalidHistoryConfigError.
	ErrInvalidHistoryConfig = errors.New("invalid history config")
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

	// OutputDirPath represents a filesystem path to the plugin output directory.
	// The zero value ("") is valid and means "use the built-in default".
	// Non-zero values must not be whitespace-only.
	OutputDirPath string

	// InvalidOutputDirPathError is returned when an OutputDirPath value is
	// non-empty but whitespace-only.
	InvalidOutputDirPathError struct {
		Value OutputDirPath
	}

	// SearchRootPath represents a filesystem path used as an import search root.
	// A valid path must be non-empty and not whitespace-only.
	SearchRootPath string

	// InvalidSearchRootPathError is returned when a SearchRootPath value is
	// empty or whitespace-only. It wraps ErrInvalidSearchRootPath for errors.Is().
	InvalidSearchRootPathError struct {
		Value SearchRootPath
	}

	// DatabasePath represents a filesystem path to the bundle history database.
	// The zero value ("") is valid and means "use the default database location".
	// Non-zero values must not be whitespace-only.
	DatabasePath string

	// InvalidDatabasePathError is returned when a DatabasePath value is
	// non-empty but whitespace-only.
	InvalidDatabasePathError struct {
		Value DatabasePath
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidWatchConfigError is returned when a WatchConfig has invalid fields.
	// It wraps ErrInvalidWatchConfig for errors.Is() compatibility.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}

	// InvalidHistoryConfigError is returned when a HistoryConfig has invalid fields.
	// It wraps ErrInvalidHistoryConfig for errors.Is() compatibility.
	InvalidHistoryConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// OutputDir is the default directory that receives bundled plugins.
		OutputDir OutputDirPath `json:"output_dir" mapstructure:"output_dir"`
		// Vendor is recorded on plugin registrations when no flag overrides it.
		Vendor string `json:"vendor" mapstructure:"vendor"`
		// SearchRoots are default import search roots added to every bundle.
		SearchRoots []SearchRootPath `json:"search_roots" mapstructure:"search_roots"`
		// Ignore holds glob patterns pruned from every import graph.
		Ignore []string `json:"ignore" mapstructure:"ignore"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Watch configures watch mode.
		Watch WatchConfig `json:"watch" mapstructure:"watch"`
		// History configures bundle history recording.
		History HistoryConfig `json:"history" mapstructure:"history"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// WatchConfig configures watch mode.
	WatchConfig struct {
		// DebounceMs is the quiet period after a file change before rebundling.
		DebounceMs int `json:"debounce_ms" mapstructure:"debounce_ms"`
	}

	// HistoryConfig configures bundle history recording.
	HistoryConfig struct {
		// Enabled enables/disables history recording (default: true)
		Enabled bool `json:"enabled" mapstructure:"enabled"`
		// Path overrides the history database location
		Path DatabasePath `json:"path" mapstructure:"path"`
	}
)

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the WatchConfig has valid fields.
// The debounce interval must not be negative.
func (c WatchConfig) IsValid() (bool, []error) {
	if c.DebounceMs < 0 {
		err := fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMs)
		return false, []error{&InvalidWatchConfigError{FieldErrors: []error{err}}}
	}
	return true, nil
}

// Error implements the error interface for InvalidWatchConfigError.
func (e *InvalidWatchConfigError) Error() string {
	return fmt.Sprintf("invalid watch config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidWatchConfig for errors.Is() compatibility.
func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }

// IsValid returns whether the HistoryConfig has valid fields.
// It delegates to Path.IsValid(); the bool field needs no validation.
func (c HistoryConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Path.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidHistoryConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidHistoryConfigError.
func (e *InvalidHistoryConfigError) Error() string {
	return fmt.Sprintf("invalid history config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidHistoryConfig for errors.Is() compatibility.
func (e *InvalidHistoryConfigError) Unwrap() error { return ErrInvalidHistoryConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to OutputDir.IsValid(), each SearchRoots entry's IsValid(),
// UI.IsValid(), Watch.IsValid(), and History.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.OutputDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, root := range c.SearchRoots {
		if valid, fieldErrs := root.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Watch.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.History.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the OutputDirPath.
func (p OutputDirPath) String() string { return string(p) }

// IsValid returns whether the OutputDirPath is valid.
// The zero value ("") is valid (means "use the built-in default").
// Non-zero values must not be whitespace-only.
func (p OutputDirPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidOutputDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputDirPathError.
func (e *InvalidOutputDirPathError) Error() string {
	return fmt.Sprintf("invalid output dir path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidOutputDirPath for errors.Is() compatibility.
func (e *InvalidOutputDirPathError) Unwrap() error { return ErrInvalidOutputDirPath }

// String returns the string representation of the SearchRootPath.
func (p SearchRootPath) String() string { return string(p) }

// IsValid returns whether the SearchRootPath is valid.
// A valid path must be non-empty and not whitespace-only.
func (p SearchRootPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidSearchRootPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSearchRootPathError.
func (e *InvalidSearchRootPathError) Error() string {
	return fmt.Sprintf("invalid search root path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidSearchRootPath for errors.Is() compatibility.
func (e *InvalidSearchRootPathError) Unwrap() error { return ErrInvalidSearchRootPath }

// String returns the string representation of the DatabasePath.
func (p DatabasePath) String() string { return string(p) }

// IsValid returns whether the DatabasePath is valid.
// The zero value ("") is valid (means "use the default database location").
// Non-zero values must not be whitespace-only.
func (p DatabasePath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidDatabasePathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDatabasePathError.
func (e *InvalidDatabasePathError) Error() string {
	return fmt.Sprintf("invalid database path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidDatabasePath for errors.Is() compatibility.
func (e *InvalidDatabasePathError) Unwrap() error { return ErrInvalidDatabasePath }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

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
		OutputDir:   "plug-ins",
		Vendor:      "mayabundle",
		SearchRoots: []SearchRootPath{},
		Ignore:      []string{},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Watch: WatchConfig{
			DebounceMs: 400,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "", // Will use <config dir>/history.db if empty
		},
	}
}
