// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scheme  ColorScheme
		want    bool
		wantErr bool
	}{
		{ColorSchemeAuto, true, false},
		{ColorSchemeDark, true, false},
		{ColorSchemeLight, true, false},
		{"", false, true},
		{"garbage", false, true},
		{"AUTO", false, true},
		{"Dark", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.scheme), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.scheme.IsValid()
			if isValid != tt.want {
				t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.scheme, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("ColorScheme(%q).IsValid() returned no errors, want error", tt.scheme)
				}
				if !errors.Is(errs[0], ErrInvalidColorScheme) {
					t.Errorf("error should wrap ErrInvalidColorScheme, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("ColorScheme(%q).IsValid() returned unexpected errors: %v", tt.scheme, errs)
			}
		})
	}
}

func TestSearchRootPath_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path SearchRootPath
		want bool
	}{
		{"absolute path", "/projects/scripts", true},
		{"relative path", "./scripts", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"tab only", "\t", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.path.IsValid()
			if isValid != tt.want {
				t.Errorf("SearchRootPath(%q).IsValid() = %v, want %v", tt.path, isValid, tt.want)
			}
			if !tt.want && !errors.Is(errs[0], ErrInvalidSearchRootPath) {
				t.Errorf("error should wrap ErrInvalidSearchRootPath, got: %v", errs[0])
			}
		})
	}
}

func TestOutputDirPath_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path OutputDirPath
		want bool
	}{
		{"zero value valid", "", true},
		{"normal path", "/studio/plug-ins", true},
		{"whitespace only", "  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.path.IsValid()
			if isValid != tt.want {
				t.Errorf("OutputDirPath(%q).IsValid() = %v, want %v", tt.path, isValid, tt.want)
			}
			if !tt.want && !errors.Is(errs[0], ErrInvalidOutputDirPath) {
				t.Errorf("error should wrap ErrInvalidOutputDirPath, got: %v", errs[0])
			}
		})
	}
}

func TestDatabasePath_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path DatabasePath
		want bool
	}{
		{"zero value valid", "", true},
		{"normal path", "/tmp/history.db", true},
		{"whitespace only", " \t ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.path.IsValid()
			if isValid != tt.want {
				t.Errorf("DatabasePath(%q).IsValid() = %v, want %v", tt.path, isValid, tt.want)
			}
			if !tt.want && !errors.Is(errs[0], ErrInvalidDatabasePath) {
				t.Errorf("error should wrap ErrInvalidDatabasePath, got: %v", errs[0])
			}
		})
	}
}

func TestWatchConfig_IsValid(t *testing.T) {
	t.Parallel()

	if valid, _ := (WatchConfig{DebounceMs: 0}).IsValid(); !valid {
		t.Error("zero debounce should be valid")
	}
	if valid, _ := (WatchConfig{DebounceMs: 400}).IsValid(); !valid {
		t.Error("positive debounce should be valid")
	}

	valid, errs := (WatchConfig{DebounceMs: -1}).IsValid()
	if valid {
		t.Error("negative debounce should be invalid")
	}
	if !errors.Is(errs[0], ErrInvalidWatchConfig) {
		t.Errorf("error should wrap ErrInvalidWatchConfig, got: %v", errs[0])
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	if valid, errs := DefaultConfig().IsValid(); !valid {
		t.Errorf("default config should be valid, got: %v", errs)
	}

	bad := DefaultConfig()
	bad.UI.ColorScheme = "neon"
	bad.SearchRoots = []SearchRootPath{"  "}
	bad.Watch.DebounceMs = -5

	valid, errs := bad.IsValid()
	if valid {
		t.Fatal("config with invalid fields should be invalid")
	}
	if len(errs) != 1 {
		t.Fatalf("expected a single wrapping error, got %d", len(errs))
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got: %v", errs[0])
	}

	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("error should be *InvalidConfigError, got: %T", errs[0])
	}
	if len(cfgErr.FieldErrors) != 3 {
		t.Errorf("expected 3 field errors (search root, UI, watch), got %d: %v",
			len(cfgErr.FieldErrors), cfgErr.FieldErrors)
	}
}
