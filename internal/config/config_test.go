// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"mayabundle/internal/issue"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OutputDir != "plug-ins" {
		t.Errorf("expected default output dir to be plug-ins, got %s", cfg.OutputDir)
	}

	if cfg.Vendor != "mayabundle" {
		t.Errorf("expected default vendor to be mayabundle, got %s", cfg.Vendor)
	}

	if len(cfg.SearchRoots) != 0 {
		t.Errorf("expected default search roots to be empty, got %v", cfg.SearchRoots)
	}

	if len(cfg.Ignore) != 0 {
		t.Errorf("expected default ignore globs to be empty, got %v", cfg.Ignore)
	}

	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}

	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}

	if cfg.Watch.DebounceMs != 400 {
		t.Errorf("expected default debounce to be 400ms, got %d", cfg.Watch.DebounceMs)
	}

	if !cfg.History.Enabled {
		t.Error("expected history recording to be enabled by default")
	}

	if cfg.History.Path != "" {
		t.Errorf("expected default history path to be empty, got %q", cfg.History.Path)
	}
}

func TestConfigDir(t *testing.T) {
	// Test with XDG_CONFIG_HOME set (on Linux)
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME lookup is Linux-only")
	}

	testXDGPath := "/tmp/test-xdg-config"
	t.Setenv("XDG_CONFIG_HOME", testXDGPath)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}

	expected := filepath.Join(testXDGPath, AppName)
	if dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}

	// Test with XDG_CONFIG_HOME unset
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}

	// Should use ~/.config/mayabundle
	home, _ := os.UserHomeDir()
	expected = filepath.Join(home, ".config", AppName)
	if dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}
}

func TestHistoryDBPath(t *testing.T) {
	tmpDir := t.TempDir()
	SetConfigDirOverride(tmpDir)
	defer Reset()

	// Explicit path wins
	cfg := DefaultConfig()
	cfg.History.Path = "/custom/history.db"
	path, err := HistoryDBPath(cfg)
	if err != nil {
		t.Fatalf("HistoryDBPath() returned error: %v", err)
	}
	if path != "/custom/history.db" {
		t.Errorf("HistoryDBPath() = %s, want /custom/history.db", path)
	}

	// Empty path falls back to the config directory
	cfg.History.Path = ""
	path, err = HistoryDBPath(cfg)
	if err != nil {
		t.Fatalf("HistoryDBPath() returned error: %v", err)
	}
	expected := filepath.Join(tmpDir, HistoryDBFileName)
	if path != expected {
		t.Errorf("HistoryDBPath() = %s, want %s", path, expected)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)

	// Use direct override instead of env vars (more reliable across platforms)
	SetConfigDirOverride(configDir)
	defer Reset()

	err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir() returned error: %v", err)
	}

	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Errorf("EnsureConfigDir() did not create directory %s", configDir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)

	SetConfigDirOverride(configDir)
	defer Reset()

	if err := EnsureConfigDir(); err != nil {
		t.Fatalf("EnsureConfigDir() returned error: %v", err)
	}

	cfg := &Config{
		OutputDir:   "/studio/maya/plug-ins",
		Vendor:      "Robotools",
		SearchRoots: []SearchRootPath{"/projects/scripts", "/shared/scripts"},
		Ignore:      []string{"**/tests/**"},
		UI: UIConfig{
			ColorScheme: ColorSchemeDark,
			Verbose:     true,
		},
		Watch: WatchConfig{
			DebounceMs: 1000,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    "/tmp/mayabundle-history.db",
		},
	}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: configDir})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}

	if loaded.OutputDir != "/studio/maya/plug-ins" {
		t.Errorf("OutputDir = %s, want /studio/maya/plug-ins", loaded.OutputDir)
	}

	if loaded.Vendor != "Robotools" {
		t.Errorf("Vendor = %s, want Robotools", loaded.Vendor)
	}

	if len(loaded.SearchRoots) != 2 {
		t.Errorf("SearchRoots length = %d, want 2", len(loaded.SearchRoots))
	}

	if len(loaded.Ignore) != 1 || loaded.Ignore[0] != "**/tests/**" {
		t.Errorf("Ignore = %v, want [**/tests/**]", loaded.Ignore)
	}

	if loaded.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ColorScheme = %s, want dark", loaded.UI.ColorScheme)
	}

	if !loaded.UI.Verbose {
		t.Error("Verbose = false, want true")
	}

	if loaded.Watch.DebounceMs != 1000 {
		t.Errorf("DebounceMs = %d, want 1000", loaded.Watch.DebounceMs)
	}

	if loaded.History.Enabled {
		t.Error("History.Enabled = true, want false")
	}

	if loaded.History.Path != "/tmp/mayabundle-history.db" {
		t.Errorf("History.Path = %q, want /tmp/mayabundle-history.db", loaded.History.Path)
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)

	SetConfigDirOverride(configDir)
	defer Reset()

	// Change to temp dir to avoid loading config from current directory
	t.Chdir(tmpDir)

	cfg, resolvedPath, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: configDir})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}

	if resolvedPath != "" {
		t.Errorf("resolvedPath = %q, want empty (no config file)", resolvedPath)
	}

	defaults := DefaultConfig()
	if cfg.OutputDir != defaults.OutputDir {
		t.Errorf("OutputDir = %s, want %s", cfg.OutputDir, defaults.OutputDir)
	}

	if cfg.Watch.DebounceMs != defaults.Watch.DebounceMs {
		t.Errorf("DebounceMs = %d, want %d", cfg.Watch.DebounceMs, defaults.Watch.DebounceMs)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)

	SetConfigDirOverride(configDir)
	defer Reset()

	err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}

	// Check that file was created
	expectedPath := filepath.Join(configDir, ConfigFileName+"."+ConfigFileExt)
	if _, statErr := os.Stat(expectedPath); os.IsNotExist(statErr) {
		t.Errorf("CreateDefaultConfig() did not create file at %s", expectedPath)
	}

	// Read the file and verify it has content
	content, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}

	if len(content) == 0 {
		t.Error("config file is empty")
	}

	// Calling again should not error (file already exists)
	err = CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error on second call: %v", err)
	}
}

func TestGeneratedConfigRoundTrips(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)

	SetConfigDirOverride(configDir)
	defer Reset()

	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}

	// The generated file must load back through the CUE schema.
	loaded, resolvedPath, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: configDir})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}

	if resolvedPath == "" {
		t.Error("expected resolvedPath to point at the generated file")
	}

	defaults := DefaultConfig()
	if loaded.OutputDir != defaults.OutputDir {
		t.Errorf("OutputDir = %s, want %s", loaded.OutputDir, defaults.OutputDir)
	}
	if loaded.UI.ColorScheme != defaults.UI.ColorScheme {
		t.Errorf("ColorScheme = %s, want %s", loaded.UI.ColorScheme, defaults.UI.ColorScheme)
	}
}

func TestConstants(t *testing.T) {
	if AppName != "mayabundle" {
		t.Errorf("AppName = %s, want mayabundle", AppName)
	}

	if ConfigFileName != "config" {
		t.Errorf("ConfigFileName = %s, want config", ConfigFileName)
	}

	if ConfigFileExt != "cue" {
		t.Errorf("ConfigFileExt = %s, want cue", ConfigFileExt)
	}
}

func TestLoad_ActionableErrorFormat(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, AppName)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	// Write invalid CUE content - wrong type for output_dir
	invalidConfig := `output_dir: 123`
	cfgPath := filepath.Join(configDir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(cfgPath, []byte(invalidConfig), 0o644); err != nil {
		t.Fatalf("failed to write invalid config: %v", err)
	}

	SetConfigDirOverride(configDir)
	defer Reset()

	t.Chdir(tmpDir)

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: configDir})
	if err == nil {
		t.Fatal("expected loadWithOptions() to return error for invalid config")
	}

	// Verify error contains actionable context
	errStr := err.Error()
	if !strings.Contains(errStr, "load configuration") {
		t.Errorf("error should contain operation, got: %s", errStr)
	}
	if !strings.Contains(errStr, cfgPath) {
		t.Errorf("error should contain resource path, got: %s", errStr)
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	nonExistentPath := "/this/path/does/not/exist/config.cue"

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: nonExistentPath})
	if err == nil {
		t.Fatal("expected error for non-existent config file")
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "config file not found") {
		t.Errorf("error should contain 'config file not found', got: %s", errStr)
	}
	if !strings.Contains(errStr, nonExistentPath) {
		t.Errorf("error should contain the path, got: %s", errStr)
	}

	// Verify suggestions are present via ActionableError type
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("expected error to be *issue.ActionableError")
	}
	if len(ae.Suggestions) == 0 {
		t.Error("expected ActionableError to have suggestions")
	}
	foundSuggestion := false
	for _, s := range ae.Suggestions {
		if strings.Contains(s, "Verify the file path is correct") {
			foundSuggestion = true
			break
		}
	}
	if !foundSuggestion {
		t.Errorf("expected suggestion 'Verify the file path is correct', got: %v", ae.Suggestions)
	}
}

func TestLoad_CustomPath_Valid(t *testing.T) {
	tmpDir := t.TempDir()
	customConfigPath := filepath.Join(tmpDir, "custom-config.cue")

	validConfig := `output_dir: "/render/plug-ins"
vendor: "Robotools"
`
	if err := os.WriteFile(customConfigPath, []byte(validConfig), 0o644); err != nil {
		t.Fatalf("failed to write custom config: %v", err)
	}

	cfg, resolvedPath, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: customConfigPath})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}

	if cfg.OutputDir != "/render/plug-ins" {
		t.Errorf("OutputDir = %s, want /render/plug-ins", cfg.OutputDir)
	}
	if cfg.Vendor != "Robotools" {
		t.Errorf("Vendor = %s, want Robotools", cfg.Vendor)
	}
	if resolvedPath != customConfigPath {
		t.Errorf("resolvedPath = %s, want %s", resolvedPath, customConfigPath)
	}
}

func TestLoad_DuplicateSearchRoots_ReturnsError(t *testing.T) {
	tmpDir := t.TempDir()
	customConfigPath := filepath.Join(tmpDir, "config.cue")

	// Same path after normalization: trailing slash does not hide the duplicate.
	badConfig := `search_roots: ["/projects/scripts", "/projects/scripts/"]`
	if err := os.WriteFile(customConfigPath, []byte(badConfig), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: customConfigPath})
	if err == nil {
		t.Fatal("expected error for duplicate search roots")
	}
	if !strings.Contains(err.Error(), "duplicate path") {
		t.Errorf("error should mention the duplicate path, got: %v", err)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := loadWithOptions(ctx, LoadOptions{})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}
