// SPDX-License-Identifier: MPL-2.0

package bundler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ManifestFileName is the bundle manifest written into each plugin
// directory and consumed by verification.
const ManifestFileName = "bundleinfo.toml"

// ErrManifestNotFound is returned when a directory holds no manifest.
var ErrManifestNotFound = errors.New("bundle manifest not found")

type (
	// Manifest records what one bundle run produced.
	Manifest struct {
		BundlerVersion string       `toml:"bundler_version"`
		GeneratedAt    time.Time    `toml:"generated_at"`
		PluginName     string       `toml:"plugin_name"`
		Launch         LaunchRecord `toml:"launch"`
		Icon           string       `toml:"icon,omitempty"`
		Files          []FileRecord `toml:"files"`
	}

	// LaunchRecord is the resolved launch descriptor, flattened for the
	// manifest.
	LaunchRecord struct {
		Expression string `toml:"expression"`
		Layout     string `toml:"layout"`
		UIScript   string `toml:"ui_script,omitempty"`
		Dockable   bool   `toml:"dockable"`
	}

	// FileRecord is one bundled file, relative to the plugin directory.
	FileRecord struct {
		Path string `toml:"path"`
		Size int64  `toml:"size"`
	}
)

// WriteManifest writes the manifest into the plugin directory.
func WriteManifest(pluginDir string, m *Manifest) (string, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encoding bundle manifest: %w", err)
	}
	path := filepath.Join(pluginDir, ManifestFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing bundle manifest: %w", err)
	}
	return path, nil
}

// LoadManifest reads the manifest from a plugin directory.
func LoadManifest(pluginDir string) (*Manifest, error) {
	path := filepath.Join(pluginDir, ManifestFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, pluginDir)
	}
	if err != nil {
		return nil, fmt.Errorf("reading bundle manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing bundle manifest %s: %w", path, err)
	}
	return &m, nil
}
