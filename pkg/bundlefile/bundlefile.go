// SPDX-License-Identifier: MPL-2.0

package bundlefile

import (
	"errors"
	"fmt"
	"path/filepath"
)

// DefaultFileName is the manifest file name looked up in the working
// directory when no explicit path is given.
const DefaultFileName = "bundlefile.cue"

// ErrNoTools is returned for a manifest with an empty tools list.
var ErrNoTools = errors.New("bundlefile defines no tools")

// ErrMalformedBundlefile is returned when a manifest has CUE syntax errors
// or does not satisfy the embedded schema.
var ErrMalformedBundlefile = errors.New("malformed bundlefile")

type (
	// Bundlefile is a parsed batch deployment manifest.
	Bundlefile struct {
		// OutputDir receives every bundled plugin.
		OutputDir string `json:"output_dir"`
		// Vendor is recorded on each plugin registration.
		Vendor string `json:"vendor,omitempty"`
		// SearchRoots are shared import search roots.
		SearchRoots []string `json:"search_roots,omitempty"`
		// Ignore holds glob patterns pruned from every import graph.
		Ignore []string `json:"ignore,omitempty"`
		// Hook is a shell script run after each successful bundle.
		Hook string `json:"hook,omitempty"`
		// Tools are bundled in order.
		Tools []Tool `json:"tools"`

		// FilePath is where this manifest was loaded from (not part of
		// the schema).
		FilePath string `json:"-"`
	}

	// Tool is one entry in the manifest's tools list.
	Tool struct {
		RootFile    string   `json:"root_file"`
		Launch      string   `json:"launch"`
		Name        string   `json:"name,omitempty"`
		Dockable    bool     `json:"dockable,omitempty"`
		Icon        string   `json:"icon,omitempty"`
		Menu        string   `json:"menu,omitempty"`
		Shelf       string   `json:"shelf,omitempty"`
		SearchRoots []string `json:"search_roots,omitempty"`
	}
)

// validate applies checks the CUE schema cannot express.
func (b *Bundlefile) validate() error {
	if len(b.Tools) == 0 {
		return ErrNoTools
	}
	seen := make(map[string]int, len(b.Tools))
	for i, tool := range b.Tools {
		name := tool.EffectiveName()
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("tools %d and %d both bundle as %q", prev, i, name)
		}
		seen[name] = i
	}
	return nil
}

// EffectiveName is the plugin name this tool bundles as: the explicit name
// or the root file's stem.
func (t *Tool) EffectiveName() string {
	if t.Name != "" {
		return t.Name
	}
	base := filepath.Base(t.RootFile)
	return base[:len(base)-len(filepath.Ext(base))]
}

// Roots combines the manifest-level search roots with the tool's own,
// tool roots first so they win during resolution.
func (b *Bundlefile) Roots(t *Tool) []string {
	roots := make([]string, 0, len(t.SearchRoots)+len(b.SearchRoots))
	roots = append(roots, t.SearchRoots...)
	roots = append(roots, b.SearchRoots...)
	return roots
}
