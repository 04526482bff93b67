// SPDX-License-Identifier: MPL-2.0

package pymod

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"mayabundle/pkg/pyident"
)

// ErrNoSearchRoots is returned when a Locator is constructed without roots.
var ErrNoSearchRoots = errors.New("no search roots configured")

type (
	// Location is a module path resolved to a file on disk.
	Location struct {
		// File is the absolute path to the module source.
		File string
		// IsPackage reports whether File is a package initializer
		// (__init__.py) rather than a plain module file.
		IsPackage bool
	}

	// Locator maps dotted Python module paths to source files under an
	// ordered list of search roots. The first root containing the module
	// wins; within a root, a plain file shadows a package of the same name,
	// matching CPython's resolution order for our purposes.
	Locator struct {
		roots []string
	}
)

// NewLocator creates a Locator over the given search roots. Roots are
// cleaned but not required to exist; a missing root simply never matches.
func NewLocator(roots ...string) (*Locator, error) {
	if len(roots) == 0 {
		return nil, ErrNoSearchRoots
	}
	cleaned := make([]string, len(roots))
	for i, r := range roots {
		cleaned[i] = filepath.Clean(r)
	}
	return &Locator{roots: cleaned}, nil
}

// Roots returns the configured search roots in resolution order.
func (l *Locator) Roots() []string {
	out := make([]string, len(l.roots))
	copy(out, l.roots)
	return out
}

// Locate resolves a dotted module path to a file. The second return value
// reports whether the module was found at all; an error means the filesystem
// itself misbehaved, not that the module is absent.
func (l *Locator) Locate(path pyident.DottedPath) (Location, bool, error) {
	rel := filepath.Join(path.Segments()...)

	for _, root := range l.roots {
		asFile := filepath.Join(root, rel+".py")
		ok, err := isRegularFile(asFile)
		if err != nil {
			return Location{}, false, fmt.Errorf("probing %s: %w", asFile, err)
		}
		if ok {
			return Location{File: asFile}, true, nil
		}

		asInit := filepath.Join(root, rel, "__init__.py")
		ok, err = isRegularFile(asInit)
		if err != nil {
			return Location{}, false, fmt.Errorf("probing %s: %w", asInit, err)
		}
		if ok {
			return Location{File: asInit, IsPackage: true}, true, nil
		}
	}
	return Location{}, false, nil
}

func isRegularFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
