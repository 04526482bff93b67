// SPDX-License-Identifier: MPL-2.0

// Package plan turns a scanned file set into a bundle plan: for every
// source file, the destination it occupies under the plugin's scripts
// directory. The plan is deterministic and collision-checked before any
// file is copied.
package plan

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ScriptsDirName is the directory inside the plugin that holds bundled
// sources; the generated plugin file puts it on sys.path.
const ScriptsDirName = "scripts"

// ErrDuplicateDestination is the sentinel error wrapped by
// DuplicateDestinationError.
var ErrDuplicateDestination = errors.New("duplicate destination in bundle plan")

type (
	// Entry maps one source file to its destination, relative to the
	// scripts directory and always slash-separated.
	Entry struct {
		// Source is the absolute path of the file to copy.
		Source string
		// Rel is the destination path relative to the scripts directory.
		Rel string
	}

	// Plan is the ordered list of copy operations for one bundle.
	Plan struct {
		Entries []Entry
	}

	// DuplicateDestinationError reports two sources claiming one
	// destination, which would silently drop a file during the copy.
	DuplicateDestinationError struct {
		Rel     string
		Sources []string
	}
)

// Error implements the error interface for DuplicateDestinationError.
func (e *DuplicateDestinationError) Error() string {
	return fmt.Sprintf("destination %q claimed by multiple sources: %s",
		e.Rel, strings.Join(e.Sources, ", "))
}

// Unwrap returns ErrDuplicateDestination for errors.Is() compatibility.
func (e *DuplicateDestinationError) Unwrap() error { return ErrDuplicateDestination }

// Build derives a Plan from scanned files. Each file's destination is its
// path relative to the deepest search root containing it, so the bundled
// tree mirrors the import layout; a file outside every root degrades to a
// bare filename at the scripts directory top level. Entries are sorted by
// destination and every destination appears exactly once.
func Build(files []string, roots []string) (*Plan, error) {
	entries := make([]Entry, 0, len(files))
	claimed := make(map[string][]string, len(files))

	for _, file := range files {
		rel := relUnderRoots(file, roots)
		claimed[rel] = append(claimed[rel], file)
		entries = append(entries, Entry{Source: file, Rel: rel})
	}

	for rel, sources := range claimed {
		if len(sources) > 1 {
			sort.Strings(sources)
			return nil, &DuplicateDestinationError{Rel: rel, Sources: sources}
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Rel < entries[j].Rel })
	return &Plan{Entries: entries}, nil
}

// Dest returns the entry's destination relative to the plugin directory.
func (e Entry) Dest() string {
	return filepath.Join(ScriptsDirName, filepath.FromSlash(e.Rel))
}

// Len returns the number of files the plan copies.
func (p *Plan) Len() int { return len(p.Entries) }

// relUnderRoots picks the deepest root containing file, mirroring the
// original bundler's longest-base-path selection.
func relUnderRoots(file string, roots []string) string {
	best := ""
	for _, root := range roots {
		rel, err := filepath.Rel(root, file)
		if err != nil || strings.HasPrefix(rel, "..") || rel == "." {
			continue
		}
		if best == "" || len(root) > len(best) {
			best = root
		}
	}
	if best == "" {
		return filepath.Base(file)
	}
	rel, _ := filepath.Rel(best, file)
	return filepath.ToSlash(rel)
}
