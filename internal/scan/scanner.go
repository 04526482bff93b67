// SPDX-License-Identifier: MPL-2.0

package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrRootFileMissing is returned when the scan entry point does not exist.
var ErrRootFileMissing = errors.New("root file does not exist")

type (
	// Option configures a Scanner.
	Option func(*Scanner)

	// Scanner walks the local import graph of a Python tool.
	Scanner struct {
		roots  []string
		ignore []string
		logger *slog.Logger
	}
)

// WithIgnoreGlobs sets doublestar patterns matched against each candidate
// file's path relative to its search root; matches are pruned from the
// graph (and not descended into).
func WithIgnoreGlobs(patterns ...string) Option {
	return func(s *Scanner) { s.ignore = append(s.ignore, patterns...) }
}

// WithLogger sets the logger used for parse warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) { s.logger = logger }
}

// NewScanner creates a Scanner resolving imports against the given search
// roots, in order.
func NewScanner(roots []string, opts ...Option) *Scanner {
	s := &Scanner{roots: roots, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan walks the import graph from rootFile and returns every reachable
// local source file, rootFile included, as absolute paths in sorted order.
// A file that fails to parse is kept in the result but its imports are not
// followed; the warning is logged, matching the tolerant behavior tools
// expect from a bundler.
func (s *Scanner) Scan(rootFile string) ([]string, error) {
	abs, err := filepath.Abs(rootFile)
	if err != nil {
		return nil, fmt.Errorf("resolving root file: %w", err)
	}
	if _, err := os.Stat(abs); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrRootFileMissing, rootFile)
	} else if err != nil {
		return nil, fmt.Errorf("resolving root file: %w", err)
	}

	visited := make(map[string]struct{})
	if err := s.walk(abs, visited); err != nil {
		return nil, err
	}

	files := make([]string, 0, len(visited))
	for f := range visited {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

func (s *Scanner) walk(file string, visited map[string]struct{}) error {
	if _, seen := visited[file]; seen {
		return nil
	}
	if s.ignored(file) {
		return nil
	}
	visited[file] = struct{}{}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}
	refs, err := ParseImports(f)
	f.Close()
	if err != nil {
		s.logger.Warn("could not parse imports, not following",
			"file", file, "error", err)
		return nil
	}

	for _, ref := range refs {
		for _, dep := range s.resolve(ref, file) {
			if err := s.walk(dep, visited); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolve maps one import statement to zero or more files on disk.
func (s *Scanner) resolve(ref ImportRef, fromFile string) []string {
	if ref.Level > 0 {
		return s.resolveRelative(ref, fromFile)
	}
	if !isLocalModule(ref.Module) {
		return nil
	}

	var deps []string
	// `from a.b import c` may import the submodule a.b.c.
	for _, name := range ref.Names {
		if file, ok := s.resolveModule(ref.Module + "." + name); ok {
			deps = append(deps, file)
		}
	}
	if file, ok := s.resolveModule(ref.Module); ok {
		deps = append(deps, file)
	}
	return deps
}

// resolveModule tries the full dotted path, then progressively shorter
// prefixes, against every search root. The prefix fallback keeps a package
// initializer in the bundle when the deeper attribute is not itself a
// module.
func (s *Scanner) resolveModule(module string) (string, bool) {
	parts := strings.Split(module, ".")
	for _, root := range s.roots {
		for i := len(parts); i > 0; i-- {
			base := filepath.Join(append([]string{root}, parts[:i]...)...)
			if file, ok := pickModuleFile(base); ok {
				return file, true
			}
		}
	}
	return "", false
}

func (s *Scanner) resolveRelative(ref ImportRef, fromFile string) []string {
	dir := filepath.Dir(fromFile)
	for i := 0; i < ref.Level-1; i++ {
		dir = filepath.Dir(dir)
	}

	base := dir
	if ref.Module != "" {
		base = filepath.Join(dir, filepath.FromSlash(strings.ReplaceAll(ref.Module, ".", "/")))
	}

	var deps []string
	for _, name := range ref.Names {
		if file, ok := pickModuleFile(filepath.Join(base, name)); ok {
			deps = append(deps, file)
		}
	}
	if file, ok := pickModuleFile(base); ok {
		deps = append(deps, file)
	}
	return deps
}

// pickModuleFile checks base.py, then base/__init__.py.
func pickModuleFile(base string) (string, bool) {
	if fileExists(base + ".py") {
		return base + ".py", true
	}
	init := filepath.Join(base, "__init__.py")
	if fileExists(init) {
		return init, true
	}
	return "", false
}

func (s *Scanner) ignored(file string) bool {
	if len(s.ignore) == 0 {
		return false
	}
	for _, root := range s.roots {
		rel, err := filepath.Rel(root, file)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range s.ignore {
			if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
				return true
			}
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
