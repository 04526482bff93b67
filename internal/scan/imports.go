// SPDX-License-Identifier: MPL-2.0

package scan

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

type (
	// ImportRef is one parsed import statement. For `from .. import x` the
	// Module is empty and Level counts the leading dots; Names carries the
	// imported names so submodule imports can be resolved.
	ImportRef struct {
		// Module is the dotted module path, empty for bare relative imports.
		Module string
		// Level is the relative-import depth (0 for absolute imports).
		Level int
		// Names are the identifiers after `import` in a from-import.
		Names []string
	}
)

var (
	importStmt     = regexp.MustCompile(`^\s*import\s+(.+)$`)
	fromImportStmt = regexp.MustCompile(`^\s*from\s+(\.*)([\w.]*)\s+import\s+(.+)$`)
)

// ParseImports extracts import statements from Python source with a line
// scan. It handles `import a.b, c as d`, `from a.b import c, d`, and
// relative forms; conditional imports inside functions are picked up too,
// which errs on the side of bundling more rather than missing a dependency.
func ParseImports(r io.Reader) ([]ImportRef, error) {
	var refs []ImportRef
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inString := false
	var delim string
	for scanner.Scan() {
		line := scanner.Text()

		if inString {
			if strings.Contains(line, delim) {
				inString = false
			}
			continue
		}
		if d, open := openTripleQuote(line); open {
			inString = true
			delim = d
			continue
		}
		line = stripComment(line)

		if m := fromImportStmt.FindStringSubmatch(line); m != nil {
			refs = append(refs, ImportRef{
				Module: m[2],
				Level:  len(m[1]),
				Names:  splitImportedNames(m[3]),
			})
			continue
		}
		if m := importStmt.FindStringSubmatch(line); m != nil {
			for _, part := range strings.Split(m[1], ",") {
				module := strings.TrimSpace(part)
				// `import a.b as c` imports module a.b
				if idx := strings.Index(module, " as "); idx >= 0 {
					module = strings.TrimSpace(module[:idx])
				}
				if module != "" {
					refs = append(refs, ImportRef{Module: module})
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

func splitImportedNames(clause string) []string {
	clause = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(clause), "("), ")")
	var names []string
	for _, part := range strings.Split(clause, ",") {
		name := strings.TrimSpace(part)
		if idx := strings.Index(name, " as "); idx >= 0 {
			name = strings.TrimSpace(name[:idx])
		}
		if name == "" || name == "*" {
			continue
		}
		names = append(names, name)
	}
	return names
}

func stripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}

func openTripleQuote(line string) (string, bool) {
	for _, d := range []string{`"""`, `'''`} {
		if strings.Count(line, d)%2 == 1 {
			return d, true
		}
	}
	return "", false
}
