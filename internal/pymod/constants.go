// SPDX-License-Identifier: MPL-2.0

package pymod

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"mayabundle/pkg/pyident"
)

// constantAssignment matches a module-scope constant assignment: an
// uppercase name at column zero followed by `=` (optionally with a type
// annotation), but not `==`. Augmented assignments are not constants.
var constantAssignment = regexp.MustCompile(
	`^([A-Z][A-Z0-9_]*)\s*(?::[^=]+)?=\s*[^=]`)

// ScanConstants extracts module-scope constant names from Python source
// without executing it. Only top-level (column zero) uppercase assignments
// count; indented code and the interior of triple-quoted strings are
// skipped. The scan is deliberately lexical: a constant assigned under a
// top-level `if` is indented and therefore ignored, which matches how the
// bundled tools declare their UI bootstrap constants.
func ScanConstants(r io.Reader) (map[pyident.Identifier]struct{}, error) {
	constants := make(map[pyident.Identifier]struct{})
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

		if m := constantAssignment.FindStringSubmatch(line); m != nil {
			constants[pyident.Identifier(m[1])] = struct{}{}
		}

		// Track triple-quoted strings that open on this line and do not
		// close on it, so docstring bodies never look like assignments.
		if d, open := openTripleQuote(line); open {
			inString = true
			delim = d
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return constants, nil
}

// ScanConstantsFile is ScanConstants over a file on disk.
func ScanConstantsFile(path string) (map[pyident.Identifier]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scanning constants: %w", err)
	}
	defer f.Close()
	return ScanConstants(f)
}

// openTripleQuote reports whether the line leaves a triple-quoted string
// open, and which delimiter closes it. Alternating occurrences toggle the
// state, so `X = """one line"""` stays closed.
func openTripleQuote(line string) (string, bool) {
	for _, d := range []string{`"""`, `'''`} {
		if strings.Count(line, d)%2 == 1 {
			return d, true
		}
	}
	return "", false
}
