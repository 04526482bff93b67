// SPDX-License-Identifier: MPL-2.0

// Package pyident defines value types for Python-style dotted identifiers.
// These are foundation types shared by the launch resolver, the module
// locator, and the code generator; the dotted identifier string is the sole
// interchange format between the bundler and generated plugin code.
//
// This package is a leaf dependency: it imports only the standard library.
package pyident

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidIdentifier is the sentinel error wrapped by InvalidIdentifierError.
var ErrInvalidIdentifier = errors.New("invalid python identifier")

// ErrInvalidDottedPath is the sentinel error wrapped by InvalidDottedPathError.
var ErrInvalidDottedPath = errors.New("invalid dotted module path")

// identifierRegex matches a single Python identifier segment. Dunder and
// private names are accepted; keywords are not rejected here because module
// files on disk can legitimately shadow them.
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type (
	// Identifier is a single Python identifier (class name, method name,
	// constant name). The zero value ("") is invalid.
	Identifier string

	// DottedPath is a dotted Python module path such as
	// "maya_tools.utilities.boxy.boxy_tool". Every segment must be a valid
	// identifier and the path must contain at least one segment.
	DottedPath string

	// InvalidIdentifierError is returned when an Identifier fails validation.
	InvalidIdentifierError struct {
		Value Identifier
	}

	// InvalidDottedPathError is returned when a DottedPath fails validation.
	InvalidDottedPathError struct {
		Value  DottedPath
		Reason string
	}
)

// String returns the string representation of the Identifier.
func (i Identifier) String() string { return string(i) }

// IsValid returns whether the Identifier is a well-formed Python identifier.
func (i Identifier) IsValid() (bool, []error) {
	if !identifierRegex.MatchString(string(i)) {
		return false, []error{&InvalidIdentifierError{Value: i}}
	}
	return true, nil
}

// String returns the string representation of the DottedPath.
func (p DottedPath) String() string { return string(p) }

// Segments returns the dot-separated segments of the path.
func (p DottedPath) Segments() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), ".")
}

// IsValid returns whether every segment of the DottedPath is a well-formed
// identifier. The zero value ("") is invalid.
func (p DottedPath) IsValid() (bool, []error) {
	if p == "" {
		return false, []error{&InvalidDottedPathError{Value: p, Reason: "path is empty"}}
	}
	for _, seg := range p.Segments() {
		if !identifierRegex.MatchString(seg) {
			return false, []error{&InvalidDottedPathError{
				Value:  p,
				Reason: fmt.Sprintf("segment %q is not a valid identifier", seg),
			}}
		}
	}
	return true, nil
}

// Parent returns the path with its last segment dropped, and whether a parent
// exists. A single-segment path has no parent.
func (p DottedPath) Parent() (DottedPath, bool) {
	idx := strings.LastIndex(string(p), ".")
	if idx < 0 {
		return "", false
	}
	return DottedPath(p[:idx]), true
}

// Child returns the path extended with one more segment.
func (p DottedPath) Child(seg Identifier) DottedPath {
	if p == "" {
		return DottedPath(seg)
	}
	return DottedPath(string(p) + "." + string(seg))
}

// Base returns the last segment of the path.
func (p DottedPath) Base() Identifier {
	segs := p.Segments()
	if len(segs) == 0 {
		return ""
	}
	return Identifier(segs[len(segs)-1])
}

// Attr returns the fully-qualified dotted reference to an attribute of this
// module, e.g. path "pkg.mod" and name "UI_SCRIPT" yield "pkg.mod.UI_SCRIPT".
func (p DottedPath) Attr(name Identifier) string {
	return string(p) + "." + string(name)
}

// Join builds a DottedPath from raw segments without validating them.
// Callers that accept user input should validate the result with IsValid.
func Join(segments ...string) DottedPath {
	return DottedPath(strings.Join(segments, "."))
}

// Error implements the error interface for InvalidIdentifierError.
func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid python identifier: %q", e.Value)
}

// Unwrap returns ErrInvalidIdentifier for errors.Is() compatibility.
func (e *InvalidIdentifierError) Unwrap() error { return ErrInvalidIdentifier }

// Error implements the error interface for InvalidDottedPathError.
func (e *InvalidDottedPathError) Error() string {
	return fmt.Sprintf("invalid dotted module path %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidDottedPath for errors.Is() compatibility.
func (e *InvalidDottedPathError) Unwrap() error { return ErrInvalidDottedPath }
