// SPDX-License-Identifier: MPL-2.0

package launch

import "mayabundle/pkg/pyident"

// UIScriptConstant is the module-scope constant Maya uses to restore a
// dockable tool's workspace control from a persisted layout.
const UIScriptConstant = pyident.Identifier("UI_SCRIPT")

// Layout identifies how a tool's sources are arranged on disk.
type Layout int

const (
	// LayoutSingleFile is a tool that is one source file; UI_SCRIPT lives at
	// module scope in that same file.
	LayoutSingleFile Layout = iota
	// LayoutPackageModule is a package-based tool; UI_SCRIPT lives in the
	// package initializer one segment above the class's module.
	LayoutPackageModule
)

// String returns a human-readable layout name.
func (l Layout) String() string {
	switch l {
	case LayoutSingleFile:
		return "single-file"
	case LayoutPackageModule:
		return "package"
	default:
		return "unknown"
	}
}

// ProbeResult describes what an InitializerProber found at a dotted path.
type ProbeResult struct {
	// Exists is true when the path resolves to an importable unit (a module
	// file or a package initializer).
	Exists bool
	// IsPackage is true when the path resolved to a package initializer
	// (__init__.py) rather than a plain module file.
	IsPackage bool
	// Constants holds the module-scope constant names defined by the unit.
	Constants map[pyident.Identifier]struct{}
}

// Defines reports whether the probed unit defines the given constant.
func (r ProbeResult) Defines(name pyident.Identifier) bool {
	_, ok := r.Constants[name]
	return ok
}

// InitializerProber answers "does identifier path P resolve to an importable
// unit, and which module-scope constants does it define?". It is injected
// into the Resolver so resolution logic is testable without a real
// filesystem; internal/pymod provides the production implementation.
type InitializerProber interface {
	Probe(path pyident.DottedPath) (ProbeResult, error)
}
