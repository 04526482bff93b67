// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"strings"

	"mayabundle/pkg/pyident"
)

// ErrModuleNotFound is the sentinel error wrapped by ModuleNotFoundError.
var ErrModuleNotFound = errors.New("module not found")

// ErrUIScriptNotFound is the sentinel error wrapped by UIScriptNotFoundError.
var ErrUIScriptNotFound = errors.New("ui script constant not found")

type (
	// ModuleNotFoundError is returned when the class's module path does not
	// resolve to any source file or package under the search roots.
	ModuleNotFoundError struct {
		Path pyident.DottedPath
	}

	// UIScriptNotFoundError is returned when neither the class's own module
	// nor its parent package initializer defines the UI bootstrap constant.
	UIScriptNotFoundError struct {
		Probed []pyident.DottedPath
	}

	// Descriptor is the resolver's output: everything the code generator
	// needs, as plain data. UIScriptPath is empty when the tool is not
	// bundled as a dockable workspace control.
	Descriptor struct {
		Expression   Expression
		Layout       Layout
		UIScriptPath pyident.DottedPath
		Invocation   Invocation
	}

	// Resolver turns parsed launch expressions into Descriptors using an
	// injected filesystem probe.
	Resolver struct {
		prober InitializerProber
	}
)

// Error implements the error interface for ModuleNotFoundError.
func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module %q not found under any search root", e.Path)
}

// Unwrap returns ErrModuleNotFound for errors.Is() compatibility.
func (e *ModuleNotFoundError) Unwrap() error { return ErrModuleNotFound }

// Error implements the error interface for UIScriptNotFoundError.
func (e *UIScriptNotFoundError) Error() string {
	probed := make([]string, len(e.Probed))
	for i, p := range e.Probed {
		probed[i] = string(p)
	}
	return fmt.Sprintf("constant %s not defined at any probed path (probed: %s)",
		UIScriptConstant, strings.Join(probed, ", "))
}

// Unwrap returns ErrUIScriptNotFound for errors.Is() compatibility.
func (e *UIScriptNotFoundError) Unwrap() error { return ErrUIScriptNotFound }

// NewResolver creates a Resolver backed by the given prober.
func NewResolver(prober InitializerProber) *Resolver {
	return &Resolver{prober: prober}
}

// Resolve parses and resolves a launch expression in one step.
func (r *Resolver) Resolve(raw string, dockable bool) (Descriptor, error) {
	expr, err := ParseExpression(raw)
	if err != nil {
		return Descriptor{}, err
	}
	return r.ResolveExpression(expr, dockable)
}

// ResolveExpression resolves a parsed expression into a Descriptor.
//
// Layout inference probes the class module itself and, when one exists, the
// package initializer at its parent path. The layout is PackageModule when
// the parent initializer defines UI_SCRIPT, otherwise SingleFile. For
// dockable show() tools the chosen path must actually define the constant;
// a miss is a hard error here, at bundle time, because a dangling reference
// would otherwise only surface when Maya executes the generated plugin.
func (r *Resolver) ResolveExpression(expr Expression, dockable bool) (Descriptor, error) {
	own, err := r.prober.Probe(expr.ModulePath)
	if err != nil {
		return Descriptor{}, fmt.Errorf("probing %s: %w", expr.ModulePath, err)
	}
	if !own.Exists {
		return Descriptor{}, &ModuleNotFoundError{Path: expr.ModulePath}
	}

	layout := LayoutSingleFile
	var uiScriptPath pyident.DottedPath
	probed := []pyident.DottedPath{expr.ModulePath}

	if parent, ok := expr.ModulePath.Parent(); ok {
		pres, perr := r.prober.Probe(parent)
		if perr != nil {
			return Descriptor{}, fmt.Errorf("probing %s: %w", parent, perr)
		}
		probed = append(probed, parent)
		if pres.Exists && pres.IsPackage && pres.Defines(UIScriptConstant) {
			layout = LayoutPackageModule
			uiScriptPath = parent
		}
	}
	if layout == LayoutSingleFile && own.Defines(UIScriptConstant) {
		uiScriptPath = expr.ModulePath
	}

	if dockable && expr.MethodName == DockableShowMethod && uiScriptPath == "" {
		return Descriptor{}, &UIScriptNotFoundError{Probed: probed}
	}

	return Descriptor{
		Expression:   expr,
		Layout:       layout,
		UIScriptPath: uiScriptPath,
		Invocation:   BuildInvocation(expr, dockable, uiScriptPath),
	}, nil
}
