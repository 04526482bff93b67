// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"fmt"

	"mayabundle/pkg/pyident"
)

const (
	// DockableShowMethod is the method name that dockable bundling rewrites.
	DockableShowMethod = pyident.Identifier("show")
	// WorkspaceControlMethod is the replacement method for dockable tools.
	WorkspaceControlMethod = pyident.Identifier("show_workspace_control")
)

// Invocation is the code generator's input: the modules the generated entry
// point must import before the call runs, the call expression itself, and the
// fully-qualified reference to the UI bootstrap constant (empty if none).
type Invocation struct {
	// ImportModules is the ordered, deduplicated list of modules to import.
	ImportModules []pyident.DottedPath
	// Expression is the call expression to embed in generated code.
	Expression string
	// UIScriptRef is the dotted reference to the bootstrap constant, e.g.
	// "maya_tools.utilities.boxy.UI_SCRIPT". Empty when no constant is used.
	UIScriptRef string
	// Dockable records whether the workspace-control rewrite was applied.
	Dockable bool
}

// BuildInvocation emits the generated call for a resolved expression. When
// dockable is set and the method is show(), the call is rewritten to
// show_workspace_control with a ui_script argument referencing the bootstrap
// constant at uiScriptPath; every other combination passes the original call
// through untouched. Pure function over its inputs.
func BuildInvocation(expr Expression, dockable bool, uiScriptPath pyident.DottedPath) Invocation {
	imports := []pyident.DottedPath{expr.ModulePath}

	if dockable && expr.MethodName == DockableShowMethod && uiScriptPath != "" {
		ref := uiScriptPath.Attr(UIScriptConstant)
		if uiScriptPath != expr.ModulePath {
			imports = append(imports, uiScriptPath)
		}
		return Invocation{
			ImportModules: imports,
			Expression: fmt.Sprintf("%s.%s().%s(ui_script=%s)",
				expr.ModulePath, expr.ClassName, WorkspaceControlMethod, ref),
			UIScriptRef: ref,
			Dockable:    true,
		}
	}

	return Invocation{
		ImportModules: imports,
		Expression:    expr.String(),
	}
}
