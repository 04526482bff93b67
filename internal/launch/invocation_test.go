// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"testing"

	"mayabundle/pkg/pyident"
)

func mustParse(t *testing.T, raw string) Expression {
	t.Helper()
	expr, err := ParseExpression(raw)
	if err != nil {
		t.Fatalf("ParseExpression(%q) error: %v", raw, err)
	}
	return expr
}

func TestBuildInvocation_DockableShowSubstitution(t *testing.T) {
	t.Parallel()

	expr := mustParse(t, "maya_tools.utilities.boxy.boxy_tool.BoxyTool().show()")
	inv := BuildInvocation(expr, true, "maya_tools.utilities.boxy")

	want := "maya_tools.utilities.boxy.boxy_tool.BoxyTool().show_workspace_control(" +
		"ui_script=maya_tools.utilities.boxy.UI_SCRIPT)"
	if inv.Expression != want {
		t.Errorf("Expression = %q, want %q", inv.Expression, want)
	}
	if !inv.Dockable {
		t.Error("Dockable should be recorded")
	}
	if inv.UIScriptRef != "maya_tools.utilities.boxy.UI_SCRIPT" {
		t.Errorf("UIScriptRef = %q", inv.UIScriptRef)
	}
}

func TestBuildInvocation_ImportsBothModulesWhenDistinct(t *testing.T) {
	t.Parallel()

	expr := mustParse(t, "maya_tools.utilities.boxy.boxy_tool.BoxyTool().show()")
	inv := BuildInvocation(expr, true, "maya_tools.utilities.boxy")

	want := []pyident.DottedPath{
		"maya_tools.utilities.boxy.boxy_tool",
		"maya_tools.utilities.boxy",
	}
	if len(inv.ImportModules) != len(want) {
		t.Fatalf("ImportModules = %v, want %v", inv.ImportModules, want)
	}
	for i := range want {
		if inv.ImportModules[i] != want[i] {
			t.Errorf("ImportModules[%d] = %q, want %q", i, inv.ImportModules[i], want[i])
		}
	}
}

func TestBuildInvocation_SingleFileImportsOnce(t *testing.T) {
	t.Parallel()

	expr := mustParse(t, "maya_tools.utilities.time_date_tool.TimeDateTool().show()")
	inv := BuildInvocation(expr, true, "maya_tools.utilities.time_date_tool")

	if len(inv.ImportModules) != 1 {
		t.Fatalf("ImportModules = %v, want exactly the class module", inv.ImportModules)
	}
	if inv.ImportModules[0] != "maya_tools.utilities.time_date_tool" {
		t.Errorf("ImportModules[0] = %q", inv.ImportModules[0])
	}
}

func TestBuildInvocation_NonDockablePassthrough(t *testing.T) {
	t.Parallel()

	expr := mustParse(t, "maya_tools.utilities.boxy.boxy_tool.BoxyTool().show()")
	inv := BuildInvocation(expr, false, "")

	if inv.Expression != "maya_tools.utilities.boxy.boxy_tool.BoxyTool().show()" {
		t.Errorf("Expression = %q, want the original call untouched", inv.Expression)
	}
	if inv.Dockable {
		t.Error("Dockable should not be set")
	}
	if inv.UIScriptRef != "" {
		t.Errorf("UIScriptRef = %q, want empty", inv.UIScriptRef)
	}
}

func TestBuildInvocation_DockableNonShowPassthrough(t *testing.T) {
	t.Parallel()

	expr := mustParse(t, "pkg.tool.Tool().open_editor()")
	inv := BuildInvocation(expr, true, "pkg")

	if inv.Expression != "pkg.tool.Tool().open_editor()" {
		t.Errorf("Expression = %q, want the original call untouched", inv.Expression)
	}
}
