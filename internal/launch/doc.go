// SPDX-License-Identifier: MPL-2.0

// Package launch resolves tool launch expressions into the typed data the
// code generator needs: the module to import, the call expression to embed,
// and the fully-qualified reference to the UI bootstrap constant.
//
// A launch expression has the form
//
//	<dotted.module.path>.<ClassName>().<methodName>()
//
// e.g. "maya_tools.utilities.boxy.boxy_tool.BoxyTool().show()".
//
// Tools come in two layouts. A single-file tool defines its UI_SCRIPT
// constant in the same module as the class. A package-based tool defines it
// in the package initializer one segment above the class's module
// (pkg/__init__.py), so the reference must point at the parent path. The
// resolver distinguishes the two by probing the filesystem through an
// injected InitializerProber and fails at bundle time when the constant is
// missing from both candidates; generated code never probes at Maya runtime.
//
// Deeper ancestors are deliberately not searched: a constant defined two or
// more segments above the class module is reported as not found.
package launch
