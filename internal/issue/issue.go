// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	LaunchParseFailedId Id = iota + 1
	ModuleNotFoundId
	UiScriptNotFoundId
	ManifestNotFoundId
	ManifestParseErrorId
	IconInvalidId
	HookFailedId
	ConfigLoadFailedId
	OutputNotWritableId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // links into the bundler docs
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	launchParseFailedIssue = &Issue{
		id: LaunchParseFailedId,
		mdMsg: `
# Could not parse the launch expression!

A launch expression names the class to instantiate and the method to call:

~~~
<module.path>.<ClassName>().<methodName>()
~~~

## Example:
~~~
maya_tools.utilities.boxy.boxy_tool.BoxyTool().show()
~~~

## Common issues:
- Missing constructor parentheses after the class name
- Missing method call at the end
- Empty segments (double dots) in the module path

## Things you can try:
- Check the expression with:
~~~
$ mayabundle resolve "<your expression>"
~~~`,
	}

	moduleNotFoundIssue = &Issue{
		id: ModuleNotFoundId,
		mdMsg: `
# Module not found!

The module named by the launch expression does not exist under any of the
configured search roots. We look for both layouts:

- a single file: ` + "`a/b/c.py`" + `
- a package: ` + "`a/b/c/__init__.py`" + `

## Things you can try:
- Pass the scripts root explicitly:
~~~
$ mayabundle bundle tool.py --scripts-root /path/to/scripts
~~~
- Add search roots to your config file (see 'mayabundle config show')
- Check the module path spelling in the launch expression`,
	}

	uiScriptNotFoundIssue = &Issue{
		id: UiScriptNotFoundId,
		mdMsg: `
# UI_SCRIPT constant not found!

Dockable tools need a module-scope UI_SCRIPT constant so Maya can restore
the workspace control from a saved layout. We probed both candidate
locations and found the constant in neither:

1. the package initializer one level above the class's module
   (package-based tools define UI_SCRIPT in ` + "`__init__.py`" + `)
2. the class's own module (single-file tools)

This is checked at bundle time on purpose: a missing constant would
otherwise only surface as an attribute error inside Maya, long after
bundling appeared to succeed.

## Things you can try:
- Define UI_SCRIPT at module scope in your tool file, or in the package's
  ` + "`__init__.py`" + ` for package-based tools
- Bundle without --dockable if the tool is not a workspace control`,
	}

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No bundlefile found!

Batch bundling needs a bundlefile.cue manifest listing the tools to bundle.

## Things you can try:
- Point at an existing manifest:
~~~
$ mayabundle batch /path/to/bundlefile.cue
~~~
- Or create a bundlefile.cue in your current directory:
~~~cue
output_dir: "plug-ins"
tools: [
	{
		root_file: "maya_tools/utilities/time_date_tool.py"
		launch:    "maya_tools.utilities.time_date_tool.TimeDateTool().show()"
	},
]
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse the bundlefile!

Your bundlefile.cue contains syntax errors or invalid configuration.

## Common issues:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Unknown field names
- A tool entry missing the required root_file field

## Example of a valid tool entry:
~~~cue
tools: [
	{
		root_file: "maya_tools/utilities/time_date_tool.py"
		launch:    "maya_tools.utilities.time_date_tool.TimeDateTool().show()"
		dockable:  true
		shelf:     "Robotools"
	},
]
~~~`,
	}

	iconInvalidIssue = &Issue{
		id: IconInvalidId,
		mdMsg: `
# Icon file rejected!

The icon either does not exist or has an unsupported format.

## Supported formats:
png, svg, jpg, jpeg, bmp, xpm, ico

## Things you can try:
- Check the icon path
- Convert the icon to PNG`,
	}

	hookFailedIssue = &Issue{
		id: HookFailedId,
		mdMsg: `
# Post-bundle hook failed!

The shell hook configured for this tool exited with a non-zero status.
The bundle itself was written before the hook ran; only the hook failed.

## Things you can try:
- Run with verbose mode to see the hook's output:
~~~
$ mayabundle --verbose bundle ...
~~~
- Test the hook script on its own; it runs in the built-in POSIX shell,
  so bashisms are not available`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your config file exists but could not be loaded.

## Things you can try:
- Check the CUE syntax of your config file
- Show the effective configuration:
~~~
$ mayabundle config show
~~~
- Recreate the default config:
~~~
$ mayabundle config init
~~~`,
	}

	outputNotWritableIssue = &Issue{
		id: OutputNotWritableId,
		mdMsg: `
# Cannot write to the output directory!

## Things you can try:
- Check directory permissions
- Pass a different output directory:
~~~
$ mayabundle bundle tool.py --out /path/you/own
~~~`,
	}

	issues = map[Id]*Issue{
		launchParseFailedIssue.Id():  launchParseFailedIssue,
		moduleNotFoundIssue.Id():     moduleNotFoundIssue,
		uiScriptNotFoundIssue.Id():   uiScriptNotFoundIssue,
		manifestNotFoundIssue.Id():   manifestNotFoundIssue,
		manifestParseErrorIssue.Id(): manifestParseErrorIssue,
		iconInvalidIssue.Id():        iconInvalidIssue,
		hookFailedIssue.Id():         hookFailedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		outputNotWritableIssue.Id():  outputNotWritableIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
