// SPDX-License-Identifier: MPL-2.0

// Package codegen renders the files a bundle ships: the Maya plugin entry
// point, the shelf and menu helper scripts, and the install README. All
// launch code is emitted statically from resolved descriptor data, so a
// bundled plugin never probes for attributes at Maya runtime.
package codegen

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"time"

	"mayabundle/internal/launch"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Version is the bundler version stamped into generated files and the
// bundle manifest.
const Version = "2.0.0"

type (
	// PluginData is the input for the plugin entry-point template.
	PluginData struct {
		// PluginName is the Maya command name and file stem.
		PluginName string
		// Vendor is recorded on the MFnPlugin registration.
		Vendor string
		// ToolVersion is the version reported to Maya's plugin manager.
		ToolVersion string
		// Timestamp is the generation time, already formatted.
		Timestamp string
		// BundlerVersion is stamped into the generated header.
		BundlerVersion string
		// Imports are the modules imported before the launch call runs.
		Imports []string
		// LaunchExpression is the statically resolved call.
		LaunchExpression string
		// MenuParent, when set, adds menu registration on plugin load.
		MenuParent string
		// ShelfName, when set, adds shelf-button registration on load.
		ShelfName string
		// IconFileName is the bundled icon's base name, empty for the
		// Maya default.
		IconFileName string
		// Dockable is noted in the generated header.
		Dockable bool
	}

	// ScriptData is the input for the shelf and menu helper templates.
	ScriptData struct {
		PluginName   string
		ShelfName    string
		MenuParent   string
		IconFileName string
	}

	// ReadmeData is the input for the install README template.
	ReadmeData struct {
		PluginName string
		MenuParent string
		ShelfName  string
		Dockable   bool
	}

	// Generator renders bundle files from the embedded templates.
	Generator struct {
		templates *template.Template
	}
)

// New parses the embedded templates. Failure means a broken build, not bad
// user input.
func New() (*Generator, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing embedded templates: %w", err)
	}
	return &Generator{templates: tmpl}, nil
}

// NewPluginData assembles PluginData from a resolved launch descriptor.
func NewPluginData(pluginName, vendor string, desc launch.Descriptor, now time.Time) PluginData {
	imports := make([]string, len(desc.Invocation.ImportModules))
	for i, m := range desc.Invocation.ImportModules {
		imports[i] = string(m)
	}
	return PluginData{
		PluginName:       pluginName,
		Vendor:           vendor,
		ToolVersion:      "1.0",
		Timestamp:        now.Format("2006-01-02 15:04:05"),
		BundlerVersion:   Version,
		Imports:          imports,
		LaunchExpression: desc.Invocation.Expression,
		Dockable:         desc.Invocation.Dockable,
	}
}

// PluginFile renders the Maya plugin entry point.
func (g *Generator) PluginFile(data PluginData) ([]byte, error) {
	return g.render("plugin.py.tmpl", data)
}

// ShelfScript renders the standalone shelf-button helper.
func (g *Generator) ShelfScript(data ScriptData) ([]byte, error) {
	return g.render("shelf.py.tmpl", data)
}

// MenuScript renders the standalone menu-item helper.
func (g *Generator) MenuScript(data ScriptData) ([]byte, error) {
	return g.render("menu.py.tmpl", data)
}

// Readme renders the install README.
func (g *Generator) Readme(data ReadmeData) ([]byte, error) {
	return g.render("readme.md.tmpl", data)
}

func (g *Generator) render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
