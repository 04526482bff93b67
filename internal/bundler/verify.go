// SPDX-License-Identifier: MPL-2.0

package bundler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mayabundle/internal/plan"
	"mayabundle/internal/pymod"
	"mayabundle/pkg/pyident"
)

// VerifyReport lists everything wrong with a previously written bundle.
type VerifyReport struct {
	PluginName string
	Checked    int
	Problems   []string
}

// OK reports whether the bundle passed every check.
func (r *VerifyReport) OK() bool { return len(r.Problems) == 0 }

func (r *VerifyReport) problemf(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// Verify re-reads a bundle's manifest and checks the tree against it: every
// recorded file present with its recorded size, the plugin entry point in
// place, and the UI script constant still resolvable inside the bundled
// scripts tree.
func Verify(pluginDir string) (*VerifyReport, error) {
	manifest, err := LoadManifest(pluginDir)
	if err != nil {
		return nil, err
	}

	report := &VerifyReport{PluginName: manifest.PluginName}

	for _, rec := range manifest.Files {
		report.Checked++
		path := filepath.Join(pluginDir, filepath.FromSlash(rec.Path))
		info, err := os.Stat(path)
		if err != nil {
			report.problemf("missing file: %s", rec.Path)
			continue
		}
		if info.Size() != rec.Size {
			report.problemf("size mismatch for %s: manifest %d, on disk %d",
				rec.Path, rec.Size, info.Size())
		}
	}

	pluginFile := filepath.Join(filepath.Dir(pluginDir), manifest.PluginName+".py")
	report.Checked++
	if _, err := os.Stat(pluginFile); err != nil {
		report.problemf("missing plugin file: %s", pluginFile)
	}

	if manifest.Icon != "" {
		report.Checked++
		iconPath := filepath.Join(pluginDir, "icons", manifest.Icon)
		if _, err := os.Stat(iconPath); err != nil {
			report.problemf("missing icon: %s", manifest.Icon)
		}
	}

	if manifest.Launch.UIScript != "" {
		report.Checked++
		verifyUIScript(report, pluginDir, manifest.Launch.UIScript)
	}

	return report, nil
}

// verifyUIScript re-probes the bundled scripts tree for the UI bootstrap
// constant the generated plugin references.
func verifyUIScript(report *VerifyReport, pluginDir, uiScriptRef string) {
	idx := strings.LastIndex(uiScriptRef, ".")
	if idx <= 0 {
		report.problemf("malformed ui_script reference: %s", uiScriptRef)
		return
	}
	modulePath := pyident.DottedPath(uiScriptRef[:idx])
	constant := pyident.Identifier(uiScriptRef[idx+1:])

	locator, err := pymod.NewLocator(filepath.Join(pluginDir, plan.ScriptsDirName))
	if err != nil {
		report.problemf("probing bundled scripts: %v", err)
		return
	}
	res, err := pymod.NewProber(locator).Probe(modulePath)
	if err != nil {
		report.problemf("probing bundled module %s: %v", modulePath, err)
		return
	}
	if !res.Exists {
		report.problemf("ui_script module %s not present in bundled scripts", modulePath)
		return
	}
	if !res.Defines(constant) {
		report.problemf("bundled module %s no longer defines %s", modulePath, constant)
	}
}
