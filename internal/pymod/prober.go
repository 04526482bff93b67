// SPDX-License-Identifier: MPL-2.0

package pymod

import (
	"fmt"

	"mayabundle/internal/launch"
	"mayabundle/pkg/pyident"
)

// Prober implements launch.InitializerProber against the real filesystem:
// it locates the module for a dotted path and lexically scans it for
// module-scope constants.
type Prober struct {
	locator *Locator
}

// NewProber creates a Prober over the given locator.
func NewProber(locator *Locator) *Prober {
	return &Prober{locator: locator}
}

// Probe resolves the dotted path and, when found, scans the source file for
// constant names. A module that does not resolve yields a zero ProbeResult
// rather than an error; the resolver decides whether that is fatal.
func (p *Prober) Probe(path pyident.DottedPath) (launch.ProbeResult, error) {
	loc, found, err := p.locator.Locate(path)
	if err != nil {
		return launch.ProbeResult{}, err
	}
	if !found {
		return launch.ProbeResult{}, nil
	}

	constants, err := ScanConstantsFile(loc.File)
	if err != nil {
		return launch.ProbeResult{}, fmt.Errorf("probing %s: %w", path, err)
	}
	return launch.ProbeResult{
		Exists:    true,
		IsPackage: loc.IsPackage,
		Constants: constants,
	}, nil
}
