// SPDX-License-Identifier: MPL-2.0

package bundlefile

import (
	_ "embed"
	"fmt"
	"os"

	"mayabundle/pkg/cueutil"
)

//go:embed bundlefile_schema.cue
var bundlefileSchema string

// Parse reads and parses a bundlefile from the given path.
func Parse(path string) (*Bundlefile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundlefile at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses bundlefile content from bytes. Uses
// cueutil.ParseAndDecodeString for the 3-step CUE parsing flow:
// compile schema, compile user data, validate and decode.
func ParseBytes(data []byte, path string) (*Bundlefile, error) {
	result, err := cueutil.ParseAndDecodeString[Bundlefile](
		bundlefileSchema,
		data,
		"#Bundlefile",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBundlefile, err)
	}

	bf := result.Value
	bf.FilePath = path

	if err := bf.validate(); err != nil {
		return nil, err
	}
	return bf, nil
}
