// SPDX-License-Identifier: MPL-2.0

package bundler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrIconInvalid is returned for icons with an unsupported extension.
var ErrIconInvalid = errors.New("invalid icon format")

// iconExtensions are the formats Maya shelf buttons accept.
var iconExtensions = map[string]struct{}{
	".png": {}, ".svg": {}, ".jpg": {}, ".jpeg": {},
	".bmp": {}, ".xpm": {}, ".ico": {},
}

// ValidateIcon checks that the icon file exists and carries a supported
// extension.
func ValidateIcon(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("icon file not found: %s", path)
	} else if err != nil {
		return fmt.Errorf("checking icon file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := iconExtensions[ext]; !ok {
		return fmt.Errorf("%w: %q (supported: %s)",
			ErrIconInvalid, ext, supportedIconExtensions())
	}
	return nil
}

func supportedIconExtensions() string {
	exts := make([]string, 0, len(iconExtensions))
	for ext := range iconExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
