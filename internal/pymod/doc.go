// SPDX-License-Identifier: MPL-2.0

// Package pymod locates Python modules on disk and inspects them without
// executing any Python. A dotted module path maps to either a plain source
// file (a/b/c.py) or a package initializer (a/b/c/__init__.py) under one of
// the configured search roots; module-scope constants are extracted by a
// line scan of the source.
package pymod
