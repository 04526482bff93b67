// SPDX-License-Identifier: MPL-2.0

// Package scan walks the local import graph of a Python tool. Starting from
// the tool's root file it parses import statements, resolves the local ones
// against the configured search roots, and recurses, producing the set of
// source files a bundle must carry. Standard-library modules and the
// modules Maya itself provides (maya, PySide, shiboken) are never followed.
package scan
