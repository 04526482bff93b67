// SPDX-License-Identifier: MPL-2.0

// Package bundler orchestrates one bundle run: resolve the launch
// expression, scan the import graph, derive the copy plan, materialize the
// plugin directory, generate the plugin and helper files, and record the
// bundle manifest. Everything fails at bundle time; a bundle that succeeds
// needs no runtime probing inside Maya.
package bundler
