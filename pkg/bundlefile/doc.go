// SPDX-License-Identifier: MPL-2.0

// Package bundlefile parses bundlefile.cue, the batch deployment manifest.
// A bundlefile lists the tools to bundle in one run, with shared defaults
// (output directory, vendor, search roots) hoisted to the top level and
// overridable per tool. Parsing validates against an embedded CUE schema
// before any bundling starts, so a bad manifest fails the whole batch up
// front.
package bundlefile
