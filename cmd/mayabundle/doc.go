// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for mayabundle.
//
// This package implements the Cobra command hierarchy for the mayabundle
// CLI: the root command plus subcommands for bundling, batch deployment,
// plan inspection, launch-expression resolution, bundle verification,
// watch mode, run history, and configuration management.
package cmd
