// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"mayabundle/internal/config"
	"mayabundle/internal/issue"

	"github.com/charmbracelet/fang"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// configProvider loads configuration for all commands.
	configProvider = config.NewProvider()

	// loadedConfig caches the configuration loaded during initialization.
	loadedConfig *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "mayabundle",
		Short: "Bundle PySide Maya tools into portable plugins",
		Long: TitleStyle.Render("mayabundle") + SubtitleStyle.Render(" - Bundle PySide Maya tools into portable plugins") + `

mayabundle packages a PySide Maya tool (a single Python file or a
Python package) into a self-contained Maya plugin: it resolves the
tool's launch expression, walks the local import graph, copies every
transitively imported file, and generates the Maya plugin entry point
plus shelf/menu helper scripts and an install README.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Point mayabundle at your tool's main Python file
  2. Pass the launch expression your studio launcher uses
  3. Load the generated .py file in Maya's Plug-in Manager

` + SubtitleStyle.Render("Examples:") + `
  mayabundle bundle boxy_tool.py --launch "maya_tools.boxy.boxy_tool.BoxyTool().show()"
  mayabundle batch                  Bundle every tool in bundlefile.cue
  mayabundle plan boxy_tool.py      Show what would be copied, without writing
  mayabundle verify plug-ins/boxy   Re-check a written bundle against its manifest
  mayabundle config show            Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/mayabundle/config.cue)")
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads the config file, applies UI settings, and installs
// the CLI logger.
func initRootConfig() {
	cfg, err := configProvider.Load(context.Background(), config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		// Always surface config loading errors to the user.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		cfg = config.DefaultConfig()
	}
	loadedConfig = cfg

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}

	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Prefix: "mayabundle",
		Level:  charmlog.WarnLevel,
	})
	if verbose {
		logger.SetLevel(charmlog.DebugLevel)
	}
	slog.SetDefault(slog.New(logger))
}

// currentConfig returns the configuration loaded during initialization,
// falling back to defaults when initialization has not run (tests).
func currentConfig() *config.Config {
	if loadedConfig != nil {
		return loadedConfig
	}
	return config.DefaultConfig()
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
