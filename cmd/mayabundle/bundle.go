// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"mayabundle/internal/bundler"
	"mayabundle/internal/config"
	"mayabundle/internal/history"

	"github.com/spf13/cobra"
)

// bundleFlagValues holds the flag values shared by bundle and watch.
type bundleFlagValues struct {
	launch       string
	name         string
	outputDir    string
	dockable     bool
	scriptsRoots []string
	ignore       []string
	icon         string
	menuParent   string
	shelfName    string
	vendor       string
	hook         string
}

var bundleFlags bundleFlagValues

var bundleCmd = &cobra.Command{
	Use:   "bundle <root-file>",
	Short: "Bundle a Maya tool into a plugin",
	Long: `Bundle a PySide Maya tool into a self-contained Maya plugin.

The launch expression is the dotted call your studio launcher uses to
open the tool, e.g. "maya_tools.boxy.boxy_tool.BoxyTool().show()".
With --dockable, show() is rewritten to show_workspace_control() and
the tool's UI_SCRIPT constant must exist at bundle time.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBundle(cmd.Context(), args[0])
	},
}

func init() {
	registerBundleFlags(bundleCmd, &bundleFlags)
	rootCmd.AddCommand(bundleCmd)
}

// registerBundleFlags wires the bundling flags onto a command; bundle and
// watch share the same surface.
func registerBundleFlags(cmd *cobra.Command, vals *bundleFlagValues) {
	cmd.Flags().StringVarP(&vals.launch, "launch", "l", "", "launch expression, e.g. \"pkg.mod.Class().show()\" (required)")
	cmd.Flags().StringVarP(&vals.name, "name", "n", "", "plugin name (default: root file stem)")
	cmd.Flags().StringVarP(&vals.outputDir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVarP(&vals.dockable, "dockable", "d", false, "bundle as a dockable workspace control")
	cmd.Flags().StringArrayVar(&vals.scriptsRoots, "scripts-root", nil, "import search root (repeatable; default: root file's directory)")
	cmd.Flags().StringArrayVar(&vals.ignore, "ignore", nil, "glob pattern pruned from the import graph (repeatable)")
	cmd.Flags().StringVar(&vals.icon, "icon", "", "icon file to bundle")
	cmd.Flags().StringVar(&vals.menuParent, "menu", "", "Maya menu to register the tool under")
	cmd.Flags().StringVar(&vals.shelfName, "shelf", "", "Maya shelf to add a button to")
	cmd.Flags().StringVar(&vals.vendor, "vendor", "", "vendor recorded on the plugin registration")
	cmd.Flags().StringVar(&vals.hook, "hook", "", "shell script run after a successful bundle")
	_ = cmd.MarkFlagRequired("launch")
}

// bundleOptions merges config defaults with the flag values.
func bundleOptions(cfg *config.Config, rootFile string, vals *bundleFlagValues) bundler.Options {
	opts := bundler.Options{
		RootFile:         rootFile,
		OutputDir:        vals.outputDir,
		PluginName:       vals.name,
		LaunchExpression: vals.launch,
		Dockable:         vals.dockable,
		ScriptsRoots:     vals.scriptsRoots,
		IconPath:         vals.icon,
		MenuParent:       vals.menuParent,
		ShelfName:        vals.shelfName,
		Vendor:           vals.vendor,
		Hook:             vals.hook,
	}
	if opts.OutputDir == "" {
		opts.OutputDir = cfg.OutputDir.String()
	}
	if opts.Vendor == "" {
		opts.Vendor = cfg.Vendor
	}
	if len(opts.ScriptsRoots) == 0 {
		for _, root := range cfg.SearchRoots {
			opts.ScriptsRoots = append(opts.ScriptsRoots, root.String())
		}
	}
	opts.IgnoreGlobs = append(opts.IgnoreGlobs, cfg.Ignore...)
	opts.IgnoreGlobs = append(opts.IgnoreGlobs, vals.ignore...)
	return opts
}

func runBundle(ctx context.Context, rootFile string) error {
	cfg := currentConfig()
	opts := bundleOptions(cfg, rootFile, &bundleFlags)

	b, err := bundler.New(bundler.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := b.Bundle(ctx, opts)
	recordBundleRun(cfg, opts, result, err, time.Since(start))
	if err != nil {
		renderKnownIssue(err)
		return err
	}

	printBundleResult(result)
	return nil
}

// printBundleResult prints the one-bundle success summary.
func printBundleResult(result *bundler.Result) {
	fmt.Printf("%s Bundled %s (%s, %d files, %s)\n",
		SuccessStyle.Render("✓"),
		TitleStyle.Render(result.PluginName),
		result.Descriptor.Layout.String(),
		result.FileCount,
		result.Duration.Round(time.Millisecond))
	fmt.Printf("  Plugin file: %s\n", PathStyle.Render(result.PluginFile))
	fmt.Printf("  Support dir: %s\n", PathStyle.Render(result.PluginDir))
	if result.ShelfScript != "" {
		fmt.Printf("  Shelf script: %s\n", PathStyle.Render(result.ShelfScript))
	}
	if result.MenuScript != "" {
		fmt.Printf("  Menu script: %s\n", PathStyle.Render(result.MenuScript))
	}
	fmt.Printf("\nLoad %s in Maya's Plug-in Manager to install.\n",
		PathStyle.Render(filepath.Base(result.PluginFile)))
}

// recordBundleRun appends one run to the history database. History failures
// never fail the bundle; they are logged and dropped.
func recordBundleRun(cfg *config.Config, opts bundler.Options, result *bundler.Result, runErr error, elapsed time.Duration) {
	if !cfg.History.Enabled {
		return
	}

	dbPath, err := config.HistoryDBPath(cfg)
	if err != nil {
		slog.Warn("history disabled for this run", "error", err)
		return
	}
	store, err := history.Open(dbPath)
	if err != nil {
		slog.Warn("history disabled for this run", "error", err)
		return
	}
	defer store.Close()

	rec := history.Record{
		PluginName:       opts.PluginName,
		LaunchExpression: opts.LaunchExpression,
		OutputDir:        opts.OutputDir,
		Duration:         elapsed,
		Outcome:          history.OutcomeSucceeded,
	}
	if rec.PluginName == "" {
		rec.PluginName = strings.TrimSuffix(
			filepath.Base(opts.RootFile), filepath.Ext(opts.RootFile))
	}
	if result != nil {
		rec.PluginName = result.PluginName
		rec.Layout = result.Descriptor.Layout.String()
		rec.FileCount = result.FileCount
	}
	if runErr != nil {
		rec.Outcome = history.OutcomeFailed
		rec.Error = runErr.Error()
	}

	if _, err := store.Append(rec); err != nil {
		slog.Warn("failed to record bundle run", "error", err)
	}
}
