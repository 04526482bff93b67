// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"mayabundle/internal/bundler"
	"mayabundle/internal/config"
	"mayabundle/pkg/bundlefile"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [bundlefile]",
	Short: "Bundle every tool listed in a bundlefile.cue manifest",
	Long: `Bundle every tool listed in a CUE batch manifest.

Without an argument, ` + bundlefile.DefaultFileName + ` in the current
directory is used. Tools are bundled in manifest order; a failing tool
does not stop the batch, but the command exits non-zero if any tool
failed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := bundlefile.DefaultFileName
		if len(args) == 1 {
			path = args[0]
		}
		return runBatch(cmd.Context(), path)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(ctx context.Context, path string) error {
	bf, err := bundlefile.Parse(path)
	if err != nil {
		renderKnownBundlefileIssue(err)
		return err
	}

	cfg := currentConfig()
	b, err := bundler.New(bundler.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	fmt.Printf("%s %d tool(s) from %s\n\n",
		TitleStyle.Render("Batch bundle:"), len(bf.Tools), PathStyle.Render(path))

	failed := 0
	for i := range bf.Tools {
		tool := &bf.Tools[i]
		opts := batchToolOptions(cfg, bf, tool)

		start := time.Now()
		result, bundleErr := b.Bundle(ctx, opts)
		recordBundleRun(cfg, opts, result, bundleErr, time.Since(start))

		if bundleErr != nil {
			failed++
			fmt.Printf("%s %s\n", ErrorStyle.Render("✗"), tool.EffectiveName())
			fmt.Fprintf(os.Stderr, "  %s\n", formatErrorForDisplay(bundleErr, verbose))
			renderKnownIssue(bundleErr)
			continue
		}
		fmt.Printf("%s %s (%d files, %s)\n",
			SuccessStyle.Render("✓"), result.PluginName,
			result.FileCount, result.Duration.Round(time.Millisecond))
	}

	fmt.Println()
	if failed > 0 {
		fmt.Printf("%s %d of %d tool(s) failed\n",
			ErrorStyle.Render("✗"), failed, len(bf.Tools))
		return &ExitError{Code: 1, Err: fmt.Errorf("%d of %d tools failed to bundle", failed, len(bf.Tools))}
	}
	fmt.Printf("%s All %d tool(s) bundled\n", SuccessStyle.Render("✓"), len(bf.Tools))
	return nil
}

// batchToolOptions builds the bundle options for one manifest entry.
// Manifest-relative paths are resolved against the manifest's directory,
// and config supplies defaults the manifest leaves unset.
func batchToolOptions(cfg *config.Config, bf *bundlefile.Bundlefile, tool *bundlefile.Tool) bundler.Options {
	baseDir := filepath.Dir(bf.FilePath)

	opts := bundler.Options{
		RootFile:         resolveAgainst(baseDir, tool.RootFile),
		OutputDir:        bf.OutputDir,
		PluginName:       tool.Name,
		LaunchExpression: tool.Launch,
		Dockable:         tool.Dockable,
		IconPath:         tool.Icon,
		MenuParent:       tool.Menu,
		ShelfName:        tool.Shelf,
		Vendor:           bf.Vendor,
		Hook:             bf.Hook,
		IgnoreGlobs:      bf.Ignore,
	}
	if opts.OutputDir == "" {
		opts.OutputDir = cfg.OutputDir.String()
	} else {
		opts.OutputDir = resolveAgainst(baseDir, opts.OutputDir)
	}
	if opts.Vendor == "" {
		opts.Vendor = cfg.Vendor
	}
	if opts.IconPath != "" {
		opts.IconPath = resolveAgainst(baseDir, opts.IconPath)
	}
	for _, root := range bf.Roots(tool) {
		opts.ScriptsRoots = append(opts.ScriptsRoots, resolveAgainst(baseDir, root))
	}
	return opts
}

// resolveAgainst resolves path against baseDir unless it is already absolute.
func resolveAgainst(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
