// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mayabundle/internal/bundler"
	"mayabundle/internal/watch"

	"github.com/spf13/cobra"
)

var (
	watchFlags        bundleFlagValues
	watchDebounceFlag time.Duration
	watchClearScreen  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <root-file>",
	Short: "Rebundle a tool whenever its sources change",
	Long: `Bundle a tool once, then watch its primary search root and
rebundle on every Python source change. Changes are debounced; a
bundle already in flight is never run concurrently. Press Ctrl+C to
stop.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd.Context(), args[0])
	},
}

func init() {
	registerBundleFlags(watchCmd, &watchFlags)
	watchCmd.Flags().DurationVar(&watchDebounceFlag, "debounce", 0, "quiet period before rebundling (default from config)")
	watchCmd.Flags().BoolVar(&watchClearScreen, "clear", false, "clear the terminal before each rebundle")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(ctx context.Context, rootFile string) error {
	cfg := currentConfig()
	opts := bundleOptions(cfg, rootFile, &watchFlags)

	absRoot, err := filepath.Abs(rootFile)
	if err != nil {
		return fmt.Errorf("resolving root file: %w", err)
	}
	toolName := opts.PluginName
	if toolName == "" {
		toolName = strings.TrimSuffix(filepath.Base(absRoot), filepath.Ext(absRoot))
	}

	b, err := bundler.New(bundler.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	rebundle := func(ctx context.Context) {
		start := time.Now()
		result, bundleErr := b.Bundle(ctx, opts)
		recordBundleRun(cfg, opts, result, bundleErr, time.Since(start))
		if bundleErr != nil {
			// Log but don't stop — the user may fix the error and save again.
			fmt.Fprintf(os.Stderr, "%s Bundle failed: %s\n",
				WarningStyle.Render("!"), formatErrorForDisplay(bundleErr, verbose))
			return
		}
		fmt.Printf("%s Bundled %s (%d files, %s)\n",
			SuccessStyle.Render("✓"), result.PluginName,
			result.FileCount, result.Duration.Round(time.Millisecond))
	}

	fmt.Printf("%s Watch mode: initial bundle of %s\n",
		VerboseHighlightStyle.Render("→"), PathStyle.Render(rootFile))
	rebundle(ctx)

	debounce := watchDebounceFlag
	if debounce <= 0 {
		debounce = time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	}

	// The watcher covers the primary search root; the root file's
	// directory when no roots are configured.
	baseDir := filepath.Dir(absRoot)
	if len(opts.ScriptsRoots) > 0 {
		baseDir = opts.ScriptsRoots[0]
	}

	fmt.Printf("\n%s Watching %s for changes (Ctrl+C to stop)...\n\n",
		VerboseHighlightStyle.Render("→"), PathStyle.Render(baseDir))

	w, err := watch.New(watch.Config{
		Patterns:    []string{"**/*.py"},
		Ignore:      opts.IgnoreGlobs,
		Debounce:    debounce,
		ClearScreen: watchClearScreen,
		BaseDir:     baseDir,
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Printf("%s Detected %d change(s). Rebundling %s...\n",
				VerboseHighlightStyle.Render("→"), len(changed), toolName)
			rebundle(ctx)
			fmt.Printf("\n%s Watching for changes...\n\n", VerboseHighlightStyle.Render("→"))
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	return w.Run(ctx)
}
