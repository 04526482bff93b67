// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"mayabundle/internal/plan"
	"mayabundle/internal/scan"

	"github.com/spf13/cobra"
)

var planFlags struct {
	scriptsRoots []string
	ignore       []string
}

var planCmd = &cobra.Command{
	Use:   "plan <root-file>",
	Short: "Show the bundle plan without writing anything",
	Long: `Walk the tool's import graph and print the resulting bundle plan:
every transitively imported file and where it would land under the
plugin's scripts/ directory. Nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlan(cmd.Context(), args[0])
	},
}

func init() {
	planCmd.Flags().StringArrayVar(&planFlags.scriptsRoots, "scripts-root", nil, "import search root (repeatable; default: root file's directory)")
	planCmd.Flags().StringArrayVar(&planFlags.ignore, "ignore", nil, "glob pattern pruned from the import graph (repeatable)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ context.Context, rootFile string) error {
	cfg := currentConfig()

	absRoot, err := filepath.Abs(rootFile)
	if err != nil {
		return fmt.Errorf("resolving root file: %w", err)
	}

	roots, err := effectiveSearchRoots(planFlags.scriptsRoots, filepath.Dir(absRoot))
	if err != nil {
		return err
	}

	ignore := append(append([]string{}, cfg.Ignore...), planFlags.ignore...)
	scanner := scan.NewScanner(roots,
		scan.WithIgnoreGlobs(ignore...),
		scan.WithLogger(slog.Default()))
	files, err := scanner.Scan(absRoot)
	if err != nil {
		return err
	}

	p, err := plan.Build(files, roots)
	if err != nil {
		return err
	}

	fmt.Printf("%s %d file(s)\n\n", TitleStyle.Render("Bundle plan:"), p.Len())
	for _, entry := range p.Entries {
		fmt.Printf("  %s %s %s\n",
			entry.Source,
			SubtitleStyle.Render("→"),
			PathStyle.Render(entry.Dest()))
	}
	return nil
}

// effectiveSearchRoots resolves the search roots for plan/resolve: explicit
// flags win, then config, then fallbackDir. All returned paths are absolute.
func effectiveSearchRoots(flagRoots []string, fallbackDir string) ([]string, error) {
	roots := flagRoots
	if len(roots) == 0 {
		for _, root := range currentConfig().SearchRoots {
			roots = append(roots, root.String())
		}
	}
	if len(roots) == 0 {
		roots = []string{fallbackDir}
	}
	for i, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolving search root %q: %w", root, err)
		}
		roots[i] = abs
	}
	return roots, nil
}
