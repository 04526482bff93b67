// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"time"

	"mayabundle/internal/config"
	"mayabundle/internal/history"

	"github.com/spf13/cobra"
)

var historyFlags struct {
	plugin string
	limit  int
	keep   int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent bundle runs",
	Long: `Show recent bundle runs recorded in the local history database.

Each bundle invocation appends one record: plugin name, launch
expression, layout, file count, duration, and outcome.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryList()
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recorded bundle runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryStats()
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryPrune()
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyFlags.plugin, "plugin", "", "show runs for one plugin only")
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "maximum number of runs to show")
	historyPruneCmd.Flags().IntVar(&historyFlags.keep, "keep", 100, "number of newest runs to keep")

	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

// openHistoryStore opens the configured history database.
func openHistoryStore() (*history.Store, error) {
	dbPath, err := config.HistoryDBPath(currentConfig())
	if err != nil {
		return nil, err
	}
	return history.Open(dbPath)
}

func runHistoryList() error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var records []history.Record
	if historyFlags.plugin != "" {
		records, err = store.ForPlugin(historyFlags.plugin, historyFlags.limit)
	} else {
		records, err = store.Recent(historyFlags.limit)
	}
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println(SubtitleStyle.Render("No bundle runs recorded yet."))
		return nil
	}

	fmt.Println(TitleStyle.Render("Recent bundle runs"))
	fmt.Println()
	for _, rec := range records {
		marker := SuccessStyle.Render("✓")
		if rec.Outcome == history.OutcomeFailed {
			marker = ErrorStyle.Render("✗")
		}
		fmt.Printf("%s %s  %s  %d files  %s\n",
			marker,
			rec.BundledAt.Local().Format("2006-01-02 15:04"),
			PathStyle.Render(rec.PluginName),
			rec.FileCount,
			rec.Duration.Round(time.Millisecond))
		if rec.Error != "" {
			fmt.Printf("    %s\n", ErrorStyle.Render(rec.Error))
		}
	}
	return nil
}

func runHistoryStats() error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		return err
	}

	fmt.Println(TitleStyle.Render("Bundle run statistics"))
	fmt.Println()
	fmt.Printf("  Total runs:  %d\n", stats.TotalRuns)
	fmt.Printf("  Failed runs: %d\n", stats.FailedRuns)
	if stats.LastBundledAt.Valid {
		fmt.Printf("  Last bundle: %s\n", stats.LastBundledAt.Time.Local().Format("2006-01-02 15:04"))
	} else {
		fmt.Printf("  Last bundle: %s\n", SubtitleStyle.Render("(never)"))
	}
	return nil
}

func runHistoryPrune() error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Prune(historyFlags.keep)
	if err != nil {
		return err
	}

	fmt.Printf("%s Pruned %d run(s), kept the newest %d\n",
		SuccessStyle.Render("✓"), removed, historyFlags.keep)
	return nil
}
