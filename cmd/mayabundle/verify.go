// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"mayabundle/internal/bundler"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <plugin-dir>",
	Short: "Re-check a written bundle against its manifest",
	Long: `Re-read a bundle's bundleinfo.toml manifest and check the tree
against it: every recorded file present with its recorded size, the
plugin entry point in place, and the UI script constant still
resolvable inside the bundled scripts tree.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(args[0])
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(pluginDir string) error {
	report, err := bundler.Verify(pluginDir)
	if err != nil {
		renderKnownIssue(err)
		return err
	}

	if report.OK() {
		fmt.Printf("%s %s verified (%d file(s) checked)\n",
			SuccessStyle.Render("✓"),
			TitleStyle.Render(report.PluginName),
			report.Checked)
		return nil
	}

	fmt.Printf("%s %s failed verification (%d problem(s))\n",
		ErrorStyle.Render("✗"),
		TitleStyle.Render(report.PluginName),
		len(report.Problems))
	for _, problem := range report.Problems {
		fmt.Printf("  %s %s\n", ErrorStyle.Render("-"), problem)
	}
	fmt.Printf("\n%s\n", SubtitleStyle.Render("Re-run 'mayabundle bundle' to rebuild the plugin."))
	return &ExitError{Code: 1, Err: fmt.Errorf("bundle %s failed verification", report.PluginName)}
}
