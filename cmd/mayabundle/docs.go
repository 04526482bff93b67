// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"mayabundle/internal/config"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs <plugin-dir>",
	Short: "Render a bundle's install README in the terminal",
	Long: `Render the README.md generated into a bundle's support folder,
styled for the terminal. Handy for checking the install instructions
that ship with a plugin without opening the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDocs(args[0])
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}

func runDocs(pluginDir string) error {
	readmePath := filepath.Join(pluginDir, "README.md")
	content, err := os.ReadFile(readmePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", readmePath, err)
	}

	renderer, err := glamour.NewTermRenderer(
		docsStyleOption(currentConfig().UI.ColorScheme),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}

	rendered, err := renderer.Render(string(content))
	if err != nil {
		return fmt.Errorf("rendering %s: %w", readmePath, err)
	}

	fmt.Print(rendered)
	return nil
}

// docsStyleOption maps the configured color scheme to a glamour style.
func docsStyleOption(scheme config.ColorScheme) glamour.TermRendererOption {
	switch scheme {
	case config.ColorSchemeDark:
		return glamour.WithStandardStyle("dark")
	case config.ColorSchemeLight:
		return glamour.WithStandardStyle("light")
	default:
		return glamour.WithAutoStyle()
	}
}
