// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"mayabundle/internal/launch"
	"mayabundle/internal/pymod"

	"github.com/spf13/cobra"
)

var resolveFlags struct {
	scriptsRoots []string
	dockable     bool
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <launch-expression>",
	Short: "Resolve a launch expression and show the result",
	Long: `Parse and resolve a launch expression against the search roots,
printing the inferred layout, the modules the generated plugin would
import, and the call it would embed. Useful for checking an expression
before bundling, especially dockable tools whose UI_SCRIPT constant
must exist at bundle time.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolve(args[0])
	},
}

func init() {
	resolveCmd.Flags().StringArrayVar(&resolveFlags.scriptsRoots, "scripts-root", nil, "import search root (repeatable; default: current directory)")
	resolveCmd.Flags().BoolVarP(&resolveFlags.dockable, "dockable", "d", false, "resolve as a dockable workspace control")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(raw string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	roots, err := effectiveSearchRoots(resolveFlags.scriptsRoots, cwd)
	if err != nil {
		return err
	}

	locator, err := pymod.NewLocator(roots...)
	if err != nil {
		return err
	}
	resolver := launch.NewResolver(pymod.NewProber(locator))

	desc, err := resolver.Resolve(raw, resolveFlags.dockable)
	if err != nil {
		renderKnownIssue(err)
		return err
	}

	fmt.Println(TitleStyle.Render("Launch expression resolved"))
	fmt.Println()
	fmt.Printf("  Module:  %s\n", PathStyle.Render(string(desc.Expression.ModulePath)))
	fmt.Printf("  Class:   %s\n", PathStyle.Render(string(desc.Expression.ClassName)))
	fmt.Printf("  Method:  %s\n", PathStyle.Render(string(desc.Expression.MethodName)))
	fmt.Printf("  Layout:  %s\n", SuccessStyle.Render(desc.Layout.String()))
	if desc.UIScriptPath != "" {
		fmt.Printf("  UI script: %s\n", PathStyle.Render(string(desc.UIScriptPath)))
	}
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Generated invocation:"))
	for _, mod := range desc.Invocation.ImportModules {
		fmt.Printf("  import %s\n", mod)
	}
	fmt.Printf("  %s\n", PathStyle.Render(desc.Invocation.Expression))
	return nil
}
