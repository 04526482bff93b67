// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"mayabundle/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mayabundle configuration",
	Long: `Manage mayabundle configuration.

Configuration is stored in:
  - Linux: ~/.config/mayabundle/config.cue
  - macOS: ~/Library/Application Support/mayabundle/config.cue
  - Windows: %APPDATA%\mayabundle\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print(config.GenerateCUE(currentConfig()))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(args[0], args[1])
		},
	})

	rootCmd.AddCommand(configCmd)
}

func showConfig() error {
	cfg := currentConfig()

	headerStyle := TitleStyle
	keyStyle := PathStyle
	valueStyle := SuccessStyle

	fmt.Println(headerStyle.Render("Current Configuration"))
	fmt.Println()

	// Derive config file path from the standard config directory; each
	// load derives the same path.
	if cfgDir, dirErr := config.ConfigDir(); dirErr == nil && fileExistsCheck(cfgDir+"/config.cue") {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgDir+"/config.cue")
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", keyStyle.Render("output_dir"), valueStyle.Render(cfg.OutputDir.String()))
	fmt.Printf("%s: %s\n", keyStyle.Render("vendor"), valueStyle.Render(cfg.Vendor))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("search_roots"))
	if len(cfg.SearchRoots) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(none configured; the root file's directory is used)"))
	} else {
		for _, root := range cfg.SearchRoots {
			fmt.Printf("  - %s\n", valueStyle.Render(root.String()))
		}
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ignore"))
	if len(cfg.Ignore) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, pattern := range cfg.Ignore {
			fmt.Printf("  - %s\n", valueStyle.Render(pattern))
		}
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("watch"))
	fmt.Printf("  debounce_ms: %s\n", valueStyle.Render(strconv.Itoa(cfg.Watch.DebounceMs)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("history"))
	fmt.Printf("  enabled: %s\n", valueStyle.Render(strconv.FormatBool(cfg.History.Enabled)))
	if cfg.History.Path != "" {
		fmt.Printf("  path: %s\n", valueStyle.Render(cfg.History.Path.String()))
	} else if dbPath, err := config.HistoryDBPath(cfg); err == nil {
		fmt.Printf("  path: %s %s\n", valueStyle.Render(dbPath), SubtitleStyle.Render("(default)"))
	}

	return nil
}

func initConfigFile() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s/config.cue\n", SuccessStyle.Render("✓"), cfgDir)
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s/config.cue\n", cfgDir)

	if dbPath, err := config.HistoryDBPath(currentConfig()); err == nil {
		fmt.Printf("History database: %s\n", dbPath)
	}

	return nil
}

func setConfigValue(key, value string) error {
	cfg := currentConfig()

	switch key {
	case "output_dir":
		cfg.OutputDir = config.OutputDirPath(value)

	case "vendor":
		cfg.Vendor = value

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	case "ui.color_scheme":
		scheme := config.ColorScheme(value)
		if ok, errs := scheme.IsValid(); !ok {
			return fmt.Errorf("invalid ui.color_scheme: %v", errs)
		}
		cfg.UI.ColorScheme = scheme

	case "watch.debounce_ms":
		ms, err := strconv.Atoi(value)
		if err != nil || ms < 0 {
			return fmt.Errorf("invalid watch.debounce_ms: must be a non-negative integer")
		}
		cfg.Watch.DebounceMs = ms

	case "history.enabled":
		cfg.History.Enabled = value == "true" || value == "1"

	case "history.path":
		cfg.History.Path = config.DatabasePath(value)

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: output_dir, vendor, ui.verbose, ui.color_scheme, watch.debounce_ms, history.enabled, history.path", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
