package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"vizmo/internal/config"
	"vizmo/internal/display"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or initialize the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print(display.KV([][2]string{
			{"output_dir", cfg.OutputDir},
			{"database_path", cfg.DatabasePath},
			{"export.metadata_name", strconv.FormatBool(cfg.Export.MetadataName)},
			{"organize.copy", strconv.FormatBool(cfg.Organize.Copy)},
			{"logging.level", cfg.Logging.Level},
		}))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgPath); err == nil {
			return fmt.Errorf("config file already exists: %s", cfgPath)
		}
		if err := config.DefaultConfig().Save(cfgPath); err != nil {
			return err
		}
		fmt.Println(display.SuccessStyle.Render("wrote " + cfgPath))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}
