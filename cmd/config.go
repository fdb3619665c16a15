package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"IPService/internal/pkg/config"

	"github.com/spf13/cobra"
)

var overwrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or write the service configuration",
}

// configInitCmd writes the effective configuration (defaults plus
// environment overrides) to the --config path
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !overwrite {
			return fmt.Errorf("%s already exists, use --force to overwrite", configPath)
		}

		cfg, err := config.Load("")
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := config.SaveConfig(cfg, configPath); err != nil {
			return err
		}

		fmt.Printf("Configuration written to %s\n", configPath)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	configInitCmd.Flags().BoolVar(&overwrite, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
