package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/column-clearer/internal/config"
)

var flagConfigDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the gameplay configuration as YAML, after the search order
(--config, ~/.columns/configs/columns.yaml, ./configs/columns.yaml,
built-in default) has been applied. Redirect it to a file to start a
custom config.

Examples:
  columns config
  columns config --default > ~/.columns/configs/columns.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in default instead")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if flagConfigDefault {
		_, err := cmd.OutOrStdout().Write(config.GetDefaultYAML())
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Dump(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
