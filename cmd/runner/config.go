package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/paper-runner/internal/config"
)

var (
	flagConfigPath     string
	flagConfigDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration play would use, after the config search order,
--config and --fps are applied. With --defaults, print the embedded defaults
instead; redirect it to ~/.paper-runner/configs/runner.yaml to start customizing.

Examples:
  runner config
  runner config --defaults > ~/.paper-runner/configs/runner.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigPath, "config", "", "Path to custom runner config (YAML or TOML)")
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the embedded default config")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadConfig(flagConfigPath, "")
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
