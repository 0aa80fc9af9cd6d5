package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pingpong/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the game would use, as YAML.

The first file found wins:
  --config <path>
  ~/.pingpong/configs/pingpong.yaml
  ./configs/pingpong.yaml
  built-in defaults

Examples:
  pingpong config
  pingpong config --defaults > ~/.pingpong/configs/pingpong.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if flagDefaults {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	data, err := config.Encode(cfg)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
