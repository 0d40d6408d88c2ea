package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/cutplane/internal/logger"
)

var (
	configSave bool
	configOut  string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or save the effective configuration",
	Long: `Print the configuration after defaults, the config file and flags are
merged. With --save it is written to the user config directory, or to --out,
where the next run picks it up.`,
	Example: `  cutplane config --plane-color '#ff0000' --save
  cutplane config --width 1920 --height 1080 --out ./config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVar(&configSave, "save", false, "Write to the user config directory")
	configCmd.Flags().StringVarP(&configOut, "out", "o", "", "Write to this path")
}

func runConfig(cmd *cobra.Command, args []string) error {
	switch {
	case configOut != "":
		if err := cfg.SaveTo(configOut); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.Sugar.Infof("config written to %s", configOut)
	case configSave:
		path, err := cfg.Save()
		if err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.Sugar.Infof("config written to %s", path)
	default:
		return cfg.WriteYAML(cmd.OutOrStdout())
	}
	return nil
}
