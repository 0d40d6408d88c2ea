package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/cutplane/internal/cutplane"
	"github.com/Faultbox/cutplane/internal/headless"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Print the bounds and centroid of an STL file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	info, err := headless.Info(args[0])
	if err != nil {
		return err
	}

	out := struct {
		File     string            `yaml:"file"`
		Diagonal float64           `yaml:"diagonal"`
		Mesh     cutplane.MeshInfo `yaml:"mesh"`
	}{
		File:     args[0],
		Diagonal: info.Bounds.Diagonal(),
		Mesh:     info,
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding info: %w", err)
	}
	return enc.Close()
}
