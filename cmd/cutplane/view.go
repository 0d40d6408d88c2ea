package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/cutplane/internal/logger"
	"github.com/Faultbox/cutplane/internal/viewer"
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Open an STL file in the interactive viewer",
	Long: `Open a window showing the mesh.

  left drag        place a cutting plane
  right drag       orbit
  middle drag      pan (or shift + right drag)
  wheel            zoom
  F                frame the mesh
  C                orbit around the point under the cursor
  B                toggle the bounding box
  R                reload the file
  P, F12           screenshot
  Esc              quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	path := cfg.Mesh.Path
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return cmd.Usage()
	}

	logger.Info("=== cutplane viewer ===", zap.String("mesh", path))

	v, err := viewer.New(cfg, path)
	if err != nil {
		return err
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		return err
	}
	logger.Info("viewer closed normally")
	return nil
}
