package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/cutplane/internal/headless"
	"github.com/Faultbox/cutplane/internal/logger"
	"github.com/Faultbox/cutplane/pkg/math"
)

var (
	solveFrom []float64
	solveTo   []float64
	solveNDC  bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [file]",
	Short: "Place a cutting plane from a drag without opening a window",
	Long: `Frame the camera on the mesh as the viewer does, drag from --from to
--to and print the resulting plane as YAML.

Coordinates are window pixels of the configured window size, or normalized
device coordinates in [-1, 1] with --ndc.`,
	Example: `  cutplane solve part.stl --from 320,360 --to 960,360
  cutplane solve part.stl --ndc --from 0,-0.5 --to 0,0.5`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().Float64SliceVar(&solveFrom, "from", nil, "Drag start as x,y")
	solveCmd.Flags().Float64SliceVar(&solveTo, "to", nil, "Drag end as x,y")
	solveCmd.Flags().BoolVar(&solveNDC, "ndc", false, "Interpret --from and --to as normalized device coordinates")

	_ = solveCmd.MarkFlagRequired("from")
	_ = solveCmd.MarkFlagRequired("to")
}

func runSolve(cmd *cobra.Command, args []string) error {
	from, err := parsePoint("from", solveFrom)
	if err != nil {
		return err
	}
	to, err := parsePoint("to", solveTo)
	if err != nil {
		return err
	}

	drag := headless.Drag{From: from, To: to}
	if solveNDC {
		drag = headless.DragFromNDC(from, to, float64(cfg.Window.Width), float64(cfg.Window.Height))
	}

	res, err := headless.Solve(cfg, args[0], drag, logger.Named("cutplane"))
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return enc.Close()
}

func parsePoint(name string, v []float64) (math.Vec2, error) {
	if len(v) != 2 {
		return math.Vec2{}, fmt.Errorf("--%s needs two values x,y, got %d", name, len(v))
	}
	return math.Vec2{X: v[0], Y: v[1]}, nil
}
