// Command cutplane places cutting planes on STL meshes, interactively in a
// window or headless from the command line.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Faultbox/cutplane/internal/config"
	"github.com/Faultbox/cutplane/internal/logger"
)

var (
	flags config.Flags
	cfg   *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cutplane",
	Short: "Place cutting planes on STL meshes",
	Long: `cutplane turns a mouse drag over a 3D view into a cutting plane: the
plane contains the dragged line and the viewing direction, and is anchored at
the point of the plane closest to the mesh centroid.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(&flags)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		logger.Sugar.Debugf("config: %+v", cfg)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	// SDL and GL calls must stay on the main thread.
	runtime.LockOSThread()

	flags.Register(rootCmd.PersistentFlags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
