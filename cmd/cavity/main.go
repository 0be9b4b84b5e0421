// Command cavity sweeps a family of shell shapes and writes the cavity
// volume of each one to a CSV table.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/soypat/cavity"
	"github.com/soypat/cavity/config"
	"github.com/soypat/cavity/export"
	"github.com/soypat/cavity/meshcheck"
	"github.com/soypat/cavity/sweep"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

type app struct {
	configPath string
	verbose    bool
	flags      config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "cavity",
		Short: "Compute internal volumes of superellipse pressure vessels",
		Long: `cavity evaluates the internal volume of a thin-walled shell of revolution
for every (m, n) exponent pair it is given.

Each outer meridian is offset inward by the wall thickness, closed against its
mirror image and revolved about the derived axis. Shapes whose cavity cannot be
built are reported in the table and the remaining shapes are still computed.

Without a configuration file the 31 shapes of the reference vessel study are
evaluated for a 3cm radius, 7cm long vessel with 1mm walls.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			if a.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.logger, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.run,
	}
	def := config.Default()
	f := cmd.Flags()
	f.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "log every shape")
	f.Float64Var(&a.flags.Radius, "radius", def.Radius, "cylinder radius A")
	f.Float64Var(&a.flags.Length, "length", def.Length, "total vessel length L")
	f.Float64Var(&a.flags.Wall, "wall", def.Wall, "wall thickness T")
	f.IntVar(&a.flags.Samples, "samples", def.Samples, "segments per quarter meridian")
	f.IntVar(&a.flags.Workers, "workers", def.Workers, "shapes evaluated concurrently, 0 for one per CPU")
	f.IntVar(&a.flags.MeshCells, "mesh-cells", def.MeshCells, "marching cubes cross-check resolution, 0 to disable")
	f.Float64SliceVar(&a.flags.M, "m", nil, "m exponents, paired with --n by position")
	f.Float64SliceVar(&a.flags.N, "n", nil, "n exponents, paired with --m by position")
	f.StringVarP(&a.flags.Output, "output", "o", def.Output, "CSV results file")
	f.StringVar(&a.flags.Plot, "plot", "", "optional chart file (.png, .svg or .pdf)")
	f.StringVar(&a.flags.STL, "stl", "", "optional STL file for the mesh of the largest cavity")
	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	cfg, err := a.config(cmd)
	if err != nil {
		return err
	}
	log := a.logger.With(zap.Float64("radius", cfg.Radius), zap.Float64("length", cfg.Length), zap.Float64("wall", cfg.Wall))
	sw, err := sweep.New(sweep.Config{
		Constants: cfg.Constants(),
		Samples:   cfg.Samples,
		Workers:   cfg.Workers,
		MeshCells: cfg.MeshCells,
		Logger:    log,
	})
	if err != nil {
		return err
	}
	table, err := sw.Run(cmd.Context(), cfg.M, cfg.N)
	if err != nil {
		return err
	}
	if err := export.CreateCSV(cfg.Output, table); err != nil {
		return err
	}
	if cfg.Plot != "" {
		if err := export.WritePlot(cfg.Plot, table); err != nil {
			return err
		}
	}
	if cfg.STL != "" {
		if err := writeLargest(cfg, table); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d volumes (%d failed) to %s\n", len(table), table.Failures(), cfg.Output)
	return nil
}

// config merges the configuration file, if any, with explicitly set flags.
func (a *app) config(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		cfg, err = config.Load(a.configPath)
		if err != nil {
			return cfg, err
		}
	}
	f := cmd.Flags()
	for name, apply := range map[string]func(){
		"radius":     func() { cfg.Radius = a.flags.Radius },
		"length":     func() { cfg.Length = a.flags.Length },
		"wall":       func() { cfg.Wall = a.flags.Wall },
		"samples":    func() { cfg.Samples = a.flags.Samples },
		"workers":    func() { cfg.Workers = a.flags.Workers },
		"mesh-cells": func() { cfg.MeshCells = a.flags.MeshCells },
		"m":          func() { cfg.M = a.flags.M },
		"n":          func() { cfg.N = a.flags.N },
		"output":     func() { cfg.Output = a.flags.Output },
		"plot":       func() { cfg.Plot = a.flags.Plot },
		"stl":        func() { cfg.STL = a.flags.STL },
	} {
		if f.Changed(name) {
			apply()
		}
	}
	return cfg, cfg.Validate()
}

// writeLargest meshes the cavity of the largest shape in table.
func writeLargest(cfg config.Config, table cavity.Table) error {
	best, ok := table.Largest()
	if !ok {
		return fmt.Errorf("%w: no computed cavity to mesh", cavity.ErrExport)
	}
	_, r, err := sweep.Shape(best.Shape, cfg.Constants(), cfg.Samples)
	if err != nil {
		return err
	}
	cells := cfg.MeshCells
	if cells == 0 {
		cells = meshcheck.DefaultCells
	}
	if err := meshcheck.CreateSTL(cfg.STL, r, cells); err != nil {
		return fmt.Errorf("%w: %v", cavity.ErrExport, err)
	}
	return nil
}
