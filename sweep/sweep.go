// Package sweep evaluates the cavity volume of a list of shapes.
//
// Shapes are independent of each other and are computed concurrently;
// results are returned in input order. A shape that fails is recorded
// with its reason and does not stop the sweep.
package sweep

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/soypat/cavity"
	"github.com/soypat/cavity/meshcheck"
	"github.com/soypat/cavity/profile"
	"github.com/soypat/cavity/region"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config configures a Sweeper.
type Config struct {
	Constants cavity.Constants
	// Samples is the number of segments per quarter meridian.
	// Zero selects profile.DefaultSamples.
	Samples int
	// Workers bounds the number of shapes evaluated at once.
	// Zero selects GOMAXPROCS.
	Workers int
	// MeshCells enables the marching cubes cross-check when positive.
	MeshCells int
	// Logger receives per-shape diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// Sweeper runs the volume pipeline over shape lists.
type Sweeper struct {
	c         cavity.Constants
	samples   int
	workers   int
	meshCells int
	log       *zap.Logger
}

// New validates cfg and returns a Sweeper. Invalid configurations
// return an error wrapping cavity.ErrConfiguration.
func New(cfg Config) (*Sweeper, error) {
	if err := cfg.Constants.Validate(); err != nil {
		return nil, err
	}
	if cfg.Samples < 0 {
		return nil, fmt.Errorf("%w: negative sample count %d", cavity.ErrConfiguration, cfg.Samples)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%w: negative worker count %d", cavity.ErrConfiguration, cfg.Workers)
	}
	if cfg.MeshCells < 0 {
		return nil, fmt.Errorf("%w: negative mesh cell count %d", cavity.ErrConfiguration, cfg.MeshCells)
	}
	s := &Sweeper{
		c:         cfg.Constants,
		samples:   cfg.Samples,
		workers:   cfg.Workers,
		meshCells: cfg.MeshCells,
		log:       cfg.Logger,
	}
	if s.samples == 0 {
		s.samples = profile.DefaultSamples
	}
	if s.workers == 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s, nil
}

// Run evaluates every (m[i], n[i]) pair and returns one result per pair in
// input order. Mismatched or invalid lists fail with cavity.ErrConfiguration
// before any shape is computed. Per-shape failures are stored in the table.
// The only other error is the context's.
func (s *Sweeper) Run(ctx context.Context, m, n []float64) (cavity.Table, error) {
	shapes, err := cavity.CheckPairs(m, n)
	if err != nil {
		return nil, err
	}
	table := make(cavity.Table, len(shapes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, shape := range shapes {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			table[i] = s.evaluate(i, shape)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.log.Info("sweep complete",
		zap.Int("shapes", len(table)),
		zap.Int("failed", table.Failures()))
	return table, nil
}

func (s *Sweeper) evaluate(i int, shape cavity.Shape) cavity.Result {
	log := s.log.With(zap.Int("index", i), zap.Float64("m", shape.M), zap.Float64("n", shape.N))
	volume, r, err := Shape(shape, s.c, s.samples)
	if err != nil {
		log.Warn("shape failed", zap.Error(err))
		return cavity.Failed(shape, &cavity.ShapeError{Index: i, Shape: shape, Err: err})
	}
	result := cavity.Result{
		Shape:      shape,
		Volume:     volume,
		AxisOffset: r.AxisOffset(),
	}
	if math.Abs(result.AxisOffset) > region.AxisTolerance {
		log.Warn("revolution axis off centerline", zap.Float64("offset", result.AxisOffset))
	}
	if s.meshCells > 0 {
		mesh, err := meshcheck.Volume(r, s.meshCells)
		switch {
		case err != nil:
			log.Warn("mesh cross-check failed", zap.Error(err))
		case meshcheck.RelativeError(mesh, volume) > meshcheck.Tolerance:
			log.Warn("mesh volume disagrees",
				zap.Float64("volume", volume),
				zap.Float64("mesh", mesh))
		}
		result.MeshVolume = mesh
	}
	log.Debug("shape computed", zap.Float64("volume", volume))
	return result
}

// Shape runs the volume pipeline for a single shape and returns the cavity
// volume together with the meridional region it was computed from.
func Shape(shape cavity.Shape, c cavity.Constants, samples int) (float64, *region.Region, error) {
	inner, err := profile.Inner(shape, c, samples)
	if err != nil {
		return math.NaN(), nil, err
	}
	r, err := region.Assemble(inner)
	if err != nil {
		return math.NaN(), nil, err
	}
	v, err := r.Volume()
	if err != nil {
		return math.NaN(), nil, err
	}
	return v, r, nil
}
