// Package region assembles the closed meridional polygon of a cavity and
// computes the volume it sweeps when revolved about its axis.
package region

import (
	"fmt"
	"math"

	"github.com/soypat/cavity"
	"github.com/soypat/cavity/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// Tolerance is the distance, relative to the region size, below which
	// points are treated as coincident or lying on a line.
	Tolerance = 1e-9
	// AxisTolerance is the largest radial offset of a derived axis from the
	// centerline that is not reported as asymmetric.
	AxisTolerance = 1e-9
)

// Region is a closed simple polygon lying on one side of its revolution axis.
// The zero value is not usable; build one with New or Assemble.
type Region struct {
	vertex []r2.Vec  // ring, first vertex not repeated
	axis   [2]r2.Vec // two distinct points on the revolution axis
	side   float64   // side of the axis the polygon lies on, -1 or 1
	tol    float64   // absolute tolerance
}

// Assemble closes the inner meridian curve against its mirror image about Y=0.
// The start points (cylinder wall) and end points (pole) of both curves are
// joined by straight segments; the segment joining the end points is the
// revolution axis. The boundary must run counter-clockwise.
func Assemble(inner []r2.Vec) (*Region, error) {
	if len(inner) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 curve points, got %d", cavity.ErrDegenerateRegion, len(inner))
	}
	n := len(inner)
	mirror := make(d2.Set, n)
	for i, p := range inner {
		mirror[i] = d2.MirrorY(p)
	}
	// Mirror is traversed backwards so the boundary runs pole to pole
	// along the axis and back up the cylinder wall.
	ring := append(d2.Set(nil), inner...)
	ring = append(ring, mirror.Reverse()...)
	r, err := New(ring, inner[n-1], mirror[n-1])
	if err != nil {
		return nil, err
	}
	// A cavity boundary runs counter-clockwise. Clockwise means the end caps
	// have passed each other and the ring encloses the wall, not the cavity.
	if r.SignedArea() <= 0 {
		return nil, fmt.Errorf("%w: end caps pass each other, pole at %v", cavity.ErrDegenerateRegion, inner[n-1])
	}
	return r, nil
}

// New returns a region from a closed polygon and the axis through axisA and axisB.
// Consecutive coincident vertices are merged. It fails with ErrDegenerateRegion
// if the polygon is self-intersecting, has fewer than 3 distinct vertices,
// or crosses the axis.
func New(vertices []r2.Vec, axisA, axisB r2.Vec) (*Region, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 vertices, got %d", cavity.ErrDegenerateRegion, len(vertices))
	}
	for i, v := range vertices {
		if !d2.Finite(v) {
			return nil, fmt.Errorf("%w: vertex %d is not finite: %v", cavity.ErrDegenerateRegion, i, v)
		}
	}
	if !d2.Finite(axisA) || !d2.Finite(axisB) {
		return nil, fmt.Errorf("%w: axis is not finite", cavity.ErrDegenerateRegion)
	}
	bb := d2.Set(vertices).Bounds()
	size := bb.Size()
	tol := Tolerance * math.Max(1, math.Max(size.X, size.Y))
	if d2.EqualWithin(axisA, axisB, tol) {
		return nil, fmt.Errorf("%w: revolution axis end points coincide at %v", cavity.ErrDegenerateRegion, axisA)
	}
	r := &Region{
		vertex: dedup(vertices, tol),
		axis:   [2]r2.Vec{axisA, axisB},
		tol:    tol,
	}
	if len(r.vertex) < 3 {
		return nil, fmt.Errorf("%w: only %d distinct vertices", cavity.ErrDegenerateRegion, len(r.vertex))
	}
	if err := r.checkSimple(); err != nil {
		return nil, err
	}
	if err := r.checkAxis(); err != nil {
		return nil, err
	}
	return r, nil
}

// Vertices returns a copy of the polygon ring.
func (r *Region) Vertices() []r2.Vec {
	return append([]r2.Vec(nil), r.vertex...)
}

// Axis returns the two points defining the revolution axis.
func (r *Region) Axis() (a, b r2.Vec) {
	return r.axis[0], r.axis[1]
}

// AxisDistance returns the unsigned distance from p to the revolution axis.
func (r *Region) AxisDistance(p r2.Vec) float64 {
	return math.Abs(d2.LineDistance(r.axis[0], r.axis[1], p))
}

// AxisOffset returns the radial coordinate of the axis midpoint. An axis
// derived from the meridian poles is expected to sit on X=0; any offset is
// left in place and reported here.
func (r *Region) AxisOffset() float64 {
	return (r.axis[0].X + r.axis[1].X) / 2
}

// checkSimple tests every pair of polygon edges for intersection.
func (r *Region) checkSimple() error {
	n := len(r.vertex)
	edge := func(i int) (r2.Vec, r2.Vec) { return r.vertex[i], r.vertex[(i+1)%n] }
	for i := 0; i < n; i++ {
		a, b := edge(i)
		if _, c := edge((i + 1) % n); d2.FoldsBack(a, b, c, r.tol) {
			return fmt.Errorf("%w: boundary folds back at vertex %d %v", cavity.ErrDegenerateRegion, (i+1)%n, b)
		}
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // adjacent through the closing edge
			}
			p, q := edge(j)
			if d2.SegmentsIntersect(a, b, p, q, r.tol) {
				return fmt.Errorf("%w: self-intersection between edges %d and %d", cavity.ErrDegenerateRegion, i, j)
			}
		}
	}
	return nil
}

// checkAxis verifies all vertices lie on the same side of the axis or on it.
func (r *Region) checkAxis() error {
	for i, v := range r.vertex {
		d := d2.LineDistance(r.axis[0], r.axis[1], v)
		if math.Abs(d) <= r.tol {
			continue
		}
		s := d2.Sign(d)
		if r.side == 0 {
			r.side = s
		} else if s != r.side {
			return fmt.Errorf("%w: vertex %d %v lies across the revolution axis", cavity.ErrDegenerateRegion, i, v)
		}
	}
	if r.side == 0 {
		return fmt.Errorf("%w: polygon lies on its revolution axis", cavity.ErrDegenerateRegion)
	}
	return nil
}

// dedup removes consecutive duplicate vertices, including the closing pair.
func dedup(v []r2.Vec, tol float64) []r2.Vec {
	out := make([]r2.Vec, 0, len(v))
	for _, p := range v {
		if len(out) > 0 && d2.EqualWithin(out[len(out)-1], p, tol) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && d2.EqualWithin(out[0], out[len(out)-1], tol) {
		out = out[:len(out)-1]
	}
	return out
}
