package region

import (
	"fmt"
	"math"

	"github.com/soypat/cavity"
	"github.com/soypat/cavity/internal/d2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// SignedArea returns the shoelace area of the polygon. It is positive when
// the vertices run counter-clockwise.
func (r *Region) SignedArea() float64 {
	a, _ := r.moments()
	return a
}

// Area returns the unsigned area of the polygon.
func (r *Region) Area() float64 {
	return math.Abs(r.SignedArea())
}

// Centroid returns the area centroid of the polygon.
func (r *Region) Centroid() r2.Vec {
	_, c := r.moments()
	return c
}

// Volume returns the volume swept by a full revolution of the region about
// its axis, using Pappus's centroid theorem: V = 2π·d·A where d is the distance
// from the centroid to the axis.
func (r *Region) Volume() (float64, error) {
	area, c := r.moments()
	if area == 0 {
		return 0, fmt.Errorf("%w: polygon has zero area", cavity.ErrDegenerateRegion)
	}
	d := d2.LineDistance(r.axis[0], r.axis[1], c)
	if d2.Sign(d) != r.side {
		// A centroid on or beyond the axis means the axis passes through the region.
		return 0, fmt.Errorf("%w: centroid %v is not on the region side of the axis", cavity.ErrDegenerateRegion, c)
	}
	return 2 * math.Pi * math.Abs(d) * math.Abs(area), nil
}

// moments returns the signed area and centroid of the polygon.
// Vertices are taken relative to the first one to limit cancellation.
func (r *Region) moments() (area float64, centroid r2.Vec) {
	n := len(r.vertex)
	o := r.vertex[0]
	cross := make([]float64, n)
	cx := make([]float64, n)
	cy := make([]float64, n)
	for i := range r.vertex {
		p := r2.Sub(r.vertex[i], o)
		q := r2.Sub(r.vertex[(i+1)%n], o)
		k := r2.Cross(p, q)
		cross[i] = k
		cx[i] = (p.X + q.X) * k
		cy[i] = (p.Y + q.Y) * k
	}
	area = floats.Sum(cross) / 2
	if area == 0 {
		return 0, o
	}
	centroid = r2.Vec{
		X: floats.Sum(cx) / (6 * area),
		Y: floats.Sum(cy) / (6 * area),
	}
	return area, r2.Add(centroid, o)
}
