// Package meshcheck cross-checks region volumes with a mesh kernel.
//
// The meridional polygon is turned into a signed distance function, revolved
// into a solid with sdfx, tessellated with marching cubes and the enclosed
// volume summed with the divergence theorem. The result converges to the
// Pappus volume as the mesh is refined and is independent of it.
package meshcheck

import (
	"errors"
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/soypat/cavity/region"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultCells is the number of marching cubes cells along the longest side.
	DefaultCells = 100
	// Tolerance is the relative difference between mesh and Pappus volumes
	// above which a shape is flagged.
	Tolerance = 0.02
)

// Volume returns the volume of the solid obtained by revolving r about its axis,
// measured on a marching cubes mesh with the given number of cells.
func Volume(r *region.Region, cells int) (float64, error) {
	model, err := Mesh(r, cells)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, t := range model {
		sum += r3.Dot(t[0], r3.Cross(t[1], t[2]))
	}
	return math.Abs(sum) / 6, nil
}

// Solid returns the cavity obtained by revolving r a full turn about its axis,
// with the axis along Z.
func Solid(r *region.Region) (sdf.SDF3, error) {
	if r == nil {
		return nil, errors.New("nil region")
	}
	s2, err := sdf.Polygon2D(meridian(r))
	if err != nil {
		return nil, fmt.Errorf("meridian polygon: %w", err)
	}
	s3, err := sdf.Revolve3D(s2)
	if err != nil {
		return nil, fmt.Errorf("revolve: %w", err)
	}
	return s3, nil
}

func tessellate(s3 sdf.SDF3, cells int) ([]Triangle, error) {
	triangles := render.ToTriangles(s3, render.NewMarchingCubesUniform(cells))
	if len(triangles) == 0 {
		return nil, errors.New("empty mesh")
	}
	model := make([]Triangle, len(triangles))
	for i, tri := range triangles {
		for j := range model[i] {
			model[i][j] = r3.Vec{X: tri[j].X, Y: tri[j].Y, Z: tri[j].Z}
		}
	}
	return model, nil
}

// RelativeError returns |mesh-exact|/exact.
func RelativeError(mesh, exact float64) float64 {
	return math.Abs(mesh-exact) / math.Abs(exact)
}

// meridian maps the region into the sdfx revolve frame: X is the distance
// from the axis and Y the position along it.
func meridian(r *region.Region) []v2.Vec {
	a, b := r.Axis()
	u := r2.Unit(r2.Sub(b, a))
	vertices := r.Vertices()
	out := make([]v2.Vec, len(vertices))
	for i, v := range vertices {
		rel := r2.Sub(v, a)
		out[i] = v2.Vec{X: math.Abs(r2.Cross(u, rel)), Y: r2.Dot(u, rel)}
	}
	return out
}
