package profile

import (
	"fmt"

	"github.com/soypat/cavity"
	"gonum.org/v1/gonum/spatial/r2"
)

// Offset moves every point of curve inward by wall along its normal.
// Point order is kept. The result is not checked for self-intersection.
func Offset(curve Curve, wall float64) []r2.Vec {
	inner := make([]r2.Vec, len(curve.Points))
	for i, p := range curve.Points {
		inner[i] = r2.Sub(p, r2.Scale(wall, curve.Normals[i]))
	}
	return inner
}

// CylinderLength returns the length of the straight midsection of s, that is
// the total length less both end caps. It is negative when the caps overlap.
func CylinderLength(s cavity.Shape, c cavity.Constants) float64 {
	return c.Length - 2*(c.Radius/s.M)
}

// Inner returns the cavity meridian of s: the boundary offset inward by the
// wall thickness and shifted axially by half the cylinder length so the
// equatorial plane lies on Y=0.
func Inner(s cavity.Shape, c cavity.Constants, samples int) ([]r2.Vec, error) {
	curve, err := Boundary(s, c, samples)
	if err != nil {
		return nil, fmt.Errorf("boundary %s: %w", s, err)
	}
	inner := Offset(curve, c.Wall)
	shift := r2.Vec{Y: CylinderLength(s, c) / 2}
	for i := range inner {
		inner[i] = r2.Add(inner[i], shift)
	}
	return inner, nil
}
