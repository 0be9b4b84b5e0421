// Package profile evaluates the meridian of a superellipse-like shell and its
// inward offset by the wall thickness.
//
// The outer meridian of a shape (m, n) with radius A satisfies
//
//	(x/A)^(2n) + (m·y/A)^(2n) = 1
//
// and is sampled over the first quadrant, from the cylinder wall (theta=0)
// to the pole on the axis of revolution (theta=pi/2).
package profile

import (
	"fmt"
	"math"

	"github.com/soypat/cavity"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultSamples is the number of segments the quarter meridian is split into.
const DefaultSamples = 50

// Curve is a sampled meridian. Normals[i] is the outward unit normal at Points[i].
type Curve struct {
	Points  []r2.Vec
	Normals []r2.Vec
}

// Len returns the number of samples in the curve.
func (c Curve) Len() int { return len(c.Points) }

// X returns the radial coordinate of the outer meridian at angle theta.
func X(theta, a, n float64) float64 {
	c := math.Cos(theta)
	return math.Copysign(math.Pow(math.Abs(c), 1/n)*a, c)
}

// Y returns the axial coordinate of the outer meridian at angle theta,
// measured from the start of the end cap.
func Y(theta, a, m, n float64) float64 {
	s := math.Sin(theta)
	return math.Copysign(math.Pow(math.Abs(s), 1/n)*a/m, s)
}

// Normal returns the outward unit normal of the outer meridian at theta,
// taken from the gradient of the implicit curve equation.
func Normal(theta float64, s cavity.Shape, c cavity.Constants) (r2.Vec, error) {
	x := X(theta, c.Radius, s.N)
	y := Y(theta, c.Radius, s.M, s.N)
	grad := r2.Vec{
		X: 2 * s.N * signedPow(x, 2*s.N-1),
		Y: 2 * s.M * s.N * signedPow(s.M*y, 2*s.N-1),
	}
	mag := r2.Norm(grad)
	if mag == 0 || math.IsInf(mag, 0) || math.IsNaN(mag) {
		return r2.Vec{}, fmt.Errorf("%w: gradient magnitude %g at theta=%g", cavity.ErrDegenerateGeometry, mag, theta)
	}
	return r2.Scale(1/mag, grad), nil
}

// Boundary samples the outer meridian of s at samples+1 angles spaced
// uniformly over [0, pi/2], in increasing angle order.
func Boundary(s cavity.Shape, c cavity.Constants, samples int) (Curve, error) {
	if samples < 1 {
		return Curve{}, fmt.Errorf("%w: need at least one sample segment, got %d", cavity.ErrConfiguration, samples)
	}
	curve := Curve{
		Points:  make([]r2.Vec, samples+1),
		Normals: make([]r2.Vec, samples+1),
	}
	for j := 0; j <= samples; j++ {
		theta := float64(j) / float64(samples) * math.Pi / 2
		n, err := Normal(theta, s, c)
		if err != nil {
			return Curve{}, fmt.Errorf("sample %d: %w", j, err)
		}
		curve.Points[j] = r2.Vec{
			X: X(theta, c.Radius, s.N),
			Y: Y(theta, c.Radius, s.M, s.N),
		}
		curve.Normals[j] = n
	}
	return curve, nil
}

// signedPow returns |x|^p with the sign of x, so odd symmetry of the
// curve is kept for angles outside the first quadrant.
func signedPow(x, p float64) float64 {
	return math.Copysign(math.Pow(math.Abs(x), p), x)
}
