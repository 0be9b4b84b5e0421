package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// EqualWithin reports whether every component of a and b differs by at most tol.
func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// Finite returns true if both components are neither NaN nor infinite.
func Finite(a r2.Vec) bool {
	return !math.IsNaN(a.X) && !math.IsInf(a.X, 0) &&
		!math.IsNaN(a.Y) && !math.IsInf(a.Y, 0)
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// MirrorY negates the Y component.
func MirrorY(a r2.Vec) r2.Vec {
	return r2.Vec{X: a.X, Y: -a.Y}
}

// Sign returns -1, 0 or 1. Zero maps to zero.
func Sign(f float64) float64 {
	if f == 0 {
		return 0
	}
	return math.Copysign(1, f)
}

// Set is an ordered list of points, such as a polygon ring.
type Set []r2.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() r2.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r2.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// Bounds returns the smallest box containing every vector of the set.
func (a Set) Bounds() Box {
	return Box{Min: a.Min(), Max: a.Max()}
}

// Reverse returns a copy of the set in reverse order.
func (a Set) Reverse() Set {
	n := len(a)
	r := make(Set, n)
	for i, v := range a {
		r[n-1-i] = v
	}
	return r
}
