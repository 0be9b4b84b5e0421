// Package cavity computes the internal volume of thin-walled shells of revolution
// whose meridian is a superellipse-like curve.
//
// A shape is described by two exponents (m, n). Its outer meridian is offset inward
// by the wall thickness, closed against its mirror image and revolved a full turn
// about the derived axis. The volume of the resulting cavity is obtained exactly
// from the polygon with Pappus's centroid theorem.
package cavity

import (
	"fmt"
	"math"
)

// Shape holds the two exponents that select a member of the shell family.
// M sets the axial aspect ratio of the end caps and N the corner sharpness.
type Shape struct {
	M float64
	N float64
}

// Validate returns an error wrapping ErrConfiguration if the exponents
// cannot be used to evaluate the profile curve.
func (s Shape) Validate() error {
	if !(s.M > 0) || math.IsInf(s.M, 0) {
		return fmt.Errorf("%w: m must be positive and finite, got %g", ErrConfiguration, s.M)
	}
	if !(s.N > 0) || math.IsInf(s.N, 0) {
		return fmt.Errorf("%w: n must be positive and finite, got %g", ErrConfiguration, s.N)
	}
	return nil
}

func (s Shape) String() string {
	return fmt.Sprintf("(m=%g, n=%g)", s.M, s.N)
}

// Constants are the dimensions shared by every shape of a sweep.
// All lengths are in the same unit; the volume is reported in that unit cubed.
type Constants struct {
	// Radius of the cylindrical midsection (A).
	Radius float64
	// Length is the total outer length of the vessel (L).
	Length float64
	// Wall thickness (T). Must be smaller than Radius.
	Wall float64
}

// Validate returns an error wrapping ErrConfiguration if c does not describe
// a physically meaningful vessel.
func (c Constants) Validate() error {
	switch {
	case !(c.Radius > 0) || math.IsInf(c.Radius, 0):
		return fmt.Errorf("%w: radius must be positive, got %g", ErrConfiguration, c.Radius)
	case !(c.Length > 0) || math.IsInf(c.Length, 0):
		return fmt.Errorf("%w: length must be positive, got %g", ErrConfiguration, c.Length)
	case !(c.Wall > 0) || math.IsInf(c.Wall, 0):
		return fmt.Errorf("%w: wall thickness must be positive, got %g", ErrConfiguration, c.Wall)
	case c.Wall >= c.Radius:
		return fmt.Errorf("%w: wall thickness %g must be less than radius %g", ErrConfiguration, c.Wall, c.Radius)
	}
	return nil
}

// CheckPairs zips the m and n value lists into shapes. It fails with
// ErrConfiguration if the lists differ in length, are empty or
// contain an invalid exponent.
func CheckPairs(m, n []float64) ([]Shape, error) {
	if len(m) != len(n) {
		return nil, fmt.Errorf("%w: got %d m values and %d n values", ErrConfiguration, len(m), len(n))
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("%w: no shapes to evaluate", ErrConfiguration)
	}
	shapes := make([]Shape, len(m))
	for i := range m {
		shapes[i] = Shape{M: m[i], N: n[i]}
		if err := shapes[i].Validate(); err != nil {
			return nil, fmt.Errorf("pair %d: %w", i, err)
		}
	}
	return shapes, nil
}
