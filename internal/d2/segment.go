package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// LineDistance returns the signed distance from p to the infinite line through a and b.
// Positive values lie to the left of a->b. The result is NaN if a == b.
func LineDistance(a, b, p r2.Vec) float64 {
	ab := r2.Sub(b, a)
	l := r2.Norm(ab)
	if l == 0 {
		return math.NaN()
	}
	return r2.Cross(ab, r2.Sub(p, a)) / l
}

// SegmentsIntersect returns true if segments p1p2 and q1q2 share at least one point.
// Points closer than tol to a segment are considered to be on it.
func SegmentsIntersect(p1, p2, q1, q2 r2.Vec, tol float64) bool {
	grow := r2.Vec{X: 2 * tol, Y: 2 * tol}
	if !SegmentBox(p1, p2).Enlarge(grow).Overlaps(SegmentBox(q1, q2).Enlarge(grow)) {
		return false
	}
	d1 := side(q1, q2, p1, tol)
	d2 := side(q1, q2, p2, tol)
	d3 := side(p1, p2, q1, tol)
	d4 := side(p1, p2, q2, tol)
	if d1*d2 < 0 && d3*d4 < 0 {
		return true // proper crossing
	}
	switch {
	case d1 == 0 && onSegment(q1, q2, p1, tol):
		return true
	case d2 == 0 && onSegment(q1, q2, p2, tol):
		return true
	case d3 == 0 && onSegment(p1, p2, q1, tol):
		return true
	case d4 == 0 && onSegment(p1, p2, q2, tol):
		return true
	}
	return false
}

// FoldsBack returns true if the path a->b->c reverses onto itself at b.
func FoldsBack(a, b, c r2.Vec, tol float64) bool {
	ab := r2.Sub(b, a)
	bc := r2.Sub(c, b)
	if r2.Dot(ab, bc) >= 0 {
		return false
	}
	d := LineDistance(a, b, c)
	return math.IsNaN(d) || math.Abs(d) <= tol
}

// side classifies p against line ab as -1, 0 (within tol) or 1.
// A degenerate line classifies every point as on it.
func side(a, b, p r2.Vec, tol float64) float64 {
	d := LineDistance(a, b, p)
	if math.IsNaN(d) || math.Abs(d) <= tol {
		return 0
	}
	return Sign(d)
}

func onSegment(a, b, p r2.Vec, tol float64) bool {
	return SegmentBox(a, b).Enlarge(r2.Vec{X: 2 * tol, Y: 2 * tol}).Contains(p)
}
