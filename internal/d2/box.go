package d2

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Box is a 2d bounding box.
type Box r2.Box

// SegmentBox returns the bounding box of the segment ab.
func SegmentBox(a, b r2.Vec) Box {
	return Box{MinElem(a, b), MaxElem(a, b)}
}

// Size returns the size of a 2d box.
func (a Box) Size() r2.Vec {
	return r2.Sub(a.Max, a.Min)
}

// Enlarge returns a new 2d box enlarged by a size vector.
func (a Box) Enlarge(v r2.Vec) Box {
	v = r2.Scale(0.5, v)
	return Box{r2.Sub(a.Min, v), r2.Add(a.Max, v)}
}

// Contains checks if the 2d box contains the given vector (considering bounds as inside).
func (a Box) Contains(v r2.Vec) bool {
	return a.Min.X <= v.X && a.Min.Y <= v.Y &&
		v.X <= a.Max.X && v.Y <= a.Max.Y
}

// Overlaps returns true if the boxes share at least one point.
func (a Box) Overlaps(b Box) bool {
	return Overlap(r2.Vec{X: a.Min.X, Y: a.Max.X}, r2.Vec{X: b.Min.X, Y: b.Max.X}) &&
		Overlap(r2.Vec{X: a.Min.Y, Y: a.Max.Y}, r2.Vec{X: b.Min.Y, Y: b.Max.Y})
}

// Overlap returns true if 1D line segments a and b overlap.
func Overlap(a, b r2.Vec) bool {
	return a.Y >= b.X && b.Y >= a.X
}
