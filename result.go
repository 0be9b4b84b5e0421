package cavity

import "math"

// Result is the outcome of evaluating one shape of a sweep.
// A Result with a non-nil Err carries no volume.
type Result struct {
	Shape
	// Volume of the cavity. NaN when Err is set.
	Volume float64
	// AxisOffset is the radial position of the revolution axis derived from the
	// profile end points. Ideally zero.
	AxisOffset float64
	// MeshVolume is the volume obtained by meshing the solid of revolution.
	// Zero when the mesh cross-check was not requested.
	MeshVolume float64
	// Err is the reason this shape failed, nil on success.
	Err error
}

// OK reports whether the shape was computed.
func (r Result) OK() bool { return r.Err == nil }

// Failed returns a Result recording err against s.
func Failed(s Shape, err error) Result {
	return Result{Shape: s, Volume: math.NaN(), Err: err}
}

// Table holds one Result per input pair, in input order.
type Table []Result

// Failures returns the number of failed results in t.
func (t Table) Failures() (n int) {
	for _, r := range t {
		if !r.OK() {
			n++
		}
	}
	return n
}

// Volumes returns the volume column of t. Failed rows yield NaN.
func (t Table) Volumes() []float64 {
	v := make([]float64, len(t))
	for i, r := range t {
		v[i] = r.Volume
	}
	return v
}

// Largest returns the successful result with the greatest volume.
// It reports false if no shape was computed.
func (t Table) Largest() (best Result, ok bool) {
	for _, r := range t {
		if r.OK() && (!ok || r.Volume > best.Volume) {
			best, ok = r, true
		}
	}
	return best, ok
}
