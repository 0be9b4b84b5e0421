package region

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/cavity"
	"github.com/soypat/cavity/profile"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	vessel = cavity.Constants{Radius: 3, Length: 7, Wall: 0.1}
	// Axis along Y through the origin.
	axisA = r2.Vec{}
	axisB = r2.Vec{Y: 1}
)

func rect(r0, w, h float64) []r2.Vec {
	return []r2.Vec{{X: r0, Y: 0}, {X: r0 + w, Y: 0}, {X: r0 + w, Y: h}, {X: r0, Y: h}}
}

func TestRectangleVolume(t *testing.T) {
	const tol = 1e-12
	for _, test := range []struct {
		r0, w, h float64
	}{
		{r0: 0, w: 1, h: 1},
		{r0: 0, w: 2.9, h: 1},
		{r0: 0.5, w: 1.5, h: 2},
		{r0: 10, w: 0.1, h: 30},
	} {
		want := 2 * math.Pi * (test.r0 + test.w/2) * test.w * test.h
		for _, reverse := range []bool{false, true} {
			v := rect(test.r0, test.w, test.h)
			if reverse {
				v = []r2.Vec{v[3], v[2], v[1], v[0]}
			}
			r, err := New(v, axisA, axisB)
			if err != nil {
				t.Fatal(err)
			}
			if got := r.Area(); !scalar.EqualWithinAbsOrRel(got, test.w*test.h, tol, tol) {
				t.Errorf("area got %g. want %g", got, test.w*test.h)
			}
			c := r.Centroid()
			if !scalar.EqualWithinAbsOrRel(c.X, test.r0+test.w/2, tol, tol) || !scalar.EqualWithinAbsOrRel(c.Y, test.h/2, tol, tol) {
				t.Errorf("centroid got %v. want (%g, %g)", c, test.r0+test.w/2, test.h/2)
			}
			got, err := r.Volume()
			if err != nil {
				t.Fatal(err)
			}
			if !scalar.EqualWithinAbsOrRel(got, want, tol, tol) {
				t.Errorf("rectangle %+v reverse=%v: volume got %g. want %g", test, reverse, got, want)
			}
			if (r.SignedArea() > 0) == reverse {
				t.Errorf("reverse=%v: unexpected area sign %g", reverse, r.SignedArea())
			}
		}
	}
}

func TestSlantedAxis(t *testing.T) {
	// The line y=x-2 cuts the unit square at (2,0) diagonally.
	v := rect(2, 1, 1)
	r, err := New(v, r2.Vec{X: 2, Y: 0}, r2.Vec{X: 3, Y: 1})
	if err == nil {
		t.Fatalf("expected axis crossing error, got region with area %g", r.Area())
	}
	if !errors.Is(err, cavity.ErrDegenerateRegion) {
		t.Fatalf("got %v. want degenerate region", err)
	}
	r, err = New(v, r2.Vec{X: 4, Y: 0}, r2.Vec{X: 5, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Volume()
	if err != nil {
		t.Fatal(err)
	}
	d := r.AxisDistance(r2.Vec{X: 2.5, Y: 0.5})
	want := 2 * math.Pi * d
	if !scalar.EqualWithinAbsOrRel(got, want, 1e-12, 1e-12) {
		t.Errorf("volume got %g. want %g", got, want)
	}
}

func TestInvalidRegions(t *testing.T) {
	for _, test := range []struct {
		name   string
		vertex []r2.Vec
		a, b   r2.Vec
	}{
		{name: "too few", vertex: []r2.Vec{{X: 1}, {X: 2}}, a: axisA, b: axisB},
		{name: "crosses axis", vertex: rect(-0.5, 1, 1), a: axisA, b: axisB},
		{name: "bowtie", vertex: []r2.Vec{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 0}, {X: 1, Y: 1}}, a: axisA, b: axisB},
		{name: "spike", vertex: []r2.Vec{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 1.5, Y: 0}, {X: 1, Y: 1}}, a: axisA, b: axisB},
		{name: "point axis", vertex: rect(1, 1, 1), a: axisB, b: axisB},
		{name: "collapsed", vertex: []r2.Vec{{X: 1}, {X: 1}, {X: 1}, {X: 2}}, a: axisA, b: axisB},
		{name: "nan", vertex: []r2.Vec{{X: 1}, {X: math.NaN()}, {X: 2, Y: 1}}, a: axisA, b: axisB},
		{name: "on axis", vertex: []r2.Vec{{Y: 0}, {Y: 1}, {Y: 2}}, a: axisA, b: axisB},
	} {
		_, err := New(test.vertex, test.a, test.b)
		if !errors.Is(err, cavity.ErrDegenerateRegion) {
			t.Errorf("%s: got %v. want degenerate region error", test.name, err)
		}
	}
}

func TestDuplicateVerticesMerged(t *testing.T) {
	v := rect(1, 1, 1)
	v = append([]r2.Vec{v[0]}, v...)
	v = append(v, v[0])
	r, err := New(v, axisA, axisB)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(r.Vertices()); got != 4 {
		t.Errorf("got %d vertices. want 4", got)
	}
}

func TestAssembleSphere(t *testing.T) {
	// m=n=1 gives two hemispheres of radius A-T joined by a cylinder of length L-2A.
	s := cavity.Shape{M: 1, N: 1}
	inner, err := profile.Inner(s, vessel, profile.DefaultSamples)
	if err != nil {
		t.Fatal(err)
	}
	r, err := Assemble(inner)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(r.Vertices()); got != 2*(profile.DefaultSamples+1) {
		t.Errorf("got %d vertices. want %d", got, 2*(profile.DefaultSamples+1))
	}
	got, err := r.Volume()
	if err != nil {
		t.Fatal(err)
	}
	rad := vessel.Radius - vessel.Wall
	lc := profile.CylinderLength(s, vessel)
	want := 4./3*math.Pi*rad*rad*rad + math.Pi*rad*rad*lc
	if !scalar.EqualWithinRel(got, want, 1e-3) {
		t.Errorf("volume got %g. want %g", got, want)
	}
	if got > want {
		t.Errorf("inscribed polygon volume %g exceeds smooth volume %g", got, want)
	}
	if math.Abs(r.AxisOffset()) > AxisTolerance {
		t.Errorf("axis offset %g too large for a circular cap", r.AxisOffset())
	}
}

// frustumVolume revolves the closed polygon v about X=0 by summing the
// signed conical frustum swept by each edge.
func frustumVolume(v []r2.Vec) float64 {
	var sum float64
	for i := range v {
		p, q := v[i], v[(i+1)%len(v)]
		sum += (q.Y - p.Y) * (p.X*p.X + p.X*q.X + q.X*q.X)
	}
	return math.Abs(sum) * math.Pi / 3
}

func TestPappusMatchesFrustums(t *testing.T) {
	for _, s := range []cavity.Shape{
		{M: 1, N: 1},
		{M: 1.6166666666666667, N: 0.94},
		{M: 1.9833333333333334, N: 1.18},
		{M: 1.0166666666666666, N: 0.8333333333333334},
	} {
		inner, err := profile.Inner(s, vessel, profile.DefaultSamples)
		if err != nil {
			t.Fatal(err)
		}
		r, err := Assemble(inner)
		if err != nil {
			t.Fatal(err)
		}
		got, err := r.Volume()
		if err != nil {
			t.Fatal(err)
		}
		want := frustumVolume(r.Vertices())
		if !scalar.EqualWithinRel(got, want, 1e-9) {
			t.Errorf("%s: pappus %g, frustums %g", s, got, want)
		}
	}
}

func TestSmoothCurveOracle(t *testing.T) {
	// Disc integration over the smooth offset curve.
	for _, s := range []cavity.Shape{
		{M: 1.3166666666666667, N: 0.9666666666666667},
		{M: 1.4833333333333334, N: 1.1933333333333334},
	} {
		inner := func(theta float64) r2.Vec {
			n, err := profile.Normal(theta, s, vessel)
			if err != nil {
				t.Fatal(err)
			}
			p := r2.Vec{X: profile.X(theta, vessel.Radius, s.N), Y: profile.Y(theta, vessel.Radius, s.M, s.N)}
			return r2.Sub(p, r2.Scale(vessel.Wall, n))
		}
		const h = 1e-7
		capVolume := quad.Fixed(func(theta float64) float64 {
			lo, hi := math.Max(theta-h, 0), math.Min(theta+h, math.Pi/2)
			dy := (inner(hi).Y - inner(lo).Y) / (hi - lo)
			x := inner(theta).X
			return math.Pi * x * x * dy
		}, 0, math.Pi/2, 400, nil, 0)
		rad := vessel.Radius - vessel.Wall
		want := 2*capVolume + math.Pi*rad*rad*profile.CylinderLength(s, vessel)

		pts, err := profile.Inner(s, vessel, 400)
		if err != nil {
			t.Fatal(err)
		}
		r, err := Assemble(pts)
		if err != nil {
			t.Fatal(err)
		}
		got, err := r.Volume()
		if err != nil {
			t.Fatal(err)
		}
		if !scalar.EqualWithinRel(got, want, 1e-4) {
			t.Errorf("%s: polygon volume %g, smooth volume %g", s, got, want)
		}
	}
}

func TestAssembleDegenerate(t *testing.T) {
	for _, s := range []cavity.Shape{
		{M: 100, N: 1},  // offset cap folds over the cylinder wall
		{M: 0.5, N: 1},  // end caps cross each other
		{M: 1000, N: 1}, // wall thicker than the cap
	} {
		inner, err := profile.Inner(s, vessel, profile.DefaultSamples)
		if err != nil {
			t.Fatal(err)
		}
		_, err = Assemble(inner)
		if !errors.Is(err, cavity.ErrDegenerateRegion) {
			t.Errorf("%s: got %v. want degenerate region", s, err)
		}
	}
}

func TestAssembleCapsPassed(t *testing.T) {
	// Vessels shorter than twice the wall leave no cavity between the caps.
	for _, c := range []cavity.Constants{
		{Radius: 3, Length: 0.15, Wall: 0.1},
		{Radius: 3, Length: 0.05, Wall: 0.1},
	} {
		inner, err := profile.Inner(cavity.Shape{M: 1, N: 1}, c, profile.DefaultSamples)
		if err != nil {
			t.Fatal(err)
		}
		r, err := Assemble(inner)
		if !errors.Is(err, cavity.ErrDegenerateRegion) {
			t.Errorf("L=%g: got region with volume %v, err %v. want degenerate region", c.Length, volumeOf(r), err)
		}
	}
	// The reference vessel keeps its counter-clockwise boundary.
	inner, err := profile.Inner(cavity.Shape{M: 1, N: 1}, vessel, profile.DefaultSamples)
	if err != nil {
		t.Fatal(err)
	}
	r, err := Assemble(inner)
	if err != nil {
		t.Fatal(err)
	}
	if a := r.SignedArea(); !(a > 0) {
		t.Errorf("got signed area %g. want positive", a)
	}
}

func volumeOf(r *Region) float64 {
	if r == nil {
		return math.NaN()
	}
	v, _ := r.Volume()
	return v
}

func TestAssembleTooShort(t *testing.T) {
	_, err := Assemble([]r2.Vec{{X: 1}})
	if !errors.Is(err, cavity.ErrDegenerateRegion) {
		t.Errorf("got %v. want degenerate region", err)
	}
}
