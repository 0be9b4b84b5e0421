package meshcheck

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"github.com/soypat/cavity/region"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is a mesh face with counter-clockwise vertices seen from outside.
type Triangle [3]r3.Vec

// Normal returns the unit normal of t.
func (t Triangle) Normal() r3.Vec {
	return r3.Unit(r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0])))
}

// Mesh tessellates the solid of revolution of r with marching cubes.
func Mesh(r *region.Region, cells int) ([]Triangle, error) {
	if cells < 2 {
		return nil, fmt.Errorf("need at least 2 mesh cells, got %d", cells)
	}
	s3, err := Solid(r)
	if err != nil {
		return nil, err
	}
	return tessellate(s3, cells)
}

// CreateSTL writes the mesh of the cavity of r to a binary STL file.
func CreateSTL(path string, r *region.Region, cells int) (err error) {
	model, err := Mesh(r, cells)
	if err != nil {
		return err
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteSTL(fp, model)
}

// WriteSTL writes model triangles to w in binary STL format. Triangles that
// collapse at single precision are left out.
func WriteSTL(w io.Writer, model []Triangle) error {
	faces := make([]stlTriangle, 0, len(model))
	for _, t := range model {
		d := stlTriangle{
			Normal:  to3F32(t.Normal()),
			Vertex1: to3F32(t[0]),
			Vertex2: to3F32(t[1]),
			Vertex3: to3F32(t[2]),
		}
		if d.validate() == nil {
			faces = append(faces, d)
		}
	}
	if len(faces) == 0 {
		return errors.New("empty triangle slice")
	}
	header := stlHeader{Count: uint32(len(faces))}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var buf [stlTriangleSize]byte
	for _, d := range faces {
		d.put(buf[:])
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}

// ReadSTL reads a binary STL model. Triangles with non-finite or
// coincident vertices are rejected.
func ReadSTL(r io.Reader) ([]Triangle, error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("STL header read failed: %w", err)
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf [stlTriangleSize]byte
		d   stlTriangle
	)
	model := make([]Triangle, 0, header.Count)
	for i := 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, fmt.Errorf("%d/%d STL triangles read: %w", i, header.Count, err)
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			return nil, fmt.Errorf("STL triangle %d: %w", i, err)
		}
		model = append(model, Triangle{from3F32(d.Vertex1), from3F32(d.Vertex2), from3F32(d.Vertex3)})
	}
	return model, nil
}

const stlTriangleSize = 50

type stlHeader struct {
	_     [80]uint8
	Count uint32
}

type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
}

func (t stlTriangle) put(b []byte) {
	_ = b[stlTriangleSize-1]
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0) // attribute byte count
}

func (t *stlTriangle) get(b []byte) {
	_ = b[stlTriangleSize-1]
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
}

func (t stlTriangle) validate() error {
	const tol = 1e-12
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN vertex")
	}
	if equalWithin3F32(t.Vertex1, t.Vertex2, tol) ||
		equalWithin3F32(t.Vertex2, t.Vertex3, tol) ||
		equalWithin3F32(t.Vertex3, t.Vertex1, tol) {
		return errors.New("degenerate triangle")
	}
	return nil
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}

func to3F32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func from3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}
