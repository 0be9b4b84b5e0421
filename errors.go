package cavity

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned before any computation starts when the
	// sweep inputs are unusable. It is fatal.
	ErrConfiguration = errors.New("configuration error")
	// ErrDegenerateGeometry reports a profile normal that cannot be computed.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrDegenerateRegion reports a meridional region that is self-intersecting,
	// crosses its revolution axis or has no axis at all.
	ErrDegenerateRegion = errors.New("degenerate region")
	// ErrExport is returned when results cannot be written to their destination.
	ErrExport = errors.New("export failure")
)

// ShapeError is a per-shape failure. It does not stop a sweep.
type ShapeError struct {
	Index int
	Shape Shape
	Err   error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape %d %s: %s", e.Index, e.Shape, e.Err)
}

func (e *ShapeError) Unwrap() error { return e.Err }
