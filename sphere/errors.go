package sphere

import "errors"

var (
	// ErrUnsupported marks operations that are declared but deliberately not
	// implemented, so callers can tell "not built" apart from "computed and
	// wrong". Test with errors.Is.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrInvalidVertex reports a polygon vertex list that contains an empty
	// coordinate. Lists with fewer than three vertices are not an error;
	// they produce a degenerate empty polygon instead.
	ErrInvalidVertex = errors.New("invalid polygon vertex")

	// ErrMalformedTessellation reports an internal invariant violation: a
	// point-location descent found no child containing the query point.
	// This is a defect in the tessellation, never a user input error.
	ErrMalformedTessellation = errors.New("malformed tessellation")

	// ErrDepthRange reports a build or query depth outside the valid range.
	ErrDepthRange = errors.New("depth out of range")

	// ErrBadAddress reports a hierarchical address that does not identify a
	// node: an out-of-range selector or a length beyond the tessellation
	// depth.
	ErrBadAddress = errors.New("bad subtriangle address")
)
