// Package planar provides 2D cartesian primitives: points, lines, rectangles,
// paths, and polygons with a winding-number containment test. The sphere
// package uses these as the planar half of its centroid-relative projections.
package planar

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformed reports a text form with the wrong structure (field count).
// Individual fields that fail to parse become NaN instead.
var ErrMalformed = errors.New("malformed text form")

// Point is a coordinate in a standard 2D cartesian space.
type Point struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of the two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(q Point) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// IsEmpty reports whether the point carries no usable location. A point is
// empty if either ordinate is non-finite; empty points propagate through
// computations as NaN rather than failing.
func (p Point) IsEmpty() bool {
	return !isFinite(p.X) || !isFinite(p.Y)
}

// EqualsTol reports whether both ordinates match within the tolerance.
func (p Point) EqualsTol(q Point, tol float64) bool {
	return equalTol(p.X, q.X, tol) && equalTol(p.Y, q.Y, tol)
}

// String renders the point as two comma-separated values "x,y".
func (p Point) String() string {
	return formatFloat(p.X) + "," + formatFloat(p.Y)
}

// ParsePoint parses the "x,y" form produced by String. A string with the
// wrong field count yields ErrMalformed; a field that is not a number yields
// a NaN ordinate, not an error.
func ParsePoint(s string) (Point, error) {
	fields := strings.Split(s, ",")
	if s == "" || len(fields) != 2 {
		return Point{}, fmt.Errorf("%w: want 2 comma-separated fields, got %q", ErrMalformed, s)
	}
	return Point{X: parseField(fields[0]), Y: parseField(fields[1])}, nil
}

// SegmentIntersection computes the intersection of segments a0-a1 and b0-b1.
// It reports false when the segments do not intersect, when any endpoint is
// empty, or when either segment is degenerate.
func SegmentIntersection(a0, a1, b0, b1 Point) (Point, bool) {
	if a0.IsEmpty() || a1.IsEmpty() || b0.IsEmpty() || b1.IsEmpty() || a0 == a1 || b0 == b1 {
		return Point{}, false
	}

	aLine, ok := LineFromPoints(a0, a1)
	if !ok {
		return Point{}, false
	}
	d0 := aLine.SignedDistance(b0)
	d1 := aLine.SignedDistance(b1)
	if sign(d0) == sign(d1) {
		return Point{}, false
	}

	// The segment b straddles the line through a; interpolate the crossing.
	d0 = math.Abs(d0)
	d1 = math.Abs(d1)
	dist := d0 + d1
	x := Point{
		X: (d1*b0.X + d0*b1.X) / dist,
		Y: (d1*b0.Y + d0*b1.Y) / dist,
	}

	// Accept only crossings between the perpendicular gates at a0 and a1.
	gates := aLine.SegmentLimits(a0, a1)
	if gates[0].SignedDistance(x) >= 0 && gates[1].SignedDistance(x) >= 0 {
		return x, true
	}
	return Point{}, false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func equalTol(a, b, tol float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) < tol
}

func sign(v float64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// parseField parses one numeric token, yielding NaN on failure.
func parseField(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
