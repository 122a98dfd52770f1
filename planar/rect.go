package planar

import (
	"fmt"
	"math"
	"strings"
)

// Rect is an axis-aligned rectangle in 2D space.
type Rect struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// Bound returns the smallest rectangle containing both points.
func Bound(a, b Point) Rect {
	return Rect{
		Left:   math.Min(a.X, b.X),
		Right:  math.Max(a.X, b.X),
		Bottom: math.Min(a.Y, b.Y),
		Top:    math.Max(a.Y, b.Y),
	}
}

// Contains reports whether the point lies inside the rectangle or on its
// boundary.
func (r Rect) Contains(p Point) bool {
	return r.ContainsXY(p.X, p.Y)
}

// ContainsXY reports whether (x, y) lies inside the rectangle or on its
// boundary.
func (r Rect) ContainsXY(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Bottom && y <= r.Top
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Top - Bottom.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// Overlaps reports whether the rectangles share any area or touch at an edge
// or corner.
func Overlaps(a, b Rect) bool {
	return a.ContainsXY(b.Left, b.Top) || b.ContainsXY(a.Left, a.Top) ||
		a.ContainsXY(b.Left, b.Bottom) || b.ContainsXY(a.Left, a.Bottom) ||
		a.ContainsXY(b.Right, b.Top) || b.ContainsXY(a.Right, a.Top) ||
		a.ContainsXY(b.Right, b.Bottom) || b.ContainsXY(a.Right, a.Bottom)
}

// String renders the rectangle as "left,top,right,bottom".
func (r Rect) String() string {
	return formatFloat(r.Left) + "," + formatFloat(r.Top) + "," +
		formatFloat(r.Right) + "," + formatFloat(r.Bottom)
}

// ParseRectLTRB parses the "left,top,right,bottom" form produced by String.
// A string with the wrong field count yields ErrMalformed; a field that is
// not a number yields a NaN ordinate, not an error.
func ParseRectLTRB(s string) (Rect, error) {
	fields := strings.Split(s, ",")
	if s == "" || len(fields) != 4 {
		return Rect{}, fmt.Errorf("%w: want 4 comma-separated fields, got %q", ErrMalformed, s)
	}
	return Rect{
		Left:   parseField(fields[0]),
		Top:    parseField(fields[1]),
		Right:  parseField(fields[2]),
		Bottom: parseField(fields[3]),
	}, nil
}
