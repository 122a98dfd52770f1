package planar

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// unitRightTriangle has vertices (0,0), (10,0), (0,10), listed
// counterclockwise.
func unitRightTriangle() *Polygon {
	return NewPolygon([]Point{{0, 0}, {10, 0}, {0, 10}})
}

func TestPolygonContains(t *testing.T) {
	p := unitRightTriangle()

	cases := []struct {
		x, y float64
		want Containment
	}{
		{2, 2, Inside},
		{3, 3, Inside},
		{9, 9, Outside},
		{-1, 5, Outside},
		{5, 0, OnEdge},  // on the bottom edge
		{0, 5, OnEdge},  // on the left edge
		{5, 5, OnEdge},  // on the hypotenuse
		{10, 0, OnEdge}, // vertex
	}
	for _, c := range cases {
		if got := p.Contains(c.x, c.y); got != c.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestPolygonContainsDegenerate(t *testing.T) {
	if got := NewPolygon(nil).Contains(0, 0); got != Outside {
		t.Errorf("empty polygon Contains = %v, want outside", got)
	}
	if got := NewPolygon([]Point{{0, 0}, {1, 1}}).Contains(0.5, 0.5); got != Outside {
		t.Errorf("two-vertex polygon Contains = %v, want outside", got)
	}
}

func TestPolygonContainsEmptyPoint(t *testing.T) {
	// Empty input degrades to a defined result rather than panicking.
	if got := unitRightTriangle().Contains(math.NaN(), 2); got != Outside {
		t.Errorf("Contains(NaN, 2) = %v, want outside", got)
	}
}

func TestIsClockwiseFlipsOnReverse(t *testing.T) {
	p := unitRightTriangle()
	before := p.IsClockwise()
	p.Reverse()
	if p.IsClockwise() == before {
		t.Errorf("reversing the vertex order did not flip IsClockwise")
	}
}

func TestEnsureClockwiseIdempotent(t *testing.T) {
	p := unitRightTriangle()

	first := p.EnsureClockwise()
	if !p.IsClockwise() {
		t.Fatalf("polygon not clockwise after EnsureClockwise")
	}
	if p.EnsureClockwise() {
		t.Errorf("second EnsureClockwise reversed an already clockwise polygon")
	}
	_ = first

	// Containment is unaffected by winding direction.
	if got := p.Contains(2, 2); got != Inside {
		t.Errorf("Contains(2,2) after EnsureClockwise = %v, want inside", got)
	}
}

func TestPolygonLengthIncludesClosingEdge(t *testing.T) {
	// 3-4-5 triangle: perimeter 12.
	p := NewPolygon([]Point{{0, 0}, {3, 0}, {3, 4}})
	if math.Abs(p.Length()-12) > 1e-12 {
		t.Errorf("Length = %v, want 12", p.Length())
	}
}

func TestPolygonBoundingRect(t *testing.T) {
	p := unitRightTriangle()
	r := p.BoundingRect()
	want := Rect{Left: 0, Right: 10, Top: 10, Bottom: 0}
	if r != want {
		t.Errorf("BoundingRect = %v, want %v", r, want)
	}
}

func TestPolygonIntersects(t *testing.T) {
	p := unitRightTriangle()
	if !p.Intersects(Point{-1, 5}, Point{5, 5}) {
		t.Errorf("segment crossing the closing (left) edge not detected")
	}
	if !p.Intersects(Point{8, -1}, Point{8, 1}) {
		t.Errorf("segment crossing the bottom edge not detected")
	}
	if p.Intersects(Point{20, 20}, Point{30, 30}) {
		t.Errorf("distant segment reported as intersecting")
	}
}

func TestPolygonWKT(t *testing.T) {
	p := NewPolygon([]Point{{0, 0}, {10, 0}, {0, 10}})
	s, err := p.WKT()
	if err != nil {
		t.Fatalf("WKT returned error: %v", err)
	}
	if !strings.HasPrefix(s, "POLYGON") {
		t.Errorf("WKT = %q, want POLYGON prefix", s)
	}
	// The ring closes on the first vertex.
	if got := strings.Count(s, "0 0"); got < 2 {
		t.Errorf("WKT = %q, want the first vertex repeated to close the ring", s)
	}
}

func TestParseRectLTRB(t *testing.T) {
	r, err := ParseRectLTRB("-10,45,10,-45")
	if err != nil {
		t.Fatalf("ParseRectLTRB returned error: %v", err)
	}
	want := Rect{Left: -10, Top: 45, Right: 10, Bottom: -45}
	if r != want {
		t.Errorf("ParseRectLTRB = %v, want %v", r, want)
	}
	if _, err := ParseRectLTRB("1,2,3"); !errors.Is(err, ErrMalformed) {
		t.Errorf("wrong field count error = %v, want ErrMalformed", err)
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{Left: 0, Right: 10, Top: 10, Bottom: 0}
	b := Rect{Left: 5, Right: 15, Top: 15, Bottom: 5}
	c := Rect{Left: 20, Right: 30, Top: 10, Bottom: 0}
	if !Overlaps(a, b) {
		t.Errorf("overlapping rectangles reported as disjoint")
	}
	if Overlaps(a, c) {
		t.Errorf("disjoint rectangles reported as overlapping")
	}
}
