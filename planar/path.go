package planar

import "math"

// Path is an open sequence of 2D vertices. Derived metadata (bounding
// rectangle, length, containment tolerance) is computed once at construction;
// the vertex slice must not be mutated afterwards.
type Path struct {
	Vertices []Point

	bounds Rect
	length float64
	tiny   float64
}

// NewPath constructs a path over the given vertices and caches its derived
// metadata. The slice is used directly, not copied.
func NewPath(vertices []Point) *Path {
	p := &Path{Vertices: vertices}
	p.finalize()
	return p
}

// finalize caches the bounding rectangle, path length, and the "tiny"
// tolerance used by containment tests: a value that is nearly zero relative
// to the extent of the path.
func (p *Path) finalize() {
	p.length = 0
	p.tiny = 0
	if len(p.Vertices) < 1 {
		return
	}

	v := p.Vertices[0]
	p.bounds = Rect{Left: v.X, Right: v.X, Top: v.Y, Bottom: v.Y}
	for i := 1; i < len(p.Vertices); i++ {
		prev := v
		v = p.Vertices[i]
		p.length += prev.DistanceTo(v)
		p.bounds.Left = math.Min(p.bounds.Left, v.X)
		p.bounds.Right = math.Max(p.bounds.Right, v.X)
		p.bounds.Bottom = math.Min(p.bounds.Bottom, v.Y)
		p.bounds.Top = math.Max(p.bounds.Top, v.Y)
	}

	if ext := math.Min(p.bounds.Width(), p.bounds.Height()); ext > 0 {
		p.tiny = 1e-6 / ext
	}
}

// BoundingRect returns the smallest rectangle surrounding the path.
func (p *Path) BoundingRect() Rect { return p.bounds }

// Length returns the total length of the path.
func (p *Path) Length() float64 { return p.length }

// Intersects reports whether any path edge intersects the segment a0-a1.
func (p *Path) Intersects(a0, a1 Point) bool {
	for i := 1; i < len(p.Vertices); i++ {
		if _, ok := SegmentIntersection(a0, a1, p.Vertices[i-1], p.Vertices[i]); ok {
			return true
		}
	}
	return false
}
