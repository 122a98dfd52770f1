package planar

import (
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// Containment is the tri-state result of a point-in-polygon test.
type Containment int

const (
	// Outside means the point lies strictly outside the polygon.
	Outside Containment = -1
	// OnEdge means the point lies on (or extremely close to) the boundary.
	OnEdge Containment = 0
	// Inside means the point lies strictly inside the polygon.
	Inside Containment = 1
)

// String returns a human-readable name for the containment state.
func (c Containment) String() string {
	switch c {
	case Outside:
		return "outside"
	case OnEdge:
		return "on-edge"
	case Inside:
		return "inside"
	default:
		return "unknown"
	}
}

// Polygon is a closed path in 2D space. The closing edge from the last vertex
// back to the first is implicit.
type Polygon struct {
	Path
}

// NewPolygon constructs a polygon over the given vertices and caches its
// derived metadata. The slice is used directly, not copied.
func NewPolygon(vertices []Point) *Polygon {
	p := &Polygon{Path: Path{Vertices: vertices}}
	p.finalize()
	if len(p.Vertices) > 1 {
		// The path length of a polygon includes the closing edge.
		p.length += p.Vertices[len(p.Vertices)-1].DistanceTo(p.Vertices[0])
	}
	return p
}

// NumVertices returns the number of polygon vertices.
func (p *Polygon) NumVertices() int { return len(p.Vertices) }

// Contains determines whether the point (x, y) lies inside the polygon, on
// its edge, or outside. It walks the vertices tracking which cartesian
// quadrant (relative to the test point) each vertex falls in and accumulates
// the signed quadrant transitions; a nonzero sum means inside. A cross
// product within the tolerance combined with a non-positive dot product means
// the point lies on an edge, which short-circuits the walk.
func (p *Polygon) Contains(x, y float64) Containment {
	if len(p.Vertices) < 3 {
		return Outside
	}
	sqTiny := p.tiny * p.tiny

	last := p.Vertices[len(p.Vertices)-1]
	x2 := last.X - x
	y2 := last.Y - y
	quad := quadrantOf(x2, y2)

	sum := 0
	for i := 0; i < len(p.Vertices); i++ {
		prevQuad := quad
		x1, y1 := x2, y2
		x2 = p.Vertices[i].X - x
		y2 = p.Vertices[i].Y - y

		dot := x1*x2 + y1*y2
		cross := x1*y2 - x2*y1
		signCross := 0
		if cross < -sqTiny {
			signCross = -1
		} else if cross > sqTiny {
			signCross = 1
		}

		if signCross == 0 && dot <= 0 {
			return OnEdge
		}

		quad = quadrantOf(x2, y2)
		diff := quad - prevQuad
		switch diff {
		case 3:
			diff = -1
		case -3:
			diff = 1
		case 2, -2:
			// Crossing two quadrants at once: the side is decided by the
			// sign of the cross product.
			diff = 2 * signCross
		}
		sum += diff
	}

	if sum != 0 {
		return Inside
	}
	return Outside
}

// ContainsPoint is Contains for a Point argument.
func (p *Polygon) ContainsPoint(pt Point) Containment {
	return p.Contains(pt.X, pt.Y)
}

// Intersects reports whether any polygon edge, including the closing edge,
// intersects the segment a0-a1.
func (p *Polygon) Intersects(a0, a1 Point) bool {
	if len(p.Vertices) == 0 {
		return false
	}
	prev := p.Vertices[len(p.Vertices)-1]
	for _, v := range p.Vertices {
		if _, ok := SegmentIntersection(a0, a1, prev, v); ok {
			return true
		}
		prev = v
	}
	return false
}

// IsClockwise reports whether the polygon winds clockwise: the interior tends
// rightward from any point along the perimeter when facing the next vertex.
// It sums the normalized curvature between successive edge bearings.
func (p *Polygon) IsClockwise() bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	cur := p.Vertices[0]
	prev := p.Vertices[n-1]
	bearing := math.Atan2(cur.Y-prev.Y, cur.X-prev.X)

	total := 0.0
	next := cur
	for i := 0; i < n; i++ {
		prevBearing := bearing
		cur = next
		next = p.Vertices[(i+1)%n]
		bearing = math.Atan2(next.Y-cur.Y, next.X-cur.X)
		total += normalizeRadians(bearing - prevBearing)
	}
	return total < 0
}

// EnsureClockwise reverses the vertex order if the polygon is not already
// clockwise. It reports whether a reversal happened. Applying it twice is
// equivalent to applying it once.
func (p *Polygon) EnsureClockwise() bool {
	if p.IsClockwise() {
		return false
	}
	p.Reverse()
	return true
}

// Reverse reverses the vertex sequence in place. The cached metadata is
// unaffected: bounds, length, and tolerance are invariant under reversal.
func (p *Polygon) Reverse() {
	for i, j := 0, len(p.Vertices)-1; j > i; i, j = i+1, j-1 {
		p.Vertices[i], p.Vertices[j] = p.Vertices[j], p.Vertices[i]
	}
}

// WKT serializes the polygon as well-known text, POLYGON ((x1 y1, ..., x1 y1)),
// closing the ring on the first vertex.
func (p *Polygon) WKT() (string, error) {
	if len(p.Vertices) == 0 {
		return wkt.Marshal(geom.NewPolygon(geom.XY))
	}
	flat := make([]float64, 0, 2*(len(p.Vertices)+1))
	for _, v := range p.Vertices {
		flat = append(flat, v.X, v.Y)
	}
	flat = append(flat, p.Vertices[0].X, p.Vertices[0].Y)
	return wkt.Marshal(geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)}))
}

func quadrantOf(x, y float64) int {
	switch {
	case x > 0 && y > 0:
		return 0
	case x <= 0 && y > 0:
		return 1
	case x <= 0 && y <= 0:
		return 2
	default:
		return 3
	}
}

// normalizeRadians shifts the argument to its equivalent in (-pi, pi].
func normalizeRadians(r float64) float64 {
	if r > -math.Pi && r <= math.Pi {
		return r
	}
	r = math.Mod(r, 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	} else if r > math.Pi {
		r -= 2 * math.Pi
	}
	return r
}
