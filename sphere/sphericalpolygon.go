package sphere

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"

	"github.com/signalsfoundry/spheretess/planar"
	"github.com/signalsfoundry/spheretess/spatial"
)

// SphericalPolygon represents a polygon on the surface of a sphere. It keeps
// working when the polygon crosses the international date line or covers a
// pole, by re-expressing every vertex on a sphere rotated so the polygon's
// centroid sits at the reference direction, then running planar tests there.
//
// The representation is reliable for polygons covering roughly one third of
// the sphere or less; beyond that it may describe the polygon's complement.
// It breaks down if any perimeter point is more than 180 degrees from the
// centroid.
type SphericalPolygon struct {
	// cap bounds the polygon: its center is the polygon centroid and its
	// radius the distance of the farthest vertex from that centroid.
	cap Cap
	// centroidUvec is the centroid direction: the perimeter-weighted mean of
	// the vertex directions, scaled back onto the sphere's surface.
	centroidUvec spatial.UnitVector
	// centroidToOrigin rotates a vector into the frame where centroidUvec is
	// the reference direction (0,0,-1).
	centroidToOrigin spatial.Matrix
	// local holds the vertices as planar (lon, lat) in the rotated frame,
	// forced to clockwise winding.
	local *planar.Polygon
	// vertices is the caller-supplied ring, kept for serialization.
	vertices []LatLon
	// perimeter is the total angular length of the ring.
	perimeter s1.Angle
}

// NewSphericalPolygon constructs a polygon from an ordered vertex list.
//
// Fewer than three vertices yields a degenerate empty polygon, not an error:
// it contains nothing and overlaps nothing. An empty coordinate anywhere in
// a non-trivial list aborts construction with ErrInvalidVertex.
func NewSphericalPolygon(vertices []LatLon) (*SphericalPolygon, error) {
	sp := &SphericalPolygon{cap: NewCap()}
	if len(vertices) < 3 {
		return sp, nil
	}
	for i, v := range vertices {
		if v.IsEmpty() {
			return nil, fmt.Errorf("%w: vertex %d is empty", ErrInvalidVertex, i)
		}
	}

	n := len(vertices)
	sp.vertices = make([]LatLon, n)
	copy(sp.vertices, vertices)

	// Perimeter-weighted centroid: each vertex weighted by the sum of the
	// great-circle distances to its two neighbors, so every edge is counted
	// twice and the perimeter is half the total weight.
	var avg r3.Vector
	var total s1.Angle
	var cur LatLon
	next := vertices[0]
	dNext := DistRadians(vertices[n-1], next)
	for i := 0; i < n; i++ {
		dPrev := dNext
		cur = next
		next = vertices[(i+1)%n]
		dNext = DistRadians(cur, next)
		d := dPrev + dNext
		total += d
		avg = avg.Add(cur.UnitVector().Mul(d.Radians()))
	}

	sp.perimeter = total / 2
	sp.centroidUvec = spatial.Unit(avg)
	sp.centroidToOrigin = spatial.RotationToOrigin(sp.centroidUvec)
	sp.cap.Center = LatLonFromVector(avg)

	// Rotate every vertex into the centroid frame and bound the originals.
	points := make([]planar.Point, n)
	for i, v := range vertices {
		sp.cap.ExpandToInclude(v)
		points[i] = sp.rotated(v)
	}
	sp.local = planar.NewPolygon(points)
	sp.local.EnsureClockwise()
	return sp, nil
}

// rotated re-expresses a coordinate in the centroid frame as a planar
// (lon, lat) point.
func (sp *SphericalPolygon) rotated(x LatLon) planar.Point {
	return LatLonFromVector(sp.centroidToOrigin.MulVector(x.UnitVector().Vector)).Point()
}

// NumVertices returns the number of polygon vertices; zero for a degenerate
// polygon.
func (sp *SphericalPolygon) NumVertices() int {
	if sp.local == nil {
		return 0
	}
	return sp.local.NumVertices()
}

// Perimeter returns the total angular length of the polygon's ring.
func (sp *SphericalPolygon) Perimeter() s1.Angle { return sp.perimeter }

// Cap returns the bounding cap: centered on the polygon centroid, with a
// radius reaching the farthest vertex.
func (sp *SphericalPolygon) Cap() Cap { return sp.cap }

// Centroid returns the perimeter-weighted centroid coordinate.
func (sp *SphericalPolygon) Centroid() LatLon { return sp.cap.Center }

// Contains determines whether the coordinate lies inside the polygon, on its
// edge, or outside. Empty coordinates and degenerate polygons test outside.
func (sp *SphericalPolygon) Contains(x LatLon) planar.Containment {
	if sp.local == nil {
		return planar.Outside
	}
	p := sp.rotated(x)
	return sp.local.Contains(p.X, p.Y)
}

// Overlaps reports whether the rectangle and the polygon share any area.
//
// The rectangle is re-expressed in the polygon's centroid frame as a planar
// proxy: a quadrilateral in the regular case, a triangle pinched at the pole
// when the rectangle's top or bottom reaches within a small epsilon of one,
// and a universal overlap when it spans pole to pole. The test checks proxy
// vertex containment and edge intersection only, so a rectangle that
// strictly contains the whole polygon is not detected; pair it with a
// centroid-in-rectangle check when that case matters.
func (sp *SphericalPolygon) Overlaps(sr SurfaceRect) bool {
	if sp.local == nil {
		return false
	}

	var proxy []planar.Point
	switch {
	case sr.Top > 89.999:
		if sr.Bottom < -89.999 {
			// The rectangle covers every longitude from pole to pole.
			return true
		}
		proxy = []planar.Point{
			sp.rotated(LatLon{Lat: sr.Bottom, Lon: sr.Right}),
			sp.rotated(LatLon{Lat: sr.Bottom, Lon: sr.Left}),
			sp.rotatedVector(r3.Vector{Y: 1}), // north pole
		}
	case sr.Bottom < -89.999:
		proxy = []planar.Point{
			sp.rotated(LatLon{Lat: sr.Top, Lon: sr.Left}),
			sp.rotated(LatLon{Lat: sr.Top, Lon: sr.Right}),
			sp.rotatedVector(r3.Vector{Y: -1}), // south pole
		}
	default:
		proxy = []planar.Point{
			sp.rotated(LatLon{Lat: sr.Bottom, Lon: sr.Right}),
			sp.rotated(LatLon{Lat: sr.Bottom, Lon: sr.Left}),
			sp.rotated(LatLon{Lat: sr.Top, Lon: sr.Left}),
			sp.rotated(LatLon{Lat: sr.Top, Lon: sr.Right}),
		}
	}

	for _, p := range proxy {
		if sp.local.Contains(p.X, p.Y) >= planar.OnEdge {
			return true
		}
	}

	prev := proxy[len(proxy)-1]
	for _, p := range proxy {
		if sp.local.Intersects(prev, p) {
			return true
		}
		prev = p
	}
	return false
}

func (sp *SphericalPolygon) rotatedVector(v r3.Vector) planar.Point {
	return LatLonFromVector(sp.centroidToOrigin.MulVector(v)).Point()
}

// SignedDistance would return the signed angular distance between the
// coordinate and the polygon boundary (negative inside, matching the cap's
// convention). It is not implemented; callers receive ErrUnsupported.
func (sp *SphericalPolygon) SignedDistance(x LatLon) (s1.Angle, error) {
	return 0, fmt.Errorf("%w: SphericalPolygon.SignedDistance", ErrUnsupported)
}
