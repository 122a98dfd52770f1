package sphere

import (
	"github.com/golang/geo/r3"

	"github.com/signalsfoundry/spheretess/spatial"
)

// Subtriangle is one node of the tessellation: a spherical triangle bounded
// by three great-circle planes. The root node is the whole sphere and has no
// geometry of its own; every other node carries its three vertices and the
// three planes derived from them.
//
// Subtriangles are arena-allocated by their Tessellation and referenced by
// int32 IDs; navigate between them through the Tessellation's accessors.
type Subtriangle struct {
	// ID is the node's index in the tessellation arena.
	ID int32
	// Parent is the ID of the enclosing node, or -1 for the root.
	Parent int32
	// Address is the path of child selectors from the root: an octant
	// selector (0-7) followed by quadrant selectors (0-3). Its length is the
	// node's depth.
	Address Address
	// Vertices are the triangle's corners on the unit sphere. By convention
	// vertex 0 is on the pole side, vertex 1 on the west side, and vertex 2
	// on the east side of the triangle (for the central child of a
	// quadrisection the roles are inherited from the midpoints).
	Vertices [3]spatial.UnitVector
	// Planes bound the triangle: plane i passes through the sphere's center,
	// Vertices[i], and Vertices[(i+1)%3], oriented so the triangle's interior
	// has positive signed distance.
	Planes [3]spatial.Plane

	firstChild  int32
	numChildren int32
}

// IsLeaf reports whether the node has no children.
func (t *Subtriangle) IsLeaf() bool { return t.numChildren == 0 }

// NumChildren returns the number of children: 8 for the root, 4 for interior
// nodes, 0 for leaves.
func (t *Subtriangle) NumChildren() int { return int(t.numChildren) }

// Child returns the ID of the i-th child. It panics when i is out of range,
// like a slice index.
func (t *Subtriangle) Child(i int) int32 {
	if i < 0 || i >= int(t.numChildren) {
		panic("sphere: subtriangle child index out of range")
	}
	return t.firstChild + int32(i)
}

// Depth returns the node's depth in the hierarchy; the root is at depth 0.
func (t *Subtriangle) Depth() int { return len(t.Address) }

// Centroid returns the direction of the triangle's center: the normalized
// mean of its vertices.
func (t *Subtriangle) Centroid() spatial.UnitVector {
	return spatial.Unit(t.Vertices[0].Add(t.Vertices[1].Vector).Add(t.Vertices[2].Vector))
}

// ContainsVector reports whether the direction v lies inside the triangle or
// within tol of its boundary: every bounding plane's signed distance must be
// at least -tol.
func (t *Subtriangle) ContainsVector(v r3.Vector, tol float64) bool {
	return t.Planes[0].SignedDistance(v) >= -tol &&
		t.Planes[1].SignedDistance(v) >= -tol &&
		t.Planes[2].SignedDistance(v) >= -tol
}

// LatLons returns the triangle's corners as surface coordinates.
func (t *Subtriangle) LatLons() [3]LatLon {
	return [3]LatLon{
		LatLonFromVector(t.Vertices[0].Vector),
		LatLonFromVector(t.Vertices[1].Vector),
		LatLonFromVector(t.Vertices[2].Vector),
	}
}

// calcPlanes derives the three bounding planes from the vertices. Each plane
// passes through the origin and one triangle edge; its normal is flipped if
// needed so the triangle's centroid sits on the positive side.
func (t *Subtriangle) calcPlanes() {
	centroid := t.Vertices[0].Add(t.Vertices[1].Vector).Add(t.Vertices[2].Vector)
	for i := 0; i < 3; i++ {
		a := t.Vertices[i]
		b := t.Vertices[(i+1)%3]
		p := spatial.Plane{B: spatial.Unit(a.Cross(b.Vector)).Vector}
		if p.SignedDistance(centroid) < 0 {
			p = p.Conjugate()
		}
		t.Planes[i] = p
	}
}

// Cardinal directions on the unit sphere, in the left-handed frame where
// (lat 0, lon 0) is (0,0,-1) and (lat 0, lon 90) is (1,0,0).
var (
	dirUp      = r3.Vector{Y: 1}  // north pole
	dirDown    = r3.Vector{Y: -1} // south pole
	dirBack    = r3.Vector{Z: -1} // lon 0
	dirRight   = r3.Vector{X: 1}  // lon 90
	dirForward = r3.Vector{Z: 1}  // lon 180
	dirLeft    = r3.Vector{X: -1} // lon -90
)

// octantVertices returns the corner directions of octant i, following the
// addressing convention: index = 4 for the southern hemisphere plus a
// longitude quadrant, where quadrant 0 covers [90, 180], 1 covers [0, 90),
// 2 covers [-90, 0), and 3 covers (-180, -90). Vertex 0 is the pole, vertex 1
// the western corner, vertex 2 the eastern corner.
func octantVertices(i int) [3]spatial.UnitVector {
	pole := dirUp
	if i >= 4 {
		pole = dirDown
	}
	var west, east r3.Vector
	switch i % 4 {
	case 0:
		west, east = dirRight, dirForward
	case 1:
		west, east = dirBack, dirRight
	case 2:
		west, east = dirLeft, dirBack
	case 3:
		west, east = dirForward, dirLeft
	}
	return [3]spatial.UnitVector{
		{Vector: pole},
		{Vector: west},
		{Vector: east},
	}
}

// quadrisect computes the corner directions of the four children of a
// triangle. The edge midpoints (normalized vertex sums, so they stay on the
// sphere) become the central child; each corner keeps its role in the child
// it anchors. Child 0 is the central triangle, child 1 keeps vertex 0 (the
// pole side), child 2 keeps vertex 1 (west), child 3 keeps vertex 2 (east).
func quadrisect(v [3]spatial.UnitVector) [4][3]spatial.UnitVector {
	m01 := spatial.Unit(v[0].Add(v[1].Vector))
	m12 := spatial.Unit(v[1].Add(v[2].Vector))
	m20 := spatial.Unit(v[2].Add(v[0].Vector))
	return [4][3]spatial.UnitVector{
		{m12, m01, m20},
		{v[0], m01, m20},
		{m01, v[1], m12},
		{m20, m12, v[2]},
	}
}
