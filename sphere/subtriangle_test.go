package sphere

import (
	"math"
	"testing"
)

func TestOctantVertexConvention(t *testing.T) {
	// Octant 1 covers the northern quarter-sphere with longitudes [0, 90):
	// pole vertex up, west vertex at lon 0, east vertex at lon 90.
	v := octantVertices(1)
	if v[0].Y != 1 {
		t.Errorf("pole vertex = %v, want (0,1,0)", v[0])
	}
	if v[1].Z != -1 {
		t.Errorf("west vertex = %v, want (0,0,-1)", v[1])
	}
	if v[2].X != 1 {
		t.Errorf("east vertex = %v, want (1,0,0)", v[2])
	}

	// Southern octants mirror the northern ones.
	if s := octantVertices(5); s[0].Y != -1 || s[1] != v[1] || s[2] != v[2] {
		t.Errorf("octant 5 vertices = %v", s)
	}
}

func TestQuadrisectOnSphere(t *testing.T) {
	children := quadrisect(octantVertices(1))
	for ci, child := range children {
		for vi, v := range child {
			if n := v.Norm(); math.Abs(n-1) > 1e-12 {
				t.Errorf("child %d vertex %d norm = %v", ci, vi, n)
			}
		}
	}

	// Corner children keep their anchoring vertex.
	parent := octantVertices(1)
	if children[1][0] != parent[0] {
		t.Error("child 1 lost the pole vertex")
	}
	if children[2][1] != parent[1] {
		t.Error("child 2 lost the west vertex")
	}
	if children[3][2] != parent[2] {
		t.Error("child 3 lost the east vertex")
	}

	// The central child shares every vertex with its siblings.
	central := children[0]
	if central[1] != children[1][1] || central[2] != children[1][2] || central[0] != children[2][2] {
		t.Error("central child vertices are not the edge midpoints")
	}
}

func TestCalcPlanesOrientation(t *testing.T) {
	for i := 0; i < 8; i++ {
		tri := Subtriangle{Vertices: octantVertices(i)}
		tri.calcPlanes()

		c := tri.Centroid()
		for pi, p := range tri.Planes {
			if d := p.SignedDistance(c.Vector); d <= 0 {
				t.Errorf("octant %d plane %d: centroid distance %v, want positive", i, pi, d)
			}
			if n := p.B.Norm(); math.Abs(n-1) > 1e-12 {
				t.Errorf("octant %d plane %d: normal norm %v", i, pi, n)
			}
		}
		// Vertices sit on their adjacent planes.
		for vi, v := range tri.Vertices {
			if d := math.Abs(tri.Planes[vi].SignedDistance(v.Vector)); d > 1e-12 {
				t.Errorf("octant %d vertex %d off its plane by %v", i, vi, d)
			}
		}
	}
}

func TestContainsVectorTolerance(t *testing.T) {
	tri := Subtriangle{Vertices: octantVertices(1)}
	tri.calcPlanes()

	inside := LatLon{Lat: 45, Lon: 45}.UnitVector().Vector
	if !tri.ContainsVector(inside, 0) {
		t.Error("interior point not contained")
	}
	outside := LatLon{Lat: 45, Lon: 135}.UnitVector().Vector
	if tri.ContainsVector(outside, 0) {
		t.Error("exterior point contained")
	}
	// A point on the lon-0 boundary needs the tolerance when rounding puts
	// it a hair outside.
	edge := LatLon{Lat: 30, Lon: 0}.UnitVector().Vector
	if !tri.ContainsVector(edge, 1e-9) {
		t.Error("edge point not contained within tolerance")
	}
}
