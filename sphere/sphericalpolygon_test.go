package sphere

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/signalsfoundry/spheretess/planar"
)

func triangle(t *testing.T) *SphericalPolygon {
	t.Helper()
	sp, err := NewSphericalPolygon([]LatLon{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 10},
		{Lat: 10, Lon: 0},
	})
	if err != nil {
		t.Fatalf("NewSphericalPolygon: %v", err)
	}
	return sp
}

func TestSphericalPolygonBasics(t *testing.T) {
	sp := triangle(t)
	if got := sp.NumVertices(); got != 3 {
		t.Errorf("NumVertices = %d, want 3", got)
	}
	if !sp.Cap().IsSet() {
		t.Error("bounding cap not set")
	}

	c := sp.Centroid()
	if c.Lat <= 0 || c.Lat >= 10 || c.Lon <= 0 || c.Lon >= 10 {
		t.Errorf("centroid %v outside the triangle's bounds", c)
	}
	if got := sp.Contains(c); got != planar.Inside {
		t.Errorf("Contains(centroid) = %v, want Inside", got)
	}
}

func TestSphericalPolygonContains(t *testing.T) {
	sp := triangle(t)
	cases := []struct {
		p    LatLon
		want planar.Containment
	}{
		{LatLon{Lat: 2, Lon: 2}, planar.Inside},
		{LatLon{Lat: 20, Lon: 20}, planar.Outside},
		{LatLon{Lat: -1, Lon: 5}, planar.Outside},
		{LatLon{Lat: 0, Lon: -170}, planar.Outside},
	}
	for _, c := range cases {
		if got := sp.Contains(c.p); got != c.want {
			t.Errorf("Contains(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestSphericalPolygonDegenerate(t *testing.T) {
	sp, err := NewSphericalPolygon([]LatLon{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}})
	if err != nil {
		t.Fatalf("two-vertex list should degrade, got %v", err)
	}
	if sp.NumVertices() != 0 {
		t.Errorf("degenerate NumVertices = %d, want 0", sp.NumVertices())
	}
	if got := sp.Contains(LatLon{Lat: 0, Lon: 0}); got != planar.Outside {
		t.Errorf("degenerate Contains = %v, want Outside", got)
	}
	if sp.Overlaps(NewSurfaceRect(-180, 180, 90, -90)) {
		t.Error("degenerate polygon overlaps the whole sphere")
	}
}

func TestSphericalPolygonRejectsEmptyVertex(t *testing.T) {
	_, err := NewSphericalPolygon([]LatLon{
		{Lat: 0, Lon: 0},
		EmptyLatLon(),
		{Lat: 10, Lon: 0},
	})
	if !errors.Is(err, ErrInvalidVertex) {
		t.Errorf("err = %v, want ErrInvalidVertex", err)
	}
}

func TestSphericalPolygonAcrossDateLine(t *testing.T) {
	sp, err := NewSphericalPolygon([]LatLon{
		{Lat: -5, Lon: 175},
		{Lat: -5, Lon: -175},
		{Lat: 5, Lon: -175},
		{Lat: 5, Lon: 175},
	})
	if err != nil {
		t.Fatalf("NewSphericalPolygon: %v", err)
	}
	if got := sp.Contains(LatLon{Lat: 0, Lon: 180}); got != planar.Inside {
		t.Errorf("Contains(0,180) = %v, want Inside", got)
	}
	if got := sp.Contains(LatLon{Lat: 0, Lon: 0}); got != planar.Outside {
		t.Errorf("Contains(0,0) = %v, want Outside", got)
	}
	if math.Abs(math.Abs(sp.Centroid().Lon)-180) > 1e-6 {
		t.Errorf("centroid lon = %v, want +-180", sp.Centroid().Lon)
	}
}

func TestSphericalPolygonOverlaps(t *testing.T) {
	sp := triangle(t)
	cases := []struct {
		name string
		rect SurfaceRect
		want bool
	}{
		{"inside the polygon", NewSurfaceRect(1, 2, 2, 1), true},
		{"crossing an edge", NewSurfaceRect(-5, 5, 5, -5), true},
		{"disjoint", NewSurfaceRect(100, 120, 40, 30), false},
		{"pole to pole far away", NewSurfaceRect(100, 120, 90, -90), true},
		// Documented blind spot: the proxy test only sees rectangle corners
		// and edges, so a rectangle strictly containing the polygon misses.
		{"containing the polygon", NewSurfaceRect(-20, 20, 20, -20), false},
	}
	for _, c := range cases {
		if got := sp.Overlaps(c.rect); got != c.want {
			t.Errorf("%s: Overlaps = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestSphericalPolygonOverlapsPolarRect(t *testing.T) {
	// A polygon around the north pole against a rectangle whose top is at
	// the pole: the rectangle degenerates to a polar triangle proxy.
	sp, err := NewSphericalPolygon([]LatLon{
		{Lat: 80, Lon: 0},
		{Lat: 80, Lon: 120},
		{Lat: 80, Lon: -120},
	})
	if err != nil {
		t.Fatalf("NewSphericalPolygon: %v", err)
	}
	if !sp.Overlaps(NewSurfaceRect(10, 20, 90, 70)) {
		t.Error("polar rectangle should overlap a polygon ringing the pole")
	}
	if sp.Overlaps(NewSurfaceRect(10, 20, 30, 10)) {
		t.Error("low-latitude rectangle should not overlap a polar polygon")
	}
}

func TestSphericalPolygonPerimeter(t *testing.T) {
	// An equatorial square of 10-degree sides: the two equatorial edges are
	// exactly 10 degrees; the meridional edges exactly 10 degrees too.
	sp, err := NewSphericalPolygon([]LatLon{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 10},
		{Lat: 10, Lon: 10},
		{Lat: 10, Lon: 0},
	})
	if err != nil {
		t.Fatalf("NewSphericalPolygon: %v", err)
	}
	want := 3*10.0 + 10*math.Cos(10*math.Pi/180) // top edge is shorter
	if got := sp.Perimeter().Degrees(); math.Abs(got-want) > 0.05 {
		t.Errorf("perimeter = %v degrees, want about %v", got, want)
	}
}

func TestSphericalPolygonWKT(t *testing.T) {
	sp := triangle(t)
	got, err := sp.WKT()
	if err != nil {
		t.Fatalf("WKT: %v", err)
	}
	if !strings.HasPrefix(got, "POLYGON") {
		t.Fatalf("WKT = %q", got)
	}
	// The ring closes on the first vertex.
	if strings.Count(got, "0 0") < 2 {
		t.Errorf("WKT ring not closed: %q", got)
	}
}

func TestSphericalPolygonWKTEmpty(t *testing.T) {
	sp, err := NewSphericalPolygon(nil)
	if err != nil {
		t.Fatalf("NewSphericalPolygon: %v", err)
	}
	got, err := sp.WKT()
	if err != nil {
		t.Fatalf("WKT: %v", err)
	}
	if !strings.Contains(got, "EMPTY") {
		t.Errorf("degenerate WKT = %q, want EMPTY form", got)
	}
}

func TestSphericalPolygonGeoJSON(t *testing.T) {
	sp := triangle(t)
	raw, err := sp.GeoJSON()
	if err != nil {
		t.Fatalf("GeoJSON: %v", err)
	}
	var f struct {
		Type     string `json:"type"`
		Geometry struct {
			Type        string        `json:"type"`
			Coordinates [][][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.Type != "Feature" || f.Geometry.Type != "Polygon" {
		t.Fatalf("types = %q/%q", f.Type, f.Geometry.Type)
	}
	if len(f.Geometry.Coordinates) != 1 || len(f.Geometry.Coordinates[0]) != 4 {
		t.Fatalf("ring shape = %v", f.Geometry.Coordinates)
	}
	if _, ok := f.Properties["cap_radius_deg"]; !ok {
		t.Error("missing cap_radius_deg property")
	}
}

func TestSphericalPolygonSignedDistanceUnsupported(t *testing.T) {
	_, err := triangle(t).SignedDistance(LatLon{})
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}
