package sphere

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// WKT serializes the polygon as a well-known-text POLYGON of (lon lat)
// pairs in the original (unrotated) vertex order, closing the ring on the
// first vertex. A degenerate polygon serializes as POLYGON EMPTY.
func (sp *SphericalPolygon) WKT() (string, error) {
	ring := sp.ring()
	if ring == nil {
		return wkt.Marshal(geom.NewPolygon(geom.XY))
	}
	poly := geom.NewPolygonFlat(geom.XY, ring, []int{len(ring)})
	return wkt.Marshal(poly)
}

// GeoJSON serializes the polygon as a GeoJSON Feature with a Polygon
// geometry, annotated with the centroid and bounding-cap radius so consumers
// can render the bound without recomputing it. A degenerate polygon yields a
// Feature with an empty ring.
func (sp *SphericalPolygon) GeoJSON() ([]byte, error) {
	ring := sp.ring()
	coords := make([][]float64, 0, len(ring)/2)
	for i := 0; i+1 < len(ring); i += 2 {
		coords = append(coords, []float64{ring[i], ring[i+1]})
	}

	f := geojson.NewPolygonFeature([][][]float64{coords})
	if sp.cap.IsSet() {
		f.SetProperty("centroid_lat", sp.cap.Center.Lat)
		f.SetProperty("centroid_lon", sp.cap.Center.Lon)
		f.SetProperty("cap_radius_deg", sp.cap.DomeRadius.Degrees())
	}
	return f.MarshalJSON()
}

// ring flattens the original vertices to a closed (lon, lat) coordinate ring,
// or nil for a degenerate polygon.
func (sp *SphericalPolygon) ring() []float64 {
	n := len(sp.vertices)
	if n < 3 {
		return nil
	}
	ring := make([]float64, 0, 2*(n+1))
	for _, v := range sp.vertices {
		ring = append(ring, v.Lon, v.Lat)
	}
	ring = append(ring, sp.vertices[0].Lon, sp.vertices[0].Lat)
	return ring
}
