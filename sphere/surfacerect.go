package sphere

import (
	"fmt"

	"github.com/golang/geo/s1"

	"github.com/signalsfoundry/spheretess/planar"
	"github.com/signalsfoundry/spheretess/spatial"
)

// SurfaceRect is a rectangle on the surface of a sphere whose sides run
// along lines of latitude and longitude: Left/Right are longitudes,
// Top/Bottom latitudes. When Right < Left the rectangle crosses the
// international date line; containment handles that wrap.
type SurfaceRect struct {
	planar.Rect
}

// NewSurfaceRect constructs a rectangle from its longitude and latitude
// bounds in degrees.
func NewSurfaceRect(left, right, top, bottom float64) SurfaceRect {
	return SurfaceRect{planar.Rect{Left: left, Right: right, Top: top, Bottom: bottom}}
}

// ParseSurfaceRect parses the "left,top,right,bottom" text form. Structural
// errors follow planar.ParseRectLTRB.
func ParseSurfaceRect(s string) (SurfaceRect, error) {
	r, err := planar.ParseRectLTRB(s)
	if err != nil {
		return SurfaceRect{}, err
	}
	return SurfaceRect{r}, nil
}

// Contains reports whether the (lon, lat) point lies inside the rectangle or
// on its boundary, accounting for a date-line crossing.
func (r SurfaceRect) Contains(p planar.Point) bool {
	return r.ContainsXY(p.X, p.Y)
}

// ContainsXY is Contains for raw lon (x) and lat (y) ordinates.
func (r SurfaceRect) ContainsXY(x, y float64) bool {
	if r.Right > r.Left {
		return y >= r.Bottom && y <= r.Top && x >= r.Left && x <= r.Right
	}
	// The rectangle crosses the international date line: it spans eastward
	// from Left through 180 to Right.
	return y >= r.Bottom && y <= r.Top && (x >= r.Left || x <= r.Right)
}

// ContainsLatLon reports whether the coordinate lies inside the rectangle or
// on its boundary.
func (r SurfaceRect) ContainsLatLon(x LatLon) bool {
	return r.ContainsXY(x.Lon, x.Lat)
}

// Centroid computes the rectangle's center, remaining correct when the
// rectangle crosses the international date line.
func (r SurfaceRect) Centroid() LatLon {
	a := LatLon{Lat: r.Bottom, Lon: r.Left}.UnitVector()
	b := LatLon{Lat: r.Top, Lon: r.Right}.UnitVector()
	return LatLonFromVector(spatial.Unit(a.Add(b.Vector)).Vector)
}

// SignedDistance would return the signed angular distance between the
// coordinate and the rectangle boundary (negative inside). It is not
// implemented; callers receive ErrUnsupported.
func (r SurfaceRect) SignedDistance(x LatLon) (s1.Angle, error) {
	return 0, fmt.Errorf("%w: SurfaceRect.SignedDistance", ErrUnsupported)
}
