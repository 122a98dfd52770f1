// Package sphere implements a hierarchical spatial index over the surface of
// a sphere: a tessellation of equilateral spherical triangles that maps any
// surface coordinate to the smallest enclosing triangle at a chosen depth,
// plus the cap and polygon regions used for approximate range queries
// against that hierarchy.
//
// Latitude and longitude are expressed in degrees; angular distances are
// s1.Angle values (radians) from golang/geo.
package sphere

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"

	"github.com/signalsfoundry/spheretess/planar"
	"github.com/signalsfoundry/spheretess/spatial"
)

// Earth radii for converting angular distances to surface distances.
const (
	EarthRadiusKm = 6371.0
	EarthRadiusMi = 3959.0
)

const (
	degPerRad = 180 / math.Pi
	radPerDeg = math.Pi / 180
)

// LatLon is a coordinate on the surface of a sphere. Latitude is in
// [-90, 90] degrees, longitude in (-180, 180].
type LatLon struct {
	Lat float64
	Lon float64
}

// EmptyLatLon returns the sentinel coordinate signaling an absent or
// undefined location. Empty coordinates propagate through distance and
// conversion functions as non-finite values, never as errors.
func EmptyLatLon() LatLon {
	return LatLon{Lat: math.NaN(), Lon: math.NaN()}
}

// IsEmpty reports whether either component is non-finite.
func (ll LatLon) IsEmpty() bool {
	return !isFinite(ll.Lat) || !isFinite(ll.Lon)
}

// Normalize returns the coordinate shifted to the canonical ranges:
// longitude in (-180, 180], then latitude reflected into [-90, 90]
// (lat > 90 becomes 180-lat, lat <= -90 becomes -180-lat).
func (ll LatLon) Normalize() LatLon {
	return LatLon{Lat: NormalizeLatDegrees(ll.Lat), Lon: NormalizeDegrees(ll.Lon)}
}

// UnitVector represents the coordinate as a point on the unit sphere.
//
// (Lat, Lon) is defined as a pair of rotations applied to the reference
// direction (0,0,-1): lat a clockwise rotation about x, then lon a clockwise
// rotation about y. Hence
//
//	ux =  cos(lat)·sin(lon)
//	uy =  sin(lat)
//	uz = -cos(lat)·cos(lon)
func (ll LatLon) UnitVector() spatial.UnitVector {
	lat := ll.Lat * radPerDeg
	lon := ll.Lon * radPerDeg
	cLat := math.Cos(lat)
	return spatial.UnitVector{Vector: r3.Vector{
		X: cLat * math.Sin(lon),
		Y: math.Sin(lat),
		Z: -cLat * math.Cos(lon),
	}}
}

// LatLonFromVector constructs the coordinate of a point on the sphere's
// surface: lat = asin(uy), lon = atan2(ux, -uz), normalized. The input is
// scaled to a unit vector first.
func LatLonFromVector(v r3.Vector) LatLon {
	u := spatial.Unit(v)
	ll := LatLon{
		Lat: degPerRad * math.Asin(u.Y),
		Lon: degPerRad * math.Atan2(u.X, -u.Z),
	}
	return ll.Normalize()
}

// DistRadians computes the length of the shortest arc connecting two points
// on the surface of a sphere, using the haversine formula for numerical
// stability at short and near-antipodal distances.
func DistRadians(a, b LatLon) s1.Angle {
	dLat := radPerDeg * (b.Lat - a.Lat)
	dLon := radPerDeg * (b.Lon - a.Lon)
	shLat := math.Sin(0.5 * dLat)
	shLon := math.Sin(0.5 * dLon)
	h := shLat*shLat + math.Cos(radPerDeg*a.Lat)*math.Cos(radPerDeg*b.Lat)*shLon*shLon
	return s1.Angle(2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h)))
}

// Point projects the coordinate onto the planar (lon, lat) plane: X=Lon, Y=Lat.
func (ll LatLon) Point() planar.Point {
	return planar.Point{X: ll.Lon, Y: ll.Lat}
}

// LatLonFromPoint lifts a planar (lon, lat) point back to a coordinate.
func LatLonFromPoint(p planar.Point) LatLon {
	return LatLon{Lat: p.Y, Lon: p.X}
}

// RotationMatrix expresses the coordinate as a rotation matrix which, when
// multiplied by the reference direction (0,0,-1), yields ll.UnitVector().
// It is the transpose (and therefore the inverse) of RotationMatrixInverse.
func (ll LatLon) RotationMatrix() spatial.Matrix {
	return ll.RotationMatrixInverse().Transpose()
}

// RotationMatrixInverse expresses the coordinate as a rotation matrix which,
// when multiplied by ll.UnitVector(), yields the reference direction (0,0,-1).
func (ll LatLon) RotationMatrixInverse() spatial.Matrix {
	rlon := ll.Lon * radPerDeg
	rlat := ll.Lat * radPerDeg

	cosa := math.Cos(rlon)
	sina := math.Sin(rlon)
	cosb := math.Cos(rlat)
	sinb := math.Sin(rlat)

	return spatial.Matrix{
		M00: cosa, M01: 0, M02: sina,
		M10: -sina * sinb, M11: cosb, M12: cosa * sinb,
		M20: -sina * cosb, M21: -sinb, M22: cosa * cosb,
	}
}

// NormalizeDegrees shifts the argument to its equivalent in (-180, 180].
func NormalizeDegrees(deg float64) float64 {
	if deg > -180 && deg <= 180 {
		return deg
	}
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}

// NormalizeLatDegrees shifts the argument to its equivalent latitude in
// [-90, 90], reflecting values that cross a pole.
func NormalizeLatDegrees(deg float64) float64 {
	deg = NormalizeDegrees(deg)
	if deg > 90 {
		return 180 - deg
	}
	if deg < -90 {
		return -180 - deg
	}
	return deg
}

// NormalizeDegreesPos shifts the argument to its equivalent in [0, 360).
func NormalizeDegreesPos(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// NormalizeRadians shifts the argument to its equivalent in (-pi, pi].
func NormalizeRadians(r float64) float64 {
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

// NormalizeRadiansPos shifts the argument to its equivalent in [0, 2*pi).
func NormalizeRadiansPos(r float64) float64 {
	r = math.Mod(r, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
