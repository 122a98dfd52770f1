package sphere

import (
	"math"

	"github.com/golang/geo/s1"
)

// Cap is a spherical cap: a circular region on the surface of the sphere,
// used as a cheap bounding volume. Center is the tip of the cap; DomeRadius
// is the angular radius of the dome measured along the surface.
//
// A cap grows monotonically through ExpandToInclude and never shrinks. The
// center is fixed by the first included point and never moves afterwards:
// this is a bounding heuristic, not a minimum-enclosing-cap computation.
//
// Surface distances follow from the angular radius:
//
//	km = cap.DomeRadius.Radians() * EarthRadiusKm
//	mi = cap.DomeRadius.Radians() * EarthRadiusMi
type Cap struct {
	Center     LatLon
	DomeRadius s1.Angle
}

// NewCap returns an unset cap: empty center, undefined radius.
func NewCap() Cap {
	return Cap{Center: EmptyLatLon(), DomeRadius: s1.Angle(math.NaN())}
}

// IsSet reports whether the cap has a usable center and radius.
func (c Cap) IsSet() bool {
	return !c.Center.IsEmpty() && !math.IsNaN(c.DomeRadius.Radians())
}

// ExpandToInclude grows the cap so it covers p. The first included point
// becomes the center with radius zero (or the preset radius when one was
// already valid and non-negative); subsequent points only ever grow the
// radius. Empty coordinates are ignored.
func (c *Cap) ExpandToInclude(p LatLon) {
	if p.IsEmpty() {
		return
	}
	if c.Center.IsEmpty() {
		c.Center = p
		if math.IsNaN(c.DomeRadius.Radians()) || c.DomeRadius < 0 {
			c.DomeRadius = 0
		}
		return
	}
	if d := DistRadians(c.Center, p); math.IsNaN(c.DomeRadius.Radians()) || d > c.DomeRadius {
		c.DomeRadius = d
	}
}

// SignDistRadians returns the signed angular distance between x and the cap:
// negative when x is strictly inside, zero on the boundary, positive outside.
// It is NaN when the cap is unset or x is empty.
func (c Cap) SignDistRadians(x LatLon) s1.Angle {
	if x.IsEmpty() || !c.IsSet() {
		return s1.Angle(math.NaN())
	}
	return DistRadians(x, c.Center) - c.DomeRadius
}
