package spatial

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Plane is a half-space in 3D cartesian space, defined by four coefficients
// (A, B.X, B.Y, B.Z) and a coordinate v as
//
//	0 = A + B·v
//
// subject to the constraint ‖B‖ = 1. The "inside" of the half-space is
// wherever SignedDistance is non-negative; that convention is fixed per plane
// when it is constructed.
type Plane struct {
	// A is the additive coefficient.
	A float64
	// B scales the coordinate.
	B r3.Vector
}

// SignedDistance returns the distance from the point to the plane, positive
// on the inside of the half-space and negative on the outside.
func (p Plane) SignedDistance(v r3.Vector) float64 {
	return p.A + p.B.Dot(v)
}

// Conjugate returns the plane through the same points with all coefficients
// negated, flipping the sign convention of SignedDistance.
func (p Plane) Conjugate() Plane {
	return Plane{A: -p.A, B: p.B.Mul(-1)}
}

// Norm returns the Euclidean norm of B. The plane is in normal form when
// this is 1.
func (p Plane) Norm() float64 { return p.B.Norm() }

// Normalized returns the plane scaled to normal form. A degenerate plane
// with a zero coefficient vector becomes the x-normal form.
func (p Plane) Normalized() Plane {
	norm := p.Norm()
	if norm == 0 {
		return Plane{A: p.A, B: r3.Vector{X: 1}}
	}
	if norm == 1 {
		return p
	}
	return Plane{A: p.A / norm, B: p.B.Mul(1 / norm)}
}

// PlaneFromPoints constructs the plane through points a, b, and c, oriented
// so that ref has non-negative signed distance. It fails when the points are
// collinear (or coincident) and therefore determine no plane.
func PlaneFromPoints(a, b, c, ref r3.Vector) (Plane, error) {
	normal := b.Sub(a).Cross(c.Sub(a))
	n := normal.Norm()
	if n == 0 || math.IsNaN(n) {
		return Plane{}, fmt.Errorf("%w: %v, %v, %v", ErrCollinearPoints, a, b, c)
	}
	normal = normal.Mul(1 / n)
	p := Plane{A: -normal.Dot(a), B: normal}
	if p.SignedDistance(ref) < 0 {
		p = p.Conjugate()
	}
	return p, nil
}
