// Package spatial provides the 3D vector algebra used by the sphere package:
// unit vectors, half-space planes with signed distance, and 3x3 rotation
// matrices. Vectors build on golang/geo's r3.Vector.
//
// The coordinate system is left-handed: x rightward, y upward, z forward.
// The reference direction (0,0,-1) corresponds to latitude 0, longitude 0.
package spatial

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r3"
)

// Reference is the reference direction (0,0,-1): the unit vector of
// latitude 0, longitude 0.
func Reference() UnitVector {
	return UnitVector{r3.Vector{X: 0, Y: 0, Z: -1}}
}

// UnitVector is a direction on the surface of the unit sphere. Construct one
// with Unit; the embedded vector is expected to have norm 1.
type UnitVector struct {
	r3.Vector
}

// Unit scales the vector to norm 1. The zero vector maps to the reference
// direction (0,0,-1) rather than failing; non-finite components propagate.
func Unit(v r3.Vector) UnitVector {
	n := v.Norm()
	if n == 0 {
		return Reference()
	}
	return UnitVector{v.Mul(1 / n)}
}

// IsEmpty reports whether any component is non-finite.
func (u UnitVector) IsEmpty() bool {
	return !isFinite(u.X) || !isFinite(u.Y) || !isFinite(u.Z)
}

// EqualsTol reports whether all components match within the tolerance.
func (u UnitVector) EqualsTol(v UnitVector, tol float64) bool {
	return equalTol(u.X, v.X, tol) && equalTol(u.Y, v.Y, tol) && equalTol(u.Z, v.Z, tol)
}

// String renders the vector as three comma-separated values "x,y,z".
func (u UnitVector) String() string { return FormatVector(u.Vector) }

// FormatVector renders a vector as three comma-separated values "x,y,z".
func FormatVector(v r3.Vector) string {
	return fmt.Sprintf("%g,%g,%g", v.X, v.Y, v.Z)
}

// ParseVector parses the "x,y,z" form produced by FormatVector. A string
// with the wrong field count is an error; a field that is not a number
// yields a NaN component, not an error.
func ParseVector(s string) (r3.Vector, error) {
	fields := strings.Split(s, ",")
	if s == "" || len(fields) != 3 {
		return r3.Vector{}, fmt.Errorf("%w: want 3 comma-separated fields, got %q", ErrMalformed, s)
	}
	return r3.Vector{
		X: parseField(fields[0]),
		Y: parseField(fields[1]),
		Z: parseField(fields[2]),
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func equalTol(a, b, tol float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) < tol
}
