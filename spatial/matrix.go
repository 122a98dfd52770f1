package spatial

import (
	"math"

	"github.com/golang/geo/r3"
)

// Matrix is a 3x3 matrix. The element Mrc sits at row r, column c.
type Matrix struct {
	M00, M01, M02 float64
	M10, M11, M12 float64
	M20, M21, M22 float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{M00: 1, M11: 1, M22: 1}
}

// Transpose returns the matrix transpose. For a rotation matrix this is also
// the inverse.
func (m Matrix) Transpose() Matrix {
	return Matrix{
		M00: m.M00, M01: m.M10, M02: m.M20,
		M10: m.M01, M11: m.M11, M12: m.M21,
		M20: m.M02, M21: m.M12, M22: m.M22,
	}
}

// MulVector multiplies the matrix by a right-adjacent column vector.
func (m Matrix) MulVector(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m.M00*v.X + m.M01*v.Y + m.M02*v.Z,
		Y: m.M10*v.X + m.M11*v.Y + m.M12*v.Z,
		Z: m.M20*v.X + m.M21*v.Y + m.M22*v.Z,
	}
}

// EqualsTol reports whether all elements match within the tolerance.
func (m Matrix) EqualsTol(o Matrix, tol float64) bool {
	return equalTol(m.M00, o.M00, tol) && equalTol(m.M01, o.M01, tol) && equalTol(m.M02, o.M02, tol) &&
		equalTol(m.M10, o.M10, tol) && equalTol(m.M11, o.M11, tol) && equalTol(m.M12, o.M12, tol) &&
		equalTol(m.M20, o.M20, tol) && equalTol(m.M21, o.M21, tol) && equalTol(m.M22, o.M22, tol)
}

// RotationToOrigin computes the rotation matrix that carries the unit vector
// u onto the reference direction (0,0,-1):
//
//	Reference() = RotationToOrigin(u).MulVector(u)
func RotationToOrigin(u UnitVector) Matrix {
	lat := math.Asin(u.Y)
	lon := math.Atan2(u.X, -u.Z)

	cosa := math.Cos(lon)
	sina := math.Sin(lon)
	cosb := math.Cos(lat)
	sinb := math.Sin(lat)

	return Matrix{
		M00: cosa, M01: 0, M02: sina,
		M10: -sina * sinb, M11: cosb, M12: cosa * sinb,
		M20: -sina * cosb, M21: -sinb, M22: cosa * cosb,
	}
}
