package planar

import "math"

// Line is the equation of a line in 2D space, defined by three coefficients
// (A, BX, BY) as
//
//	0 = A + BX*x + BY*y
//
// subject to the constraint 1 = BX*BX + BY*BY.
type Line struct {
	// A is the additive coefficient.
	A float64
	// BX scales the x-ordinate.
	BX float64
	// BY scales the y-ordinate.
	BY float64
}

// LineFromPoints constructs the line that intersects both points. It reports
// false for empty or coincident points.
func LineFromPoints(a, b Point) (Line, bool) {
	if a.IsEmpty() || b.IsEmpty() || a == b {
		return Line{}, false
	}
	dx := b.X - a.X
	dy := b.Y - a.Y
	norm := math.Sqrt(dx*dx + dy*dy)
	l := Line{BX: dy / norm, BY: -dx / norm}
	l.A = -l.SignedDistance(a)
	return l, true
}

// SignedDistance returns the distance from the point to the line, positive to
// one side and negative to the other.
func (l Line) SignedDistance(p Point) float64 {
	return l.BX*p.X + l.BY*p.Y + l.A
}

// Conjugate returns the line through the same points with all coefficients
// negated, flipping the sign convention of SignedDistance.
func (l Line) Conjugate() Line {
	return Line{A: -l.A, BX: -l.BX, BY: -l.BY}
}

// Norm returns the Euclidean norm of (BX, BY). The line is in normal form
// when this is 1.
func (l Line) Norm() float64 {
	return math.Sqrt(l.BX*l.BX + l.BY*l.BY)
}

// Normalized returns the line scaled to normal form. A degenerate line with a
// zero coefficient vector becomes the x-axis form (BX=1, BY=0).
func (l Line) Normalized() Line {
	norm := l.Norm()
	if norm == 0 {
		return Line{A: l.A, BX: 1, BY: 0}
	}
	if norm == 1 {
		return l
	}
	return Line{A: l.A / norm, BX: l.BX / norm, BY: l.BY / norm}
}

// SegmentLimits returns two lines perpendicular to l, the first through a and
// the second through b, oriented so that points between them (the segment
// a-b) have non-negative signed distance to both.
func (l Line) SegmentLimits(a, b Point) [2]Line {
	var out [2]Line
	out[0] = Line{BX: l.BY, BY: -l.BX}
	out[1] = Line{BX: l.BY, BY: -l.BX}
	out[0].A = -out[0].SignedDistance(a)
	out[1].A = -out[1].SignedDistance(b)
	if out[0].SignedDistance(b) < 0 {
		out[0] = out[0].Conjugate()
	}
	if out[1].SignedDistance(a) < 0 {
		out[1] = out[1].Conjugate()
	}
	return out
}
