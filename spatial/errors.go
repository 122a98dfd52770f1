package spatial

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrMalformed reports a text form with the wrong structure (field
	// count). Individual fields that fail to parse become NaN instead.
	ErrMalformed = errors.New("malformed text form")
	// ErrCollinearPoints reports that three points do not determine a plane.
	ErrCollinearPoints = errors.New("collinear points determine no plane")
)

// parseField parses one numeric token, yielding NaN on failure.
func parseField(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
