package sphere

import (
	"strconv"
	"strings"
)

// Address is the hierarchical address of a subtriangle: the ordered path of
// child selectors from the root. The first element selects an octant (0-7,
// 3 bits); each subsequent element selects a quadrant within its parent
// (0-3, 2 bits). The address length equals the node's depth.
type Address []byte

// Packed-form capacity: a 32-bit word holds 5 bits of length, 3 bits for the
// octant, and 2 bits per further level; likewise for 64 bits.
const (
	MaxPack32Len = 13
	MaxPack64Len = 29
)

// Pack32 packs the address into a 32-bit word: the length in the top 5 bits,
// the octant selector in the next 3, then 2 bits per level, most significant
// first. At depth 13 on an Earth-sized sphere a packed address identifies a
// triangle of roughly 3.8 square meters.
//
// Addresses longer than 13 elements are truncated to 13; this is documented
// lossy behavior, not an error. An empty address packs to 0.
func (a Address) Pack32() uint32 {
	n := len(a)
	if n > MaxPack32Len {
		n = MaxPack32Len
	}
	if n == 0 {
		return 0
	}
	out := uint32(n)<<27 | uint32(a[0]&7)<<24
	shift := 22
	for i := 1; i < n; i++ {
		out |= uint32(a[i]&3) << shift
		shift -= 2
	}
	return out
}

// Unpack32 is the exact inverse of Pack32 for any address it can represent.
func Unpack32(packed uint32) Address {
	n := int(packed >> 27)
	if n > MaxPack32Len {
		n = MaxPack32Len
	}
	out := make(Address, n)
	if n == 0 {
		return out
	}
	out[0] = byte(packed >> 24 & 7)
	shift := 22
	for i := 1; i < n; i++ {
		out[i] = byte(packed >> shift & 3)
		shift -= 2
	}
	return out
}

// Pack64 packs the address into a 64-bit word with the same layout as
// Pack32: 5 bits of length, 3 bits of octant, 2 bits per further level, for
// up to 29 levels (around 1e-9 square meters on an Earth-sized sphere).
// Longer addresses are truncated to 29 elements.
func (a Address) Pack64() uint64 {
	n := len(a)
	if n > MaxPack64Len {
		n = MaxPack64Len
	}
	if n == 0 {
		return 0
	}
	out := uint64(n)<<59 | uint64(a[0]&7)<<56
	shift := 54
	for i := 1; i < n; i++ {
		out |= uint64(a[i]&3) << shift
		shift -= 2
	}
	return out
}

// Unpack64 is the exact inverse of Pack64 for any address it can represent.
func Unpack64(packed uint64) Address {
	n := int(packed >> 59)
	if n > MaxPack64Len {
		n = MaxPack64Len
	}
	out := make(Address, n)
	if n == 0 {
		return out
	}
	out[0] = byte(packed >> 56 & 7)
	shift := 54
	for i := 1; i < n; i++ {
		out[i] = byte(packed >> shift & 3)
		shift -= 2
	}
	return out
}

// Equal reports whether two addresses have the same length and selectors.
func (a Address) Equal(b Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders the address as dot-separated selectors, e.g. "5.2.1.3".
func (a Address) String() string {
	if len(a) == 0 {
		return "root"
	}
	var sb strings.Builder
	for i, e := range a {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(int(e)))
	}
	return sb.String()
}
