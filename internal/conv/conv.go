// Package conv provides checked integer conversions for automaton IDs.
//
// State IDs are 32-bit. Arena indexes and counters are ints. These helpers
// narrow with a bounds check and panic on overflow, since an automaton with
// more than 2^32 states means an internal limit was not enforced.
package conv

import "math"

// ID converts an arena index to a 32-bit ID type.
// Panics if n < 0 or n > math.MaxUint32.
func ID[T ~uint32](n int) T {
	if n < 0 || uint64(n) > math.MaxUint32 {
		panic("integer overflow: index out of uint32 range")
	}
	return T(n)
}

// Len converts a length to uint32 for comparison with 32-bit limits.
// Lengths above math.MaxUint32 saturate.
func Len(n int) uint32 {
	if n < 0 {
		panic("integer overflow: negative length")
	}
	if uint64(n) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(n)
}
