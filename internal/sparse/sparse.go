// Package sparse provides a sparse set of small integer IDs.
//
// A sparse set supports O(1) insertion, membership testing and clearing while
// keeping a dense list of members in insertion order. The automata packages
// use it for state sets whose universe (the number of states) is known up
// front: ε-closure work lists and NFA simulation.
package sparse

import "slices"

// Set is a set of IDs in [0, capacity).
//
// The sparse array maps a value to its index in dense; an entry is only
// trusted when dense points back at the same value, so neither array needs
// to be cleared between uses.
type Set[T ~uint32] struct {
	sparse []uint32 // value -> index in dense
	dense  []T      // members in insertion order
}

// New creates an empty set able to hold values below capacity.
func New[T ~uint32](capacity int) *Set[T] {
	return &Set[T]{
		sparse: make([]uint32, capacity),
		dense:  make([]T, 0, capacity),
	}
}

// Insert adds v to the set and reports whether it was newly added.
// Panics if v >= capacity.
func (s *Set[T]) Insert(v T) bool {
	if s.Contains(v) {
		return false
	}
	//nolint:gosec // G115: len(dense) < capacity, which fits in uint32
	s.sparse[v] = uint32(len(s.dense))
	s.dense = append(s.dense, v)
	return true
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	if uint64(v) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[v]
	return int(idx) < len(s.dense) && s.dense[idx] == v
}

// Clear removes all members in O(1).
func (s *Set[T]) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no members.
func (s *Set[T]) IsEmpty() bool {
	return len(s.dense) == 0
}

// Capacity returns the size of the value universe.
func (s *Set[T]) Capacity() int {
	return len(s.sparse)
}

// Values returns the members in insertion order.
// The returned slice is valid until the next mutation.
func (s *Set[T]) Values() []T {
	return s.dense
}

// Sorted returns a new ascending slice of the members.
func (s *Set[T]) Sorted() []T {
	out := slices.Clone(s.dense)
	slices.Sort(out)
	return out
}
