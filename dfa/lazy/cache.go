package lazy

import (
	"errors"
	"slices"

	"github.com/coregx/redfa/dfa/subset"
	"github.com/coregx/redfa/internal/conv"
	"github.com/coregx/redfa/nfa"
)

// ErrCacheFull indicates that the state cache reached Config.MaxStates.
// Accepts handles it by clearing the cache and, past MaxCacheClears, by
// falling back to NFA simulation.
var ErrCacheFull = errors.New("lazy DFA state cache is full")

// StateID identifies a cached DFA state. IDs are only meaningful until the
// next cache clear.
type StateID uint32

// DeadState marks a transition on which no NFA state is reachable.
const DeadState StateID = 0xFFFFFFFF

// State is a cached DFA state: an ε-closed NFA state set plus the
// transitions computed for it so far.
type State struct {
	nfaStates []nfa.StateID
	isMatch   bool

	// next holds computed transitions. A missing rune has not been computed
	// yet; DeadState means the move is empty.
	next map[rune]StateID
}

// NFAStates returns the sorted NFA state set.
func (s *State) NFAStates() []nfa.StateID {
	return s.nfaStates
}

// IsMatch reports whether the set contains the NFA final state.
func (s *State) IsMatch() bool {
	return s.isMatch
}

// Cache stores DFA states with bounded memory.
//
// States are never evicted individually. When the cache is full it is
// cleared entirely and the search continues, rebuilding states on demand.
// Not safe for concurrent use.
type Cache struct {
	index     map[subset.StateKey]StateID
	states    []*State
	maxStates uint32

	// clearCount counts clears during the current Accepts call.
	clearCount int

	hits   uint64
	misses uint64
}

// NewCache creates a new state cache with the given maximum capacity
func NewCache(maxStates uint32) *Cache {
	return &Cache{
		index:     make(map[subset.StateKey]StateID),
		maxStates: maxStates,
	}
}

// State returns the state with the given ID, or nil.
func (c *Cache) State(id StateID) *State {
	if int(id) >= len(c.states) {
		return nil
	}
	return c.states[id]
}

// GetOrInsert returns the ID of the state for the sorted set nfaStates,
// inserting it if needed. The bool reports a cache hit.
// Returns ErrCacheFull if a new state would exceed the capacity.
func (c *Cache) GetOrInsert(nfaStates []nfa.StateID, final nfa.StateID) (StateID, bool, error) {
	key := subset.ComputeStateKey(nfaStates)
	if id, ok := c.index[key]; ok {
		c.hits++
		return id, true, nil
	}

	c.misses++
	if c.IsFull() {
		return DeadState, false, ErrCacheFull
	}

	_, isMatch := slices.BinarySearch(nfaStates, final)
	id := conv.ID[StateID](len(c.states))
	c.states = append(c.states, &State{
		nfaStates: nfaStates,
		isMatch:   isMatch,
		next:      make(map[rune]StateID),
	})
	c.index[key] = id
	return id, false, nil
}

// Size returns the current number of states in the cache
func (c *Cache) Size() int {
	return len(c.states)
}

// IsFull returns true if the cache has reached its maximum capacity
func (c *Cache) IsFull() bool {
	return conv.Len(len(c.states)) >= c.maxStates
}

// Stats returns cache hit/miss statistics.
// Hit rate = hits / (hits + misses).
func (c *Cache) Stats() (hits, misses uint64, hitRate float64) {
	hits = c.hits
	misses = c.misses
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return hits, misses, hitRate
}

// ClearKeepMemory drops every state but keeps the allocated memory, and
// increments the clear counter. All previously returned IDs are stale.
func (c *Cache) ClearKeepMemory() {
	clear(c.index)
	clear(c.states)
	c.states = c.states[:0]
	c.clearCount++
}

// ClearCount returns how many times the cache has been cleared since the
// last ResetClearCount.
func (c *Cache) ClearCount() int {
	return c.clearCount
}

// ResetClearCount resets the clear counter to zero.
// Called at the start of each Accepts to give it a fresh budget.
func (c *Cache) ResetClearCount() {
	c.clearCount = 0
}
