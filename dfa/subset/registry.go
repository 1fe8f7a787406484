package subset

import (
	"fmt"

	"github.com/coregx/redfa/internal/conv"
	"github.com/coregx/redfa/nfa"
)

// registry maps NFA state sets to DFA states during one construction.
//
// It is both the dedup table and the ID allocator: IDs are handed out in
// insertion order starting at StartState. A registry belongs to a single
// Build call and is not shared, so it needs no locking.
type registry struct {
	// index maps StateKey → DFA state ID
	index map[StateKey]StateID

	// states holds every DFA state, indexed by ID
	states []*State

	// maxStates is the capacity limit
	maxStates uint32

	// symbols is the alphabet size used to size transition tables
	symbols int
}

func newRegistry(maxStates uint32, symbols int) *registry {
	return &registry{
		index:     make(map[StateKey]StateID),
		maxStates: maxStates,
		symbols:   symbols,
	}
}

// get retrieves a state ID by its key.
func (r *registry) get(key StateKey) (StateID, bool) {
	id, ok := r.index[key]
	return id, ok
}

// getOrInsert returns the ID of the state for nfaStates, creating it if it
// does not exist yet. The boolean is true when the state was just created.
//
// Returns ErrStateLimitExceeded if a new state would exceed maxStates.
func (r *registry) getOrInsert(nfaStates []nfa.StateID, isFinal bool) (StateID, bool, error) {
	key := ComputeStateKey(nfaStates)
	if id, ok := r.get(key); ok {
		return id, false, nil
	}

	if conv.Len(len(r.states)) >= r.maxStates {
		return InvalidState, false, &DFAError{
			Kind:    StateLimitExceeded,
			Message: ErrStateLimitExceeded.Message,
			Cause:   fmt.Errorf("more than %d states needed", r.maxStates),
		}
	}

	id := conv.ID[StateID](len(r.states))
	r.states = append(r.states, newState(id, nfaStates, isFinal, r.symbols))
	r.index[key] = id
	return id, true, nil
}

// state returns the state with the given ID.
func (r *registry) state(id StateID) *State {
	return r.states[id]
}
