package subset

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/coregx/redfa/nfa"
)

// StateID uniquely identifies a DFA state.
// States are numbered in discovery order, so the start state is always 0.
type StateID uint32

// Special state constants
const (
	// InvalidState marks the absence of a state, e.g. a missing transition.
	InvalidState StateID = 0xFFFFFFFF

	// StartState is always state ID 0 (the initial state)
	StartState StateID = 0
)

// State represents a DFA state with its transitions.
//
// A DFA state is deterministic: for each alphabet symbol there is at most
// one target state. Transitions are stored densely, one slot per symbol of
// the owning DFA's alphabet, with InvalidState meaning "no transition".
type State struct {
	// id uniquely identifies this state within its DFA
	id StateID

	// transitions[i] is the target on alphabet[i]
	transitions []StateID

	// isFinal indicates if this is an accepting state
	isFinal bool

	// nfaStates is the sorted set of NFA states this DFA state represents.
	nfaStates []nfa.StateID
}

func newState(id StateID, nfaStates []nfa.StateID, isFinal bool, symbols int) *State {
	transitions := make([]StateID, symbols)
	for i := range transitions {
		transitions[i] = InvalidState
	}
	return &State{
		id:          id,
		transitions: transitions,
		isFinal:     isFinal,
		nfaStates:   slices.Clone(nfaStates),
	}
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// IsFinal returns true if this is an accepting state
func (s *State) IsFinal() bool {
	return s.isFinal
}

// NFAStates returns the NFA states represented by this DFA state, ascending.
func (s *State) NFAStates() []nfa.StateID {
	return s.nfaStates
}

// TransitionCount returns the number of symbols with a transition
func (s *State) TransitionCount() int {
	count := 0
	for _, next := range s.transitions {
		if next != InvalidState {
			count++
		}
	}
	return count
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	return fmt.Sprintf("DFAState(id=%d, isFinal=%v, transitions=%d, nfaStates=%v)",
		s.id, s.isFinal, s.TransitionCount(), s.nfaStates)
}

// StateKey uniquely identifies a DFA state by its NFA state set.
//
// The key is the exact little-endian encoding of the sorted IDs, so two keys
// are equal if and only if the sets are equal. There are no hash collisions
// to resolve.
type StateKey string

// ComputeStateKey computes the key for a set of NFA states.
// The same set yields the same key regardless of element order.
func ComputeStateKey(nfaStates []nfa.StateID) StateKey {
	if len(nfaStates) == 0 {
		return ""
	}

	sorted := nfaStates
	if !slices.IsSorted(sorted) {
		sorted = slices.Clone(nfaStates)
		slices.Sort(sorted)
	}

	buf := make([]byte, 0, 4*len(sorted))
	for i, sid := range sorted {
		if i > 0 && sid == sorted[i-1] {
			continue
		}
		buf = binary.LittleEndian.AppendUint32(buf, uint32(sid))
	}
	return StateKey(buf)
}
