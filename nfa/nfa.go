package nfa

import (
	"fmt"
	"slices"
	"strings"

	"github.com/coregx/redfa/syntax"
)

// StateID uniquely identifies an NFA state.
// It is the index of the state in the NFA's arena.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// Epsilon labels transitions that consume no input.
const Epsilon = syntax.EpsilonRune

// Transition is a labeled edge to another state.
type Transition struct {
	Symbol rune    // alphabet symbol, or Epsilon
	Next   StateID // target state
}

// IsEpsilon returns true if the transition consumes no input
func (t Transition) IsEpsilon() bool {
	return t.Symbol == Epsilon
}

// State is a single NFA state with its outgoing transitions.
//
// Several transitions may share a symbol; that is where the nondeterminism
// comes from. Transitions are kept in insertion order without duplicates.
type State struct {
	id          StateID
	transitions []Transition
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Transitions returns the outgoing transitions in insertion order.
func (s *State) Transitions() []Transition {
	return s.transitions
}

// Next returns the successors of s on symbol.
func (s *State) Next(symbol rune) []StateID {
	var next []StateID
	for _, t := range s.transitions {
		if t.Symbol == symbol {
			next = append(next, t.Next)
		}
	}
	return next
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	if len(s.transitions) == 0 {
		return fmt.Sprintf("State(%d)", s.id)
	}
	parts := make([]string, len(s.transitions))
	for i, t := range s.transitions {
		parts[i] = fmt.Sprintf("%c->%d", t.Symbol, t.Next)
	}
	return fmt.Sprintf("State(%d, %s)", s.id, strings.Join(parts, " "))
}

// Edge is a transition together with its source state.
type Edge struct {
	From   StateID
	To     StateID
	Symbol rune
}

// NFA is a completed Thompson ε-NFA with a single start and a single final
// state. It is immutable once built.
type NFA struct {
	// states contains all NFA states indexed by StateID
	states []State

	start StateID
	final StateID
}

// Start returns the starting state ID of the NFA
func (n *NFA) Start() StateID {
	return n.start
}

// Final returns the accepting state ID of the NFA
func (n *NFA) Final() StateID {
	return n.final
}

// IsFinal returns true if id is the accepting state
func (n *NFA) IsFinal(id StateID) bool {
	return id == n.final
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// States returns the total number of states in the NFA
func (n *NFA) States() int {
	return len(n.states)
}

// Edges returns every transition ordered by source state, then insertion.
func (n *NFA) Edges() []Edge {
	var edges []Edge
	for i := range n.states {
		s := &n.states[i]
		for _, t := range s.transitions {
			edges = append(edges, Edge{From: s.id, To: t.Next, Symbol: t.Symbol})
		}
	}
	return edges
}

// Symbols returns the distinct non-epsilon transition labels, ascending.
func (n *NFA) Symbols() []rune {
	var symbols []rune
	for i := range n.states {
		for _, t := range n.states[i].transitions {
			if !t.IsEpsilon() && !slices.Contains(symbols, t.Symbol) {
				symbols = append(symbols, t.Symbol)
			}
		}
	}
	slices.Sort(symbols)
	return symbols
}

// Iter returns an iterator over all states in the NFA
func (n *NFA) Iter() *StateIter {
	return &StateIter{
		nfa: n,
		pos: 0,
	}
}

// StateIter is an iterator over NFA states
type StateIter struct {
	nfa *NFA
	pos int
}

// Next returns the next state in the iteration.
// Returns nil when iteration is complete.
func (it *StateIter) Next() *State {
	if it.pos >= len(it.nfa.states) {
		return nil
	}
	s := &it.nfa.states[it.pos]
	it.pos++
	return s
}

// HasNext returns true if there are more states to iterate
func (it *StateIter) HasNext() bool {
	return it.pos < len(it.nfa.states)
}

// String returns a human-readable representation of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, final: %d}", len(n.states), n.start, n.final)
}
