// Package subset converts Thompson ε-NFAs into DFAs by subset construction.
//
// Unlike a lazy DFA, which determinizes on demand while searching, Build
// materializes every reachable state up front and records each step, so the
// conversion itself can be inspected and explained. Construction is bounded
// by Config.MaxStates.
//
// The resulting DFA is partial: there is no explicit dead state, and a
// missing transition means the input is rejected.
package subset

import (
	"fmt"
	"slices"
)

// DFA is a deterministic automaton produced by Build. It is immutable and
// safe for concurrent use.
type DFA struct {
	// states contains all DFA states indexed by StateID
	states []*State

	// alphabet is sorted ascending; transition slots follow this order
	alphabet []rune

	// steps is the construction trace
	steps []Step
}

// Edge is a DFA transition.
type Edge struct {
	From   StateID
	To     StateID
	Symbol rune
}

// Start returns the start state ID, which is always StartState.
func (d *DFA) Start() StateID {
	return StartState
}

// States returns the total number of states in the DFA
func (d *DFA) States() int {
	return len(d.states)
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (d *DFA) State(id StateID) *State {
	if int(id) >= len(d.states) {
		return nil
	}
	return d.states[id]
}

// Alphabet returns the input symbols, ascending.
func (d *DFA) Alphabet() []rune {
	return d.alphabet
}

// Steps returns the construction trace in processing order.
func (d *DFA) Steps() []Step {
	return d.steps
}

// IsFinal returns true if id is an accepting state
func (d *DFA) IsFinal(id StateID) bool {
	s := d.State(id)
	return s != nil && s.isFinal
}

// FinalStates returns the accepting state IDs, ascending.
func (d *DFA) FinalStates() []StateID {
	var finals []StateID
	for _, s := range d.states {
		if s.isFinal {
			finals = append(finals, s.id)
		}
	}
	return finals
}

// Next returns the target of id on symbol, or InvalidState when there is no
// such transition (including symbols outside the alphabet).
func (d *DFA) Next(id StateID, symbol rune) StateID {
	s := d.State(id)
	if s == nil {
		return InvalidState
	}
	i, found := slices.BinarySearch(d.alphabet, symbol)
	if !found {
		return InvalidState
	}
	return s.transitions[i]
}

// Accepts reports whether the DFA accepts input.
func (d *DFA) Accepts(input string) bool {
	current := StartState
	for _, r := range input {
		current = d.Next(current, r)
		if current == InvalidState {
			return false
		}
	}
	return d.IsFinal(current)
}

// Edges returns every transition ordered by source state, then symbol.
func (d *DFA) Edges() []Edge {
	var edges []Edge
	for _, s := range d.states {
		for i, next := range s.transitions {
			if next != InvalidState {
				edges = append(edges, Edge{From: s.id, To: next, Symbol: d.alphabet[i]})
			}
		}
	}
	return edges
}

// String returns a human-readable representation of the DFA
func (d *DFA) String() string {
	return fmt.Sprintf("DFA{states: %d, finals: %v, alphabet: %q}",
		len(d.states), d.FinalStates(), string(d.alphabet))
}
