package nfa

import (
	"fmt"

	"github.com/coregx/redfa/internal/conv"
)

// Builder constructs NFAs incrementally using a low-level API.
//
// A Builder is the ID allocator for one compilation: IDs start at 0 and
// increase by one per AddState. It is not safe for concurrent use; create
// one per compilation instead.
type Builder struct {
	states []State
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
	}
}

// AddState allocates a state with no transitions and returns its ID
func (b *Builder) AddState() StateID {
	id := conv.ID[StateID](len(b.states))
	b.states = append(b.states, State{id: id})
	return id
}

// AddTransition adds an edge from -> to labeled symbol.
// Adding an edge that already exists is a no-op.
func (b *Builder) AddTransition(from StateID, symbol rune, to StateID) error {
	if !b.valid(from) {
		return &BuildError{
			Message: "source state out of bounds",
			StateID: from,
		}
	}
	if !b.valid(to) {
		return &BuildError{
			Message: fmt.Sprintf("target state %d out of bounds", to),
			StateID: from,
		}
	}

	s := &b.states[from]
	for _, t := range s.transitions {
		if t.Symbol == symbol && t.Next == to {
			return nil
		}
	}
	s.transitions = append(s.transitions, Transition{Symbol: symbol, Next: to})
	return nil
}

// AddEpsilon adds ε-edges from one state to each of the targets
func (b *Builder) AddEpsilon(from StateID, targets ...StateID) error {
	for _, to := range targets {
		if err := b.AddTransition(from, Epsilon, to); err != nil {
			return err
		}
	}
	return nil
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

func (b *Builder) valid(id StateID) bool {
	return id != InvalidState && int(id) < len(b.states)
}

// Validate checks that the NFA is well-formed:
// - Start and final states are valid
// - All transition targets point to valid states
func (b *Builder) Validate(start, final StateID) error {
	if !b.valid(start) {
		return &BuildError{Message: "start state out of bounds", StateID: start}
	}
	if !b.valid(final) {
		return &BuildError{Message: "final state out of bounds", StateID: final}
	}

	for i := range b.states {
		for j, t := range b.states[i].transitions {
			if !b.valid(t.Next) {
				return &BuildError{
					Message: fmt.Sprintf("invalid transition %d target %d", j, t.Next),
					StateID: b.states[i].id,
				}
			}
		}
	}

	return nil
}

// Build finalizes and returns the constructed NFA.
// The builder must not be used afterwards.
func (b *Builder) Build(start, final StateID) (*NFA, error) {
	if err := b.Validate(start, final); err != nil {
		return nil, err
	}

	nfa := &NFA{
		states: b.states,
		start:  start,
		final:  final,
	}
	b.states = nil
	return nfa, nil
}
