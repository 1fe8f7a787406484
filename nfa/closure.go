package nfa

import (
	"slices"

	"github.com/coregx/redfa/internal/sparse"
)

// EpsilonClosure computes the epsilon-closure of a set of NFA states.
//
// The closure is the input set plus every state reachable from it through
// ε-edges only. ε-cycles (from nested stars) terminate because a state is
// only pushed the first time it enters the closure. Invalid IDs are ignored.
//
// The result is sorted ascending with no duplicates.
func (n *NFA) EpsilonClosure(states []StateID) []StateID {
	closure := sparse.New[StateID](len(n.states))
	stack := make([]StateID, 0, len(states)*2)

	for _, sid := range states {
		if n.State(sid) != nil && closure.Insert(sid) {
			stack = append(stack, sid)
		}
	}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, t := range n.states[current].transitions {
			if t.IsEpsilon() && closure.Insert(t.Next) {
				stack = append(stack, t.Next)
			}
		}
	}

	return closure.Sorted()
}

// Move returns the states reachable from any state in states by exactly one
// transition labeled symbol. Moving on Epsilon returns nil: ε-edges are only
// followed by EpsilonClosure.
//
// The result is sorted ascending with no duplicates.
func (n *NFA) Move(states []StateID, symbol rune) []StateID {
	if symbol == Epsilon {
		return nil
	}

	targets := sparse.New[StateID](len(n.states))
	for _, sid := range states {
		s := n.State(sid)
		if s == nil {
			continue
		}
		for _, t := range s.transitions {
			if t.Symbol == symbol {
				targets.Insert(t.Next)
			}
		}
	}

	if targets.IsEmpty() {
		return nil
	}
	return targets.Sorted()
}

// Accepts reports whether the NFA accepts input, by simulating all active
// states at once. It is the reference the DFA is checked against.
func (n *NFA) Accepts(input string) bool {
	current := n.EpsilonClosure([]StateID{n.start})
	for _, r := range input {
		current = n.EpsilonClosure(n.Move(current, r))
		if len(current) == 0 {
			return false
		}
	}
	_, found := slices.BinarySearch(current, n.final)
	return found
}
