package subset

import (
	"slices"

	"github.com/coregx/redfa/nfa"
)

// Step records how one DFA state was processed during construction.
// Steps appear in processing order, which is also ascending State order.
type Step struct {
	// State is the DFA state being processed.
	State StateID

	// NFAStates is the NFA state set State stands for.
	NFAStates []nfa.StateID

	// Symbols holds one entry per alphabet symbol, in alphabet order.
	Symbols []SymbolStep
}

// SymbolStep records the computation for one (state, symbol) pair.
type SymbolStep struct {
	Symbol rune

	// Move is move(NFAStates, Symbol). Empty means there is no transition.
	Move []nfa.StateID

	// Closure is ε-closure(Move). Empty when Move is empty.
	Closure []nfa.StateID

	// Target is the DFA state for Closure, or InvalidState when Move is empty.
	Target StateID

	// Created is true when Target was discovered by this step.
	Created bool
}

// HasTransition reports whether the step produced a transition.
func (s SymbolStep) HasTransition() bool {
	return s.Target != InvalidState
}

// Build determinizes an NFA by subset construction.
//
// The start state is ε-closure({start}) and gets ID 0. Unprocessed states are
// taken from a FIFO worklist; for each symbol of the alphabet in ascending
// order the target set is ε-closure(move(S, symbol)). An empty move produces
// no transition. A set seen for the first time gets the next ID and joins the
// worklist. A DFA state is final iff its set contains the NFA's final state.
//
// alphabet is deduplicated and sorted, and ε is dropped from it. A nil
// alphabet means the NFA's own symbols.
//
// Returns ErrStateLimitExceeded if more than cfg.MaxStates states are needed,
// and ErrInvalidConfig (by Kind) for an invalid cfg.
func Build(n *nfa.NFA, alphabet []rune, cfg Config) (*DFA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	symbols := normalizeAlphabet(n, alphabet)
	reg := newRegistry(cfg.MaxStates, len(symbols))
	final := n.Final()
	isFinal := func(set []nfa.StateID) bool {
		_, found := slices.BinarySearch(set, final)
		return found
	}

	startSet := n.EpsilonClosure([]nfa.StateID{n.Start()})
	if _, _, err := reg.getOrInsert(startSet, isFinal(startSet)); err != nil {
		return nil, err
	}

	var steps []Step
	worklist := []StateID{StartState}
	for len(worklist) > 0 {
		current := reg.state(worklist[0])
		worklist = worklist[1:]

		step := Step{
			State:     current.id,
			NFAStates: current.nfaStates,
			Symbols:   make([]SymbolStep, 0, len(symbols)),
		}

		for i, symbol := range symbols {
			moved := n.Move(current.nfaStates, symbol)
			if len(moved) == 0 {
				step.Symbols = append(step.Symbols, SymbolStep{Symbol: symbol, Target: InvalidState})
				continue
			}

			closure := n.EpsilonClosure(moved)
			target, created, err := reg.getOrInsert(closure, isFinal(closure))
			if err != nil {
				return nil, err
			}
			if created {
				worklist = append(worklist, target)
			}
			current.transitions[i] = target

			step.Symbols = append(step.Symbols, SymbolStep{
				Symbol:  symbol,
				Move:    moved,
				Closure: closure,
				Target:  target,
				Created: created,
			})
		}

		steps = append(steps, step)
	}

	return &DFA{
		states:   reg.states,
		alphabet: symbols,
		steps:    steps,
	}, nil
}

func normalizeAlphabet(n *nfa.NFA, alphabet []rune) []rune {
	if alphabet == nil {
		return n.Symbols()
	}
	symbols := slices.DeleteFunc(slices.Clone(alphabet), func(r rune) bool {
		return r == nfa.Epsilon
	})
	slices.Sort(symbols)
	return slices.Compact(symbols)
}
