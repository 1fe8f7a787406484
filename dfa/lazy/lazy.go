// Package lazy implements a Lazy DFA over a Thompson ε-NFA.
//
// The Lazy DFA constructs DFA states on demand during matching, rather than
// building the complete DFA upfront the way package subset does. Only the
// states an input actually visits are built, so patterns whose full DFA
// is exponential in the pattern size still match in linear time.
//
// States are kept in a bounded Cache. When the cache fills it is cleared
// and rebuilt; after Config.MaxCacheClears clears in one call the DFA gives
// up and simulates the ε-NFA directly.
//
// Example usage:
//
//	n, err := nfa.CompilePattern("(a|b)*a(a|b)(a|b)(a|b)")
//	if err != nil {
//	    return err
//	}
//	d, err := lazy.New(n, lazy.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	d.Accepts("bbabab") // true
package lazy

import (
	"github.com/coregx/redfa/nfa"
)

// DFA is a Lazy DFA engine that performs on-demand determinization.
//
// Thread safety: Not thread-safe. The cache is mutated during matching, so
// each goroutine should use its own DFA. The NFA can be shared.
type DFA struct {
	nfa    *nfa.NFA
	cache  *Cache
	config Config

	// fallbacks counts Accepts calls answered by NFA simulation.
	fallbacks int
}

// New creates a Lazy DFA for n.
func New(n *nfa.NFA, config Config) (*DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &DFA{
		nfa:    n,
		cache:  NewCache(config.MaxStates),
		config: config,
	}, nil
}

// NFA returns the underlying ε-NFA.
func (d *DFA) NFA() *nfa.NFA {
	return d.nfa
}

// Cache returns the state cache, for statistics.
func (d *DFA) Cache() *Cache {
	return d.cache
}

// Fallbacks returns how many Accepts calls fell back to NFA simulation.
func (d *DFA) Fallbacks() int {
	return d.fallbacks
}

// Accepts reports whether the whole input is in the language.
func (d *DFA) Accepts(input string) bool {
	d.cache.ResetClearCount()

	cur, err := d.start()
	if err != nil {
		return d.fallback(input)
	}

	for _, r := range input {
		for {
			next, err := d.next(cur, r)
			if err == nil {
				cur = next
				break
			}

			// Cache full: keep the current set, clear, and retry.
			if d.cache.ClearCount() >= d.config.MaxCacheClears {
				return d.fallback(input)
			}
			set := d.cache.State(cur).nfaStates
			d.cache.ClearKeepMemory()
			if cur, _, err = d.cache.GetOrInsert(set, d.nfa.Final()); err != nil {
				return d.fallback(input)
			}
		}
		if cur == DeadState {
			return false
		}
	}
	return d.cache.State(cur).isMatch
}

// start returns the state for the ε-closure of the NFA start state.
func (d *DFA) start() (StateID, error) {
	set := d.nfa.EpsilonClosure([]nfa.StateID{d.nfa.Start()})
	id, _, err := d.cache.GetOrInsert(set, d.nfa.Final())
	if err != nil {
		d.cache.ClearKeepMemory()
		id, _, err = d.cache.GetOrInsert(set, d.nfa.Final())
	}
	return id, err
}

// next returns the transition from cur on r, determinizing it if needed.
func (d *DFA) next(cur StateID, r rune) (StateID, error) {
	s := d.cache.State(cur)
	if to, ok := s.next[r]; ok {
		d.cache.hits++
		return to, nil
	}

	set := d.nfa.EpsilonClosure(d.nfa.Move(s.nfaStates, r))
	if len(set) == 0 {
		s.next[r] = DeadState
		return DeadState, nil
	}

	to, _, err := d.cache.GetOrInsert(set, d.nfa.Final())
	if err != nil {
		return DeadState, err
	}
	s.next[r] = to
	return to, nil
}

func (d *DFA) fallback(input string) bool {
	d.fallbacks++
	return d.nfa.Accepts(input)
}
