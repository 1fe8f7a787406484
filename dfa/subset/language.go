package subset

import "slices"

// Language enumerates the words the DFA accepts in shortlex order (shorter
// first, then by alphabet order), returning at most limit of them.
//
// The boolean is true when the returned slice is the complete language:
// the language is finite and has no more than limit words. It is false when
// the language is infinite or larger than limit.
func (d *DFA) Language(limit int) ([]string, bool) {
	if len(d.states) == 0 {
		return nil, true
	}
	useful := d.coreachable()
	if !useful[StartState] {
		return nil, true
	}
	if limit <= 0 {
		return nil, false
	}

	type item struct {
		state StateID
		word  []rune
	}

	var words []string
	queue := []item{{state: StartState}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		s := d.states[it.state]
		if s.isFinal {
			if len(words) == limit {
				return words, false
			}
			words = append(words, string(it.word))
		}

		for i, next := range s.transitions {
			if next == InvalidState || !useful[next] {
				continue
			}
			word := append(slices.Clip(it.word), d.alphabet[i])
			queue = append(queue, item{state: next, word: word})
		}
	}

	// The queue only drains when no cycle runs through useful states,
	// so the language is finite here.
	return words, true
}

// IsFinite reports whether the DFA accepts finitely many words.
func (d *DFA) IsFinite() bool {
	if len(d.states) == 0 {
		return true
	}
	useful := d.coreachable()

	const (
		unvisited = iota
		onStack
		done
	)
	color := make([]uint8, len(d.states))

	var cyclic func(id StateID) bool
	cyclic = func(id StateID) bool {
		color[id] = onStack
		for _, next := range d.states[id].transitions {
			if next == InvalidState || !useful[next] {
				continue
			}
			switch color[next] {
			case onStack:
				return true
			case unvisited:
				if cyclic(next) {
					return true
				}
			}
		}
		color[id] = done
		return false
	}

	if !useful[StartState] {
		return true
	}
	return !cyclic(StartState)
}

// coreachable marks the states from which some final state is reachable.
func (d *DFA) coreachable() []bool {
	reverse := make([][]StateID, len(d.states))
	for _, s := range d.states {
		for _, next := range s.transitions {
			if next != InvalidState {
				reverse[next] = append(reverse[next], s.id)
			}
		}
	}

	useful := make([]bool, len(d.states))
	var stack []StateID
	for _, s := range d.states {
		if s.isFinal {
			useful[s.id] = true
			stack = append(stack, s.id)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, prev := range reverse[id] {
			if !useful[prev] {
				useful[prev] = true
				stack = append(stack, prev)
			}
		}
	}
	return useful
}
