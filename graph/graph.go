// Package graph turns automata into plain node/edge data for rendering.
//
// The types here hold copies of everything they need and no references to
// the automata, so they can be serialized to JSON or YAML, or drawn with
// WriteDOT, after the automata are gone.
package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coregx/redfa/dfa/subset"
	"github.com/coregx/redfa/nfa"
)

// Node is a state.
type Node struct {
	ID    uint32 `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`

	// NFAStates is set for DFA nodes only.
	NFAStates []uint32 `json:"nfa_states,omitempty" yaml:"nfa_states,omitempty"`
}

// Edge is a labeled transition. Label is a single symbol or "ε".
type Edge struct {
	From  uint32 `json:"from" yaml:"from"`
	To    uint32 `json:"to" yaml:"to"`
	Label string `json:"label" yaml:"label"`
}

// NFA is the drawable form of an ε-NFA.
type NFA struct {
	Nodes      []Node `json:"nodes" yaml:"nodes"`
	Edges      []Edge `json:"edges" yaml:"edges"`
	StartState uint32 `json:"start_state" yaml:"start_state"`
	FinalState uint32 `json:"final_state" yaml:"final_state"`
}

// DFA is the drawable form of a DFA together with its construction trace.
type DFA struct {
	Nodes           []Node   `json:"nodes" yaml:"nodes"`
	Edges           []Edge   `json:"edges" yaml:"edges"`
	StartState      uint32   `json:"start_state" yaml:"start_state"`
	FinalStates     []uint32 `json:"final_states" yaml:"final_states"`
	ConversionSteps []Step   `json:"conversion_steps" yaml:"conversion_steps"`
}

// Step explains how one DFA state was processed. Title and Transitions are
// prose; State, NFAStates and Symbols carry the same information as data.
type Step struct {
	Title       string       `json:"title" yaml:"title"`
	Transitions []string     `json:"transitions" yaml:"transitions"`
	State       uint32       `json:"state" yaml:"state"`
	NFAStates   []uint32     `json:"nfa_states" yaml:"nfa_states"`
	Symbols     []SymbolStep `json:"symbols" yaml:"symbols"`
}

// SymbolStep is the computation for one alphabet symbol of a Step.
// Target is nil when the move is empty and no transition was created.
type SymbolStep struct {
	Symbol  string   `json:"symbol" yaml:"symbol"`
	Move    []uint32 `json:"move" yaml:"move"`
	Closure []uint32 `json:"closure" yaml:"closure"`
	Target  *uint32  `json:"target" yaml:"target"`
	Created bool     `json:"created" yaml:"created"`
}

// FromNFA converts n. Nodes are in ID order; edges are ordered by source
// state, then insertion order.
func FromNFA(n *nfa.NFA) NFA {
	g := NFA{
		Nodes:      make([]Node, 0, n.States()),
		Edges:      []Edge{},
		StartState: uint32(n.Start()),
		FinalState: uint32(n.Final()),
	}
	for it := n.Iter(); it.HasNext(); {
		s := it.Next()
		g.Nodes = append(g.Nodes, Node{
			ID:    uint32(s.ID()),
			Label: strconv.FormatUint(uint64(s.ID()), 10),
		})
	}
	for _, e := range n.Edges() {
		g.Edges = append(g.Edges, Edge{From: uint32(e.From), To: uint32(e.To), Label: string(e.Symbol)})
	}
	return g
}

// FromDFA converts d. Node labels carry the ID and the NFA state set, as in
// "1\n{1,5,6}".
func FromDFA(d *subset.DFA) DFA {
	g := DFA{
		Nodes:           make([]Node, 0, d.States()),
		Edges:           []Edge{},
		StartState:      uint32(d.Start()),
		FinalStates:     []uint32{},
		ConversionSteps: Steps(d),
	}
	for i := range d.States() {
		s := d.State(subset.StateID(i))
		set := toUint32(s.NFAStates())
		g.Nodes = append(g.Nodes, Node{
			ID:        uint32(s.ID()),
			Label:     fmt.Sprintf("%d\n{%s}", s.ID(), joinIDs(set, ",")),
			NFAStates: set,
		})
	}
	for _, e := range d.Edges() {
		g.Edges = append(g.Edges, Edge{From: uint32(e.From), To: uint32(e.To), Label: string(e.Symbol)})
	}
	for _, f := range d.FinalStates() {
		g.FinalStates = append(g.FinalStates, uint32(f))
	}
	return g
}

// Steps renders the construction trace of d as text, one Step per processed
// DFA state and one transition line per alphabet symbol.
func Steps(d *subset.DFA) []Step {
	steps := make([]Step, 0, len(d.Steps()))
	for _, st := range d.Steps() {
		from := formatSet(st.NFAStates)
		step := Step{
			Title:       fmt.Sprintf("Processing DFA state %d which corresponds to NFA states %s:", st.State, from),
			Transitions: make([]string, 0, len(st.Symbols)),
			State:       uint32(st.State),
			NFAStates:   toUint32(st.NFAStates),
			Symbols:     make([]SymbolStep, 0, len(st.Symbols)),
		}
		for _, sym := range st.Symbols {
			data := SymbolStep{
				Symbol:  string(sym.Symbol),
				Move:    toUint32(sym.Move),
				Closure: toUint32(sym.Closure),
				Created: sym.Created,
			}
			if sym.HasTransition() {
				target := uint32(sym.Target)
				data.Target = &target
			}
			step.Symbols = append(step.Symbols, data)

			if !sym.HasTransition() {
				step.Transitions = append(step.Transitions,
					fmt.Sprintf("  - On symbol '%c', move(%s, '%c') is empty. No transition.", sym.Symbol, from, sym.Symbol))
				continue
			}
			moved := formatSet(sym.Move)
			step.Transitions = append(step.Transitions, fmt.Sprintf(
				"  - On symbol '%c':\n"+
					"    1. move(%s, '%c') = %s\n"+
					"    2. ε-closure(%s) = %s\n"+
					"    3. This corresponds to DFA state %d. Created transition %d -> %d.",
				sym.Symbol,
				from, sym.Symbol, moved,
				moved, formatSet(sym.Closure),
				sym.Target, st.State, sym.Target))
		}
		steps = append(steps, step)
	}
	return steps
}

// formatSet prints a state set as "[0, 2, 4]".
func formatSet(ids []nfa.StateID) string {
	return "[" + joinIDs(toUint32(ids), ", ") + "]"
}

func joinIDs(ids []uint32, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, sep)
}

func toUint32(ids []nfa.StateID) []uint32 {
	out := make([]uint32, len(ids))
	for i, id := range ids {
		out[i] = uint32(id)
	}
	return out
}
