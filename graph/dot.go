package graph

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// Graph is implemented by NFA and DFA.
type Graph interface {
	name() string
	nodes() []Node
	edges() []Edge
	start() uint32
	finals() []uint32
}

func (g NFA) name() string { return "NFA" }
func (g NFA) nodes() []Node { return g.Nodes }
func (g NFA) edges() []Edge { return g.Edges }
func (g NFA) start() uint32 { return g.StartState }
func (g NFA) finals() []uint32 { return []uint32{g.FinalState} }
func (g DFA) name() string { return "DFA" }
func (g DFA) nodes() []Node { return g.Nodes }
func (g DFA) edges() []Edge { return g.Edges }
func (g DFA) start() uint32 { return g.StartState }
func (g DFA) finals() []uint32 { return g.FinalStates }

// WriteDOT writes g in Graphviz DOT format. Final states are drawn as double
// circles and an invisible point node marks the start state.
func WriteDOT(w io.Writer, g Graph) error {
	bw := bufio.NewWriter(w)
	finals := g.finals()

	fmt.Fprintf(bw, "digraph %s {\n", g.name())
	fmt.Fprintln(bw, "\trankdir=LR;")
	fmt.Fprintln(bw, "\tnode [shape=circle];")
	fmt.Fprintln(bw, "\t__start [shape=point, label=\"\"];")
	fmt.Fprintf(bw, "\t__start -> %d;\n", g.start())

	for _, n := range g.nodes() {
		shape := "circle"
		if slices.Contains(finals, n.ID) {
			shape = "doublecircle"
		}
		fmt.Fprintf(bw, "\t%d [shape=%s, label=%s];\n", n.ID, shape, strconv.Quote(n.Label))
	}
	for _, e := range g.edges() {
		fmt.Fprintf(bw, "\t%d -> %d [label=%s];\n", e.From, e.To, strconv.Quote(e.Label))
	}
	fmt.Fprintln(bw, "}")

	return bw.Flush()
}
