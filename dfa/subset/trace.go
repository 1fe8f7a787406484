package subset

// TraceStep is one transition taken while running the DFA on an input.
type TraceStep struct {
	// Offset is the byte offset of Symbol in the input.
	Offset int
	From   StateID
	Symbol rune
	// To is InvalidState when From has no transition on Symbol.
	To StateID
}

// Trace is the full run of the DFA on one input.
type Trace struct {
	Input string
	Steps []TraceStep

	// Final is the state the run ended in, or InvalidState if it got stuck.
	Final StateID

	Accepted bool
}

// Trace runs the DFA on input and records every transition. A symbol with no
// transition is recorded with To == InvalidState and ends the run, rejected.
func (d *DFA) Trace(input string) Trace {
	tr := Trace{Input: input, Final: StartState}
	for offset, r := range input {
		next := d.Next(tr.Final, r)
		tr.Steps = append(tr.Steps, TraceStep{Offset: offset, From: tr.Final, Symbol: r, To: next})
		tr.Final = next
		if next == InvalidState {
			return tr
		}
	}
	tr.Accepted = d.IsFinal(tr.Final)
	return tr
}
