package subset

import (
	"math"
	"slices"
	"testing"
)

var propertyPatterns = []string{
	"a",
	"a|b",
	"a*",
	"(a|b).c",
	"(a|b)*abb",
	"(a*)*",
	"(a|ε)(b|ε)",
	"a*b*|b*a*",
	"((ab)*|c)*d",
	"(0|1)*1(0|1)",
	"ε",
	"x(y|z)*x",
}

// words returns every string over alphabet of length at most maxLen.
func words(alphabet []rune, maxLen int) []string {
	out := []string{""}
	level := []string{""}
	for range maxLen {
		var next []string
		for _, w := range level {
			for _, r := range alphabet {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		level = next
	}
	return out
}

// TestDFA_EquivalentToNFA checks that the DFA accepts exactly the strings
// the NFA accepts, including strings with symbols outside the alphabet.
func TestDFA_EquivalentToNFA(t *testing.T) {
	for _, p := range propertyPatterns {
		t.Run(p, func(t *testing.T) {
			n := compileNFA(t, p)
			d := mustBuild(t, p)

			alphabet := append(slices.Clone(d.Alphabet()), '#')
			for _, w := range words(alphabet, 6) {
				if got, want := d.Accepts(w), n.Accepts(w); got != want {
					t.Errorf("DFA.Accepts(%q) = %v, NFA.Accepts = %v", w, got, want)
				}
			}
		})
	}
}

func TestDFA_StateBound(t *testing.T) {
	for _, p := range propertyPatterns {
		t.Run(p, func(t *testing.T) {
			n := compileNFA(t, p)
			d := mustBuild(t, p)

			bound := math.Pow(2, float64(n.States()))
			if float64(d.States()) > bound {
				t.Errorf("DFA has %d states, more than 2^%d", d.States(), n.States())
			}
		})
	}
}

func TestDFA_UniqueNFASets(t *testing.T) {
	for _, p := range propertyPatterns {
		t.Run(p, func(t *testing.T) {
			n := compileNFA(t, p)
			d := mustBuild(t, p)

			seen := make(map[StateKey]StateID)
			for i := range d.States() {
				s := d.State(StateID(i))
				set := s.NFAStates()
				if len(set) == 0 {
					t.Errorf("state %d has an empty NFA set", i)
				}
				if !slices.IsSorted(set) {
					t.Errorf("state %d NFA set %v is not sorted", i, set)
				}
				key := ComputeStateKey(set)
				if prev, ok := seen[key]; ok {
					t.Errorf("states %d and %d share NFA set %v", prev, i, set)
				}
				seen[key] = s.ID()

				if want := slices.Contains(set, n.Final()); s.IsFinal() != want {
					t.Errorf("state %d IsFinal() = %v, want %v", i, s.IsFinal(), want)
				}
			}
		})
	}
}

// TestDFA_Deterministic checks that repeated builds give identical results.
func TestDFA_Deterministic(t *testing.T) {
	for _, p := range propertyPatterns {
		a := mustBuild(t, p)
		b := mustBuild(t, p)
		if !slices.Equal(a.Edges(), b.Edges()) || !slices.Equal(a.FinalStates(), b.FinalStates()) {
			t.Errorf("%q: two builds differ", p)
		}
	}
}

func TestDFA_Trace(t *testing.T) {
	d := mustBuild(t, "(a|b).c")

	tr := d.Trace("bc")
	want := []TraceStep{
		{Offset: 0, From: 0, Symbol: 'b', To: 2},
		{Offset: 1, From: 2, Symbol: 'c', To: 3},
	}
	if !slices.Equal(tr.Steps, want) {
		t.Errorf("Trace(\"bc\").Steps = %v, want %v", tr.Steps, want)
	}
	if !tr.Accepted || tr.Final != 3 {
		t.Errorf("Trace(\"bc\") = accepted %v final %d, want accepted in 3", tr.Accepted, tr.Final)
	}

	tr = d.Trace("bac")
	if tr.Accepted {
		t.Error("Trace(\"bac\") should reject")
	}
	if len(tr.Steps) != 2 || tr.Steps[1].To != InvalidState || tr.Final != InvalidState {
		t.Errorf("Trace(\"bac\") = %+v, want stuck after 2 steps", tr)
	}

	tr = d.Trace("")
	if tr.Accepted || len(tr.Steps) != 0 || tr.Final != StartState {
		t.Errorf("Trace(\"\") = %+v, want rejected in start state", tr)
	}
}

func TestDFA_Language(t *testing.T) {
	tests := []struct {
		pattern  string
		limit    int
		want     []string
		complete bool
	}{
		{"a", 10, []string{"a"}, true},
		{"a|b", 10, []string{"a", "b"}, true},
		{"(a|b).c", 10, []string{"ac", "bc"}, true},
		{"ε", 10, []string{""}, true},
		{"(a|ε)(b|ε)", 10, []string{"", "a", "b", "ab"}, true},
		{"(a|b)(a|b)", 4, []string{"aa", "ab", "ba", "bb"}, true},
		{"(a|b)(a|b)", 3, []string{"aa", "ab", "ba"}, false},
		{"a*", 3, []string{"", "a", "aa"}, false},
		{"x(y|z)*x", 4, []string{"xx", "xyx", "xzx", "xyyx"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			d := mustBuild(t, tt.pattern)
			got, complete := d.Language(tt.limit)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Language(%d) = %q, want %q", tt.limit, got, tt.want)
			}
			if complete != tt.complete {
				t.Errorf("Language(%d) complete = %v, want %v", tt.limit, complete, tt.complete)
			}
		})
	}
}

func TestDFA_IsFinite(t *testing.T) {
	tests := []struct {
		pattern string
		finite  bool
	}{
		{"a", true},
		{"(a|b).c", true},
		{"a*", false},
		{"(a|b)*abb", false},
		{"ε", true},
	}
	for _, tt := range tests {
		if got := mustBuild(t, tt.pattern).IsFinite(); got != tt.finite {
			t.Errorf("%q: IsFinite() = %v, want %v", tt.pattern, got, tt.finite)
		}
	}
}
