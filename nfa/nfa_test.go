package nfa

import (
	"errors"
	"slices"
	"testing"

	"github.com/coregx/redfa/syntax"
)

func mustCompile(t *testing.T, pattern string) *NFA {
	t.Helper()
	n, err := CompilePattern(pattern)
	if err != nil {
		t.Fatalf("CompilePattern(%q) failed: %v", pattern, err)
	}
	return n
}

// TestCompile_Shape checks the exact Thompson layout and numbering.
func TestCompile_Shape(t *testing.T) {
	tests := []struct {
		pattern string
		states  int
		start   StateID
		final   StateID
		edges   []Edge
	}{
		{
			pattern: "a",
			states:  2,
			start:   0,
			final:   1,
			edges:   []Edge{{From: 0, To: 1, Symbol: 'a'}},
		},
		{
			pattern: "ab",
			states:  4,
			start:   0,
			final:   3,
			edges: []Edge{
				{From: 0, To: 1, Symbol: 'a'},
				{From: 1, To: 2, Symbol: Epsilon},
				{From: 2, To: 3, Symbol: 'b'},
			},
		},
		{
			pattern: "a|b",
			states:  6,
			start:   4,
			final:   5,
			edges: []Edge{
				{From: 0, To: 1, Symbol: 'a'},
				{From: 1, To: 5, Symbol: Epsilon},
				{From: 2, To: 3, Symbol: 'b'},
				{From: 3, To: 5, Symbol: Epsilon},
				{From: 4, To: 0, Symbol: Epsilon},
				{From: 4, To: 2, Symbol: Epsilon},
			},
		},
		{
			pattern: "a*",
			states:  4,
			start:   2,
			final:   3,
			edges: []Edge{
				{From: 0, To: 1, Symbol: 'a'},
				{From: 1, To: 0, Symbol: Epsilon},
				{From: 1, To: 3, Symbol: Epsilon},
				{From: 2, To: 0, Symbol: Epsilon},
				{From: 2, To: 3, Symbol: Epsilon},
			},
		},
		{
			pattern: "ε",
			states:  2,
			start:   0,
			final:   1,
			edges:   []Edge{{From: 0, To: 1, Symbol: Epsilon}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := mustCompile(t, tt.pattern)
			if n.States() != tt.states {
				t.Errorf("States() = %d, want %d", n.States(), tt.states)
			}
			if n.Start() != tt.start {
				t.Errorf("Start() = %d, want %d", n.Start(), tt.start)
			}
			if n.Final() != tt.final {
				t.Errorf("Final() = %d, want %d", n.Final(), tt.final)
			}
			if got := n.Edges(); !slices.Equal(got, tt.edges) {
				t.Errorf("Edges() = %v, want %v", got, tt.edges)
			}
		})
	}
}

// TestCompile_StateCount checks the 2-per-operand, 2-per-star/union bound.
func TestCompile_StateCount(t *testing.T) {
	patterns := []string{"a", "(a|b)*abb", "((a|b)*c)*", "a.b.c", "x*y*z*", "(ε|a)b"}

	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			expr, err := syntax.Parse(p)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			want := 0
			for _, tok := range expr.Postfix {
				switch tok.Kind {
				case syntax.KindLiteral, syntax.KindEpsilon, syntax.KindStar, syntax.KindUnion:
					want += 2
				}
			}

			n, err := Compile(expr.Postfix)
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			if n.States() != want {
				t.Errorf("States() = %d, want %d", n.States(), want)
			}
			if n.Start() == n.Final() {
				t.Error("start and final must differ")
			}
			if len(n.State(n.Final()).Transitions()) != 0 {
				t.Error("final state must have no outgoing transitions")
			}
		})
	}
}

func TestCompile_Deterministic(t *testing.T) {
	a := mustCompile(t, "(a|b)*abb")
	b := mustCompile(t, "(a|b)*abb")

	if !slices.Equal(a.Edges(), b.Edges()) {
		t.Error("compiling the same pattern twice produced different edges")
	}
	if a.Start() != b.Start() || a.Final() != b.Final() {
		t.Error("compiling the same pattern twice produced different start/final")
	}
}

func TestCompile_MalformedPostfix(t *testing.T) {
	lit := func(r rune) syntax.Token { return syntax.Token{Kind: syntax.KindLiteral, Rune: r} }
	op := func(k syntax.Kind, r rune) syntax.Token { return syntax.Token{Kind: k, Rune: r} }

	tests := []struct {
		name    string
		postfix []syntax.Token
	}{
		{"empty", nil},
		{"lone union", []syntax.Token{op(syntax.KindUnion, '|')}},
		{"union one operand", []syntax.Token{lit('a'), op(syntax.KindUnion, '|')}},
		{"concat one operand", []syntax.Token{lit('a'), op(syntax.KindConcat, '.')}},
		{"lone star", []syntax.Token{op(syntax.KindStar, '*')}},
		{"two fragments", []syntax.Token{lit('a'), lit('b')}},
		{"paren", []syntax.Token{lit('a'), op(syntax.KindOpenParen, '(')}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.postfix)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrMalformedPostfix) {
				t.Errorf("error %v does not wrap ErrMalformedPostfix", err)
			}
			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Errorf("error %T is not a *CompileError", err)
			}
		})
	}
}

func TestCompilePattern_SyntaxError(t *testing.T) {
	_, err := CompilePattern("(")
	if !errors.Is(err, syntax.ErrMalformed) {
		t.Errorf("CompilePattern(\"(\") error = %v, want ErrMalformed", err)
	}
	_, err = CompilePattern("")
	if !errors.Is(err, syntax.ErrEmptyInput) {
		t.Errorf("CompilePattern(\"\") error = %v, want ErrEmptyInput", err)
	}
}

func TestNFA_Symbols(t *testing.T) {
	n := mustCompile(t, "(c|a)*bε")
	if got, want := n.Symbols(), []rune{'a', 'b', 'c'}; !slices.Equal(got, want) {
		t.Errorf("Symbols() = %q, want %q", got, want)
	}
}

func TestNFA_StateAccessors(t *testing.T) {
	n := mustCompile(t, "a|b")

	if n.State(InvalidState) != nil {
		t.Error("State(InvalidState) should be nil")
	}
	if n.State(StateID(n.States())) != nil {
		t.Error("State(out of range) should be nil")
	}

	s := n.State(4)
	if s.ID() != 4 {
		t.Errorf("ID() = %d, want 4", s.ID())
	}
	if got := s.Next(Epsilon); !slices.Equal(got, []StateID{0, 2}) {
		t.Errorf("Next(ε) = %v, want [0 2]", got)
	}
	if got := s.Next('a'); got != nil {
		t.Errorf("Next('a') = %v, want nil", got)
	}

	count := 0
	for it := n.Iter(); it.HasNext(); {
		if it.Next() == nil {
			t.Fatal("Next returned nil while HasNext was true")
		}
		count++
	}
	if count != n.States() {
		t.Errorf("iterated %d states, want %d", count, n.States())
	}
}
