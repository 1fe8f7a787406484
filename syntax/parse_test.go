package syntax

import (
	"errors"
	"testing"
)

func TestLex_Kinds(t *testing.T) {
	tokens, err := Lex("a(b|ε)*.Z9")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}

	want := []Kind{
		KindLiteral, KindOpenParen, KindLiteral, KindUnion, KindEpsilon,
		KindCloseParen, KindStar, KindConcat, KindLiteral, KindLiteral,
	}
	if len(tokens) != len(want) {
		t.Fatalf("Lex returned %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("token %d kind = %s, want %s", i, tokens[i].Kind, k)
		}
	}

	// ε is two bytes in UTF-8, so ')' sits at byte offset 6
	if tokens[5].Pos != 6 {
		t.Errorf("')' offset = %d, want 6", tokens[5].Pos)
	}
}

func TestLex_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		target  error
		pos     int
	}{
		{name: "empty", pattern: "", target: ErrEmptyInput, pos: -1},
		{name: "space", pattern: "a b", target: ErrInvalidSymbol, pos: 1},
		{name: "plus", pattern: "ab+", target: ErrInvalidSymbol, pos: 2},
		{name: "class", pattern: "[a]", target: ErrInvalidSymbol, pos: 0},
		{name: "unicode letter", pattern: "aé", target: ErrInvalidSymbol, pos: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.pattern)
			if err == nil {
				t.Fatalf("Lex(%q) succeeded, want error", tt.pattern)
			}
			if !errors.Is(err, tt.target) {
				t.Fatalf("Lex(%q) error = %v, want %v", tt.pattern, err, tt.target)
			}
			var syntaxErr *Error
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("error is %T, want *Error", err)
			}
			if syntaxErr.Pos != tt.pos {
				t.Errorf("Pos = %d, want %d", syntaxErr.Pos, tt.pos)
			}
		})
	}
}

func TestInsertConcat(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"a", "a"},
		{"ab", "a.b"},
		{"abc", "a.b.c"},
		{"ab|c*", "a.b|c*"},
		{"a(b)", "a.(b)"},
		{"(a)(b)", "(a).(b)"},
		{"a*b", "a*.b"},
		{"a**", "a**"},
		{"(a|b).c", "(a|b).c"},
		{"a.b", "a.b"},
		{"εa", "ε.a"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tokens, err := Lex(tt.pattern)
			if err != nil {
				t.Fatalf("Lex failed: %v", err)
			}
			if got := Join(InsertConcat(tokens)); got != tt.want {
				t.Errorf("InsertConcat(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestParse_Postfix(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"a", "a"},
		{"ab", "ab."},
		{"a|b", "ab|"},
		{"a*", "a*"},
		{"ab|c", "ab.c|"},
		{"a|bc", "abc.|"},
		{"(a|b)*c", "ab|*c."},
		{"(a|b).c", "ab|c."},
		{"a*b*", "a*b*."},
		{"((a))", "a"},
		{"a|b|c", "ab|c|"},
		{"abc", "ab.c."},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			expr, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.pattern, err)
			}
			if got := expr.PostfixString(); got != tt.want {
				t.Errorf("Parse(%q) postfix = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestParse_Unbalanced(t *testing.T) {
	patterns := []string{"(", ")", "(a", "a)", "(a|b))", "((a)"}

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			_, err := Parse(pattern)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("Parse(%q) error = %v, want Malformed", pattern, err)
			}
		})
	}
}

// TestParse_FormattedRoundTrip checks that parsing the formatted form of an
// expression yields the same postfix.
func TestParse_FormattedRoundTrip(t *testing.T) {
	patterns := []string{
		"a", "ab", "a|b", "a*", "(a|b)*abb", "(ab|c)*(d|ε)", "a(b(c|d)*)*e",
		"(a|b).c", "0|1(0|1)*", "xy*z|Q",
	}

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			first, err := Parse(pattern)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", pattern, err)
			}
			second, err := Parse(first.Formatted())
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", first.Formatted(), err)
			}
			if first.PostfixString() != second.PostfixString() {
				t.Errorf("postfix changed on reparse: %q -> %q",
					first.PostfixString(), second.PostfixString())
			}
			if first.Formatted() != second.Formatted() {
				t.Errorf("formatted changed on reparse: %q -> %q",
					first.Formatted(), second.Formatted())
			}
		})
	}
}

func TestExpr_Alphabet(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"a", "a"},
		{"ba|ab", "ab"},
		{"(c|B)*1", "1Bc"},
		{"ε", ""},
		{"aε*", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			expr, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := string(expr.Alphabet()); got != tt.want {
				t.Errorf("Alphabet() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	if KindStar.String() != "Star" {
		t.Errorf("KindStar.String() = %q", KindStar.String())
	}
	if Kind(99).String() != "Unknown(99)" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}
