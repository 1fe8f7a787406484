// Package syntax turns an infix regular expression into a postfix token stream.
//
// The accepted language is deliberately small: alphanumeric literals, the
// epsilon marker ε, union (|), Kleene star (*), grouping with parentheses and
// concatenation. Concatenation is normally implicit ("ab"); an explicit '.' is
// also accepted so that the formatted form of an expression can be parsed
// again.
//
// Parsing happens in three passes:
//
//	tokens, _ := syntax.Lex("(a|b)*c")      // tagged tokens
//	tokens = syntax.InsertConcat(tokens)     // (a|b)*.c
//	postfix, _ := syntax.ToPostfix(tokens)   // ab|*c.
//
// Parse runs all three and returns an Expr.
package syntax

import "fmt"

// EpsilonRune is the marker for the empty string in patterns and NFA labels.
const EpsilonRune = 'ε'

// Kind identifies what a token is. Every switch over Kind in this module is
// exhaustive; adding a kind means visiting all of them.
type Kind uint8

const (
	// KindLiteral is an alphabet symbol: [a-zA-Z0-9]
	KindLiteral Kind = iota

	// KindEpsilon is the empty-string marker ε
	KindEpsilon

	// KindUnion is the binary alternation operator |
	KindUnion

	// KindConcat is the binary concatenation operator, written '.'
	KindConcat

	// KindStar is the unary postfix Kleene star *
	KindStar

	// KindOpenParen is (
	KindOpenParen

	// KindCloseParen is )
	KindCloseParen
)

// String returns a human-readable representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindEpsilon:
		return "Epsilon"
	case KindUnion:
		return "Union"
	case KindConcat:
		return "Concat"
	case KindStar:
		return "Star"
	case KindOpenParen:
		return "OpenParen"
	case KindCloseParen:
		return "CloseParen"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// IsOperand reports whether tokens of this kind go straight to the output.
func (k Kind) IsOperand() bool {
	return k == KindLiteral || k == KindEpsilon
}

// IsOperator reports whether k is one of |, . or *.
func (k Kind) IsOperator() bool {
	return k == KindUnion || k == KindConcat || k == KindStar
}

// precedence orders operators for the shunting-yard pass.
// Star binds tightest, then concatenation, then union.
func (k Kind) precedence() int {
	switch k {
	case KindStar:
		return 3
	case KindConcat:
		return 2
	case KindUnion:
		return 1
	default:
		return 0
	}
}

// Token is a single lexical element of a pattern.
type Token struct {
	Kind Kind
	Rune rune

	// Pos is the byte offset of the token in the original pattern.
	// Concatenation tokens inserted by InsertConcat carry the offset of the
	// token they precede.
	Pos int
}

// String returns the token as it is written in a pattern.
func (t Token) String() string {
	return string(t.Rune)
}

// concat returns an explicit concatenation token positioned at pos.
func concat(pos int) Token {
	return Token{Kind: KindConcat, Rune: '.', Pos: pos}
}

// Join renders a token slice back into pattern text.
func Join(tokens []Token) string {
	buf := make([]rune, len(tokens))
	for i, t := range tokens {
		buf[i] = t.Rune
	}
	return string(buf)
}
