package syntax

import (
	"slices"
)

// Expr is a parsed pattern.
type Expr struct {
	// Pattern is the text that was parsed.
	Pattern string

	// Infix holds the tokens with explicit concatenation inserted.
	Infix []Token

	// Postfix holds the same tokens in reverse Polish order, without parentheses.
	Postfix []Token
}

// Parse lexes a pattern, makes concatenation explicit and converts the result
// to postfix.
func Parse(pattern string) (*Expr, error) {
	tokens, err := Lex(pattern)
	if err != nil {
		return nil, err
	}

	infix := InsertConcat(tokens)
	postfix, err := ToPostfix(infix)
	if err != nil {
		return nil, err
	}

	return &Expr{
		Pattern: pattern,
		Infix:   infix,
		Postfix: postfix,
	}, nil
}

// Formatted returns the infix form with every concatenation written as '.'.
func (e *Expr) Formatted() string {
	return Join(e.Infix)
}

// PostfixString returns the postfix form as text.
func (e *Expr) PostfixString() string {
	return Join(e.Postfix)
}

// Alphabet returns the distinct literal symbols of the expression in
// ascending order. ε is not part of the alphabet.
func (e *Expr) Alphabet() []rune {
	var alphabet []rune
	for _, t := range e.Infix {
		if t.Kind == KindLiteral && !slices.Contains(alphabet, t.Rune) {
			alphabet = append(alphabet, t.Rune)
		}
	}
	slices.Sort(alphabet)
	return alphabet
}

// InsertConcat returns a copy of tokens with explicit concatenation operators
// between adjacent tokens that are implicitly concatenated: "ab" becomes
// "a.b", "a(b)" becomes "a.(b)" and "a*b" becomes "a*.b".
//
// No operator is inserted after '(' , '|' or '.', nor before ')', '|', '*' or
// '.'. Explicit '.' tokens are kept as they are.
func InsertConcat(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens)*2)
	for i, t := range tokens {
		out = append(out, t)
		if i+1 == len(tokens) {
			break
		}
		next := tokens[i+1]
		if concatAfter(t.Kind) && concatBefore(next.Kind) {
			out = append(out, concat(next.Pos))
		}
	}
	return out
}

func concatAfter(k Kind) bool {
	switch k {
	case KindOpenParen, KindUnion, KindConcat:
		return false
	case KindLiteral, KindEpsilon, KindStar, KindCloseParen:
		return true
	default:
		return false
	}
}

func concatBefore(k Kind) bool {
	switch k {
	case KindCloseParen, KindUnion, KindStar, KindConcat:
		return false
	case KindLiteral, KindEpsilon, KindOpenParen:
		return true
	default:
		return false
	}
}

// ToPostfix converts infix tokens with explicit concatenation to postfix
// using the shunting-yard algorithm.
//
// A ')' without a matching '(' and a '(' that is never closed both produce a
// Malformed error. Misplaced operators such as "a|" or "*a" pass through
// here and are rejected when the postfix form is evaluated.
func ToPostfix(tokens []Token) ([]Token, error) {
	output := make([]Token, 0, len(tokens))
	stack := make([]Token, 0, len(tokens)/2+1)

	for _, t := range tokens {
		switch t.Kind {
		case KindLiteral, KindEpsilon:
			output = append(output, t)

		case KindOpenParen:
			stack = append(stack, t)

		case KindCloseParen:
			matched := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == KindOpenParen {
					matched = true
					break
				}
				output = append(output, top)
			}
			if !matched {
				return nil, errorf(Malformed, t.Pos, "unmatched ')'")
			}

		case KindUnion, KindConcat, KindStar:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind == KindOpenParen || top.Kind.precedence() < t.Kind.precedence() {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, t)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind == KindOpenParen {
			return nil, errorf(Malformed, top.Pos, "unmatched '('")
		}
		output = append(output, top)
	}

	return output, nil
}
