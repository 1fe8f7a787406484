package syntax

import (
	"errors"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// definition is the token grammar. Rules are tried in order and each one
// matches exactly one rune, so a pattern lexes to one token per rune.
var definition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Literal", Pattern: `[a-zA-Z0-9]`},
	{Name: "Epsilon", Pattern: `ε`},
	{Name: "Union", Pattern: `\|`},
	{Name: "Concat", Pattern: `\.`},
	{Name: "Star", Pattern: `\*`},
	{Name: "OpenParen", Pattern: `\(`},
	{Name: "CloseParen", Pattern: `\)`},
})

var kindByType = func() map[lexer.TokenType]Kind {
	symbols := definition.Symbols()
	return map[lexer.TokenType]Kind{
		symbols["Literal"]:    KindLiteral,
		symbols["Epsilon"]:    KindEpsilon,
		symbols["Union"]:      KindUnion,
		symbols["Concat"]:     KindConcat,
		symbols["Star"]:       KindStar,
		symbols["OpenParen"]:  KindOpenParen,
		symbols["CloseParen"]: KindCloseParen,
	}
}()

// Lex splits a pattern into tagged tokens.
//
// Runes outside [a-zA-Z0-9], ε and the operators ( ) | . * are rejected with
// an InvalidSymbol error that carries the byte offset of the first bad rune.
// Whitespace is not skipped.
func Lex(pattern string) ([]Token, error) {
	if pattern == "" {
		return nil, ErrEmptyInput
	}

	lex, err := definition.LexString("", pattern)
	if err != nil {
		return nil, invalidSymbol(pattern, err)
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, invalidSymbol(pattern, err)
	}

	tokens := make([]Token, 0, len(raw))
	for _, t := range raw {
		if t.EOF() {
			break
		}
		kind, ok := kindByType[t.Type]
		if !ok {
			return nil, errorf(InvalidSymbol, t.Pos.Offset, "unexpected token %q", t.Value)
		}
		r, _ := utf8.DecodeRuneInString(t.Value)
		tokens = append(tokens, Token{Kind: kind, Rune: r, Pos: t.Pos.Offset})
	}
	return tokens, nil
}

// invalidSymbol converts a lexer failure into an InvalidSymbol error pointing
// at the rune the lexer stopped on.
func invalidSymbol(pattern string, cause error) *Error {
	pos := -1
	var lexErr *lexer.Error
	if errors.As(cause, &lexErr) {
		pos = lexErr.Pos.Offset
	}

	e := &Error{
		Kind:  InvalidSymbol,
		Pos:   pos,
		Msg:   "unsupported symbol",
		Cause: cause,
	}
	if pos >= 0 && pos < len(pattern) {
		r, _ := utf8.DecodeRuneInString(pattern[pos:])
		e.Msg = "unsupported symbol " + quoteRune(r)
	}
	return e
}

func quoteRune(r rune) string {
	if r == utf8.RuneError {
		return "(invalid UTF-8)"
	}
	return "'" + string(r) + "'"
}
