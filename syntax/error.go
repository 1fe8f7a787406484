package syntax

import "fmt"

// ErrEmptyInput is returned for an empty pattern.
var ErrEmptyInput = &Error{
	Kind: EmptyInput,
	Pos:  -1,
	Msg:  "expression is empty",
}

// ErrMalformed is returned for unbalanced parentheses.
var ErrMalformed = &Error{
	Kind: Malformed,
	Pos:  -1,
	Msg:  "malformed expression",
}

// ErrInvalidSymbol is returned when a rune outside the supported alphabet and
// operator set appears in a pattern.
var ErrInvalidSymbol = &Error{
	Kind: InvalidSymbol,
	Pos:  -1,
	Msg:  "invalid symbol",
}

// ErrorKind classifies syntax errors
type ErrorKind uint8

const (
	// EmptyInput indicates the pattern had no characters
	EmptyInput ErrorKind = iota

	// Malformed indicates unbalanced parentheses
	Malformed

	// InvalidSymbol indicates a rune the lexer does not accept
	InvalidSymbol
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case EmptyInput:
		return "EmptyInput"
	case Malformed:
		return "Malformed"
	case InvalidSymbol:
		return "InvalidSymbol"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error describes a problem found while lexing or parsing a pattern.
type Error struct {
	Kind ErrorKind

	// Pos is the byte offset of the offending token, or -1 when the error
	// is not tied to a position.
	Pos int

	Msg   string
	Cause error // Optional underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
	}
	return "syntax error: " + e.Msg
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func errorf(kind ErrorKind, pos int, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Pos:  pos,
		Msg:  fmt.Sprintf(format, args...),
	}
}
