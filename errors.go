package redfa

import (
	"errors"
	"fmt"

	"github.com/coregx/redfa/dfa/subset"
	"github.com/coregx/redfa/nfa"
	"github.com/coregx/redfa/syntax"
)

// ErrorKind classifies compilation failures.
type ErrorKind uint8

const (
	// EmptyInput indicates the pattern was empty
	EmptyInput ErrorKind = iota

	// MalformedExpression indicates unbalanced parentheses or an operator
	// without operands
	MalformedExpression

	// InvalidSymbol indicates a character outside [a-zA-Z0-9], ε and
	// the operators ( ) | . *
	InvalidSymbol

	// ResourceLimitExceeded indicates the DFA would exceed Config.MaxDFAStates
	ResourceLimitExceeded

	// Internal indicates a failure that is not caused by the input
	Internal
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case EmptyInput:
		return "EmptyInput"
	case MalformedExpression:
		return "MalformedExpression"
	case InvalidSymbol:
		return "InvalidSymbol"
	case ResourceLimitExceeded:
		return "ResourceLimitExceeded"
	case Internal:
		return "Internal"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Sentinels for errors.Is. Matching is by Kind.
var (
	ErrEmptyInput            = &Error{Kind: EmptyInput, Message: "regex cannot be empty"}
	ErrMalformedExpression   = &Error{Kind: MalformedExpression, Message: "malformed expression"}
	ErrInvalidSymbol         = &Error{Kind: InvalidSymbol, Message: "invalid symbol"}
	ErrResourceLimitExceeded = &Error{Kind: ResourceLimitExceeded, Message: "resource limit exceeded"}
)

// Error is the error returned by every function in this package.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error // underlying stage error, if any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error comparison for errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the kind of err, or Internal if err did not come from this
// package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// wrapError maps a stage error onto the public taxonomy.
func wrapError(err error) *Error {
	var (
		se *syntax.Error
		de *subset.DFAError
	)
	switch {
	case errors.As(err, &se):
		return &Error{Kind: syntaxKind(se.Kind), Message: se.Msg, Err: err}
	case errors.Is(err, nfa.ErrMalformedPostfix):
		return &Error{Kind: MalformedExpression, Message: "malformed expression", Err: err}
	case errors.As(err, &de) && de.Kind == subset.StateLimitExceeded:
		return &Error{Kind: ResourceLimitExceeded, Message: "DFA too large", Err: err}
	default:
		return &Error{Kind: Internal, Message: "internal error", Err: err}
	}
}

func syntaxKind(k syntax.ErrorKind) ErrorKind {
	switch k {
	case syntax.EmptyInput:
		return EmptyInput
	case syntax.Malformed:
		return MalformedExpression
	case syntax.InvalidSymbol:
		return InvalidSymbol
	default:
		return Internal
	}
}
