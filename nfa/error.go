// Package nfa builds Thompson ε-NFAs from postfix regular expressions.
//
// States live in an arena (a slice indexed by StateID) owned by a Builder
// for the duration of one compilation, so independent compilations never
// share an ID counter. Transitions refer to state IDs, not pointers.
//
// The package also provides the set primitives used by subset construction
// (EpsilonClosure and Move) and a reference simulator (Accepts).
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrInvalidState indicates an invalid NFA state ID was encountered
	ErrInvalidState = errors.New("invalid NFA state")

	// ErrMalformedPostfix indicates the postfix stream did not reduce to
	// exactly one fragment. Parsed input never triggers it; it guards
	// against hand-built token streams and parser bugs.
	ErrMalformedPostfix = errors.New("malformed postfix expression")
)

// CompileError wraps compilation errors with additional context
type CompileError struct {
	Postfix string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Postfix != "" {
		return fmt.Sprintf("NFA compilation failed for postfix %q: %v", e.Postfix, e.Err)
	}
	return fmt.Sprintf("NFA compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError represents an error during NFA construction via the Builder API
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

// Unwrap lets errors.Is match ErrInvalidState for out-of-range IDs.
func (e *BuildError) Unwrap() error {
	return ErrInvalidState
}
