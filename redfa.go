// Package redfa compiles regular expressions into DFAs and explains how.
//
// The pipeline has three stages:
//   - syntax: tokenize, make concatenation explicit, convert to postfix
//   - nfa: build an ε-NFA with Thompson's construction
//   - dfa/subset: determinize with subset construction, recording each step
//
// Patterns use single-character symbols [a-zA-Z0-9], the empty-string symbol
// ε, and the operators ( ) | . * where '.' is explicit concatenation and
// adjacent operands are concatenated implicitly.
//
// Basic usage:
//
//	res, err := redfa.Compile("(a|b).c")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Postfix)         // "ab|c."
//	fmt.Println(res.DFA.FinalStates) // [3]
//
// For matching, keep the automata instead of the flattened result:
//
//	a, _ := redfa.Build("a*b")
//	a.Match("aaab") // true
//
// Every call builds fresh automata with their own state numbering, so
// compiling the same pattern twice gives identical results and concurrent
// compilations never interfere.
package redfa

import (
	"fmt"

	"github.com/coregx/redfa/dfa/lazy"
	"github.com/coregx/redfa/dfa/subset"
	"github.com/coregx/redfa/graph"
	"github.com/coregx/redfa/nfa"
	"github.com/coregx/redfa/syntax"
)

// Result is the full output of a compilation. It holds plain data only.
type Result struct {
	Regex          string    `json:"regex" yaml:"regex"`
	FormattedRegex string    `json:"formatted_regex" yaml:"formatted_regex"`
	Postfix        string    `json:"postfix" yaml:"postfix"`
	Alphabet       string    `json:"alphabet" yaml:"alphabet"`
	NFA            graph.NFA `json:"nfa" yaml:"nfa"`
	DFA            graph.DFA `json:"dfa" yaml:"dfa"`
}

// Automaton bundles the stages of one compiled pattern. It is immutable and
// safe for concurrent use.
type Automaton struct {
	expr *syntax.Expr
	nfa  *nfa.NFA
	dfa  *subset.DFA
}

// Compile runs the whole pipeline on pattern with DefaultConfig.
//
// Errors are *Error values; use errors.Is with ErrEmptyInput,
// ErrMalformedExpression, ErrInvalidSymbol or ErrResourceLimitExceeded to
// tell them apart. No partial result is returned on error.
func Compile(pattern string) (*Result, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig is Compile with explicit limits.
func CompileWithConfig(pattern string, config Config) (*Result, error) {
	a, err := BuildWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}
	return a.Result(), nil
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string) *Result {
	res, err := Compile(pattern)
	if err != nil {
		panic("redfa: Compile(`" + pattern + "`): " + err.Error())
	}
	return res
}

// Build compiles pattern and keeps the automata for matching.
func Build(pattern string) (*Automaton, error) {
	return BuildWithConfig(pattern, DefaultConfig())
}

// BuildWithConfig is Build with explicit limits.
func BuildWithConfig(pattern string, config Config) (*Automaton, error) {
	if err := config.Validate(); err != nil {
		return nil, wrapError(err)
	}

	expr, err := syntax.Parse(pattern)
	if err != nil {
		return nil, wrapError(err)
	}

	n, err := nfa.Compile(expr.Postfix)
	if err != nil {
		return nil, wrapError(err)
	}

	d, err := subset.Build(n, expr.Alphabet(), config.subsetConfig())
	if err != nil {
		return nil, wrapError(err)
	}

	return &Automaton{expr: expr, nfa: n, dfa: d}, nil
}

// BuildLazy compiles pattern to an ε-NFA and returns a Lazy DFA over it
// instead of running subset construction upfront. It never fails with
// ResourceLimitExceeded: config.MaxDFAStates bounds the state cache, and
// matching stays correct when the full DFA would be larger. The returned
// DFA is not safe for concurrent use.
func BuildLazy(pattern string, config Config) (*lazy.DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, wrapError(err)
	}

	n, err := nfa.CompilePattern(pattern)
	if err != nil {
		return nil, wrapError(err)
	}

	d, err := lazy.New(n, lazy.DefaultConfig().WithMaxStates(config.MaxDFAStates))
	if err != nil {
		return nil, wrapError(err)
	}
	return d, nil
}

// Pattern returns the source pattern.
func (a *Automaton) Pattern() string {
	return a.expr.Pattern
}

// Expr returns the parsed expression.
func (a *Automaton) Expr() *syntax.Expr {
	return a.expr
}

// NFA returns the Thompson ε-NFA.
func (a *Automaton) NFA() *nfa.NFA {
	return a.nfa
}

// DFA returns the determinized automaton.
func (a *Automaton) DFA() *subset.DFA {
	return a.dfa
}

// Result flattens the automata into a Result.
func (a *Automaton) Result() *Result {
	return &Result{
		Regex:          a.expr.Pattern,
		FormattedRegex: a.expr.Formatted(),
		Postfix:        a.expr.PostfixString(),
		Alphabet:       string(a.dfa.Alphabet()),
		NFA:            graph.FromNFA(a.nfa),
		DFA:            graph.FromDFA(a.dfa),
	}
}

// Match reports whether the whole input is in the pattern's language,
// using the DFA.
func (a *Automaton) Match(input string) bool {
	return a.dfa.Accepts(input)
}

// MatchNFA is Match computed by simulating the ε-NFA directly.
func (a *Automaton) MatchNFA(input string) bool {
	return a.nfa.Accepts(input)
}

// Trace runs the DFA on input and records each transition.
func (a *Automaton) Trace(input string) subset.Trace {
	return a.dfa.Trace(input)
}

// String returns the source pattern.
func (a *Automaton) String() string {
	return a.expr.Pattern
}

// Compiler compiles patterns with a fixed Config. It is immutable after
// construction and safe for concurrent use.
type Compiler struct {
	config Config
}

// NewCompiler validates config and returns a Compiler that uses it.
func NewCompiler(config Config) (*Compiler, error) {
	if err := config.Validate(); err != nil {
		return nil, wrapError(err)
	}
	return &Compiler{config: config}, nil
}

// Config returns the compiler's configuration.
func (c *Compiler) Config() Config {
	return c.config
}

// Compile is CompileWithConfig using the compiler's configuration.
func (c *Compiler) Compile(pattern string) (*Result, error) {
	return CompileWithConfig(pattern, c.config)
}

// Build is BuildWithConfig using the compiler's configuration.
func (c *Compiler) Build(pattern string) (*Automaton, error) {
	return BuildWithConfig(pattern, c.config)
}

// BuildLazy is BuildLazy using the compiler's configuration.
func (c *Compiler) BuildLazy(pattern string) (*lazy.DFA, error) {
	return BuildLazy(pattern, c.config)
}

// String returns a short description of the compiler.
func (c *Compiler) String() string {
	return fmt.Sprintf("Compiler{MaxDFAStates: %d}", c.config.MaxDFAStates)
}
