package nfa

import (
	"fmt"

	"github.com/coregx/redfa/syntax"
)

// fragment is a sub-automaton under construction with exactly one entry and
// one exit. Fragments are combined by adding ε-edges and wrapping them in new
// start/final states, never by merging existing states.
type fragment struct {
	start StateID
	final StateID
}

// compiler evaluates a postfix token stream with an explicit fragment stack.
type compiler struct {
	builder *Builder
	stack   []fragment
}

// CompilePattern parses an infix pattern and compiles it to an NFA.
func CompilePattern(pattern string) (*NFA, error) {
	expr, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return Compile(expr.Postfix)
}

// Compile builds an ε-NFA from postfix tokens using Thompson's construction.
//
// States are numbered in allocation order starting at 0; for every fragment
// the start state is allocated before the final state. The same postfix
// input therefore always yields the same numbering.
//
// Returns a *CompileError wrapping ErrMalformedPostfix when an operator lacks
// operands or the stream does not reduce to a single fragment.
func Compile(postfix []syntax.Token) (*NFA, error) {
	c := &compiler{
		builder: NewBuilderWithCapacity(2 * len(postfix)),
		stack:   make([]fragment, 0, len(postfix)),
	}

	for _, tok := range postfix {
		if err := c.apply(tok); err != nil {
			return nil, &CompileError{Postfix: syntax.Join(postfix), Err: err}
		}
	}

	if len(c.stack) != 1 {
		return nil, &CompileError{
			Postfix: syntax.Join(postfix),
			Err:     fmt.Errorf("%w: %d fragments left on the stack, want 1", ErrMalformedPostfix, len(c.stack)),
		}
	}

	whole := c.stack[0]
	nfa, err := c.builder.Build(whole.start, whole.final)
	if err != nil {
		return nil, &CompileError{Postfix: syntax.Join(postfix), Err: err}
	}
	return nfa, nil
}

func (c *compiler) apply(tok syntax.Token) error {
	switch tok.Kind {
	case syntax.KindLiteral, syntax.KindEpsilon:
		return c.symbol(tok.Rune)
	case syntax.KindStar:
		return c.star(tok)
	case syntax.KindConcat:
		return c.concat(tok)
	case syntax.KindUnion:
		return c.union(tok)
	case syntax.KindOpenParen, syntax.KindCloseParen:
		return fmt.Errorf("%w: parenthesis at offset %d", ErrMalformedPostfix, tok.Pos)
	default:
		return fmt.Errorf("%w: unknown token kind %s", ErrMalformedPostfix, tok.Kind)
	}
}

// symbol pushes start -symbol-> final. An ε token yields an ε-edge.
func (c *compiler) symbol(r rune) error {
	start := c.builder.AddState()
	final := c.builder.AddState()
	if err := c.builder.AddTransition(start, r, final); err != nil {
		return err
	}
	c.push(fragment{start: start, final: final})
	return nil
}

// star wraps the top fragment f:
//
//	start -ε-> f.start, final
//	f.final -ε-> f.start, final
func (c *compiler) star(tok syntax.Token) error {
	frags, err := c.pop(tok, 1)
	if err != nil {
		return err
	}
	f := frags[0]

	start := c.builder.AddState()
	final := c.builder.AddState()
	if err := c.builder.AddEpsilon(start, f.start, final); err != nil {
		return err
	}
	if err := c.builder.AddEpsilon(f.final, f.start, final); err != nil {
		return err
	}
	c.push(fragment{start: start, final: final})
	return nil
}

// concat joins left.final -ε-> right.start without allocating states.
func (c *compiler) concat(tok syntax.Token) error {
	frags, err := c.pop(tok, 2)
	if err != nil {
		return err
	}
	left, right := frags[0], frags[1]

	if err := c.builder.AddEpsilon(left.final, right.start); err != nil {
		return err
	}
	c.push(fragment{start: left.start, final: right.final})
	return nil
}

// union branches from a new start to both fragments and joins their finals
// in a new final state.
func (c *compiler) union(tok syntax.Token) error {
	frags, err := c.pop(tok, 2)
	if err != nil {
		return err
	}
	left, right := frags[0], frags[1]

	start := c.builder.AddState()
	final := c.builder.AddState()
	if err := c.builder.AddEpsilon(start, left.start, right.start); err != nil {
		return err
	}
	if err := c.builder.AddEpsilon(left.final, final); err != nil {
		return err
	}
	if err := c.builder.AddEpsilon(right.final, final); err != nil {
		return err
	}
	c.push(fragment{start: start, final: final})
	return nil
}

func (c *compiler) push(f fragment) {
	c.stack = append(c.stack, f)
}

// pop removes the top n fragments and returns them in push order, so for a
// binary operator the left operand comes first.
func (c *compiler) pop(tok syntax.Token, n int) ([]fragment, error) {
	if len(c.stack) < n {
		return nil, fmt.Errorf("%w: operator %q at offset %d needs %d operand(s), have %d",
			ErrMalformedPostfix, tok.Rune, tok.Pos, n, len(c.stack))
	}
	top := len(c.stack) - n
	frags := make([]fragment, n)
	copy(frags, c.stack[top:])
	c.stack = c.stack[:top]
	return frags, nil
}
