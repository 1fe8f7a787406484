package redfa_test

import (
	"errors"
	"fmt"

	"github.com/coregx/redfa"
)

func ExampleCompile() {
	res, err := redfa.Compile("(a|b)c")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.FormattedRegex)
	fmt.Println(res.Postfix)
	fmt.Println(res.Alphabet)
	fmt.Println(len(res.DFA.Nodes), res.DFA.FinalStates)
	// Output:
	// (a|b).c
	// ab|c.
	// abc
	// 4 [3]
}

func ExampleBuild() {
	a, err := redfa.Build("a*b")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(a.Match("aaab"))
	fmt.Println(a.Match("ba"))
	// Output:
	// true
	// false
}

func ExampleCompile_error() {
	_, err := redfa.Compile("(a|b")
	fmt.Println(redfa.KindOf(err))
	fmt.Println(errors.Is(err, redfa.ErrMalformedExpression))
	// Output:
	// MalformedExpression
	// true
}
