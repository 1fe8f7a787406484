// Package suite loads and runs HCL files of pattern test cases.
//
// A suite file holds case blocks:
//
//	case "alternation" {
//	  regex  = "a|b"
//	  accept = ["a", "b"]
//	  reject = ["", "ab"]
//	}
//
//	case "unbalanced" {
//	  regex = "("
//	  error = "MalformedExpression"
//	}
//
// Optional postfix and dfa_states attributes check the compiled form.
package suite

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/coregx/redfa"
	"github.com/coregx/redfa/internal/ctxlog"
)

// Case is one pattern with its expectations.
type Case struct {
	Name  string
	File  string
	Line  int
	Regex string

	// Accept and Reject list inputs the pattern must accept or reject.
	Accept []string
	Reject []string

	// Error is the expected error kind name, e.g. "InvalidSymbol".
	// Empty means compilation must succeed.
	Error string

	// Postfix, when set, is the expected postfix form.
	Postfix string

	// DFAStates, when positive, is the expected DFA state count.
	DFAStates int
}

// Suite is an ordered list of cases.
type Suite struct {
	Cases []Case
}

// hclSuiteFile represents the top-level structure of a suite file for decoding.
type hclSuiteFile struct {
	Cases []*hclCase `hcl:"case,block"`
}

type hclCase struct {
	Name      string   `hcl:"name,label"`
	Regex     string   `hcl:"regex"`
	Accept    []string `hcl:"accept,optional"`
	Reject    []string `hcl:"reject,optional"`
	Error     *string  `hcl:"error,optional"`
	Postfix   *string  `hcl:"postfix,optional"`
	DFAStates *int     `hcl:"dfa_states,optional"`
}

// caseSchema locates case blocks so each case can report its line.
var caseSchema = hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "case", LabelNames: []string{"name"}}},
}

// LoadFile parses the suite file at path.
func LoadFile(path string) (*Suite, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}
	return Parse(src, path)
}

// Parse parses suite source. filename is used in diagnostics.
func Parse(src []byte, filename string) (*Suite, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclSuiteFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	blocks, _, _ := file.Body.PartialContent(&caseSchema)

	suite := &Suite{Cases: make([]Case, 0, len(parsed.Cases))}
	for i, pc := range parsed.Cases {
		c := Case{
			Name:   pc.Name,
			File:   filename,
			Regex:  pc.Regex,
			Accept: pc.Accept,
			Reject: pc.Reject,
		}
		if blocks != nil && i < len(blocks.Blocks) {
			c.Line = blocks.Blocks[i].DefRange.Start.Line
		}
		if pc.Error != nil {
			c.Error = *pc.Error
		}
		if pc.Postfix != nil {
			c.Postfix = *pc.Postfix
		}
		if pc.DFAStates != nil {
			c.DFAStates = *pc.DFAStates
		}
		if c.Error != "" && (len(c.Accept) > 0 || len(c.Reject) > 0) {
			return nil, fmt.Errorf("%s:%d: case %q: error cases cannot list accept or reject inputs", filename, c.Line, c.Name)
		}
		suite.Cases = append(suite.Cases, c)
	}
	return suite, nil
}

// Result is the outcome of one case.
type Result struct {
	Case     Case
	Failures []string
}

// Passed reports whether every expectation held.
func (r Result) Passed() bool {
	return len(r.Failures) == 0
}

// Run compiles every case with compiler and checks its expectations.
func (s *Suite) Run(ctx context.Context, compiler *redfa.Compiler) []Result {
	logger := ctxlog.FromContext(ctx)

	results := make([]Result, 0, len(s.Cases))
	for _, c := range s.Cases {
		r := Result{Case: c}
		r.Failures = check(c, compiler)
		logger.Debug("Suite case finished.", "case", c.Name, "regex", c.Regex, "passed", r.Passed())
		results = append(results, r)
	}
	return results
}

func check(c Case, compiler *redfa.Compiler) []string {
	var failures []string

	a, err := compiler.Build(c.Regex)
	if c.Error != "" {
		switch {
		case err == nil:
			failures = append(failures, fmt.Sprintf("expected %s error, compiled successfully", c.Error))
		case redfa.KindOf(err).String() != c.Error:
			failures = append(failures, fmt.Sprintf("expected %s error, got %s: %v", c.Error, redfa.KindOf(err), err))
		}
		return failures
	}
	if err != nil {
		return append(failures, fmt.Sprintf("compile failed: %v", err))
	}

	if c.Postfix != "" {
		if got := a.Expr().PostfixString(); got != c.Postfix {
			failures = append(failures, fmt.Sprintf("postfix is %q, expected %q", got, c.Postfix))
		}
	}
	if c.DFAStates > 0 {
		if got := a.DFA().States(); got != c.DFAStates {
			failures = append(failures, fmt.Sprintf("DFA has %d states, expected %d", got, c.DFAStates))
		}
	}
	for _, in := range c.Accept {
		if !a.Match(in) {
			failures = append(failures, fmt.Sprintf("should accept %q", in))
		}
	}
	for _, in := range c.Reject {
		if a.Match(in) {
			failures = append(failures, fmt.Sprintf("should reject %q", in))
		}
	}
	return failures
}
