package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"

	"github.com/coregx/redfa/dfa/subset"
	"github.com/coregx/redfa/graph"
	"github.com/coregx/redfa/internal/ctxlog"
	"github.com/coregx/redfa/internal/report"
	"github.com/coregx/redfa/internal/server"
	"github.com/coregx/redfa/internal/suite"
	"github.com/coregx/redfa/search"
)

// Sentinel errors
var (
	ErrTraceNeedsDFA = errors.New("--trace cannot be combined with --nfa or --lazy")
	ErrNFAWithLazy   = errors.New("--nfa and --lazy are mutually exclusive")
	ErrSuiteFailed   = errors.New("suite cases failed")
)

// CompileCmd represents the compile command
type CompileCmd struct {
	Regex  string `arg:"" help:"Regular expression"`
	Format string `help:"Output format" enum:"json,yaml,dot" default:"json" short:"f"`
	Graph  string `help:"Automaton to draw with --format dot" enum:"nfa,dfa" default:"dfa"`
}

// Run executes the compile command
func (cmd *CompileCmd) Run(ctx *Context) error {
	cfg, err := ctx.loadConfig()
	if err != nil {
		return err
	}
	compiler, err := newCompiler(cfg)
	if err != nil {
		return err
	}

	res, err := compiler.Compile(cmd.Regex)
	if err != nil {
		return err
	}
	ctx.logger(cfg).Debug("Compiled regex.", "regex", cmd.Regex, "nfa_states", len(res.NFA.Nodes), "dfa_states", len(res.DFA.Nodes))

	switch cmd.Format {
	case "yaml":
		data, err := yaml.Marshal(res)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		_, err = ctx.Stdout.Write(data)
		return err
	case "dot":
		if cmd.Graph == "nfa" {
			return graph.WriteDOT(ctx.Stdout, res.NFA)
		}
		return graph.WriteDOT(ctx.Stdout, res.DFA)
	default:
		enc := json.NewEncoder(ctx.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
}

// MatchCmd represents the match command
type MatchCmd struct {
	Regex  string   `arg:"" help:"Regular expression"`
	Inputs []string `arg:"" optional:"" help:"Inputs to test; ε or an empty argument is the empty string"`
	Trace  bool     `help:"Print every DFA transition taken"`
	NFA    bool     `help:"Simulate the ε-NFA instead of the DFA" name:"nfa"`
	Lazy   bool     `help:"Determinize on demand; max-dfa-states bounds the cache instead of the DFA"`
}

// Run executes the match command
func (cmd *MatchCmd) Run(ctx *Context) error {
	if cmd.Trace && (cmd.NFA || cmd.Lazy) {
		return ErrTraceNeedsDFA
	}
	if cmd.NFA && cmd.Lazy {
		return ErrNFAWithLazy
	}

	cfg, err := ctx.loadConfig()
	if err != nil {
		return err
	}
	compiler, err := newCompiler(cfg)
	if err != nil {
		return err
	}

	var (
		match func(string) bool
		trace func(string) subset.Trace
	)
	if cmd.Lazy {
		d, err := compiler.BuildLazy(cmd.Regex)
		if err != nil {
			return err
		}
		match = d.Accepts
		defer func() {
			hits, misses, rate := d.Cache().Stats()
			ctx.logger(cfg).Debug("Lazy DFA cache.", "states", d.Cache().Size(), "hits", hits, "misses", misses, "hit_rate", rate, "fallbacks", d.Fallbacks())
		}()
	} else {
		a, err := compiler.Build(cmd.Regex)
		if err != nil {
			return err
		}
		match, trace = a.Match, a.Trace
		if cmd.NFA {
			match = a.MatchNFA
		}
	}

	accept := color.New(color.FgGreen)
	reject := color.New(color.FgRed)
	for _, in := range cmd.Inputs {
		if in == "ε" {
			in = ""
		}

		if match(in) {
			accept.Fprint(ctx.Stdout, "accept")
		} else {
			reject.Fprint(ctx.Stdout, "reject")
		}
		fmt.Fprintf(ctx.Stdout, " %q\n", in)

		if cmd.Trace {
			writeTrace(ctx.Stdout, trace(in))
		}
	}
	return nil
}

func writeTrace(w io.Writer, tr subset.Trace) {
	for _, step := range tr.Steps {
		if step.To == subset.InvalidState {
			fmt.Fprintf(w, "  %d --%c--> none\n", step.From, step.Symbol)
			continue
		}
		fmt.Fprintf(w, "  %d --%c--> %d\n", step.From, step.Symbol, step.To)
	}
	if tr.Final != subset.InvalidState {
		fmt.Fprintf(w, "  end in %d (final: %t)\n", tr.Final, tr.Accepted)
	}
}

// GrepCmd represents the grep command
type GrepCmd struct {
	Regex string   `arg:"" help:"Regular expression"`
	Files []string `arg:"" optional:"" help:"Files to search; standard input when none" type:"existingfile"`
}

// Run executes the grep command
func (cmd *GrepCmd) Run(ctx *Context) error {
	cfg, err := ctx.loadConfig()
	if err != nil {
		return err
	}
	compiler, err := newCompiler(cfg)
	if err != nil {
		return err
	}
	a, err := compiler.Build(cmd.Regex)
	if err != nil {
		return err
	}
	searcher, err := search.New(a.DFA(), search.Config{MaxLiterals: cfg.Search.MaxLiterals})
	if err != nil {
		return err
	}
	ctx.logger(cfg).Debug("Searcher ready.", "regex", cmd.Regex, "prefilter", searcher.HasPrefilter(), "literals", len(searcher.Literals()))

	if len(cmd.Files) == 0 {
		return grepReader(ctx.Stdout, searcher, "(standard input)", ctx.Stdin)
	}
	for _, path := range cmd.Files {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		err = grepReader(ctx.Stdout, searcher, path, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// grepReader prints name:line:match for every match in r.
func grepReader(w io.Writer, s *search.Searcher, name string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		for _, m := range s.FindAll(scanner.Text(), -1) {
			fmt.Fprintf(w, "%s:%d:%s\n", name, line, m.Text)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	return nil
}

// ExplainCmd represents the explain command
type ExplainCmd struct {
	Regex string `arg:"" help:"Regular expression"`
	HTML  bool   `help:"Render a standalone HTML page instead of Markdown" name:"html"`
}

// Run executes the explain command
func (cmd *ExplainCmd) Run(ctx *Context) error {
	cfg, err := ctx.loadConfig()
	if err != nil {
		return err
	}
	compiler, err := newCompiler(cfg)
	if err != nil {
		return err
	}
	res, err := compiler.Compile(cmd.Regex)
	if err != nil {
		return err
	}

	if cmd.HTML {
		return report.Page(ctx.Stdout, res)
	}
	_, err = io.WriteString(ctx.Stdout, report.Markdown(res))
	return err
}

// CheckCmd represents the check command
type CheckCmd struct {
	Files []string `arg:"" help:"Suite files" type:"existingfile"`
}

// Run executes the check command
func (cmd *CheckCmd) Run(ctx *Context) error {
	cfg, err := ctx.loadConfig()
	if err != nil {
		return err
	}
	compiler, err := newCompiler(cfg)
	if err != nil {
		return err
	}
	runCtx := ctxlog.WithLogger(context.Background(), ctx.logger(cfg))

	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	var passed, failed int
	for _, path := range cmd.Files {
		s, err := suite.LoadFile(path)
		if err != nil {
			return err
		}
		for _, r := range s.Run(runCtx, compiler) {
			if r.Passed() {
				passed++
				if ctx.Verbose {
					pass.Fprint(ctx.Stdout, "PASS")
					fmt.Fprintf(ctx.Stdout, " %s:%d %s\n", r.Case.File, r.Case.Line, r.Case.Name)
				}
				continue
			}
			failed++
			fail.Fprint(ctx.Stdout, "FAIL")
			fmt.Fprintf(ctx.Stdout, " %s:%d %s\n", r.Case.File, r.Case.Line, r.Case.Name)
			for _, msg := range r.Failures {
				fmt.Fprintf(ctx.Stdout, "    %s\n", msg)
			}
		}
	}

	if !ctx.Quiet {
		fmt.Fprintf(ctx.Stdout, "%d passed, %d failed\n", passed, failed)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrSuiteFailed, failed, passed+failed)
	}
	return nil
}

// ServeCmd represents the serve command
type ServeCmd struct {
	Addr string `help:"Listen address (overrides server.addr)"`
}

// Run executes the serve command
func (cmd *ServeCmd) Run(ctx *Context) error {
	cfg, err := ctx.loadConfig()
	if err != nil {
		return err
	}
	if cmd.Addr != "" {
		cfg.Server.Addr = cmd.Addr
	}
	compiler, err := newCompiler(cfg)
	if err != nil {
		return err
	}

	runCtx, stop := signalContext(context.Background())
	defer stop()

	return server.New(compiler, cfg.Server, ctx.logger(cfg)).ListenAndServe(runCtx)
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintf(ctx.Stdout, "redfa %s\n", strings.TrimSpace(version))
	return nil
}
