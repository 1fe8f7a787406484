// Command redfa converts regular expressions to DFAs and explains the steps.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/coregx/redfa"
	"github.com/coregx/redfa/internal/config"
	"github.com/coregx/redfa/internal/ctxlog"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// Context represents the global context for commands
type Context struct {
	Config       string
	Verbose      bool
	Quiet        bool
	MaxDFAStates uint32

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CLI represents the command-line interface
type CLI struct {
	Config       string `help:"Configuration file path" default:"redfa.yaml"`
	Verbose      bool   `help:"Enable verbose output" short:"v"`
	Quiet        bool   `help:"Suppress output" short:"q"`
	MaxDFAStates uint32 `help:"Override compile.max_dfa_states from the configuration" name:"max-dfa-states"`

	Compile CompileCmd `cmd:"" help:"Convert a regex and print the automaton"`
	Match   MatchCmd   `cmd:"" help:"Run inputs through the DFA"`
	Grep    GrepCmd    `cmd:"" help:"Print matches of a regex in files"`
	Explain ExplainCmd `cmd:"" help:"Print the step-by-step conversion"`
	Check   CheckCmd   `cmd:"" help:"Run HCL suite files"`
	Serve   ServeCmd   `cmd:"" help:"Serve the converter over HTTP"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// loadConfig loads the configuration file and applies flag overrides.
func (c *Context) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if c.MaxDFAStates > 0 {
		cfg.Compile.MaxDFAStates = c.MaxDFAStates
	}
	return cfg, nil
}

// logger builds the stderr logger. --verbose forces debug, --quiet forces
// errors only.
func (c *Context) logger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.Log.SlogLevel() // validated by config.Load
	switch {
	case c.Verbose:
		level = slog.LevelDebug
	case c.Quiet:
		level = slog.LevelError
	}
	return ctxlog.New(level, cfg.Log.Format, c.Stderr)
}

func newCompiler(cfg *config.Config) (*redfa.Compiler, error) {
	return redfa.NewCompiler(redfa.Config{MaxDFAStates: cfg.Compile.MaxDFAStates})
}

// run parses args and executes the selected command. It returns the process
// exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name("redfa"),
		kong.Description("Regular expression to DFA converter."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		printError(stderr, err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		printError(stderr, err)
		return 1
	}

	appCtx := &Context{
		Config:       cli.Config,
		Verbose:      cli.Verbose,
		Quiet:        cli.Quiet,
		MaxDFAStates: cli.MaxDFAStates,
		Stdin:        stdin,
		Stdout:       stdout,
		Stderr:       stderr,
	}
	if err := kctx.Run(appCtx); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed).Fprint(w, "Error: ")
	fmt.Fprintf(w, "%v\n", err)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
