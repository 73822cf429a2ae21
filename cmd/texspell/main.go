// Package main is the entry point for the texspell command.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dshills/texspell/internal/app"
	"github.com/dshills/texspell/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK       = 0
	exitProblems = 1
	exitError    = 2
)

func main() {
	os.Exit(run(os.Args[1:], streams{
		in:          os.Stdin,
		out:         os.Stdout,
		err:         os.Stderr,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}))
}

// streams are the standard streams a command talks through.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer

	// interactive is set when in is a terminal a person can answer on.
	interactive bool
}

// globalFlags are accepted before the subcommand.
type globalFlags struct {
	settingsPath string
	logLevel     string
	scriptPath   string
}

func run(args []string, s streams) int {
	var g globalFlags
	var showVersion bool

	fs := flag.NewFlagSet("texspell", flag.ContinueOnError)
	fs.SetOutput(s.err)
	fs.StringVar(&g.settingsPath, "config", "", "Path to the settings file")
	fs.StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&g.scriptPath, "script", "", "Lua script reranking proposals")
	fs.BoolVar(&showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(s.err, "texspell - spell checking for TeX documents\n\n")
		fmt.Fprintf(s.err, "Usage: texspell [options] <command> [arguments]\n\n")
		fmt.Fprintf(s.err, "Commands:\n")
		fmt.Fprintf(s.err, "  check FILE...                     List spelling problems and their fixes\n")
		fmt.Fprintf(s.err, "  fix -offset N [-choose K] FILE    List or apply the fixes for one problem\n")
		fmt.Fprintf(s.err, "  tags                              Print the recognized markup tags\n")
		fmt.Fprintf(s.err, "  serve                             Run the language server on stdio\n")
		fmt.Fprintf(s.err, "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	if showVersion {
		fmt.Fprintf(s.out, "texspell %s\n", version)
		fmt.Fprintf(s.out, "Commit: %s\n", commit)
		fmt.Fprintf(s.out, "Built: %s\n", date)
		return exitOK
	}

	if g.logLevel != "" && !logging.ValidLevel(g.logLevel) {
		fmt.Fprintf(s.err, "Error: invalid log level %q (must be debug, info, warn, or error)\n", g.logLevel)
		return exitError
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return exitError
	}

	c := &cli{streams: s, flags: g}
	switch rest[0] {
	case "check":
		return c.check(rest[1:])
	case "fix":
		return c.fix(rest[1:])
	case "tags":
		return c.tags(rest[1:])
	case "serve":
		return c.serve(rest[1:])
	default:
		fmt.Fprintf(s.err, "Error: unknown command %q\n\n", rest[0])
		fs.Usage()
		return exitError
	}
}

// cli runs one subcommand.
type cli struct {
	streams
	flags globalFlags
}

// newApp creates the application for a subcommand.
func (c *cli) newApp(watch bool) (*app.Application, error) {
	return app.New(app.Options{
		SettingsPath: c.flags.settingsPath,
		LogLevel:     c.flags.logLevel,
		LogOutput:    c.err,
		ScriptPath:   c.flags.scriptPath,
		Watch:        watch,
		Prompter:     newPrompter(c.in, c.err, c.interactive),
	})
}

func (c *cli) fail(err error) int {
	fmt.Fprintf(c.err, "Error: %v\n", err)
	return exitError
}
