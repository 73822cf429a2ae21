package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rivo/uniseg"

	"github.com/dshills/texspell/internal/app"
	"github.com/dshills/texspell/internal/lsp"
	"github.com/dshills/texspell/internal/spell"
	"github.com/dshills/texspell/internal/spell/quickfix"
	"github.com/dshills/texspell/internal/strutil"
)

// check lists the problems in each file. It exits with exitProblems when
// any were found.
func (c *cli) check(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(c.err)
	withFixes := fs.Bool("fixes", true, "List the fixes for each problem")
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(c.err, "Usage: texspell check [-fixes=false] FILE...")
		return exitError
	}

	a, err := c.newApp(false)
	if err != nil {
		return c.fail(err)
	}
	defer a.Shutdown()

	found := false
	for _, path := range fs.Args() {
		doc, err := app.OpenDocument(path)
		if err != nil {
			return c.fail(err)
		}
		text := doc.Text()
		for _, p := range a.Check(text) {
			found = true
			line, col := position(text, p.Offset)
			fmt.Fprintf(c.out, "%s:%d:%d: %s\n", path, line, col, quickfix.Describe(p))
			if *withFixes {
				printProposals(c.out, a.Processor().Corrections([]spell.Problem{p}))
			}
		}
	}
	if found {
		return exitProblems
	}
	return exitOK
}

// fix lists the proposals for the problem at -offset or applies the one
// chosen with -choose.
func (c *cli) fix(args []string) int {
	fs := flag.NewFlagSet("fix", flag.ContinueOnError)
	fs.SetOutput(c.err)
	offset := fs.Int("offset", -1, "Byte offset inside the flagged word")
	choose := fs.Int("choose", -1, "Index of the proposal to apply")
	write := fs.Bool("write", false, "Write the result back to the file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() != 1 || *offset < 0 {
		fmt.Fprintln(c.err, "Usage: texspell fix -offset N [-choose K] [-write] FILE")
		return exitError
	}

	a, err := c.newApp(false)
	if err != nil {
		return c.fail(err)
	}
	defer a.Shutdown()

	doc, err := app.OpenDocument(fs.Arg(0))
	if err != nil {
		return c.fail(err)
	}

	if *choose < 0 {
		problem, proposals, err := a.Proposals(doc.Text(), *offset)
		if err != nil {
			return c.fail(err)
		}
		fmt.Fprintln(c.out, quickfix.Describe(problem))
		printProposals(c.out, proposals)
		return exitOK
	}

	p, err := a.Fix(doc, *offset, *choose)
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.err, "applied: %s\n", strutil.MarkElementLabelLTR(p.DisplayString()))

	if !doc.IsModified() {
		return exitOK
	}
	if *write {
		if err := doc.Save(); err != nil {
			return c.fail(err)
		}
		return exitOK
	}
	_, _ = io.WriteString(c.out, doc.Text())
	return exitOK
}

// tags prints the recognized tag tokens, or the command names with -names.
func (c *cli) tags(args []string) int {
	fs := flag.NewFlagSet("tags", flag.ContinueOnError)
	fs.SetOutput(c.err)
	names := fs.Bool("names", false, "Print command names instead of tokens")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	a, err := c.newApp(false)
	if err != nil {
		return c.fail(err)
	}
	defer a.Shutdown()

	list := a.Engine().Tags().Words()
	if *names {
		list = a.Engine().Tags().Vocabulary()
	}
	for _, w := range list {
		fmt.Fprintln(c.out, w)
	}
	return exitOK
}

// serve runs the language server on the standard streams until the client
// exits or a signal arrives.
func (c *cli) serve(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(c.err)
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	a, err := c.newApp(true)
	if err != nil {
		return c.fail(err)
	}
	defer a.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := lsp.NewServer(a.Processor(),
		lsp.WithLogger(a.Logger()),
		lsp.WithReload(a.Config().Reload),
		lsp.WithVersion(version),
	)
	if err := srv.Serve(ctx, c.in, c.out); err != nil {
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return exitProblems
		}
		return c.fail(err)
	}
	return exitOK
}

// printProposals writes numbered proposals, indices matching -choose.
func printProposals(w io.Writer, proposals []quickfix.Proposal) {
	for i, p := range proposals {
		fmt.Fprintf(w, "  %2d  %s\n", i, strutil.MarkElementLabelLTR(p.DisplayString()))
	}
}

// position converts a byte offset to a 1-based line and a 1-based column
// counted in user-perceived characters.
func position(text string, offset int) (line, col int) {
	if offset > len(text) {
		offset = len(text)
	}
	before := text[:offset]
	line = strings.Count(before, "\n") + 1
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		before = before[i+1:]
	}
	return line, uniseg.GraphemeClusterCount(before) + 1
}
