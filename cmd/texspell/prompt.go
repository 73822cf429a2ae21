package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompter asks on the terminal whether to set up a personal dictionary.
type prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

func newPrompter(in io.Reader, out io.Writer, interactive bool) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out, interactive: interactive}
}

// AskToConfigure implements quickfix.Prompter. Without a terminal the
// question is declined without asking.
func (p *prompter) AskToConfigure() (accept, doNotAskAgain bool) {
	if !p.interactive {
		fmt.Fprintln(p.out, "No personal dictionary is configured; run interactively or set spelling.userDictionary.")
		return false, false
	}

	fmt.Fprint(p.out, "No personal dictionary is configured. Create one? [y/N/never] ")
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, false
	case "never":
		return false, true
	default:
		return false, false
	}
}
