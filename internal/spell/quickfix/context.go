package quickfix

import (
	"fmt"
	"strconv"

	"github.com/dshills/texspell/internal/spell"
	"github.com/dshills/texspell/internal/spell/tagdict"
)

// Context describes one flagged span.
type Context struct {
	Offset int
	Length int

	// Word is the flagged text as it appears in the document.
	Word string

	// Line is the document line containing the span.
	Line string

	SentenceStart bool
	CaseMismatch  bool
}

// ContextFromArguments decodes the arguments of a spelling problem.
// Boolean arguments that do not parse read as false.
func ContextFromArguments(offset, length int, args []string) (Context, error) {
	if len(args) < spell.ArgCount {
		return Context{}, fmt.Errorf("%w: got %d, want %d", ErrMalformedArguments, len(args), spell.ArgCount)
	}
	if args[spell.ArgWord] == "" {
		return Context{}, fmt.Errorf("%w: empty word", ErrMalformedArguments)
	}
	return Context{
		Offset:        offset,
		Length:        length,
		Word:          args[spell.ArgWord],
		Line:          args[spell.ArgLine],
		SentenceStart: parseBool(args[spell.ArgSentenceStart]),
		CaseMismatch:  parseBool(args[spell.ArgCaseMismatch]),
	}, nil
}

// ContextFromProblem decodes a spell.Problem.
func ContextFromProblem(p spell.Problem) (Context, error) {
	return ContextFromArguments(p.Offset, p.Length, p.Arguments)
}

// IsTag reports whether the flagged text is a markup token.
func (c Context) IsTag() bool {
	return tagdict.IsTagToken(c.Word)
}

// IsCaseError reports whether the span is a lower-case sentence start of an
// otherwise correct word.
func (c Context) IsCaseError() bool {
	return c.SentenceStart && c.CaseMismatch
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

// Describe returns the user-facing message for a spelling problem.
func Describe(p spell.Problem) string {
	if sc, err := ContextFromProblem(p); err == nil && sc.IsCaseError() {
		return fmt.Sprintf("'%s' should start with an upper case letter", sc.Word)
	}
	return fmt.Sprintf("Unknown word '%s'", p.Word())
}
