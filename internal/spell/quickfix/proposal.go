package quickfix

import (
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/texspell/internal/strutil"
)

// Proposal is one selectable quick fix.
type Proposal interface {
	// ID uniquely identifies the proposal so hosts can resolve a choice
	// made after the list was rendered.
	ID() string

	Kind() Kind
	DisplayString() string

	// AdditionalInfo is an HTML fragment describing the effect.
	AdditionalInfo() string

	Relevance() int

	// Selection returns the span the proposal applies to.
	Selection() (offset, length int)

	// Apply performs the action. Only document edits return errors.
	Apply(doc Document) error
}

// base carries the fields shared by all proposals.
type base struct {
	id   string
	kind Kind
	ctx  Context
	host *Host
}

func newBase(kind Kind, ctx Context, host *Host) base {
	return base{id: uuid.NewString(), kind: kind, ctx: ctx, host: host}
}

func (b *base) ID() string     { return b.id }
func (b *base) Kind() Kind     { return b.kind }
func (b *base) Relevance() int { return b.kind.Relevance() }

func (b *base) Selection() (int, int) {
	return b.ctx.Offset, b.ctx.Length
}

// Context returns the flagged span the proposal was built for.
func (b *base) Context() Context { return b.ctx }

// WordCorrectionProposal replaces the flagged word with a candidate.
type WordCorrectionProposal struct {
	base
	text string
	rank int
}

// NewWordCorrectionProposal creates a correction to text.
func NewWordCorrectionProposal(ctx Context, text string, rank int, host *Host) *WordCorrectionProposal {
	return &WordCorrectionProposal{base: newBase(KindCorrection, ctx, host), text: text, rank: rank}
}

// Text returns the replacement.
func (p *WordCorrectionProposal) Text() string { return p.text }

// Rank returns the checker's rank for the replacement.
func (p *WordCorrectionProposal) Rank() int { return p.rank }

func (p *WordCorrectionProposal) DisplayString() string {
	return fmt.Sprintf("Change to '%s'", p.text)
}

func (p *WordCorrectionProposal) AdditionalInfo() string {
	return emphasize(p.ctx.Line, p.ctx.Word, p.text)
}

func (p *WordCorrectionProposal) Apply(doc Document) error {
	return replace(doc, p.ctx, p.text)
}

// ChangeCaseProposal upper-cases the first letter of a sentence start.
type ChangeCaseProposal struct {
	base
	text string
}

// NewChangeCaseProposal creates a change-case proposal. The replacement is
// computed with the engine locale.
func NewChangeCaseProposal(ctx Context, host *Host) *ChangeCaseProposal {
	var upper func(string) string
	if host != nil && host.Engine != nil {
		upper = host.Engine.Upper
	}
	return &ChangeCaseProposal{
		base: newBase(KindChangeCase, ctx, host),
		text: strutil.UpperFirst(ctx.Word, upper),
	}
}

// Text returns the replacement.
func (p *ChangeCaseProposal) Text() string { return p.text }

func (p *ChangeCaseProposal) DisplayString() string {
	return "Change to upper case"
}

func (p *ChangeCaseProposal) AdditionalInfo() string {
	return emphasize(p.ctx.Line, p.ctx.Word, p.text)
}

func (p *ChangeCaseProposal) Apply(doc Document) error {
	return replace(doc, p.ctx, p.text)
}

// IgnoreWordProposal ignores the word for the rest of the session.
type IgnoreWordProposal struct {
	base
}

// NewIgnoreWordProposal creates an ignore proposal.
func NewIgnoreWordProposal(ctx Context, host *Host) *IgnoreWordProposal {
	return &IgnoreWordProposal{base: newBase(KindIgnoreWord, ctx, host)}
}

func (p *IgnoreWordProposal) DisplayString() string {
	return fmt.Sprintf("Ignore '%s' during the current session", p.ctx.Word)
}

func (p *IgnoreWordProposal) AdditionalInfo() string {
	return fmt.Sprintf("Ignores '%s'. The word will no longer be flagged during the current session.", htmlText(p.ctx.Word))
}

func (p *IgnoreWordProposal) Apply(Document) error {
	if p.host == nil || p.host.Engine == nil {
		return nil
	}
	p.host.Engine.IgnoreWord(p.ctx.Word)
	p.host.removeProblems(p.ctx.Word)
	return nil
}

// DisableSpellingProposal turns spell checking off globally.
type DisableSpellingProposal struct {
	base
}

// NewDisableSpellingProposal creates a disable proposal.
func NewDisableSpellingProposal(ctx Context, host *Host) *DisableSpellingProposal {
	return &DisableSpellingProposal{base: newBase(KindDisableChecking, ctx, host)}
}

func (p *DisableSpellingProposal) DisplayString() string {
	return "Disable spell checking"
}

func (p *DisableSpellingProposal) AdditionalInfo() string {
	return "Turns off spell checking in all documents."
}

func (p *DisableSpellingProposal) Apply(Document) error {
	if p.host == nil {
		return nil
	}
	p.host.setBool(PrefEnabled, false)
	p.host.logger().Info("spell checking disabled")
	return nil
}

func replace(doc Document, ctx Context, text string) error {
	if doc == nil {
		return ErrNoDocument
	}
	if err := doc.Replace(ctx.Offset, ctx.Length, text); err != nil {
		return fmt.Errorf("replacing %q: %w", ctx.Word, err)
	}
	return nil
}

// emphasize renders line with word replaced by a bold replacement. When word
// does not occur in line only the replacement is shown.
func emphasize(line, word, replacement string) string {
	var b strings.Builder
	i := strings.Index(line, word)
	if line == "" || word == "" || i < 0 {
		b.WriteString("<b>")
		b.WriteString(htmlText(replacement))
		b.WriteString("</b>")
		return b.String()
	}
	b.WriteString(htmlText(line[:i]))
	b.WriteString("<b>")
	b.WriteString(htmlText(replacement))
	b.WriteString("</b>")
	b.WriteString(htmlText(line[i+len(word):]))
	return b.String()
}

// htmlText escapes s for HTML and marks it for left-to-right display.
func htmlText(s string) string {
	return html.EscapeString(strutil.MarkLTR(s))
}
