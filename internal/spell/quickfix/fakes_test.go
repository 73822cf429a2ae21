package quickfix

import (
	"errors"
	"strings"

	"github.com/dshills/texspell/internal/spell"
)

type fakeChecker struct {
	accepts    bool
	known      map[string]bool
	candidates []spell.RankedCandidate
	added      []string
	addErr     error
	calls      int
}

func (c *fakeChecker) AcceptsWords() bool { return c.accepts }

func (c *fakeChecker) AddWord(word string) error {
	if c.addErr != nil {
		return c.addErr
	}
	if !c.accepts {
		return spell.ErrWordsNotAccepted
	}
	if c.known == nil {
		c.known = make(map[string]bool)
	}
	if !c.known[word] {
		c.known[word] = true
		c.added = append(c.added, word)
	}
	return nil
}

func (c *fakeChecker) IsCorrect(word string) bool { return c.known[word] }

func (c *fakeChecker) Proposals(string, bool) []spell.RankedCandidate {
	c.calls++
	return c.candidates
}

type fakeDocument struct {
	text string
	err  error
}

func (d *fakeDocument) Replace(offset, length int, text string) error {
	if d.err != nil {
		return d.err
	}
	if offset < 0 || offset+length > len(d.text) {
		return errors.New("span out of range")
	}
	d.text = d.text[:offset] + text + d.text[offset+length:]
	return nil
}

type fakeView struct {
	removed []string
}

func (v *fakeView) RemoveProblems(word string) {
	v.removed = append(v.removed, word)
}

type fakePreferences struct {
	bools map[string]bool
	ints  map[string]int
}

func newFakePreferences() *fakePreferences {
	return &fakePreferences{
		bools: map[string]bool{PrefEnabled: true},
		ints:  map[string]int{},
	}
}

func (p *fakePreferences) Bool(key string) bool { return p.bools[key] }

func (p *fakePreferences) SetBool(key string, value bool) error {
	p.bools[key] = value
	return nil
}

func (p *fakePreferences) Int(key string) int { return p.ints[key] }

type fakePrompter struct {
	accept   bool
	doNotAsk bool
	asked    int
}

func (p *fakePrompter) AskToConfigure() (bool, bool) {
	p.asked++
	return p.accept, p.doNotAsk
}

// fakeConfigurator turns on word acceptance for its checker.
type fakeConfigurator struct {
	checker *fakeChecker
	err     error
	called  int
}

func (c *fakeConfigurator) ConfigureUserDictionary() error {
	c.called++
	if c.err != nil {
		return c.err
	}
	c.checker.accepts = true
	return nil
}

func kinds(proposals []Proposal) []Kind {
	out := make([]Kind, len(proposals))
	for i, p := range proposals {
		out[i] = p.Kind()
	}
	return out
}

func displays(proposals []Proposal) string {
	out := make([]string, len(proposals))
	for i, p := range proposals {
		out[i] = p.DisplayString()
	}
	return strings.Join(out, " | ")
}
