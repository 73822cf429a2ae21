package lsp

import (
	"fmt"
	"sync"

	"github.com/dshills/texspell/internal/spell"
)

// Document is an open text document and its current spelling problems.
// It implements quickfix.Document and quickfix.View.
type Document struct {
	mu       sync.RWMutex
	uri      DocumentURI
	version  int
	text     string
	conv     *PositionConverter
	problems []spell.Problem

	// changed is called after problems were removed outside a rescan.
	changed func(*Document)
}

// NewDocument creates a document. changed may be nil.
func NewDocument(uri DocumentURI, version int, text string, changed func(*Document)) *Document {
	return &Document{
		uri:     uri,
		version: version,
		text:    text,
		conv:    NewPositionConverter(text),
		changed: changed,
	}
}

// URI returns the document URI.
func (d *Document) URI() DocumentURI { return d.uri }

// Version returns the client's version of the document.
func (d *Document) Version() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// Text returns the current content.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// Converter returns the position converter for the current content.
func (d *Document) Converter() *PositionConverter {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.conv
}

// Problems returns a copy of the current problems.
func (d *Document) Problems() []spell.Problem {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]spell.Problem(nil), d.problems...)
}

// SetText replaces the whole content. Problems are cleared until the next
// scan.
func (d *Document) SetText(version int, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.version = version
	d.text = text
	d.conv = NewPositionConverter(text)
	d.problems = nil
}

// SetProblems stores the result of a scan.
func (d *Document) SetProblems(problems []spell.Problem) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.problems = problems
}

// Replace substitutes length bytes at offset with text. Problems inside the
// span are dropped and later ones shifted.
func (d *Document) Replace(offset, length int, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if offset < 0 || length < 0 || offset+length > len(d.text) {
		return fmt.Errorf("%w: [%d,%d) in %d bytes", ErrInvalidSpan, offset, offset+length, len(d.text))
	}
	d.text = d.text[:offset] + text + d.text[offset+length:]
	d.conv = NewPositionConverter(d.text)

	delta := len(text) - length
	kept := d.problems[:0:0]
	for _, p := range d.problems {
		switch {
		case p.Offset+p.Length <= offset:
			kept = append(kept, p)
		case p.Offset >= offset+length:
			p.Offset += delta
			kept = append(kept, p)
		}
	}
	d.problems = kept
	return nil
}

// RemoveProblems drops every problem flagging word.
func (d *Document) RemoveProblems(word string) {
	d.mu.Lock()
	before := len(d.problems)
	d.problems = spell.RemoveWord(d.problems, word)
	removed := before != len(d.problems)
	d.mu.Unlock()

	if removed && d.changed != nil {
		d.changed(d)
	}
}

// ProblemsIn returns the problems overlapping the byte span, touching ends
// included.
func (d *Document) ProblemsIn(offset, length int) []spell.Problem {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []spell.Problem
	for _, p := range d.problems {
		if p.Offset <= offset+length && offset <= p.Offset+p.Length {
			out = append(out, p)
		}
	}
	return out
}
