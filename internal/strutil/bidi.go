package strutil

import (
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// Directional formatting characters.
const (
	LRM = '\u200e' // left-to-right mark
	LRE = '\u202a' // left-to-right embedding
	PDF = '\u202c' // pop directional formatting
)

// DefaultDelimiters separate the segments of paths and qualified names.
const DefaultDelimiters = ".:/\\"

// ElementDelimiters extends DefaultDelimiters for element labels such as
// "section{Intro} (chapter.tex)".
const ElementDelimiters = DefaultDelimiters + "<>(),?{} "

// HasRTL reports whether s contains a strong right-to-left rune.
func HasRTL(s string) bool {
	for _, r := range s {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.R, bidi.AL:
			return true
		}
	}
	return false
}

// MarkLTR makes s readable in a BiDi environment using DefaultDelimiters.
func MarkLTR(s string) string {
	return MarkLTRWithDelimiters(s, DefaultDelimiters)
}

// MarkElementLabelLTR makes an element label readable in a BiDi environment.
func MarkElementLabelLTR(s string) string {
	return MarkLTRWithDelimiters(s, ElementDelimiters)
}

// MarkLTRWithDelimiters embeds s left-to-right and places an LRM after every
// delimiter so each segment keeps its visual order. Strings without
// right-to-left content are returned unchanged.
func MarkLTRWithDelimiters(s, delimiters string) string {
	if s == "" || !HasRTL(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	b.WriteRune(LRE)
	for _, r := range s {
		b.WriteRune(r)
		if strings.ContainsRune(delimiters, r) {
			b.WriteRune(LRM)
		}
	}
	b.WriteRune(PDF)
	return b.String()
}

// StripMarks removes the directional marks inserted by MarkLTR.
func StripMarks(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case LRM, LRE, PDF:
			return -1
		}
		return r
	}, s)
}
