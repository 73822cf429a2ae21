package spell

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/texspell/internal/spell/tagdict"
)

// argumentCommands take identifiers rather than prose as their argument.
var argumentCommands = map[string]bool{
	"begin":         true,
	"end":           true,
	"label":         true,
	"ref":           true,
	"eqref":         true,
	"pageref":       true,
	"cite":          true,
	"citep":         true,
	"citet":         true,
	"usepackage":    true,
	"documentclass": true,
	"input":         true,
	"include":       true,
	"bibliography":  true,
	"url":           true,
}

// Scanner walks TeX text and flags spelling problems using an Engine.
type Scanner struct {
	engine    *Engine
	minLength int
}

// NewScanner creates a scanner over engine.
func NewScanner(engine *Engine) *Scanner {
	return &Scanner{engine: engine, minLength: 2}
}

// Scan returns the spelling problems in text, in document order. With no
// checker available it returns nil.
func (s *Scanner) Scan(text string) []Problem {
	checker := s.engine.Checker()
	if checker == nil {
		return nil
	}

	starts := sentenceStarts(text)
	next := 0
	sentence := false

	var problems []Problem
	offset := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var segment string
		segment, rest, state = uniseg.FirstWordInString(rest, state)
		off := offset
		offset += len(segment)

		if !hasLetter(segment) {
			continue
		}
		for next < len(starts) && starts[next] <= off {
			sentence = true
			next++
		}

		end := off + len(segment)
		if off > 0 && text[off-1] == tagdict.EntityStart {
			sentence = false
			continue
		}
		if isCommandArgument(text, off) {
			sentence = false
			continue
		}

		if off > 0 && text[off-1] == byte(tagdict.TagPrefix) && end < len(text) && text[end] == byte(tagdict.TagPostfix) {
			token := text[off-1 : end+1]
			if !s.engine.Tags().IsRecognized(token) && !s.engine.IsIgnored(token) {
				problems = append(problems, NewProblem(off-1, token, lineAt(text, off), sentence, false))
			}
			sentence = false
			continue
		}

		startsSentence := sentence
		sentence = false

		if s.skip(segment) || s.engine.IsIgnored(segment) {
			continue
		}

		if checker.IsCorrect(segment) {
			first, _ := utf8.DecodeRuneInString(segment)
			if startsSentence && unicode.IsLower(first) {
				problems = append(problems, NewProblem(off, segment, lineAt(text, off), true, true))
			}
			continue
		}
		problems = append(problems, NewProblem(off, segment, lineAt(text, off), startsSentence, false))
	}
	return problems
}

// skip reports whether a word is too short, numeric or an acronym.
func (s *Scanner) skip(word string) bool {
	if utf8.RuneCountInString(word) < s.minLength {
		return true
	}
	allUpper := true
	for _, r := range word {
		if unicode.IsDigit(r) {
			return true
		}
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			allUpper = false
		}
	}
	return allUpper
}

// sentenceStarts returns the byte offsets at which sentences begin.
func sentenceStarts(text string) []int {
	var starts []int
	offset := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var sentence string
		sentence, rest, state = uniseg.FirstSentenceInString(rest, state)
		starts = append(starts, offset)
		offset += len(sentence)
	}
	return starts
}

// isCommandArgument reports whether off lies inside the braces of a command
// whose argument is an identifier, such as \label{...} or \cite{...}.
func isCommandArgument(text string, off int) bool {
	open := strings.LastIndexByte(text[:off], '{')
	if open < 0 || strings.IndexByte(text[open:off], '}') >= 0 {
		return false
	}
	nameEnd := open
	nameStart := nameEnd
	for nameStart > 0 && isASCIILetter(text[nameStart-1]) {
		nameStart--
	}
	if nameStart == nameEnd || nameStart == 0 || text[nameStart-1] != tagdict.EntityStart {
		return false
	}
	return argumentCommands[text[nameStart:nameEnd]]
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// lineAt returns the line of text containing byte offset off.
func lineAt(text string, off int) string {
	start := strings.LastIndexByte(text[:off], '\n') + 1
	end := strings.IndexByte(text[off:], '\n')
	if end < 0 {
		return text[start:]
	}
	return text[start : off+end]
}

func normalize(word string) string {
	return strings.ToLower(word)
}
