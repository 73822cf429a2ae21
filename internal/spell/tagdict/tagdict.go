// Package tagdict recognizes TeX markup tag tokens so the spelling layer does
// not report them as misspelled prose.
//
// A tag token is a command name framed by fixed markers, for example
// "}section{". Lookups are exact: no case folding, stemming or fuzzy matching.
package tagdict

import (
	"sort"
	"sync"
)

// Markers framing a tag token.
const (
	TagPrefix   = '}'
	TagPostfix  = '{'
	ClosePrefix = "}"
)

// Markers of TeX entities (commands and groups).
const (
	EntityStart = '\\'
	EntityEnd   = '}'
)

// EntityChars are the characters that delimit TeX entities.
var EntityChars = []rune{'\\', '{', '}'}

// GeneralTags is the built-in vocabulary of recognized command names.
var GeneralTags = []string{"textbf", "section", "subsection", "paragraph"}

// IsTagToken reports whether token is written in tag form, that is whether
// its first byte is TagPrefix. It says nothing about vocabulary membership.
func IsTagToken(token string) bool {
	return token != "" && token[0] == TagPrefix
}

// OpenForm returns the open token for a command name.
func OpenForm(name string) string {
	return string(TagPrefix) + name + string(TagPostfix)
}

// CloseForm returns the close token for a command name.
func CloseForm(name string) string {
	return ClosePrefix + name + string(TagPostfix)
}

// Dictionary is an exact-match set of tag tokens built from a vocabulary.
// Load swaps in a freshly built set under the lock; lookups read a snapshot.
type Dictionary struct {
	mu         sync.RWMutex
	words      map[string]struct{}
	vocabulary []string
	loaded     bool
}

// Option configures a Dictionary.
type Option func(*Dictionary)

// WithVocabulary replaces the built-in vocabulary.
func WithVocabulary(names ...string) Option {
	return func(d *Dictionary) {
		d.vocabulary = append([]string(nil), names...)
	}
}

// New creates an unloaded dictionary.
func New(opts ...Option) *Dictionary {
	d := &Dictionary{
		vocabulary: append([]string(nil), GeneralTags...),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load clears the dictionary and rebuilds it from the vocabulary, adding the
// open and close form of every name. It always rebuilds and reports success.
func (d *Dictionary) Load() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.words = nil
	d.loaded = false

	words := make(map[string]struct{}, len(d.vocabulary)*2)
	for _, name := range d.vocabulary {
		if name == "" {
			continue
		}
		words[OpenForm(name)] = struct{}{}
		words[CloseForm(name)] = struct{}{}
	}

	d.words = words
	d.loaded = true
	return true
}

// Unload empties the dictionary. Every lookup returns false until the next Load.
func (d *Dictionary) Unload() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.words = nil
	d.loaded = false
}

// IsLoaded reports whether Load has completed since the last Unload.
func (d *Dictionary) IsLoaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

// IsRecognized reports whether token is a known tag token. Tokens that are
// empty or do not start with TagPrefix are never looked up.
func (d *Dictionary) IsRecognized(token string) bool {
	if !IsTagToken(token) {
		return false
	}

	d.mu.RLock()
	words := d.words
	d.mu.RUnlock()

	_, ok := words[token]
	return ok
}

// Words returns the loaded tokens in sorted order.
func (d *Dictionary) Words() []string {
	d.mu.RLock()
	words := d.words
	d.mu.RUnlock()

	out := make([]string, 0, len(words))
	for w := range words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Vocabulary returns a copy of the command names the dictionary is built from.
func (d *Dictionary) Vocabulary() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.vocabulary...)
}

// SetVocabulary replaces the vocabulary. Call Load to apply it.
func (d *Dictionary) SetVocabulary(names []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vocabulary = append([]string(nil), names...)
}
