package spell

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/texspell/internal/logging"
	"github.com/dshills/texspell/internal/spell/tagdict"
)

// Checker is the spell-checking capability consumed by quick fixes.
type Checker interface {
	// AcceptsWords reports whether AddWord can register new words.
	AcceptsWords() bool

	// AddWord registers word in the personal word list.
	// Registering a known word is a no-op.
	AddWord(word string) error

	// IsCorrect reports whether word is spelled correctly.
	IsCorrect(word string) bool

	// Proposals returns ranked replacements for word. When sentenceStart is
	// true the candidates are capitalized for the start of a sentence.
	Proposals(word string, sentenceStart bool) []RankedCandidate
}

// Engine hands out the active Checker together with the tag dictionary, the
// session ignore set and the locale used for case changes.
type Engine struct {
	mu      sync.RWMutex
	checker Checker
	locale  language.Tag

	tags   *tagdict.Dictionary
	ignore *IgnoreSet
	logger *logging.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithChecker sets the initial checker.
func WithChecker(c Checker) EngineOption {
	return func(e *Engine) {
		e.checker = c
	}
}

// WithLocale sets the locale used for case mapping.
func WithLocale(tag language.Tag) EngineOption {
	return func(e *Engine) {
		e.locale = tag
	}
}

// WithTags sets the tag dictionary. It is loaded if it is not already.
func WithTags(d *tagdict.Dictionary) EngineOption {
	return func(e *Engine) {
		e.tags = d
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *logging.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an engine. Without WithTags the built-in tag vocabulary
// is loaded.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		locale: language.English,
		ignore: NewIgnoreSet(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.tags == nil {
		e.tags = tagdict.New()
	}
	if !e.tags.IsLoaded() {
		e.tags.Load()
	}
	e.logger = logging.OrNull(e.logger).WithComponent("engine")
	return e
}

// Checker returns the active checker, or nil when checking is unavailable.
func (e *Engine) Checker() Checker {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.checker
}

// SetChecker replaces the active checker. Passing nil makes checking unavailable.
func (e *Engine) SetChecker(c Checker) {
	e.mu.Lock()
	e.checker = c
	e.mu.Unlock()
	if c == nil {
		e.logger.Debug("checker unavailable")
	}
}

// Locale returns the locale used for case mapping.
func (e *Engine) Locale() language.Tag {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.locale
}

// SetLocale changes the locale used for case mapping.
func (e *Engine) SetLocale(tag language.Tag) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.locale = tag
}

// Upper returns the locale-aware upper-case mapping of s.
func (e *Engine) Upper(s string) string {
	return cases.Upper(e.Locale()).String(s)
}

// Tags returns the tag dictionary.
func (e *Engine) Tags() *tagdict.Dictionary {
	return e.tags
}

// IgnoreWord adds word to the session ignore set.
func (e *Engine) IgnoreWord(word string) {
	e.ignore.Add(word)
	e.logger.Debug("ignoring %q for this session", word)
}

// IsIgnored reports whether word was ignored during this session.
func (e *Engine) IsIgnored(word string) bool {
	return e.ignore.Contains(word)
}

// Ignored returns the session ignore set.
func (e *Engine) Ignored() *IgnoreSet {
	return e.ignore
}

// IsCorrect reports whether word needs no correction: it is ignored, a known
// tag token, or accepted by the checker. With no checker every word is correct.
func (e *Engine) IsCorrect(word string) bool {
	if e.IsIgnored(word) || e.tags.IsRecognized(word) {
		return true
	}
	c := e.Checker()
	if c == nil {
		return true
	}
	return c.IsCorrect(word)
}
