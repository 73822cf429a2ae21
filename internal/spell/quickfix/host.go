package quickfix

import (
	"github.com/dshills/texspell/internal/logging"
	"github.com/dshills/texspell/internal/spell"
)

// Preference keys read and written by quick fixes.
const (
	PrefEnabled           = "spelling.enabled"
	PrefProposalThreshold = "spelling.proposalThreshold"
	PrefDoNotAsk          = "spelling.doNotAskToInstallUserDictionary"
)

// Document is the text being edited.
type Document interface {
	// Replace substitutes length bytes at offset with text.
	Replace(offset, length int, text string) error
}

// View shows problem markers for open documents.
type View interface {
	// RemoveProblems clears every outstanding marker for word.
	RemoveProblems(word string)
}

// Preferences is the persisted preference store.
type Preferences interface {
	Bool(key string) bool
	// SetBool writes key and persists it beyond the current session.
	SetBool(key string, value bool) error
	Int(key string) int
}

// Prompter asks the user whether to set up a personal dictionary.
type Prompter interface {
	// AskToConfigure reports whether the user accepted and whether the
	// question should be suppressed from now on.
	AskToConfigure() (accept, doNotAskAgain bool)
}

// Configurator runs the personal dictionary setup flow.
type Configurator interface {
	ConfigureUserDictionary() error
}

// Host bundles the collaborators proposals act on. Only Engine is required.
type Host struct {
	Engine       *spell.Engine
	Preferences  Preferences
	View         View
	Prompter     Prompter
	Configurator Configurator
	Logger       *logging.Logger
}

func (h *Host) logger() *logging.Logger {
	return logging.OrNull(h.Logger).WithComponent("quickfix")
}

func (h *Host) checker() spell.Checker {
	if h.Engine == nil {
		return nil
	}
	return h.Engine.Checker()
}

// CanAskToConfigure reports whether the user may still be asked to set up a
// personal dictionary.
func (h *Host) CanAskToConfigure() bool {
	if h.Preferences == nil || h.Prompter == nil {
		return false
	}
	return !h.Preferences.Bool(PrefDoNotAsk)
}

// Threshold returns the configured proposal limit, 0 meaning unlimited.
func (h *Host) Threshold() int {
	if h.Preferences == nil {
		return 0
	}
	if n := h.Preferences.Int(PrefProposalThreshold); n > 0 {
		return n
	}
	return 0
}

func (h *Host) removeProblems(word string) {
	if h.View != nil {
		h.View.RemoveProblems(word)
	}
}

func (h *Host) setBool(key string, value bool) {
	if h.Preferences == nil {
		h.logger().Debug("no preference store, %s not written", key)
		return
	}
	if err := h.Preferences.SetBool(key, value); err != nil {
		h.logger().Warn("writing %s: %v", key, err)
	}
}
