// Package app wires the settings store, the spelling engine, user scripts and
// the quick-fix processor together and keeps them in step with settings
// changes.
package app

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/texspell/internal/config"
	"github.com/dshills/texspell/internal/config/notify"
	"github.com/dshills/texspell/internal/logging"
	"github.com/dshills/texspell/internal/plugin/lua"
	"github.com/dshills/texspell/internal/spell"
	"github.com/dshills/texspell/internal/spell/quickfix"
)

// Application is the central coordinator for texspell components.
type Application struct {
	// mu serializes checker rebuilds.
	mu sync.Mutex

	store     *config.Store
	logger    *logging.Logger
	engine    *spell.Engine
	scanner   *spell.Scanner
	script    *lua.State
	host      *quickfix.Host
	processor *quickfix.Processor
	subs      []*notify.Subscription

	// built is the key of the installed checker.
	built checkerKey

	closed atomic.Bool
	opts   Options
}

// Options configures the application.
type Options struct {
	// ConfigDir is the configuration directory. Defaults to
	// config.DefaultConfigDir().
	ConfigDir string

	// SettingsPath is the settings file. Defaults to settings.toml in
	// ConfigDir.
	SettingsPath string

	// EnvPrefix overrides the environment variable prefix.
	EnvPrefix string

	// LogLevel overrides log.level from the settings when non-empty.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// ScriptPath is a Lua script loaded at startup.
	ScriptPath string

	// Watch reloads the settings when the file changes on disk.
	Watch bool

	// Prompter asks whether to set up a personal dictionary. Without one
	// the question is never asked.
	Prompter quickfix.Prompter

	// Words replaces the built-in word list.
	Words []string
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the settings store.
func (app *Application) Config() *config.Store { return app.store }

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger { return app.logger }

// Engine returns the spelling engine.
func (app *Application) Engine() *spell.Engine { return app.engine }

// Processor returns the quick-fix processor.
func (app *Application) Processor() *quickfix.Processor { return app.processor }

// Host returns the collaborators quick fixes act on.
func (app *Application) Host() *quickfix.Host { return app.host }

// Enabled reports whether spell checking is switched on.
func (app *Application) Enabled() bool {
	return app.store.Bool(config.KeySpellingEnabled)
}

// Check returns the spelling problems in text. Nothing is reported while
// checking is disabled.
func (app *Application) Check(text string) []spell.Problem {
	if !app.Enabled() {
		return nil
	}
	return app.scanner.Scan(text)
}

// Proposals returns the problem covering offset in text and its quick fixes.
func (app *Application) Proposals(text string, offset int) (spell.Problem, []quickfix.Proposal, error) {
	if app.closed.Load() {
		return spell.Problem{}, nil, ErrClosed
	}
	if app.engine.Checker() == nil {
		return spell.Problem{}, nil, ErrCheckingUnavailable
	}
	problem, ok := quickfix.ProblemAt(app.Check(text), offset)
	if !ok {
		return spell.Problem{}, nil, ErrNoProblem
	}
	return problem, app.processor.Corrections([]spell.Problem{problem}), nil
}

// Fix applies the proposal at index choice for the problem covering offset
// in doc and returns it.
func (app *Application) Fix(doc *Document, offset, choice int) (quickfix.Proposal, error) {
	_, proposals, err := app.Proposals(doc.Text(), offset)
	if err != nil {
		return nil, err
	}
	if choice < 0 || choice >= len(proposals) {
		return nil, ErrNoProposal
	}
	p := proposals[choice]
	if err := p.Apply(doc); err != nil {
		return nil, err
	}
	app.logger.Debug("applied %s at %d", p.Kind(), offset)
	return p, nil
}

// ConfigureUserDictionary points the settings at a personal dictionary in
// the configuration directory, saves them and rebuilds the checker.
func (app *Application) ConfigureUserDictionary() error {
	if app.closed.Load() {
		return ErrClosed
	}
	path := app.store.DefaultUserDictionaryPath()
	if err := app.store.SetString(config.KeyUserDictionary, path); err != nil {
		return err
	}
	if err := app.store.Save(); err != nil {
		return err
	}
	app.logger.Info("personal dictionary set to %s", path)
	return app.Rebuild()
}

// Shutdown releases the settings watcher and the script state. It is safe
// to call more than once.
func (app *Application) Shutdown() {
	if !app.closed.CompareAndSwap(false, true) {
		return
	}
	for _, sub := range app.subs {
		sub.Unsubscribe()
	}
	app.store.Close()
	if app.script != nil {
		_ = app.script.Close()
	}
	app.logger.Debug("shut down")
}
