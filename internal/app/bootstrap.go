package app

import (
	"context"

	"github.com/dshills/texspell/internal/config"
	"github.com/dshills/texspell/internal/config/notify"
	"github.com/dshills/texspell/internal/logging"
	"github.com/dshills/texspell/internal/plugin/lua"
	"github.com/dshills/texspell/internal/spell"
	"github.com/dshills/texspell/internal/spell/quickfix"
	"github.com/dshills/texspell/internal/spell/tagdict"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      app.opts,
		initOrder: make([]string, 0, 6),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initLogger,
		b.initConfig,
		b.initEngine,
		b.initProcessor,
		b.initScript,
		b.initChecker,
		b.initSubscriptions,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	b.app.logger.Debug("initialized %v", b.initOrder)
	return nil
}

// initLogger creates the root logger. The settings may adjust its level
// once loaded.
func (b *bootstrapper) initLogger() error {
	cfg := logging.DefaultConfig()
	if b.opts.LogOutput != nil {
		cfg.Output = b.opts.LogOutput
	}
	if b.opts.LogLevel != "" {
		cfg.Level = logging.ParseLevel(b.opts.LogLevel)
	}
	b.app.logger = logging.New(cfg)
	b.initOrder = append(b.initOrder, "logger")
	return nil
}

// initConfig loads the settings file and environment overrides.
func (b *bootstrapper) initConfig() error {
	opts := []config.Option{
		config.WithWatcher(b.opts.Watch),
		config.WithLogger(b.app.logger),
	}
	if b.opts.ConfigDir != "" {
		opts = append(opts, config.WithConfigDir(b.opts.ConfigDir))
	}
	if b.opts.SettingsPath != "" {
		opts = append(opts, config.WithSettingsPath(b.opts.SettingsPath))
	}
	if b.opts.EnvPrefix != "" {
		opts = append(opts, config.WithEnvPrefix(b.opts.EnvPrefix))
	}

	b.app.store = config.New(opts...)
	b.initOrder = append(b.initOrder, "config")
	if err := b.app.store.Load(context.Background()); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	b.app.applyLogLevel()
	return nil
}

// initEngine creates the engine with the configured tag vocabulary.
func (b *bootstrapper) initEngine() error {
	tags := tagdict.New(tagdict.WithVocabulary(b.app.store.StringSlice(config.KeyTags)...))
	b.app.engine = spell.NewEngine(
		spell.WithTags(tags),
		spell.WithLogger(b.app.logger),
	)
	b.app.scanner = spell.NewScanner(b.app.engine)
	b.initOrder = append(b.initOrder, "engine")
	return nil
}

// initProcessor creates the quick-fix host and processor.
func (b *bootstrapper) initProcessor() error {
	b.app.host = &quickfix.Host{
		Engine:       b.app.engine,
		Preferences:  b.app.store,
		Prompter:     b.opts.Prompter,
		Configurator: b.app,
		Logger:       b.app.logger,
	}
	b.app.processor = quickfix.NewProcessor(b.app.host)
	b.initOrder = append(b.initOrder, "processor")
	return nil
}

// initScript loads the user script, if any.
func (b *bootstrapper) initScript() error {
	if b.opts.ScriptPath == "" {
		return nil
	}
	state, err := lua.LoadScript(b.opts.ScriptPath, b.app.engine, b.app.host.Threshold, lua.WithLogger(b.app.logger))
	if err != nil {
		return &InitError{Component: "script", Err: err}
	}
	b.app.script = state
	b.initOrder = append(b.initOrder, "script")
	return nil
}

// initChecker builds the first checker.
func (b *bootstrapper) initChecker() error {
	if err := b.app.Rebuild(); err != nil {
		return &InitError{Component: "checker", Err: err}
	}
	b.initOrder = append(b.initOrder, "checker")
	return nil
}

// initSubscriptions keeps the engine in step with settings changes.
func (b *bootstrapper) initSubscriptions() error {
	b.app.subs = append(b.app.subs, b.app.store.Subscribe(b.app.onConfigChange))
	b.initOrder = append(b.initOrder, "subscriptions")
	return nil
}

// cleanup releases initialized components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "subscriptions":
			for _, sub := range b.app.subs {
				sub.Unsubscribe()
			}
		case "script":
			_ = b.app.script.Close()
		case "config":
			b.app.store.Close()
		}
	}
}

// onConfigChange applies a settings change to the engine. A reload may
// touch anything, so it refreshes every derived component.
func (app *Application) onConfigChange(c notify.Change) {
	if app.closed.Load() {
		return
	}

	reload := c.Type == notify.ChangeReload
	if reload || c.Path == config.KeyLogLevel {
		app.applyLogLevel()
	}
	if reload || c.Path == config.KeyTags {
		app.reloadTags()
	}
	switch {
	case reload, c.Path == config.KeyDictionary, c.Path == config.KeyUserDictionary, c.Path == config.KeyLocale:
		if err := app.Rebuild(); err != nil {
			app.logger.Warn("keeping previous checker: %v", err)
		}
	}
}
