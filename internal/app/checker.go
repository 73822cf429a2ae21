package app

import (
	"golang.org/x/text/language"

	"github.com/dshills/texspell/internal/config"
	"github.com/dshills/texspell/internal/logging"
	"github.com/dshills/texspell/internal/plugin/lua"
	"github.com/dshills/texspell/internal/spell"
)

// checkerKey is the set of settings a checker is built from.
type checkerKey struct {
	dictionary     string
	userDictionary string
	locale         string
}

func (app *Application) currentKey() checkerKey {
	return checkerKey{
		dictionary:     config.ExpandPath(app.store.String(config.KeyDictionary)),
		userDictionary: app.store.UserDictionaryPath(),
		locale:         app.store.String(config.KeyLocale),
	}
}

// Rebuild builds a checker from the current settings and installs it. When
// the settings it depends on are unchanged the active checker is kept. On
// failure the previous checker stays active.
func (app *Application) Rebuild() error {
	app.mu.Lock()
	defer app.mu.Unlock()

	key := app.currentKey()
	if app.engine.Checker() != nil && key == app.built {
		return nil
	}

	locale, err := language.Parse(key.locale)
	if err != nil {
		app.logger.Warn("unknown locale %q, using English", key.locale)
		locale = language.English
	}
	app.engine.SetLocale(locale)

	checker, err := app.buildChecker(key, locale)
	if err != nil {
		return err
	}
	app.engine.SetChecker(checker)
	app.built = key
	app.logger.Debug("checker rebuilt (dictionary=%q user=%q locale=%s)", key.dictionary, key.userDictionary, locale)
	return nil
}

func (app *Application) buildChecker(key checkerKey, locale language.Tag) (spell.Checker, error) {
	opts := []spell.FuzzyOption{spell.WithCheckerLocale(locale)}
	if key.userDictionary != "" {
		opts = append(opts, spell.WithUserDictionary(key.userDictionary))
	}
	if len(app.opts.Words) > 0 {
		opts = append(opts, spell.WithWords(app.opts.Words...))
	}

	var (
		fc  *spell.FuzzyChecker
		err error
	)
	if key.dictionary != "" {
		fc, err = spell.NewFuzzyCheckerFromFile(key.dictionary, opts...)
	} else {
		fc, err = spell.NewFuzzyChecker(opts...)
	}
	if err != nil {
		return nil, err
	}

	if app.script != nil {
		return lua.NewScriptedChecker(fc, app.script, app.logger), nil
	}
	return fc, nil
}

// reloadTags rebuilds the tag dictionary from the settings.
func (app *Application) reloadTags() {
	tags := app.engine.Tags()
	tags.SetVocabulary(app.store.StringSlice(config.KeyTags))
	tags.Load()
	app.logger.Debug("tag dictionary loaded with %d tokens", len(tags.Words()))
}

// applyLogLevel sets the level from the options or, failing that, the
// settings.
func (app *Application) applyLogLevel() {
	level := app.opts.LogLevel
	if level == "" {
		level = app.store.String(config.KeyLogLevel)
	}
	app.logger.SetLevel(logging.ParseLevel(level))
}
