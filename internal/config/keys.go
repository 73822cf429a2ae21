package config

import (
	"github.com/dshills/texspell/internal/config/layer"
	"github.com/dshills/texspell/internal/spell/tagdict"
)

// Setting paths.
const (
	KeySpellingEnabled   = "spelling.enabled"
	KeyProposalThreshold = "spelling.proposalThreshold"
	KeyDoNotAsk          = "spelling.doNotAskToInstallUserDictionary"
	KeyUserDictionary    = "spelling.userDictionary"
	KeyDictionary        = "spelling.dictionary"
	KeyLocale            = "spelling.locale"
	KeyTags              = "spelling.tags"
	KeyLogLevel          = "log.level"
)

// Default values.
const (
	DefaultProposalLimit = 20
	DefaultLocale        = "en"
	DefaultLogLevel      = "info"

	// EnvPrefix starts every environment override.
	EnvPrefix = "TEXSPELL_"

	// SettingsFile is the settings file name inside the config directory.
	SettingsFile = "settings.toml"

	// UserDictionaryFile is the personal word list created by
	// ConfigureUserDictionary.
	UserDictionaryFile = "user.dic"

	appDirName = "texspell"
)

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	tags := make([]string, len(tagdict.GeneralTags))
	copy(tags, tagdict.GeneralTags)

	data := make(map[string]any)
	for path, v := range map[string]any{
		KeySpellingEnabled:   true,
		KeyProposalThreshold: DefaultProposalLimit,
		KeyDoNotAsk:          false,
		KeyUserDictionary:    "",
		KeyDictionary:        "",
		KeyLocale:            DefaultLocale,
		KeyTags:              tags,
		KeyLogLevel:          DefaultLogLevel,
	} {
		layer.Assign(data, path, v)
	}
	return data
}
