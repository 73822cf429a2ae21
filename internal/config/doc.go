// Package config is the texspell preference store.
//
// Settings come from three layers, the later overriding the earlier:
//
//	defaults      built in, see Defaults
//	user          ~/.config/texspell/settings.toml (or .yaml)
//	environment   TEXSPELL_* variables
//
// Writes go to the user layer and are persisted with Save. Every write and
// every reload of the settings file is announced through notify, which is
// how the application rebuilds its checker when the dictionary settings
// change.
//
// A settings file looks like:
//
//	[spelling]
//	enabled = true
//	proposalThreshold = 20
//	userDictionary = "~/.config/texspell/user.dic"
//	tags = ["textbf", "section", "subsection", "paragraph", "emph"]
//
//	[log]
//	level = "info"
//
// Store implements the Preferences interface used by quick fixes: Bool and
// Int never fail and fall back to the built-in default on a missing or
// mistyped value.
package config
