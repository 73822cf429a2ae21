package config

import (
	"errors"
	"fmt"

	"github.com/dshills/texspell/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrSettingNotFound indicates the setting path doesn't exist.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrTypeMismatch indicates the value type doesn't match the setting's type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidPath indicates an empty or malformed setting path.
	ErrInvalidPath = errors.New("invalid setting path")

	// ErrNoSettingsFile indicates Save was called without a settings path.
	ErrNoSettingsFile = errors.New("no settings file configured")
)

// ParseError reports a settings file that could not be decoded.
type ParseError = loader.ParseError

// TypeError is returned when a value has the wrong type for its setting.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("type error for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Is matches ErrTypeMismatch.
func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}
