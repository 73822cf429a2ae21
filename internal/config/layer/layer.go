// Package layer holds the configuration layers of texspell and merges them.
//
// Each layer is a nested map. Layers with a higher priority override lower
// ones key by key; nested tables are merged rather than replaced.
package layer

import "time"

// Source tells where a layer came from.
type Source uint8

const (
	// SourceBuiltin is the compiled-in defaults.
	SourceBuiltin Source = iota
	// SourceUser is the user settings file.
	SourceUser
	// SourceEnv is TEXSPELL_* environment variables.
	SourceEnv
	// SourceSession is in-memory overrides such as command-line flags.
	SourceSession
)

// Standard priorities. Higher values win.
const (
	PriorityBuiltin = 0
	PriorityUser    = 100
	PriorityEnv     = 500
	PrioritySession = 1000
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "defaults"
	case SourceUser:
		return "user"
	case SourceEnv:
		return "environment"
	case SourceSession:
		return "session"
	default:
		return "unknown"
	}
}

// Priority returns the standard priority for s.
func (s Source) Priority() int {
	switch s {
	case SourceUser:
		return PriorityUser
	case SourceEnv:
		return PriorityEnv
	case SourceSession:
		return PrioritySession
	default:
		return PriorityBuiltin
	}
}

// Layer is one configuration source.
type Layer struct {
	Name     string
	Source   Source
	Priority int

	// Path is the file the layer was read from, if any.
	Path string

	Data    map[string]any
	ModTime time.Time

	// ReadOnly layers reject Set and Update.
	ReadOnly bool
}

// New creates an empty layer with the standard priority for source.
func New(name string, source Source) *Layer {
	return NewWithData(name, source, nil)
}

// NewWithData creates a layer holding data. A nil map is replaced by an
// empty one.
func NewWithData(name string, source Source, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: source.Priority(),
		Data:     data,
		ModTime:  time.Now(),
	}
}

// Clone returns a deep copy of l.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Data = Clone(l.Data)
	return &c
}
