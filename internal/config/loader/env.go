package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/dshills/texspell/internal/config/layer"
)

// EnvLoader reads settings from prefixed environment variables.
//
// TEXSPELL_SPELLING_PROPOSAL_THRESHOLD=5 becomes
// spelling.proposalThreshold = 5: the first segment after the prefix is the
// table and the rest form a camelCase key.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix. The
// prefix includes its trailing underscore, e.g. "TEXSPELL_".
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: make(map[string]string),
		environ: os.Environ,
	}
}

// Map routes an environment variable to an explicit setting path.
func (l *EnvLoader) Map(env, path string) {
	l.mapping[env] = path
}

// Load collects all matching variables. Empty values are kept.
func (l *EnvLoader) Load() (map[string]any, error) {
	out := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.PathFor(name)
		}
		if path == "" {
			continue
		}
		layer.Assign(out, path, ParseValue(value))
	}
	return out, nil
}

// PathFor converts a variable name to its setting path.
func (l *EnvLoader) PathFor(env string) string {
	name := strings.TrimPrefix(env, l.prefix)
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' })
	if len(parts) == 0 {
		return ""
	}
	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}
	var key strings.Builder
	key.WriteString(strings.ToLower(parts[1]))
	for _, p := range parts[2:] {
		p = strings.ToLower(p)
		key.WriteString(strings.ToUpper(p[:1]))
		key.WriteString(p[1:])
	}
	return section + "." + key.String()
}

// ParseValue converts an environment string to a bool, an int64, a list
// (comma separated, for values containing a comma) or leaves it a string.
func ParseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ",") {
		var items []any
		for _, item := range strings.Split(s, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	}
	return s
}
