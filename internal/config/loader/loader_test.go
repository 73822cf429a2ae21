package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestTOMLLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := `
[spelling]
enabled = false
proposalThreshold = 5
tags = ["emph", "cite"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := NewTOMLLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	spelling := data["spelling"].(map[string]any)
	if spelling["enabled"] != false {
		t.Errorf("enabled = %v", spelling["enabled"])
	}
	if spelling["proposalThreshold"] != int64(5) {
		t.Errorf("proposalThreshold = %#v", spelling["proposalThreshold"])
	}
	if !reflect.DeepEqual(spelling["tags"], []any{"emph", "cite"}) {
		t.Errorf("tags = %#v", spelling["tags"])
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	data, err := NewTOMLLoader(filepath.Join(t.TempDir(), "none.toml")).Load()
	if err != nil || data != nil {
		t.Errorf("missing file: data = %v, err = %v", data, err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	_, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[spelling\nenabled = "))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Line == 0 {
		t.Errorf("ParseError without position: %v", pe)
	}
	if pe.Unwrap() == nil {
		t.Error("ParseError should wrap the decoder error")
	}
}

func TestTOMLLoader_EncodeRoundTrip(t *testing.T) {
	l := NewTOMLLoader("")
	in := map[string]any{
		"spelling": map[string]any{"enabled": false, "userDictionary": "/tmp/u.dic"},
	}
	var buf bytes.Buffer
	if err := l.Encode(&buf, in); err != nil {
		t.Fatal(err)
	}
	out, err := l.LoadFromReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}

func TestYAMLLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "spelling:\n  enabled: true\n  proposalThreshold: 7\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	l := ForPath(path)
	if _, ok := l.(*YAMLLoader); !ok {
		t.Fatalf("ForPath(%q) = %T", path, l)
	}
	data, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	spelling := data["spelling"].(map[string]any)
	if spelling["proposalThreshold"] != 7 {
		t.Errorf("proposalThreshold = %#v", spelling["proposalThreshold"])
	}

	if _, err := l.LoadFromReader(strings.NewReader("spelling: [")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestForPath(t *testing.T) {
	tests := map[string]string{
		"a/settings.toml": "*loader.TOMLLoader",
		"settings":        "*loader.TOMLLoader",
		"b/settings.yml":  "*loader.YAMLLoader",
		"B/SETTINGS.YAML": "*loader.YAMLLoader",
	}
	for path, want := range tests {
		if got := reflect.TypeOf(ForPath(path)).String(); got != want {
			t.Errorf("ForPath(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestEnvLoader(t *testing.T) {
	l := NewEnvLoader("TEXSPELL_")
	l.environ = func() []string {
		return []string{
			"TEXSPELL_SPELLING_ENABLED=false",
			"TEXSPELL_SPELLING_PROPOSAL_THRESHOLD=5",
			"TEXSPELL_SPELLING_TAGS=emph, cite",
			"TEXSPELL_LOG_LEVEL=debug",
			"TEXSPELL_DICT=/usr/share/dict/words",
			"HOME=/root",
		}
	}
	l.Map("TEXSPELL_DICT", "spelling.dictionary")

	data, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"spelling": map[string]any{
			"enabled":           false,
			"proposalThreshold": int64(5),
			"tags":              []any{"emph", "cite"},
			"dictionary":        "/usr/share/dict/words",
		},
		"log": map[string]any{"level": "debug"},
	}
	if !reflect.DeepEqual(data, want) {
		t.Errorf("Load() = %v, want %v", data, want)
	}
}

func TestEnvLoader_PathFor(t *testing.T) {
	l := NewEnvLoader("TEXSPELL_")
	tests := map[string]string{
		"TEXSPELL_SPELLING_DO_NOT_ASK_TO_INSTALL_USER_DICTIONARY": "spelling.doNotAskToInstallUserDictionary",
		"TEXSPELL_SPELLING_USER_DICTIONARY":                       "spelling.userDictionary",
		"TEXSPELL_LOG":                                            "log",
		"TEXSPELL_":                                               "",
	}
	for env, want := range tests {
		if got := l.PathFor(env); got != want {
			t.Errorf("PathFor(%q) = %q, want %q", env, got, want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"Off", false},
		{"42", int64(42)},
		{"a,b", []any{"a", "b"}},
		{"en", "en"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParseValue(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
