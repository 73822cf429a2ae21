package strutil

import (
	"reflect"
	"strings"
	"testing"
)

func TestIsLowerCase(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'a', true},
		{'A', false},
		{'1', true},
		{'é', true},
		{'É', false},
	}
	for _, tt := range tests {
		if got := IsLowerCase(tt.r); got != tt.want {
			t.Errorf("IsLowerCase(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestStartsWithIgnoreCase(t *testing.T) {
	tests := []struct {
		text, prefix string
		want         bool
	}{
		{"Section", "sec", true},
		{"section", "SECTION", true},
		{"sec", "section", false},
		{"textbf", "", true},
		{"Über", "üb", true},
		{"paragraph", "para_", false},
	}
	for _, tt := range tests {
		if got := StartsWithIgnoreCase(tt.text, tt.prefix); got != tt.want {
			t.Errorf("StartsWithIgnoreCase(%q, %q) = %v, want %v", tt.text, tt.prefix, got, tt.want)
		}
	}
}

func TestRemoveNewLine(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"no newline", "no newline"},
		{"one\ntwo", "one two"},
		{"one\n\ntwo", "one two"},
		{"\nleading", "leading"},
		{"trailing\n", "trailing "},
	}
	for _, tt := range tests {
		if got := RemoveNewLine(tt.in); got != tt.want {
			t.Errorf("RemoveNewLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConvertIntoLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{""}},
		{"a", []string{"a"}},
		{"a\nb", []string{"a", "b"}},
		{"a\r\nb\rc", []string{"a", "b", "c"}},
		{"a\n", []string{"a", ""}},
	}
	for _, tt := range tests {
		if got := ConvertIntoLines(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ConvertIntoLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContainsOnlyWhitespaces(t *testing.T) {
	if !ContainsOnlyWhitespaces("") {
		t.Error("empty string should be whitespace only")
	}
	if !ContainsOnlyWhitespaces(" \t\n") {
		t.Error("blanks should be whitespace only")
	}
	if ContainsOnlyWhitespaces(" x ") {
		t.Error("x is not whitespace")
	}
}

func TestRemoveTrailingEmptyLines(t *testing.T) {
	got := RemoveTrailingEmptyLines([]string{"a", "", "b", " ", ""})
	want := []string{"a", "", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := RemoveTrailingEmptyLines([]string{"", "  "}); len(got) != 0 {
		t.Errorf("expected no lines, got %q", got)
	}
}

func TestConcatenate(t *testing.T) {
	if got := Concatenate([]string{"a", "b", "c"}, "\n"); got != "a\nb\nc" {
		t.Errorf("Concatenate = %q", got)
	}
	if got := Concatenate(nil, ","); got != "" {
		t.Errorf("Concatenate(nil) = %q", got)
	}
}

func TestEqualsRunes(t *testing.T) {
	if !EqualsRunes("tag", []rune("tag")) {
		t.Error("expected equal")
	}
	if EqualsRunes("tag", []rune("tags")) {
		t.Error("expected length mismatch")
	}
	if EqualsRunes("tags", []rune("tag")) {
		t.Error("expected length mismatch")
	}
	if EqualsRunes("tag", []rune("tug")) {
		t.Error("expected content mismatch")
	}
}

func TestRemoveTrailingCharacters(t *testing.T) {
	tests := []struct {
		in   string
		c    rune
		want string
	}{
		{"abc", 'x', "abc"},
		{"abcxx", 'x', "abc"},
		{"xxx", 'x', ""},
		{"", 'x', ""},
	}
	for _, tt := range tests {
		if got := RemoveTrailingCharacters(tt.in, tt.c); got != tt.want {
			t.Errorf("RemoveTrailingCharacters(%q, %q) = %q, want %q", tt.in, tt.c, got, tt.want)
		}
	}
}

func TestUpperFirst(t *testing.T) {
	if got := UpperFirst("world", nil); got != "World" {
		t.Errorf("UpperFirst = %q", got)
	}
	if got := UpperFirst("", nil); got != "" {
		t.Errorf("UpperFirst(empty) = %q", got)
	}
	if got := UpperFirst("ärger", strings.ToUpper); got != "Ärger" {
		t.Errorf("UpperFirst with mapper = %q", got)
	}
	if got := UpperFirst("}section{", nil); got != "}Section{" {
		t.Errorf("UpperFirst(tag) = %q", got)
	}
	if got := UpperFirst("}{", strings.ToUpper); got != "}{" {
		t.Errorf("UpperFirst(no letter) = %q", got)
	}
}

func TestMarkLTR(t *testing.T) {
	plain := "chapter/intro.tex"
	if got := MarkLTR(plain); got != plain {
		t.Errorf("LTR-only text should be unchanged, got %q", got)
	}

	rtl := "שלום/intro.tex"
	got := MarkLTR(rtl)
	if []rune(got)[0] != LRE {
		t.Errorf("expected leading LRE in %q", got)
	}
	if !strings.ContainsRune(got, LRM) {
		t.Errorf("expected LRM after delimiters in %q", got)
	}
	if StripMarks(got) != rtl {
		t.Errorf("StripMarks did not restore original: %q", StripMarks(got))
	}
}

func TestMarkElementLabelLTR(t *testing.T) {
	got := MarkElementLabelLTR("مرحبا (x)")
	if strings.Count(got, string(LRM)) != 3 {
		t.Errorf("expected marks after space and both parentheses, got %q", got)
	}
}

func TestHasRTL(t *testing.T) {
	if HasRTL("hello") {
		t.Error("hello has no RTL")
	}
	if !HasRTL("abc مرحبا") {
		t.Error("arabic should be RTL")
	}
}
