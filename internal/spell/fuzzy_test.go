package spell

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestChecker(t *testing.T, opts ...FuzzyOption) *FuzzyChecker {
	t.Helper()
	base := []FuzzyOption{WithWords("hello", "world", "word", "the", "end", "this", "is", "test", "intro", "section")}
	fc, err := NewFuzzyChecker(append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewFuzzyChecker() error = %v", err)
	}
	return fc
}

func TestNewFuzzyChecker_Embedded(t *testing.T) {
	fc, err := NewFuzzyChecker()
	if err != nil {
		t.Fatalf("NewFuzzyChecker() error = %v", err)
	}
	for _, w := range []string{"world", "spelling", "section", "Paragraph"} {
		if !fc.IsCorrect(w) {
			t.Errorf("IsCorrect(%q) = false with embedded dictionary", w)
		}
	}
	if fc.IsCorrect("wolrd") {
		t.Error("IsCorrect(wolrd) = true")
	}
}

func TestNewFuzzyChecker_NoWords(t *testing.T) {
	_, err := NewFuzzyChecker(WithWords())
	if !errors.Is(err, ErrNoDictionary) {
		t.Errorf("expected ErrNoDictionary, got %v", err)
	}
}

func TestFuzzyChecker_WordListFormat(t *testing.T) {
	list := "# comment\nalpha 10\n\nbeta\ngamma notanumber\n"
	fc, err := NewFuzzyChecker(WithWordList(strings.NewReader(list)))
	if err != nil {
		t.Fatalf("NewFuzzyChecker() error = %v", err)
	}
	for _, w := range []string{"alpha", "beta", "gamma"} {
		if !fc.IsCorrect(w) {
			t.Errorf("IsCorrect(%q) = false", w)
		}
	}
	if fc.IsCorrect("comment") || fc.IsCorrect("#") {
		t.Error("comment lines must not be trained")
	}
}

func TestFuzzyChecker_Proposals(t *testing.T) {
	fc := newTestChecker(t)

	got := fc.Proposals("wolrd", false)
	texts := Texts(got)

	idx := map[string]int{}
	for i, text := range texts {
		idx[text] = i
	}
	if _, ok := idx["wolrd"]; ok {
		t.Error("the flagged word itself must not be proposed")
	}
	iWord, okWord := idx["word"]
	iWorld, okWorld := idx["world"]
	if !okWord || !okWorld {
		t.Fatalf("expected word and world in %v", texts)
	}
	if iWord > iWorld {
		t.Errorf("single-edit candidate should rank first: %v", texts)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Rank < got[i].Rank {
			t.Errorf("proposals not sorted by rank: %v", got)
		}
	}
}

func TestFuzzyChecker_ProposalsSentenceStart(t *testing.T) {
	fc := newTestChecker(t)

	for _, c := range fc.Proposals("wolrd", true) {
		if c.Text[0] < 'A' || c.Text[0] > 'Z' {
			t.Errorf("sentence-start proposal %q not capitalized", c.Text)
		}
	}
}

func TestFuzzyChecker_ProposalsEmpty(t *testing.T) {
	fc := newTestChecker(t)
	if got := fc.Proposals("", false); got != nil {
		t.Errorf("Proposals(\"\") = %v", got)
	}
}

func TestFuzzyChecker_AddWordWithoutUserDictionary(t *testing.T) {
	fc := newTestChecker(t)
	if fc.AcceptsWords() {
		t.Fatal("AcceptsWords() without user dictionary")
	}
	if err := fc.AddWord("texspell"); !errors.Is(err, ErrWordsNotAccepted) {
		t.Errorf("expected ErrWordsNotAccepted, got %v", err)
	}
}

func TestFuzzyChecker_AddWord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "user.dic")
	fc := newTestChecker(t, WithUserDictionary(path))

	if !fc.AcceptsWords() {
		t.Fatal("AcceptsWords() = false with user dictionary")
	}
	if err := fc.AddWord(""); !errors.Is(err, ErrEmptyWord) {
		t.Errorf("AddWord(\"\") error = %v", err)
	}
	if err := fc.AddWord("texspell"); err != nil {
		t.Fatalf("AddWord() error = %v", err)
	}
	if !fc.IsCorrect("texspell") {
		t.Error("added word not correct")
	}
	if err := fc.AddWord("texspell"); err != nil {
		t.Fatalf("second AddWord() error = %v", err)
	}
	if err := fc.AddWord("world"); err != nil {
		t.Fatalf("AddWord(known) error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading user dictionary: %v", err)
	}
	if string(data) != "texspell\n" {
		t.Errorf("user dictionary = %q, want one entry", data)
	}

	reloaded := newTestChecker(t, WithUserDictionary(path))
	if !reloaded.IsCorrect("texspell") {
		t.Error("user dictionary not loaded on construction")
	}
	if reloaded.UserDictionary() != path {
		t.Errorf("UserDictionary() = %q", reloaded.UserDictionary())
	}
}

func TestNewFuzzyCheckerFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("quux\nfrobnicate\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fc, err := NewFuzzyCheckerFromFile(path)
	if err != nil {
		t.Fatalf("NewFuzzyCheckerFromFile() error = %v", err)
	}
	if !fc.IsCorrect("frobnicate") {
		t.Error("file word not trained")
	}
	if fc.IsCorrect("world") {
		t.Error("embedded dictionary should be disabled when a file is given")
	}

	if _, err := NewFuzzyCheckerFromFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
