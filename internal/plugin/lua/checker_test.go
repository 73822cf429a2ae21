package lua

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/texspell/internal/spell"
)

type stubChecker struct {
	proposals []spell.RankedCandidate
	added     []string
}

func (c *stubChecker) AcceptsWords() bool { return true }
func (c *stubChecker) IsCorrect(word string) bool {
	return word == "the"
}

func (c *stubChecker) AddWord(word string) error {
	c.added = append(c.added, word)
	return nil
}

func (c *stubChecker) Proposals(string, bool) []spell.RankedCandidate {
	return append([]spell.RankedCandidate(nil), c.proposals...)
}

func newStub() *stubChecker {
	return &stubChecker{proposals: []spell.RankedCandidate{
		{Text: "world", Rank: 300},
		{Text: "word", Rank: 200},
		{Text: "would", Rank: 100},
	}}
}

func TestScriptedChecker_Rerank(t *testing.T) {
	s := NewState()
	defer s.Close()
	if err := s.DoString(`
function rerank(word, text, rank)
  if text == "would" then return 1000 end
  if text == "word" then return "not a number" end
  if text == "world" then error("fails") end
  return rank
end`); err != nil {
		t.Fatal(err)
	}

	inner := newStub()
	sc := NewScriptedChecker(inner, s, nil)
	got := spell.Texts(sc.Proposals("wolrd", false))
	want := []string{"would", "world", "word"}
	if len(got) != len(want) {
		t.Fatalf("Proposals() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Proposals()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if inner.proposals[2].Rank != 100 {
		t.Error("inner proposals were modified")
	}
}

func TestScriptedChecker_NonFiniteRank(t *testing.T) {
	s := NewState()
	defer s.Close()
	if err := s.DoString(`
function rerank(word, text, rank)
  if text == "world" then return 0/0 end
  if text == "word" then return math.huge end
  if text == "would" then return -math.huge end
  return rank
end`); err != nil {
		t.Fatal(err)
	}

	got := NewScriptedChecker(newStub(), s, nil).Proposals("wolrd", false)
	want := []spell.RankedCandidate{{Text: "world", Rank: 300}, {Text: "word", Rank: 200}, {Text: "would", Rank: 100}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Proposals()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestScriptedChecker_NoHook(t *testing.T) {
	s := NewState()
	defer s.Close()

	sc := NewScriptedChecker(newStub(), s, nil)
	if got := spell.Texts(sc.Proposals("wolrd", false)); got[0] != "world" {
		t.Errorf("Proposals() = %v", got)
	}
}

func TestScriptedChecker_Delegates(t *testing.T) {
	s := NewState()
	defer s.Close()

	inner := newStub()
	sc := NewScriptedChecker(inner, s, nil)
	if !sc.AcceptsWords() || !sc.IsCorrect("the") || sc.IsCorrect("teh") {
		t.Error("delegation mismatch")
	}
	if err := sc.AddWord("texspell"); err != nil || len(inner.added) != 1 {
		t.Errorf("AddWord() = %v, added %v", err, inner.added)
	}
	if sc.Inner() != spell.Checker(inner) {
		t.Error("Inner() mismatch")
	}
}

func TestUnwrap(t *testing.T) {
	s := NewState()
	defer s.Close()

	inner := newStub()
	wrapped := NewScriptedChecker(NewScriptedChecker(inner, s, nil), s, nil)
	if Unwrap(wrapped) != spell.Checker(inner) {
		t.Error("Unwrap() did not reach the inner checker")
	}
	if Unwrap(nil) != nil {
		t.Error("Unwrap(nil) != nil")
	}
}

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	engine := spell.NewEngine(spell.WithChecker(newStub()))

	good := filepath.Join(dir, "good.lua")
	script := `
local ts = require("texspell")
ts.ignore("texspell")
function rerank(word, text, rank)
  return rank + ts.threshold()
end`
	if err := os.WriteFile(good, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScript(good, engine, func() int { return 7 })
	if err != nil {
		t.Fatalf("LoadScript() error = %v", err)
	}
	defer s.Close()
	if !engine.IsIgnored("texspell") {
		t.Error("script ignore did not reach the engine")
	}
	sc := NewScriptedChecker(engine.Checker(), s, nil)
	if got := sc.Proposals("wolrd", false); got[0].Rank != 307 {
		t.Errorf("reranked = %+v", got)
	}

	bad := filepath.Join(dir, "bad.lua")
	if err := os.WriteFile(bad, []byte("this is not lua"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScript(bad, engine, nil); err == nil {
		t.Error("expected a syntax error")
	}
	if _, err := LoadScript(filepath.Join(dir, "missing.lua"), engine, nil); err == nil {
		t.Error("expected an error for a missing script")
	}
}
