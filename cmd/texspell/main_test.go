package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

type testEnv struct {
	dir      string
	settings string
	file     string
}

// newTestEnv writes a word list, a settings file using it and a document.
func newTestEnv(t *testing.T, text string) testEnv {
	t.Helper()
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(words, []byte("hello\nworld\nword\nthis\nis\nthe\nend\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	settings := filepath.Join(dir, "settings.toml")
	content := "[spelling]\ndictionary = \"" + filepath.ToSlash(words) + "\"\n\n[log]\nlevel = \"error\"\n"
	if err := os.WriteFile(settings, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "paper.tex")
	if err := os.WriteFile(file, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return testEnv{dir: dir, settings: settings, file: file}
}

func runCLI(t *testing.T, input string, interactive bool, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, streams{
		in:          strings.NewReader(input),
		out:         &out,
		err:         &errOut,
		interactive: interactive,
	})
	return code, out.String(), errOut.String()
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no command", nil, exitError},
		{"unknown command", []string{"spellcheck"}, exitError},
		{"bad log level", []string{"-log-level", "loud", "tags"}, exitError},
		{"help", []string{"-h"}, exitOK},
		{"bad flag", []string{"-nope"}, exitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(t, "", false, tt.args...)
			if code != tt.code {
				t.Errorf("run(%v) = %d, want %d", tt.args, code, tt.code)
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI(t, "", false, "-version")
	if code != exitOK || !strings.Contains(out, "texspell "+version) {
		t.Errorf("run(-version) = %d, %q", code, out)
	}
}

func TestRun_Check(t *testing.T) {
	env := newTestEnv(t, "Hello world.\nThis is the wolrd.\n")

	code, out, _ := runCLI(t, "", false, "-config", env.settings, "check", env.file)
	if code != exitProblems {
		t.Fatalf("check exit = %d, output %q", code, out)
	}
	want := env.file + ":2:13: Unknown word 'wolrd'"
	if !strings.Contains(out, want) {
		t.Errorf("output %q does not contain %q", out, want)
	}
	if !strings.Contains(out, "Change to 'world'") || !strings.Contains(out, "Disable spell checking") {
		t.Errorf("fixes missing from %q", out)
	}

	code, out, _ = runCLI(t, "", false, "-config", env.settings, "check", "-fixes=false", env.file)
	if code != exitProblems || strings.Contains(out, "Change to") {
		t.Errorf("check -fixes=false = %d, %q", code, out)
	}
}

func TestRun_CheckClean(t *testing.T) {
	env := newTestEnv(t, "\\section{Hello} This is the end.")
	code, out, _ := runCLI(t, "", false, "-config", env.settings, "check", env.file)
	if code != exitOK || out != "" {
		t.Errorf("check = %d, %q", code, out)
	}
}

func TestRun_CheckMissingFile(t *testing.T) {
	env := newTestEnv(t, "")
	code, _, errOut := runCLI(t, "", false, "-config", env.settings, "check", filepath.Join(env.dir, "nope.tex"))
	if code != exitError || !strings.Contains(errOut, "nope.tex") {
		t.Errorf("check = %d, %q", code, errOut)
	}
}

func TestRun_FixList(t *testing.T) {
	env := newTestEnv(t, "Hello wolrd.")
	code, out, _ := runCLI(t, "", false, "-config", env.settings, "fix", "-offset", "7", env.file)
	if code != exitOK {
		t.Fatalf("fix exit = %d", code)
	}
	if !strings.HasPrefix(out, "Unknown word 'wolrd'\n") || !strings.Contains(out, "Change to 'world'") {
		t.Errorf("output = %q", out)
	}

	code, _, errOut := runCLI(t, "", false, "-config", env.settings, "fix", "-offset", "0", env.file)
	if code != exitError || !strings.Contains(errOut, "no spelling problem") {
		t.Errorf("fix at a correct word = %d, %q", code, errOut)
	}
}

// choiceFor returns the index printed for the proposal with the given label.
func choiceFor(t *testing.T, listing, label string) string {
	t.Helper()
	for _, line := range strings.Split(listing, "\n") {
		if strings.Contains(line, label) {
			return strings.Fields(line)[0]
		}
	}
	t.Fatalf("%q not offered in %q", label, listing)
	return ""
}

func TestRun_FixApply(t *testing.T) {
	env := newTestEnv(t, "Hello wolrd.")
	_, listing, _ := runCLI(t, "", false, "-config", env.settings, "fix", "-offset", "6", env.file)
	idx := choiceFor(t, listing, "Change to 'world'")

	code, out, _ := runCLI(t, "", false, "-config", env.settings, "fix", "-offset", "6", "-choose", idx, env.file)
	if code != exitOK || out != "Hello world." {
		t.Errorf("fix -choose = %d, %q", code, out)
	}
	if data, _ := os.ReadFile(env.file); string(data) != "Hello wolrd." {
		t.Errorf("file changed without -write: %q", data)
	}

	code, _, _ = runCLI(t, "", false, "-config", env.settings, "fix", "-offset", "6", "-choose", idx, "-write", env.file)
	if code != exitOK {
		t.Fatalf("fix -write = %d", code)
	}
	if data, _ := os.ReadFile(env.file); string(data) != "Hello world." {
		t.Errorf("file = %q", data)
	}
}

func TestRun_FixAddWordInteractive(t *testing.T) {
	env := newTestEnv(t, "Hello wolrd.")
	_, listing, _ := runCLI(t, "", true, "-config", env.settings, "fix", "-offset", "6", env.file)
	idx := choiceFor(t, listing, "Add 'wolrd' to dictionary")

	code, out, errOut := runCLI(t, "y\n", true, "-config", env.settings, "fix", "-offset", "6", "-choose", idx, env.file)
	if code != exitOK {
		t.Fatalf("fix = %d, %q", code, errOut)
	}
	if out != "" {
		t.Errorf("adding a word must not print the document: %q", out)
	}
	if !strings.Contains(errOut, "Create one?") {
		t.Errorf("no question asked: %q", errOut)
	}
	data, err := os.ReadFile(filepath.Join(env.dir, "user.dic"))
	if err != nil || strings.TrimSpace(string(data)) != "wolrd" {
		t.Errorf("user.dic = %q, %v", data, err)
	}

	code, _, _ = runCLI(t, "", false, "-config", env.settings, "check", env.file)
	if code != exitOK {
		t.Errorf("added word still flagged, exit %d", code)
	}
}

func TestRun_FixAddWordNotInteractive(t *testing.T) {
	env := newTestEnv(t, "Hello wolrd.")
	_, listing, _ := runCLI(t, "", false, "-config", env.settings, "fix", "-offset", "6", env.file)
	idx := choiceFor(t, listing, "Add 'wolrd' to dictionary")

	code, _, errOut := runCLI(t, "y\n", false, "-config", env.settings, "fix", "-offset", "6", "-choose", idx, env.file)
	if code != exitOK || strings.Contains(errOut, "Create one?") {
		t.Errorf("fix = %d, %q", code, errOut)
	}
	if _, err := os.Stat(filepath.Join(env.dir, "user.dic")); !os.IsNotExist(err) {
		t.Errorf("user.dic created without asking: %v", err)
	}
}

func TestRun_FixUsage(t *testing.T) {
	env := newTestEnv(t, "Hello wolrd.")
	for _, args := range [][]string{
		{"fix", env.file},
		{"fix", "-offset", "6"},
		{"fix", "-offset", "6", "-choose", "99", env.file},
	} {
		code, _, _ := runCLI(t, "", false, append([]string{"-config", env.settings}, args...)...)
		if code != exitError {
			t.Errorf("run(%v) = %d, want %d", args, code, exitError)
		}
	}
}

func TestRun_Tags(t *testing.T) {
	env := newTestEnv(t, "")
	code, out, _ := runCLI(t, "", false, "-config", env.settings, "tags")
	if code != exitOK {
		t.Fatalf("tags = %d", code)
	}
	for _, want := range []string{"}section{", "}subsection{", "}textbf{"} {
		if !strings.Contains(out, want+"\n") {
			t.Errorf("tags output missing %q: %q", want, out)
		}
	}

	_, out, _ = runCLI(t, "", false, "-config", env.settings, "tags", "-names")
	if out != "textbf\nsection\nsubsection\nparagraph\n" {
		t.Errorf("tags -names = %q", out)
	}
}

func TestRun_Serve(t *testing.T) {
	env := newTestEnv(t, "")
	msg := func(body string) string {
		return "Content-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body
	}
	input := msg(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`) +
		msg(`{"jsonrpc":"2.0","method":"initialized","params":{}}`) +
		msg(`{"jsonrpc":"2.0","id":2,"method":"shutdown"}`) +
		msg(`{"jsonrpc":"2.0","method":"exit"}`)

	code, out, errOut := runCLI(t, input, false, "-config", env.settings, "serve")
	if code != exitOK {
		t.Fatalf("serve = %d, %q", code, errOut)
	}
	if !strings.Contains(out, `"codeActionProvider"`) {
		t.Errorf("initialize result missing: %q", out)
	}
}

func TestPosition(t *testing.T) {
	text := "first\nsecond wolrd\nnaïve wrod"
	tests := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{6, 2, 1},
		{13, 2, 8},
		{len("first\nsecond wolrd\nnaïve "), 3, 7},
		{1000, 3, 11},
	}
	for _, tt := range tests {
		line, col := position(text, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("position(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}
