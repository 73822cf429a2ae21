package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/texspell/internal/spell"
)

// ModuleName is the name scripts require.
const ModuleName = "texspell"

// Module exposes the spelling engine to scripts:
//
//	local ts = require("texspell")
//	ts.is_tag("}section{")       -- true for a known tag token
//	ts.is_correct("word")        -- engine verdict, ignores included
//	ts.suggest("wrod", true)     -- { {text="Word", rank=2999}, ... }
//	ts.ignore("texspell")        -- ignore for this session
//	ts.is_ignored("texspell")
//	ts.threshold()               -- proposal limit, 0 for none
type Module struct {
	engine    *spell.Engine
	threshold func() int
}

// NewModule creates the module. threshold may be nil.
func NewModule(engine *spell.Engine, threshold func() int) *Module {
	return &Module{engine: engine, threshold: threshold}
}

// Loader builds the module table; pass it to State.Preload.
func (m *Module) Loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"is_tag":     m.isTag,
		"is_correct": m.isCorrect,
		"suggest":    m.suggest,
		"ignore":     m.ignore,
		"is_ignored": m.isIgnored,
		"threshold":  m.thresholdFn,
	})
	L.Push(mod)
	return 1
}

func (m *Module) isTag(L *lua.LState) int {
	L.Push(lua.LBool(m.engine.Tags().IsRecognized(L.CheckString(1))))
	return 1
}

func (m *Module) isCorrect(L *lua.LState) int {
	L.Push(lua.LBool(m.engine.IsCorrect(L.CheckString(1))))
	return 1
}

// suggest asks the unscripted checker so a rerank hook calling it does not
// re-enter the state.
func (m *Module) suggest(L *lua.LState) int {
	word := L.CheckString(1)
	sentenceStart := L.OptBool(2, false)

	checker := Unwrap(m.engine.Checker())
	if checker == nil {
		L.Push(L.NewTable())
		return 1
	}
	L.Push(candidatesToTable(L, checker.Proposals(word, sentenceStart)))
	return 1
}

func (m *Module) ignore(L *lua.LState) int {
	m.engine.IgnoreWord(L.CheckString(1))
	return 0
}

func (m *Module) isIgnored(L *lua.LState) int {
	L.Push(lua.LBool(m.engine.IsIgnored(L.CheckString(1))))
	return 1
}

func (m *Module) thresholdFn(L *lua.LState) int {
	n := 0
	if m.threshold != nil {
		n = m.threshold()
	}
	L.Push(lua.LNumber(n))
	return 1
}

// candidatesToTable converts candidates to a Lua array of {text=, rank=}.
func candidatesToTable(L *lua.LState, candidates []spell.RankedCandidate) *lua.LTable {
	tbl := L.CreateTable(len(candidates), 0)
	for _, c := range candidates {
		entry := L.CreateTable(0, 2)
		entry.RawSetString("text", lua.LString(c.Text))
		entry.RawSetString("rank", lua.LNumber(c.Rank))
		tbl.Append(entry)
	}
	return tbl
}
