package lua

import (
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/texspell/internal/logging"
	"github.com/dshills/texspell/internal/spell"
)

// RerankFunc is the global a script defines to rerank proposals:
//
//	function rerank(word, text, rank)
//	  if text:sub(1, 1) == word:sub(1, 1) then return rank + 500 end
//	  return rank
//	end
//
// A non-number or non-finite result, or an error, keeps the original rank.
const RerankFunc = "rerank"

// ScriptedChecker wraps a checker and lets a script rerank its proposals.
type ScriptedChecker struct {
	inner  spell.Checker
	state  *State
	logger *logging.Logger
}

// NewScriptedChecker wraps inner.
func NewScriptedChecker(inner spell.Checker, state *State, logger *logging.Logger) *ScriptedChecker {
	return &ScriptedChecker{
		inner:  inner,
		state:  state,
		logger: logging.OrNull(logger).WithComponent("lua"),
	}
}

// Unwrap returns the checker beneath any ScriptedChecker layers.
func Unwrap(c spell.Checker) spell.Checker {
	for {
		sc, ok := c.(*ScriptedChecker)
		if !ok {
			return c
		}
		c = sc.inner
	}
}

// Inner returns the wrapped checker.
func (c *ScriptedChecker) Inner() spell.Checker { return c.inner }

func (c *ScriptedChecker) AcceptsWords() bool         { return c.inner.AcceptsWords() }
func (c *ScriptedChecker) AddWord(word string) error  { return c.inner.AddWord(word) }
func (c *ScriptedChecker) IsCorrect(word string) bool { return c.inner.IsCorrect(word) }

// Proposals returns the inner proposals reranked by the script and sorted
// best first.
func (c *ScriptedChecker) Proposals(word string, sentenceStart bool) []spell.RankedCandidate {
	candidates := c.inner.Proposals(word, sentenceStart)
	if len(candidates) == 0 || !c.state.HasFunction(RerankFunc) {
		return candidates
	}

	out := make([]spell.RankedCandidate, len(candidates))
	copy(out, candidates)
	for i, cand := range out {
		res, err := c.state.Call(RerankFunc, lua.LString(word), lua.LString(cand.Text), lua.LNumber(cand.Rank))
		if err != nil {
			c.logger.Debug("rerank %q: %v", cand.Text, err)
			continue
		}
		if len(res) == 0 {
			continue
		}
		if rank, ok := toRank(res[0]); ok {
			out[i].Rank = rank
		}
	}
	spell.SortByRank(out)
	return out
}

// maxRank bounds script ranks to integers a float64 holds exactly.
const maxRank = 1 << 53

// toRank converts a rerank result. NaN, infinities and values beyond
// maxRank are rejected.
func toRank(v lua.LValue) (int, bool) {
	n, ok := v.(lua.LNumber)
	if !ok {
		return 0, false
	}
	f := float64(n)
	if !(math.Abs(f) < maxRank) {
		return 0, false
	}
	return int(f), true
}
