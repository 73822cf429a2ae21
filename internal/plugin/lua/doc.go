// Package lua runs user scripts that extend the spell checker.
//
// Scripts run in a sandboxed gopher-lua state: only the base, table, string
// and math libraries are open, dofile, loadfile and load are removed,
// require is limited to those libraries and the texspell module, and print
// goes to the log. Every entry into the state is bounded by a timeout.
//
// A script can query the engine through the texspell module and rerank
// proposals by defining a global rerank function:
//
//	local ts = require("texspell")
//	ts.ignore("texspell")
//
//	function rerank(word, text, rank)
//	  if ts.is_tag("}" .. text .. "{") then return rank + 1000 end
//	  return rank
//	end
//
// Load it and wrap the engine's checker:
//
//	state, err := lua.LoadScript(path, engine, prefs.Threshold)
//	if err != nil {
//	    return err
//	}
//	engine.SetChecker(lua.NewScriptedChecker(engine.Checker(), state, logger))
package lua
