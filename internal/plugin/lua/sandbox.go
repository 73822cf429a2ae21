package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// removedGlobals load code from disk or strings and bypass require.
var removedGlobals = []string{"dofile", "loadfile", "load", "loadstring"}

// builtinModules may be required by name.
var builtinModules = map[string]bool{
	"string": true,
	"table":  true,
	"math":   true,
}

// installSandbox removes code loading, routes print to the logger and
// restricts require to built-in and preloaded modules.
func installSandbox(s *State) {
	L := s.L
	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		s.logger.Info("%s", strings.Join(parts, "\t"))
		return 0
	}))

	// Nothing is loaded from disk.
	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}

	originalRequire := L.GetGlobal("require")
	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		// Preload runs under the state lock, so the map is stable here.
		if !builtinModules[name] && !s.modules[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}
