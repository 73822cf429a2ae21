package lua

import (
	"fmt"

	"github.com/dshills/texspell/internal/spell"
)

// LoadScript creates a state with the texspell module preloaded and runs
// the script at path.
func LoadScript(path string, engine *spell.Engine, threshold func() int, opts ...StateOption) (*State, error) {
	s := NewState(opts...)
	s.Preload(ModuleName, NewModule(engine, threshold).Loader)
	if err := s.DoFile(path); err != nil {
		s.Close()
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	return s, nil
}
