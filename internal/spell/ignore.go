package spell

import (
	"sort"
	"sync"
)

// IgnoreSet holds words ignored for the current session. It is never
// persisted and matches words exactly.
type IgnoreSet struct {
	mu    sync.RWMutex
	words map[string]struct{}
}

// NewIgnoreSet creates an empty ignore set.
func NewIgnoreSet() *IgnoreSet {
	return &IgnoreSet{words: make(map[string]struct{})}
}

// Add ignores word. Adding twice has no further effect.
func (s *IgnoreSet) Add(word string) {
	if word == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words[word] = struct{}{}
}

// Contains reports whether word is ignored.
func (s *IgnoreSet) Contains(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.words[word]
	return ok
}

// Len returns the number of ignored words.
func (s *IgnoreSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Words returns the ignored words in sorted order.
func (s *IgnoreSet) Words() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Clear forgets every ignored word.
func (s *IgnoreSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = make(map[string]struct{})
}
