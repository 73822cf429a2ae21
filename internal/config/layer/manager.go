package layer

import (
	"fmt"
	"sort"
	"sync"
)

// Manager keeps the layers ordered by priority and caches their merge.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer // ascending priority
	merged map[string]any
	dirty  bool
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{dirty: true}
}

// Add inserts l, replacing any layer with the same name.
func (m *Manager) Add(l *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeLocked(l.Name)
	m.layers = append(m.layers, l)
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
	m.dirty = true
}

// Remove drops the named layer and reports whether it existed.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(name)
}

func (m *Manager) removeLocked(name string) bool {
	for i, l := range m.layers {
		if l.Name == name {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			m.dirty = true
			return true
		}
	}
	return false
}

// Layer returns the named layer or nil.
func (m *Manager) Layer(name string) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.find(name)
}

// Layers returns the layers in ascending priority.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Layer(nil), m.layers...)
}

// Merged returns a copy of all layers merged in priority order.
func (m *Manager) Merged() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Clone(m.mergedLocked())
}

func (m *Manager) mergedLocked() map[string]any {
	if m.dirty || m.merged == nil {
		merged := make(map[string]any)
		for _, l := range m.layers {
			merged = Merge(merged, l.Data)
		}
		m.merged = merged
		m.dirty = false
	}
	return m.merged
}

// Get returns the effective value at path and the layer that supplies it.
func (m *Manager) Get(path string) (any, *Layer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		if v, ok := Lookup(m.layers[i].Data, path); ok {
			return v, m.layers[i], true
		}
	}
	return nil, nil, false
}

// Set writes value at path in the named layer.
func (m *Manager) Set(name, path string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.writable(name)
	if err != nil {
		return err
	}
	if !Assign(l.Data, path, value) {
		return fmt.Errorf("cannot set %q in layer %s", path, name)
	}
	m.dirty = true
	return nil
}

// Update replaces the data of the named layer.
func (m *Manager) Update(name string, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.writable(name)
	if err != nil {
		return err
	}
	l.Data = Clone(data)
	if l.Data == nil {
		l.Data = make(map[string]any)
	}
	m.dirty = true
	return nil
}

// Snapshot returns a copy of the named layer's data.
func (m *Manager) Snapshot(name string) (map[string]any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l := m.find(name)
	if l == nil {
		return nil, false
	}
	return Clone(l.Data), true
}

func (m *Manager) writable(name string) (*Layer, error) {
	l := m.find(name)
	if l == nil {
		return nil, fmt.Errorf("layer not found: %s", name)
	}
	if l.ReadOnly {
		return nil, fmt.Errorf("layer is read-only: %s", name)
	}
	if l.Data == nil {
		l.Data = make(map[string]any)
	}
	return l, nil
}

func (m *Manager) find(name string) *Layer {
	for _, l := range m.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}
