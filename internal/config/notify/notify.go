// Package notify delivers configuration change events to observers.
//
// Observers subscribe to every change or to a setting path. A path
// subscription also fires for changes below it, so "spelling" observes
// "spelling.enabled", and for whole-file reloads.
package notify

import (
	"sort"
	"sync"
)

// ChangeType is the kind of configuration change.
type ChangeType int

const (
	// ChangeSet means a value was written.
	ChangeSet ChangeType = iota
	// ChangeDelete means a value was removed.
	ChangeDelete
	// ChangeReload means a source was re-read; Path is empty.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeDelete:
		return "delete"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change describes one configuration change.
type Change struct {
	Path     string
	Type     ChangeType
	OldValue any
	NewValue any

	// Source names the layer or file that changed.
	Source string
}

// Observer receives changes.
type Observer func(Change)

// Subscription is a registered observer.
type Subscription struct {
	id uint64
	n  *Notifier
}

// Unsubscribe stops delivery to the observer. It is safe to call twice.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.n != nil {
		s.n.remove(s.id)
	}
}

type entry struct {
	path     string // empty for global observers
	observer Observer
}

// Notifier fans out changes to observers.
type Notifier struct {
	mu      sync.RWMutex
	entries map[uint64]entry
	nextID  uint64
	closed  bool

	async bool
	queue chan Change
	done  chan struct{}
	wg    sync.WaitGroup
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync delivers changes on a background goroutine through a buffer of
// the given size.
func WithAsync(size int) Option {
	return func(n *Notifier) {
		if size > 0 {
			n.async = true
			n.queue = make(chan Change, size)
		}
	}
}

// New creates a Notifier. Delivery is synchronous unless WithAsync is given.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		entries: make(map[uint64]entry),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.async {
		n.wg.Add(1)
		go n.run()
	}
	return n
}

// Subscribe observes every change.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.add(entry{observer: observer})
}

// SubscribePath observes changes to path and to settings below it.
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	return n.add(entry{path: path, observer: observer})
}

func (n *Notifier) add(e entry) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.entries[id] = e
	return &Subscription{id: id, n: n}
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.entries, id)
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.entries)
}

// Notify delivers change. Changes sent after Close are dropped.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	closed := n.closed
	n.mu.RUnlock()
	if closed {
		return
	}

	if n.async {
		select {
		case n.queue <- change:
		case <-n.done:
		}
		return
	}
	n.deliver(change)
}

// NotifySet reports a written value.
func (n *Notifier) NotifySet(path string, oldValue, newValue any, source string) {
	n.Notify(Change{Path: path, Type: ChangeSet, OldValue: oldValue, NewValue: newValue, Source: source})
}

// NotifyDelete reports a removed value.
func (n *Notifier) NotifyDelete(path string, oldValue any, source string) {
	n.Notify(Change{Path: path, Type: ChangeDelete, OldValue: oldValue, Source: source})
}

// NotifyReload reports that source was re-read.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// Close stops delivery, draining queued asynchronous changes first.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

// deliver calls matching observers in subscription order, outside the lock.
func (n *Notifier) deliver(change Change) {
	n.mu.RLock()
	ids := make([]uint64, 0, len(n.entries))
	for id, e := range n.entries {
		if matches(e.path, change) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	observers := make([]Observer, len(ids))
	for i, id := range ids {
		observers[i] = n.entries[id].observer
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

func (n *Notifier) run() {
	defer n.wg.Done()
	for {
		select {
		case change := <-n.queue:
			n.deliver(change)
		case <-n.done:
			for {
				select {
				case change := <-n.queue:
					n.deliver(change)
				default:
					return
				}
			}
		}
	}
}

// matches reports whether a subscription on path sees change.
func matches(path string, change Change) bool {
	if path == "" || change.Path == "" {
		return true
	}
	if path == change.Path {
		return true
	}
	return len(change.Path) > len(path) &&
		change.Path[:len(path)] == path &&
		change.Path[len(path)] == '.'
}
