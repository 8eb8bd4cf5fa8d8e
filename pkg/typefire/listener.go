package typefire

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/randalmurphal/typefire/pkg/typefire/typemodel"
)

// Listener receives events whose inferred type matches its slot type.
type Listener interface {
	// SlotType is the declared type of the listener's event slot. A nil
	// slot type means the listener is inactive and is skipped.
	SlotType() *typemodel.Type

	// Qualifiers returns the listener's qualifiers. A listener with no
	// qualifiers receives events regardless of the fired qualifiers.
	Qualifiers() []Qualifier

	// EventReceived handles a delivered event.
	EventReceived(ctx context.Context, event any) error
}

// ListenerIterator is a removable sequence of listeners. Removal of the
// current listener is attempted unconditionally after each listener is
// considered, so scoped listeners can be discarded; implementations for
// which removal makes no sense treat Remove as a no-op.
type ListenerIterator interface {
	// Next advances to the next listener. It returns false when the
	// sequence is exhausted.
	Next() (Listener, bool)

	// Remove discards the listener most recently returned by Next from
	// the underlying source, if supported.
	Remove()
}

// FuncListener adapts a function to the Listener interface.
type FuncListener struct {
	slot       *typemodel.Type
	qualifiers []Qualifier
	fn         func(ctx context.Context, event any) error
}

// NewListener creates a listener with the given slot type and qualifiers
// around fn.
func NewListener(slot *typemodel.Type, qualifiers []Qualifier, fn func(ctx context.Context, event any) error) *FuncListener {
	return &FuncListener{slot: slot, qualifiers: qualifiers, fn: fn}
}

// SlotType implements Listener.
func (l *FuncListener) SlotType() *typemodel.Type {
	return l.slot
}

// Qualifiers implements Listener.
func (l *FuncListener) Qualifiers() []Qualifier {
	return l.qualifiers
}

// EventReceived implements Listener.
func (l *FuncListener) EventReceived(ctx context.Context, event any) error {
	if l.fn == nil {
		return nil
	}
	return l.fn(ctx, event)
}

// ListenerSet is the default listener source. It preserves registration
// order and is safe for concurrent use. Its iterators operate on a
// snapshot, so listeners registered during a fire are not observed by
// that fire.
type ListenerSet struct {
	mu      sync.RWMutex
	order   []string
	byID    map[string]Listener
	removed map[string]bool
}

// NewListenerSet creates an empty listener set.
func NewListenerSet() *ListenerSet {
	return &ListenerSet{
		byID:    make(map[string]Listener),
		removed: make(map[string]bool),
	}
}

// Add registers a listener and returns its ID.
func (s *ListenerSet) Add(l Listener) string {
	id := fmt.Sprintf("lsn-%s", uuid.New().String()[:8])

	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = append(s.order, id)
	s.byID[id] = l
	return id
}

// Scoped registers a listener that is discarded after it is first
// considered by a fire. It returns the listener's ID.
func (s *ListenerSet) Scoped(l Listener) string {
	id := s.Add(l)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed[id] = false
	return id
}

// Delete unregisters a listener by ID.
func (s *ListenerSet) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drop(id)
}

// Len returns the number of registered listeners.
func (s *ListenerSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Iterator returns a removable iterator over a snapshot of the set in
// registration order.
func (s *ListenerSet) Iterator() ListenerIterator {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]setEntry, 0, len(s.order))
	for _, id := range s.order {
		if l, ok := s.byID[id]; ok {
			snapshot = append(snapshot, setEntry{id: id, listener: l})
		}
	}
	return &setIterator{set: s, entries: snapshot, pos: -1}
}

// drop removes id from order and byID. Caller holds the lock.
func (s *ListenerSet) drop(id string) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	delete(s.removed, id)
	for i, cur := range s.order {
		if cur == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

type setEntry struct {
	id       string
	listener Listener
}

type setIterator struct {
	set     *ListenerSet
	entries []setEntry
	pos     int
}

// Next implements ListenerIterator.
func (it *setIterator) Next() (Listener, bool) {
	if it.pos+1 >= len(it.entries) {
		return nil, false
	}
	it.pos++
	return it.entries[it.pos].listener, true
}

// Remove implements ListenerIterator. Only listeners registered with
// Scoped are actually discarded; for the rest this is a no-op.
func (it *setIterator) Remove() {
	if it.pos < 0 || it.pos >= len(it.entries) {
		return
	}
	id := it.entries[it.pos].id

	it.set.mu.Lock()
	defer it.set.mu.Unlock()
	if _, scoped := it.set.removed[id]; scoped {
		it.set.drop(id)
	}
}

// SliceIterator adapts a fixed slice of listeners to ListenerIterator.
// Remove is a no-op.
type SliceIterator struct {
	listeners []Listener
	pos       int
}

// NewSliceIterator creates an iterator over listeners.
func NewSliceIterator(listeners ...Listener) *SliceIterator {
	return &SliceIterator{listeners: listeners}
}

// Next implements ListenerIterator.
func (it *SliceIterator) Next() (Listener, bool) {
	if it.pos >= len(it.listeners) {
		return nil, false
	}
	l := it.listeners[it.pos]
	it.pos++
	return l, true
}

// Remove implements ListenerIterator.
func (it *SliceIterator) Remove() {}
