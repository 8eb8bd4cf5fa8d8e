// Package deadletter records events that matched no listener, so they can
// be inspected or replayed later. Recording is opt-in and never fails the
// Fire call that triggered it.
package deadletter

import (
	"errors"
	"sync"
	"time"
)

// Sentinel errors for store operations.
var (
	// ErrStoreClosed indicates an operation on a closed store.
	ErrStoreClosed = errors.New("dead-letter store is closed")

	// ErrNotFound indicates no record exists for the ID.
	ErrNotFound = errors.New("dead-letter record not found")
)

// Record is an undelivered event.
type Record struct {
	// ID is the fire ID of the undelivered event.
	ID string `json:"id"`
	// EventType is the rendered inferred event type.
	EventType string `json:"event_type"`
	// Qualifiers are the qualifier names the event was fired with.
	Qualifiers []string `json:"qualifiers,omitempty"`
	// Payload is the serialized event value, if serializable.
	Payload []byte `json:"payload,omitempty"`
	// FiredAt is when the event was fired.
	FiredAt time.Time `json:"fired_at"`
}

// Store persists undelivered events.
type Store interface {
	// Record adds an undelivered event.
	Record(rec Record) error

	// Get returns the record with the given ID.
	Get(id string) (Record, error)

	// List returns all records, oldest first.
	List() ([]Record, error)

	// Delete removes a record.
	Delete(id string) error

	// Close releases the store's resources.
	Close() error
}

// MemoryStore is an in-memory Store.
// Suitable for testing and single-instance deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
	byID    map[string]int
	closed  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]int)}
}

// Record implements Store.
func (s *MemoryStore) Record(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.byID[rec.ID] = len(s.records)
	s.records = append(s.records, rec)
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Record{}, ErrStoreClosed
	}
	i, ok := s.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return s.records[i], nil
}

// List implements Store.
func (s *MemoryStore) List() ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	out := make([]Record, 0, len(s.records))
	for i, rec := range s.records {
		// Deleted and superseded entries stay in the slice as tombstones;
		// only the entry the index still points at is live.
		if idx, ok := s.byID[rec.ID]; ok && idx == i {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	delete(s.byID, id)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
