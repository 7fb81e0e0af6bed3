package interview

import (
	"context"
	"fmt"
	"sync"
)

// Registry is the process-wide keyed store of live sessions. Update runs its
// mutation inside a per-session critical section; operations on different
// sessions never block one another.
type Registry interface {
	Create(ctx context.Context, s *Session) error
	// Get returns a snapshot copy of the session.
	Get(ctx context.Context, id string) (Session, error)
	// Update applies fn to the session under the per-session lock. When fn
	// returns an error no mutation is retained: the session keeps its prior
	// state.
	Update(ctx context.Context, id string, fn func(*Session) error) error
}

type memoryEntry struct {
	mu sync.Mutex
	s  Session
}

// MemoryRegistry keeps sessions in an in-process map with one lock per
// session. The default backing store; sessions do not survive a restart.
type MemoryRegistry struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{entries: make(map[string]*memoryEntry)}
}

func (r *MemoryRegistry) Create(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[s.ID]; ok {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	r.entries[s.ID] = &memoryEntry{s: s.Clone()}
	return nil
}

func (r *MemoryRegistry) Get(_ context.Context, id string) (Session, error) {
	e, ok := r.lookup(id)
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.s.Clone(), nil
}

func (r *MemoryRegistry) Update(_ context.Context, id string, fn func(*Session) error) error {
	e, ok := r.lookup(id)
	if !ok {
		return ErrSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	// fn mutates a clone; the entry is only replaced on success, so a
	// failed update cannot leave a half-advanced session behind.
	work := e.s.Clone()
	if err := fn(&work); err != nil {
		return err
	}
	e.s = work
	return nil
}

// Len reports the number of live sessions.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *MemoryRegistry) lookup(id string) (*memoryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}
