package session

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/structviz/pkg/errors"
)

// DefaultIdleTTL is how long an unused session stays in a [MemoryStore].
const DefaultIdleTTL = 30 * time.Minute

// Store keeps sessions by ID for surfaces that serve more than one client.
type Store interface {
	// Get returns the session with id. Returns nil, nil if it doesn't exist.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores s under s.ID.
	Set(ctx context.Context, s *Session) error

	// Delete closes and removes the session with id.
	Delete(ctx context.Context, id string) error

	// Cleanup closes and removes sessions idle for longer than the TTL.
	Cleanup(ctx context.Context) error
}

type entry struct {
	sess     *Session
	lastUsed time.Time
}

// MemoryStore is an in-process Store. Every Get refreshes the session's
// idle timer.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry
	now     func() time.Time
}

// NewMemoryStore creates a store that expires sessions idle for ttl.
// A non-positive ttl uses DefaultIdleTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	if m.now().Sub(e.lastUsed) > m.ttl {
		delete(m.entries, id)
		e.sess.Close()
		return nil, nil
	}
	e.lastUsed = m.now()
	return e.sess, nil
}

func (m *MemoryStore) Set(ctx context.Context, s *Session) error {
	if s == nil || s.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "session has no ID")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.entries[s.ID]; ok && old.sess != s {
		old.sess.Close()
	}
	m.entries[s.ID] = &entry{sess: s, lastUsed: m.now()}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[id]; ok {
		e.sess.Close()
		delete(m.entries, id)
	}
	return nil
}

func (m *MemoryStore) Cleanup(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, e := range m.entries {
		if now.Sub(e.lastUsed) > m.ttl {
			e.sess.Close()
			delete(m.entries, id)
		}
	}
	return nil
}

// Len returns the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close closes and removes every session.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		e.sess.Close()
		delete(m.entries, id)
	}
	return nil
}
