package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/park285/westeros-chess/internal/session"
)

type memEntry struct {
	state     session.State
	expiresAt time.Time
}

// memoryStore is the in-process store used when no Redis is configured.
type memoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memEntry
}

// NewMemoryStore returns a store whose entries expire ttl after their last
// write. ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{ttl: ttl, now: time.Now, entries: make(map[string]memEntry)}
}

func (m *memoryStore) Create(ctx context.Context, st session.State) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = m.entry(st)
	return id, nil
}

func (m *memoryStore) Load(ctx context.Context, id string) (session.State, error) {
	if err := ctx.Err(); err != nil {
		return session.State{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.live(id)
	if !ok {
		return session.State{}, ErrNotFound
	}
	return e.state.Clone(), nil
}

func (m *memoryStore) Update(ctx context.Context, id string, fn UpdateFunc) (session.State, bool, error) {
	if err := ctx.Err(); err != nil {
		return session.State{}, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.live(id)
	if !ok {
		return session.State{}, false, ErrNotFound
	}
	next, changed := fn(e.state.Clone())
	if !changed {
		return e.state.Clone(), false, nil
	}
	m.entries[id] = m.entry(next)
	return next.Clone(), true, nil
}

func (m *memoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live(id); !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

// live returns the entry for id, dropping it when expired. Caller holds mu.
func (m *memoryStore) live(id string) (memEntry, bool) {
	id = strings.TrimSpace(id)
	e, ok := m.entries[id]
	if !ok {
		return memEntry{}, false
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.entries, id)
		return memEntry{}, false
	}
	return e, true
}

func (m *memoryStore) entry(st session.State) memEntry {
	e := memEntry{state: st.Clone()}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	return e
}
