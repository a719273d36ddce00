package session

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore implements Store using an in-process map. All operations are
// serialized by a single mutex, which trivially satisfies the atomicity
// contract of TouchIf. Suitable for tests and single-process deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

// Insert stores a copy of the session.
func (ms *MemoryStore) Insert(_ context.Context, sess *Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.sessions[sess.Key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, sess.Key)
	}
	ms.sessions[sess.Key] = sess.clone()
	return nil
}

// Get returns a copy of the stored session.
func (ms *MemoryStore) Get(_ context.Context, key string) (*Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	sess, ok := ms.sessions[key]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.clone(), nil
}

// TouchIf atomically loads the session, applies check to a touched copy and
// persists the new lastAccess only when check passes.
func (ms *MemoryStore) TouchIf(_ context.Context, key string, lastAccess int64, check func(*Session) error) (*Session, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	stored, ok := ms.sessions[key]
	if !ok {
		return nil, ErrSessionNotFound
	}

	touched := stored.clone()
	touched.LastAccess = lastAccess
	if err := check(touched); err != nil {
		return nil, err
	}

	stored.LastAccess = lastAccess
	return touched, nil
}

// Replace overwrites the stored record with a copy of sess.
func (ms *MemoryStore) Replace(_ context.Context, sess *Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.sessions[sess.Key]; !ok {
		return ErrSessionNotFound
	}
	ms.sessions[sess.Key] = sess.clone()
	return nil
}

// Delete removes the record by key.
func (ms *MemoryStore) Delete(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.sessions[key]; !ok {
		return ErrSessionNotFound
	}
	delete(ms.sessions, key)
	return nil
}

// DeleteExpired removes every session whose anchor timestamp is at or before
// cutoff.
func (ms *MemoryStore) DeleteExpired(_ context.Context, anchor string, cutoff int64) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var removed int64
	for key, sess := range ms.sessions {
		if AnchorValue(sess, anchor) <= cutoff {
			delete(ms.sessions, key)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of stored sessions, including logically expired
// ones that have not been swept.
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.sessions)
}
