package session

import "context"

// Store defines the persistence interface for session records: plain
// create/read/replace/delete by key plus the one atomic primitive the
// lifecycle engine needs, TouchIf. Implementations must handle concurrent
// access safely; cross-record coordination is entirely the store's job.
type Store interface {
	// Insert persists a freshly created session. Returns ErrDuplicateKey
	// when a record with the same key already exists.
	Insert(ctx context.Context, sess *Session) error

	// Get loads a session by key without touching it.
	// Returns ErrSessionNotFound when absent.
	Get(ctx context.Context, key string) (*Session, error)

	// TouchIf atomically loads the session, sets lastAccess on the loaded
	// copy, and runs check against it. When check returns nil, the new
	// lastAccess is persisted as a partial update within the same atomic
	// scope and the touched record is returned. When check returns an error,
	// nothing is written and the error propagates unchanged. No concurrent
	// Get/TouchIf/Replace/Delete on the same key may observe a half-applied
	// update; a record deleted mid-flight surfaces ErrSessionNotFound.
	TouchIf(ctx context.Context, key string, lastAccess int64, check func(*Session) error) (*Session, error)

	// Replace fully overwrites the stored record keyed by sess.Key.
	// Returns ErrSessionNotFound when the record no longer exists.
	Replace(ctx context.Context, sess *Session) error

	// Delete removes a session by key.
	// Returns ErrSessionNotFound when absent.
	Delete(ctx context.Context, key string) error

	// DeleteExpired removes every session whose anchor timestamp is at or
	// before cutoff and reports how many were removed. Stores that expire
	// records natively may report zero.
	DeleteExpired(ctx context.Context, anchor string, cutoff int64) (int64, error)
}
