package session

import "errors"

var (
	// ErrSessionNotFound is returned when no session exists for a key, or the
	// record vanished concurrently. Callers should treat this as anonymous.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when a session exists but its time-to-live
	// has elapsed. The stored record is left untouched.
	ErrSessionExpired = errors.New("session has expired")
	// ErrStorage wraps backend failures that are not locally recoverable.
	ErrStorage = errors.New("session storage failure")
	// ErrDuplicateKey is returned by stores when an insert collides with an
	// existing session key.
	ErrDuplicateKey = errors.New("session key already exists")
)
