// Package session implements server-side session lifecycle management:
// key generation, creation, lookup with sliding-expiration enforcement,
// user binding, mutation and deletion.
//
// The package is built around three types:
//
//   - Session: the record itself, addressed by an opaque key that doubles as
//     the client-visible token
//   - Manager: the stateless lifecycle engine exposing Create, Get, Save and
//     Delete
//   - Store: the persistence port; implementations exist in-process
//     (MemoryStore) and for MongoDB, PostgreSQL and Redis under store/
//
// # Basic Usage
//
// Create a manager with an injected store and configuration:
//
//	import (
//		"github.com/caarlos0/env/v11"
//		"github.com/dmitrymomot/sessionstore/core/session"
//	)
//
//	var cfg session.Config
//	if err := env.Parse(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	manager := session.New(session.NewMemoryStore(), cfg)
//
//	sess, err := manager.Create(ctx, map[string]any{"cart": []string{}}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Hand the token to the client.
//	token := sess.ForClient()
//
// Look the session up on a later request. Get atomically validates the TTL
// and touches the last-access timestamp; an expired record is rejected
// without having its clock reset:
//
//	sess, err := manager.Get(ctx, token)
//	switch {
//	case errors.Is(err, session.ErrSessionNotFound),
//		errors.Is(err, session.ErrSessionExpired):
//		// Treat the caller as anonymous.
//	case err != nil:
//		// Storage failure, surface it.
//	}
//
// Bind an authenticated user and persist the change:
//
//	sess.SetUser(&session.User{ID: userID, Data: profile})
//	if _, err := manager.Save(ctx, sess); err != nil {
//		log.Fatal(err)
//	}
//
// SetUser(nil) unbinds: the user id is removed from the record entirely
// rather than nulled, and the user payload resets to an empty map.
//
// # Expiration Model
//
// A session expires once the configured TimeToLive has elapsed since its
// anchor timestamp (TTLAnchor, one of "created", "lastAccess" or
// "lastUpdate"; unknown or unset values anchor to creation time). TimeToLive
// of zero disables expiration.
//
// Enforcement is lazy: there is no background reaper, and a record whose TTL
// reached zero simply fails every subsequent Get with ErrSessionExpired even
// though it is still physically stored. CleanupExpired and RunCleanup offer
// an optional out-of-band sweep for stores that accumulate dead records, but
// correctness never depends on them running.
//
// # Concurrency
//
// The Manager holds no mutable state; all coordination happens inside the
// Store. The lookup path runs through Store.TouchIf, an atomic
// read-validate-write keyed by the session identifier, so concurrent Get,
// Save and Delete calls on the same key serialize against each other and a
// record deleted mid-lookup surfaces ErrSessionNotFound rather than a
// half-updated state.
package session
