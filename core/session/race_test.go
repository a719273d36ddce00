package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionstore/core/session"
)

// TestConcurrentGets verifies that parallel lookups on the same key all
// observe fully-committed state and that every touch lands.
func TestConcurrentGets(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	mgr := session.New(store, session.DefaultConfig())

	sess, err := mgr.Create(context.Background(), map[string]any{"n": 1}, nil)
	require.NoError(t, err)

	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for range goroutines {
		go func() {
			defer wg.Done()
			got, err := mgr.Get(context.Background(), sess.Key)
			assert.NoError(t, err)
			if err == nil {
				assert.Equal(t, sess.Key, got.Key)
				assert.Equal(t, sess.Created, got.Created)
			}
		}()
	}
	wg.Wait()

	stored, err := store.Get(context.Background(), sess.Key)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stored.LastAccess, sess.Created)
}

// TestConcurrentGetAndDelete verifies that a lookup racing a delete ends in
// exactly one of two states: a consistent session or ErrSessionNotFound,
// never a partial record.
func TestConcurrentGetAndDelete(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	mgr := session.New(store, session.DefaultConfig())

	for range 50 {
		sess, err := mgr.Create(context.Background(), nil, nil)
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)

		go func() {
			defer wg.Done()
			got, err := mgr.Get(context.Background(), sess.Key)
			if err != nil {
				assert.ErrorIs(t, err, session.ErrSessionNotFound)
				return
			}
			assert.Equal(t, sess.Key, got.Key)
			assert.NotZero(t, got.Created)
		}()

		go func() {
			defer wg.Done()
			_, err := mgr.Delete(context.Background(), sess.Key)
			assert.NoError(t, err)
		}()

		wg.Wait()
	}
}

// TestConcurrentSaves verifies that racing full replaces never corrupt the
// record: the winner's payload is stored whole.
func TestConcurrentSaves(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	mgr := session.New(store, session.DefaultConfig())

	sess, err := mgr.Create(context.Background(), nil, nil)
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)

	for i := range writers {
		go func() {
			defer wg.Done()
			own := *sess
			own.SessionData = map[string]any{"writer": i, "marker": i}
			_, err := mgr.Save(context.Background(), &own)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := store.Get(context.Background(), sess.Key)
	require.NoError(t, err)
	require.Contains(t, stored.SessionData, "writer")
	require.Contains(t, stored.SessionData, "marker")
	assert.Equal(t, stored.SessionData["writer"], stored.SessionData["marker"],
		"a replace must land atomically, not interleaved")
}

// TestExpiredGetRace verifies that concurrent lookups on an expired session
// all fail and none of them resurrects the record by touching it.
func TestExpiredGetRace(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	cfg := session.Config{SIDLength: 10, TimeToLive: time.Minute}
	store := session.NewMemoryStore()
	mgr := session.New(store, cfg, session.WithClock(clock.Now))

	sess, err := mgr.Create(context.Background(), nil, nil)
	require.NoError(t, err)
	originalAccess := sess.LastAccess

	clock.Advance(time.Hour)

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for range goroutines {
		go func() {
			defer wg.Done()
			_, err := mgr.Get(context.Background(), sess.Key)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, session.ErrSessionExpired))
		}()
	}
	wg.Wait()

	stored, err := store.Get(context.Background(), sess.Key)
	require.NoError(t, err)
	assert.Equal(t, originalAccess, stored.LastAccess)
}
