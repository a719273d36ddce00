package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionstore/core/session"
)

func TestSession_ForClient(t *testing.T) {
	t.Parallel()

	sess := &session.Session{Key: "abc123"}

	assert.Equal(t, "abc123", sess.ForClient())
}

func TestSession_SetUser_Bind(t *testing.T) {
	t.Parallel()

	sess := &session.Session{Key: "k1", UserData: map[string]any{}}
	user := &session.User{
		ID:   "users/42",
		Data: map[string]any{"name": "Alice", "role": "admin"},
	}

	got := sess.SetUser(user)

	assert.Same(t, sess, got)
	require.NotNil(t, sess.UserID)
	assert.Equal(t, "users/42", *sess.UserID)
	assert.Equal(t, user.Data, sess.UserData)
	assert.True(t, sess.IsAuthenticated())
}

func TestSession_SetUser_CopiesUserData(t *testing.T) {
	t.Parallel()

	payload := map[string]any{"name": "Alice"}
	sess := (&session.Session{Key: "k1"}).SetUser(&session.User{ID: "u1", Data: payload})

	payload["name"] = "Mallory"

	assert.Equal(t, "Alice", sess.UserData["name"], "bind must copy the payload, not alias it")
}

func TestSession_SetUser_Rebind(t *testing.T) {
	t.Parallel()

	sess := &session.Session{Key: "k1"}
	sess.SetUser(&session.User{ID: "u1", Data: map[string]any{"name": "Alice"}})
	sess.SetUser(&session.User{ID: "u2", Data: map[string]any{"name": "Bob"}})

	require.NotNil(t, sess.UserID)
	assert.Equal(t, "u2", *sess.UserID)
	assert.Equal(t, "Bob", sess.UserData["name"])
}

func TestSession_SetUser_Unbind(t *testing.T) {
	t.Parallel()

	sess := &session.Session{Key: "k1"}
	sess.SetUser(&session.User{ID: "u1", Data: map[string]any{"name": "Alice"}})

	sess.SetUser(nil)

	assert.Nil(t, sess.UserID)
	assert.NotNil(t, sess.UserData)
	assert.Empty(t, sess.UserData)
	assert.False(t, sess.IsAuthenticated())
}

func TestSession_SetUser_NilData(t *testing.T) {
	t.Parallel()

	sess := (&session.Session{Key: "k1"}).SetUser(&session.User{ID: "u1"})

	require.NotNil(t, sess.UserID)
	assert.NotNil(t, sess.UserData)
	assert.Empty(t, sess.UserData)
}

func TestAnchorValue(t *testing.T) {
	t.Parallel()

	sess := &session.Session{Created: 100, LastAccess: 200, LastUpdate: 300}

	assert.Equal(t, int64(100), session.AnchorValue(sess, session.AnchorCreated))
	assert.Equal(t, int64(200), session.AnchorValue(sess, session.AnchorLastAccess))
	assert.Equal(t, int64(300), session.AnchorValue(sess, session.AnchorLastUpdate))

	t.Run("unknown anchor falls back to created", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, int64(100), session.AnchorValue(sess, "bogus"))
	})

	t.Run("zero-valued anchor falls back to created", func(t *testing.T) {
		t.Parallel()
		partial := &session.Session{Created: 100}
		assert.Equal(t, int64(100), session.AnchorValue(partial, session.AnchorLastAccess))
	})
}
