package session_test

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionstore/core/session"
)

var alphanumeric = regexp.MustCompile(`^[A-Za-z0-9]+$`)

func TestGenerateID_DefaultLength(t *testing.T) {
	t.Parallel()

	id, err := session.GenerateID(session.Config{})

	require.NoError(t, err)
	assert.Len(t, id, 10)
	assert.Regexp(t, alphanumeric, id)
}

func TestGenerateID_CustomLength(t *testing.T) {
	t.Parallel()

	id, err := session.GenerateID(session.Config{SIDLength: 6})

	require.NoError(t, err)
	assert.Len(t, id, 6)
	assert.Regexp(t, alphanumeric, id)
}

func TestGenerateID_TimestampPrefix(t *testing.T) {
	t.Parallel()

	before := time.Now().UnixMilli()
	id, err := session.GenerateID(session.Config{SIDLength: 8, SIDTimestamp: true})
	after := time.Now().UnixMilli()

	require.NoError(t, err)

	prefix, suffix, found := strings.Cut(id, "-")
	require.True(t, found, "timestamped id should contain the separator")
	assert.Len(t, suffix, 8)
	assert.Regexp(t, alphanumeric, suffix)

	// The prefix is a reversible base-36 encoding of the generation instant.
	ms, err := strconv.ParseInt(prefix, 36, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ms, before)
	assert.LessOrEqual(t, ms, after)
}

func TestGenerateID_TimestampOnly(t *testing.T) {
	t.Parallel()

	// SIDLength of exactly zero with a timestamp prefix yields
	// timestamp-only keys.
	id, err := session.GenerateID(session.Config{SIDLength: 0, SIDTimestamp: true})

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NotContains(t, id, "-")

	_, err = strconv.ParseInt(id, 36, 64)
	require.NoError(t, err)
}

func TestGenerateID_Uniqueness(t *testing.T) {
	t.Parallel()

	cfg := session.Config{SIDLength: 16}
	seen := make(map[string]struct{}, 1000)

	for range 1000 {
		id, err := session.GenerateID(cfg)
		require.NoError(t, err)

		_, dup := seen[id]
		require.False(t, dup, "generated a duplicate id: %s", id)
		seen[id] = struct{}{}
	}
}
