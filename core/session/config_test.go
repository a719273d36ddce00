package session_test

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionstore/core/session"
)

func TestConfig_EnvDefaults(t *testing.T) {
	var cfg session.Config
	require.NoError(t, env.Parse(&cfg))

	assert.Equal(t, 10, cfg.SIDLength)
	assert.False(t, cfg.SIDTimestamp)
	assert.Equal(t, time.Duration(0), cfg.TimeToLive)
	assert.Equal(t, session.AnchorCreated, cfg.TTLAnchor)
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SESSION_SID_LENGTH", "24")
	t.Setenv("SESSION_SID_TIMESTAMP", "true")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_TTL_ANCHOR", "lastAccess")

	var cfg session.Config
	require.NoError(t, env.Parse(&cfg))

	assert.Equal(t, 24, cfg.SIDLength)
	assert.True(t, cfg.SIDTimestamp)
	assert.Equal(t, 30*time.Minute, cfg.TimeToLive)
	assert.Equal(t, session.AnchorLastAccess, cfg.TTLAnchor)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := session.DefaultConfig()

	assert.Equal(t, 10, cfg.SIDLength)
	assert.False(t, cfg.SIDTimestamp)
	assert.Equal(t, time.Duration(0), cfg.TimeToLive)
	assert.Equal(t, session.AnchorCreated, cfg.TTLAnchor)
}
