package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionstore/core/session"
)

func TestMetrics_CountsLifecycleOperations(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := session.NewMetrics(reg)

	clock := newFakeClock()
	cfg := session.Config{SIDLength: 10, TimeToLive: time.Minute}
	mgr := session.New(session.NewMemoryStore(), cfg,
		session.WithClock(clock.Now),
		session.WithMetrics(metrics),
	)
	ctx := context.Background()

	sess, err := mgr.Create(ctx, nil, nil)
	require.NoError(t, err)

	_, err = mgr.Get(ctx, sess.Key)
	require.NoError(t, err)

	_, err = mgr.Get(ctx, "missing")
	require.Error(t, err)

	clock.Advance(2 * time.Minute)
	_, err = mgr.Get(ctx, sess.Key)
	require.ErrorIs(t, err, session.ErrSessionExpired)

	_, err = mgr.Save(ctx, sess)
	require.NoError(t, err)

	ok, err := mgr.Delete(ctx, sess.Key)
	require.NoError(t, err)
	require.True(t, ok)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	counters := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, label := range m.GetLabel() {
				name += ":" + label.GetValue()
			}
			counters[name] = m.GetCounter().GetValue()
		}
	}

	assert.Equal(t, 1.0, counters["sessionstore_sessions_created_total"])
	assert.Equal(t, 1.0, counters["sessionstore_session_gets_total:hit"])
	assert.Equal(t, 1.0, counters["sessionstore_session_gets_total:miss"])
	assert.Equal(t, 1.0, counters["sessionstore_session_gets_total:expired"])
	assert.Equal(t, 1.0, counters["sessionstore_session_saves_total"])
	assert.Equal(t, 1.0, counters["sessionstore_session_deletes_total"])
}

func TestMetrics_SweepCounter(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := session.NewMetrics(reg)

	clock := newFakeClock()
	cfg := session.Config{SIDLength: 10, TimeToLive: time.Minute}
	mgr := session.New(session.NewMemoryStore(), cfg,
		session.WithClock(clock.Now),
		session.WithMetrics(metrics),
	)

	_, err := mgr.Create(context.Background(), nil, nil)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	removed, err := mgr.CleanupExpired(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "sessionstore_sessions_swept_total" {
			require.Len(t, mf.GetMetric(), 1)
			assert.Equal(t, 1.0, mf.GetMetric()[0].GetCounter().GetValue())
			return
		}
	}
	t.Fatal("sweep counter was not registered")
}

func TestMetrics_NilIsDisabled(t *testing.T) {
	t.Parallel()

	// A manager without WithMetrics must work identically.
	mgr := session.New(session.NewMemoryStore(), session.DefaultConfig())

	sess, err := mgr.Create(context.Background(), nil, nil)
	require.NoError(t, err)

	_, err = mgr.Get(context.Background(), sess.Key)
	assert.NoError(t, err)
}
