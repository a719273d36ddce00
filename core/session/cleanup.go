package session

import (
	"context"
	"time"

	"github.com/dmitrymomot/sessionstore/core/logger"
)

// CleanupExpired removes all sessions whose TTL has elapsed and returns the
// count of deleted records. With expiration disabled it is a no-op.
//
// Sweeping is an optional optimization: expiry is already enforced lazily on
// every Get, so correctness never depends on this being called.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	if m.cfg.TimeToLive <= 0 {
		return 0, nil
	}

	cutoff := m.now().UnixMilli() - m.cfg.TimeToLive.Milliseconds()
	removed, err := m.store.DeleteExpired(ctx, m.cfg.anchor(), cutoff)
	if err != nil {
		m.metrics.observeError("cleanup")
		return 0, err
	}

	if removed > 0 {
		m.log.DebugContext(ctx, "expired sessions removed", logger.Count("count", removed))
	}
	m.metrics.observeSwept(removed)
	return removed, nil
}

// RunCleanup sweeps expired sessions every interval until ctx is canceled.
// It blocks; run it in its own goroutine. Sweep failures are logged and the
// loop keeps going.
func (m *Manager) RunCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 || m.cfg.TimeToLive <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.CleanupExpired(ctx); err != nil {
				m.log.ErrorContext(ctx, "session cleanup failed", logger.Error(err))
			}
		}
	}
}
