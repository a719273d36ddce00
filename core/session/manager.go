package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/dmitrymomot/sessionstore/core/logger"
)

// Manager is the stateless session lifecycle engine. It owns key generation,
// the TTL model and the atomic fetch-validate-touch sequence, delegating all
// persistence and concurrency control to the injected Store.
type Manager struct {
	store   Store
	cfg     Config
	log     *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for lifecycle events. Logging is discarded
// by default.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithMetrics enables Prometheus instrumentation of lifecycle operations.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a session manager backed by the given store.
func New(store Store, cfg Config, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		cfg:   cfg,
		log:   slog.New(slog.DiscardHandler),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create builds and persists a new session. sessionData becomes the caller
// payload (nil is stored as an empty map). When userData is given it is
// copied into the record, and its "_id" entry, if present, binds the session
// to that user. All three timestamps are set to the current time.
//
// Insert failures, including the statistically negligible key collision,
// surface wrapped in ErrStorage; collisions additionally match
// ErrDuplicateKey so callers can retry with a fresh key.
func (m *Manager) Create(ctx context.Context, sessionData, userData map[string]any) (*Session, error) {
	key, err := GenerateID(m.cfg)
	if err != nil {
		return nil, err
	}

	if sessionData == nil {
		sessionData = map[string]any{}
	}

	now := m.now().UnixMilli()
	sess := &Session{
		Key:         key,
		UserData:    map[string]any{},
		SessionData: sessionData,
		Created:     now,
		LastAccess:  now,
		LastUpdate:  now,
	}
	if userData != nil {
		sess.UserData = maps.Clone(userData)
		if id, ok := userData["_id"].(string); ok && id != "" {
			sess.UserID = &id
		}
	}

	if err := m.store.Insert(ctx, sess); err != nil {
		m.metrics.observeError("create")
		return nil, errors.Join(ErrStorage, err)
	}

	m.log.DebugContext(ctx, "session created", logger.SessionKey(key), logger.UserID(sess.UserID))
	m.metrics.observeCreate()
	return sess, nil
}

// Get retrieves a session by key, enforcing expiration and touching the
// last-access timestamp in one atomic step. The returned record already
// carries the updated lastAccess.
//
// Returns ErrSessionNotFound when no record exists (or it vanished
// concurrently) and ErrSessionExpired when the TTL has elapsed; an expired
// record's stored lastAccess is left untouched.
func (m *Manager) Get(ctx context.Context, key string) (*Session, error) {
	now := m.now().UnixMilli()

	sess, err := m.store.TouchIf(ctx, key, now, func(s *Session) error {
		if m.expiredAt(s, now) {
			return fmt.Errorf("%w: %s", ErrSessionExpired, key)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionExpired):
			m.metrics.observeGet("expired")
			return nil, err
		case errors.Is(err, ErrSessionNotFound):
			m.metrics.observeGet("miss")
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, key)
		default:
			m.metrics.observeError("get")
			return nil, errors.Join(ErrStorage, err)
		}
	}

	m.metrics.observeGet("hit")
	return sess, nil
}

// Save persists the session as a full replace of the stored record, stamping
// lastAccess and lastUpdate with the current time. A record that no longer
// exists surfaces ErrSessionNotFound; infrastructural failures surface
// wrapped in ErrStorage.
func (m *Manager) Save(ctx context.Context, sess *Session) (*Session, error) {
	now := m.now().UnixMilli()
	sess.LastAccess = now
	sess.LastUpdate = now

	if err := m.store.Replace(ctx, sess); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sess.Key)
		}
		m.metrics.observeError("save")
		return nil, errors.Join(ErrStorage, err)
	}

	m.metrics.observeSave()
	return sess, nil
}

// Delete removes a session by key. Deleting an already-absent session is not
// an error: it reports false. Any other storage failure propagates wrapped
// in ErrStorage.
func (m *Manager) Delete(ctx context.Context, key string) (bool, error) {
	if err := m.store.Delete(ctx, key); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return false, nil
		}
		m.metrics.observeError("delete")
		return false, errors.Join(ErrStorage, err)
	}

	m.log.DebugContext(ctx, "session deleted", logger.SessionKey(key))
	m.metrics.observeDelete()
	return true, nil
}

// TTL returns the session's remaining lifetime. The second return value is
// false when expiration is disabled and the session never times out.
func (m *Manager) TTL(sess *Session) (time.Duration, bool) {
	if m.cfg.TimeToLive <= 0 {
		return 0, false
	}
	remaining := m.expiryOf(sess) - m.now().UnixMilli()
	if remaining < 0 {
		remaining = 0
	}
	return time.Duration(remaining) * time.Millisecond, true
}

// ExpiresAt returns the instant the session expires. The second return value
// is false when expiration is disabled.
func (m *Manager) ExpiresAt(sess *Session) (time.Time, bool) {
	if m.cfg.TimeToLive <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(m.expiryOf(sess)), true
}

// HasExpired reports whether the session's TTL has reached zero.
func (m *Manager) HasExpired(sess *Session) bool {
	return m.expiredAt(sess, m.now().UnixMilli())
}

func (m *Manager) expiredAt(sess *Session, nowMs int64) bool {
	if m.cfg.TimeToLive <= 0 {
		return false
	}
	return m.expiryOf(sess) <= nowMs
}

func (m *Manager) expiryOf(sess *Session) int64 {
	return AnchorValue(sess, m.cfg.anchor()) + m.cfg.TimeToLive.Milliseconds()
}
