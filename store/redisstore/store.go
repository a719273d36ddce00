package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sessionstore/core/session"
)

const (
	defaultPrefix    = "session:"
	defaultScanBatch = 1000

	// touchAttempts bounds the optimistic-transaction retries in TouchIf.
	touchAttempts = 3
)

// ErrTouchConflict is returned when TouchIf loses the optimistic transaction
// race touchAttempts times in a row.
var ErrTouchConflict = errors.New("session touch conflicted with concurrent writes")

// Store is a Redis-backed session store.
type Store struct {
	client    *goredis.Client
	prefix    string
	ttl       time.Duration
	scanBatch int64
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix overrides the key prefix (default "session:").
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL arms Redis native expiration on every write. Zero disables it.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithScanBatchSize sets the SCAN batch size used by DeleteExpired.
func WithScanBatchSize(size int64) Option {
	return func(s *Store) {
		if size > 0 {
			s.scanBatch = size
		}
	}
}

// New creates a session store backed by the given client.
func New(client *goredis.Client, opts ...Option) *Store {
	s := &Store{
		client:    client,
		prefix:    defaultPrefix,
		scanBatch: defaultScanBatch,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(sessionKey string) string {
	return s.prefix + sessionKey
}

// Insert persists a freshly created session.
func (s *Store) Insert(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ok, err := s.client.SetNX(ctx, s.key(sess.Key), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", session.ErrDuplicateKey, sess.Key)
	}
	return nil
}

// Get loads a session by key without touching it.
func (s *Store) Get(ctx context.Context, key string) (*session.Session, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, session.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return unmarshalSession(val)
}

// TouchIf atomically loads the session, applies check to the touched copy and
// writes the record back with the new lastAccess. The WATCH guard guarantees
// the write-back only commits when no concurrent modification happened since
// the read, so writing the full record is equivalent to a partial update of
// lastAccess. A check error aborts without a write.
func (s *Store) TouchIf(ctx context.Context, key string, lastAccess int64, check func(*session.Session) error) (*session.Session, error) {
	k := s.key(key)
	var touched *session.Session

	txf := func(tx *goredis.Tx) error {
		val, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, goredis.Nil) {
			return session.ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}

		rec, err := unmarshalSession(val)
		if err != nil {
			return err
		}

		rec.LastAccess = lastAccess
		if err := check(rec); err != nil {
			return err
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, k, data, goredis.KeepTTL)
			return nil
		})
		if err != nil {
			return err
		}

		touched = rec
		return nil
	}

	for attempt := 0; attempt < touchAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, k)
		if err == nil {
			return touched, nil
		}
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("%w: %s", ErrTouchConflict, key)
}

// Replace fully overwrites the stored record. The XX flag makes the write
// conditional on the key still existing.
func (s *Store) Replace(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := s.ttl
	if ttl == 0 {
		ttl = goredis.KeepTTL
	}
	ok, err := s.client.SetXX(ctx, s.key(sess.Key), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	if !ok {
		return session.ErrSessionNotFound
	}
	return nil
}

// Delete removes a session by key.
func (s *Store) Delete(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, s.key(key)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return session.ErrSessionNotFound
	}
	return nil
}

// DeleteExpired sweeps the keyspace with SCAN and removes every session
// whose anchor timestamp is at or before cutoff.
func (s *Store) DeleteExpired(ctx context.Context, anchor string, cutoff int64) (int64, error) {
	var removed int64
	var cursor uint64

	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", s.scanBatch).Result()
		if err != nil {
			return removed, fmt.Errorf("scan sessions: %w", err)
		}

		for _, k := range keys {
			val, err := s.client.Get(ctx, k).Bytes()
			if errors.Is(err, goredis.Nil) {
				continue // expired natively mid-scan
			}
			if err != nil {
				return removed, fmt.Errorf("get session: %w", err)
			}

			rec, err := unmarshalSession(val)
			if err != nil {
				return removed, err
			}
			if session.AnchorValue(rec, anchor) > cutoff {
				continue
			}

			n, err := s.client.Del(ctx, k).Result()
			if err != nil {
				return removed, fmt.Errorf("delete session: %w", err)
			}
			removed += n
		}

		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}

func unmarshalSession(data []byte) (*session.Session, error) {
	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}
