package pgstore

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/sessionstore/core/session"
	"github.com/dmitrymomot/sessionstore/integration/database/pg"
)

// Migrations holds the embedded goose migrations for the sessions table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// Migrate applies the sessions schema to the pool's database.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return pg.Migrate(ctx, pool, Migrations, "migrations")
}

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

// Store is a PostgreSQL-backed session store.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a session store backed by the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// querier is the subset of pgx shared by pools and transactions.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// q returns the ambient transaction when one is carried in ctx, otherwise
// the pool.
func (s *Store) q(ctx context.Context) querier {
	if tx, ok := pg.TxFromContext(ctx); ok {
		return tx
	}
	return s.pool
}

// Insert persists a freshly created session.
func (s *Store) Insert(ctx context.Context, sess *session.Session) error {
	_, err := s.q(ctx).Exec(ctx, `
		INSERT INTO sessions (key, uid, user_data, session_data, created, last_access, last_update)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sess.Key, sess.UserID, sess.UserData, sess.SessionData,
		sess.Created, sess.LastAccess, sess.LastUpdate,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", session.ErrDuplicateKey, sess.Key)
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Get loads a session by key without touching it.
func (s *Store) Get(ctx context.Context, key string) (*session.Session, error) {
	return scanSession(s.q(ctx).QueryRow(ctx, `
		SELECT key, uid, user_data, session_data, created, last_access, last_update
		FROM sessions WHERE key = $1`, key))
}

// TouchIf atomically loads the session, applies check to the touched copy and
// persists the new lastAccess, using a row lock to serialize against
// concurrent operations on the same key. A check error rolls the transaction
// back without a write.
func (s *Store) TouchIf(ctx context.Context, key string, lastAccess int64, check func(*session.Session) error) (*session.Session, error) {
	if tx, ok := pg.TxFromContext(ctx); ok {
		// The caller owns commit and rollback of the ambient transaction.
		return s.touchLocked(ctx, tx, key, lastAccess, check)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin touch transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sess, err := s.touchLocked(ctx, tx, key, lastAccess, check)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit touch transaction: %w", err)
	}
	return sess, nil
}

func (s *Store) touchLocked(ctx context.Context, tx pgx.Tx, key string, lastAccess int64, check func(*session.Session) error) (*session.Session, error) {
	sess, err := scanSession(tx.QueryRow(ctx, `
		SELECT key, uid, user_data, session_data, created, last_access, last_update
		FROM sessions WHERE key = $1 FOR UPDATE`, key))
	if err != nil {
		return nil, err
	}

	sess.LastAccess = lastAccess
	if err := check(sess); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE sessions SET last_access = $2 WHERE key = $1`, key, lastAccess); err != nil {
		return nil, fmt.Errorf("touch session: %w", err)
	}
	return sess, nil
}

// Replace fully overwrites the stored record.
func (s *Store) Replace(ctx context.Context, sess *session.Session) error {
	tag, err := s.q(ctx).Exec(ctx, `
		UPDATE sessions
		SET uid = $2, user_data = $3, session_data = $4,
		    created = $5, last_access = $6, last_update = $7
		WHERE key = $1`,
		sess.Key, sess.UserID, sess.UserData, sess.SessionData,
		sess.Created, sess.LastAccess, sess.LastUpdate,
	)
	if err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrSessionNotFound
	}
	return nil
}

// Delete removes a session by key.
func (s *Store) Delete(ctx context.Context, key string) error {
	tag, err := s.q(ctx).Exec(ctx, `DELETE FROM sessions WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrSessionNotFound
	}
	return nil
}

// DeleteExpired removes every session whose anchor timestamp is at or before
// cutoff.
func (s *Store) DeleteExpired(ctx context.Context, anchor string, cutoff int64) (int64, error) {
	column := "created"
	switch anchor {
	case session.AnchorLastAccess:
		column = "last_access"
	case session.AnchorLastUpdate:
		column = "last_update"
	}

	tag, err := s.q(ctx).Exec(ctx,
		fmt.Sprintf(`DELETE FROM sessions WHERE %s <= $1`, column), cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanSession(row pgx.Row) (*session.Session, error) {
	var sess session.Session
	err := row.Scan(
		&sess.Key, &sess.UserID, &sess.UserData, &sess.SessionData,
		&sess.Created, &sess.LastAccess, &sess.LastUpdate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return &sess, nil
}
