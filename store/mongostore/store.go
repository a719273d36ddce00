package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/sessionstore/core/session"
)

const defaultCollection = "sessions"

// Store is a MongoDB-backed session store.
type Store struct {
	col *mongodrv.Collection
}

// Option configures a Store.
type Option func(*config)

type config struct {
	collection string
}

// WithCollection overrides the collection name (default "sessions").
func WithCollection(name string) Option {
	return func(c *config) {
		if name != "" {
			c.collection = name
		}
	}
}

// New creates a session store backed by the given database.
func New(db *mongodrv.Database, opts ...Option) *Store {
	cfg := config{collection: defaultCollection}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store{col: db.Collection(cfg.collection)}
}

// EnsureIndexes creates the secondary indexes the expiry sweep queries by.
// The primary-key lookup needs nothing beyond the implicit _id index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	models := []mongodrv.IndexModel{
		{Keys: bson.D{{Key: "created", Value: 1}}},
		{Keys: bson.D{{Key: "lastAccess", Value: 1}}},
		{Keys: bson.D{{Key: "lastUpdate", Value: 1}}},
	}
	if _, err := s.col.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create session indexes: %w", err)
	}
	return nil
}

// Insert persists a freshly created session.
func (s *Store) Insert(ctx context.Context, sess *session.Session) error {
	if _, err := s.col.InsertOne(ctx, sess); err != nil {
		if mongodrv.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", session.ErrDuplicateKey, sess.Key)
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Get loads a session by key without touching it.
func (s *Store) Get(ctx context.Context, key string) (*session.Session, error) {
	var sess session.Session
	err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&sess)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &sess, nil
}

// TouchIf atomically loads the session, applies check to the touched copy and
// persists the new lastAccess as a partial update, all within one
// multi-document transaction. A check error aborts the transaction without a
// write.
func (s *Store) TouchIf(ctx context.Context, key string, lastAccess int64, check func(*session.Session) error) (*session.Session, error) {
	txnSess, err := s.col.Database().Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("start mongo session: %w", err)
	}
	defer txnSess.EndSession(ctx)

	result, err := txnSess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		var rec session.Session
		if err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&rec); err != nil {
			if errors.Is(err, mongodrv.ErrNoDocuments) {
				return nil, session.ErrSessionNotFound
			}
			return nil, fmt.Errorf("find session: %w", err)
		}

		rec.LastAccess = lastAccess
		if err := check(&rec); err != nil {
			return nil, err
		}

		upd, err := s.col.UpdateOne(ctx,
			bson.M{"_id": key},
			bson.M{"$set": bson.M{"lastAccess": lastAccess}},
		)
		if err != nil {
			return nil, fmt.Errorf("touch session: %w", err)
		}
		if upd.MatchedCount == 0 {
			// The record vanished between read and write.
			return nil, session.ErrSessionNotFound
		}

		return &rec, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*session.Session), nil
}

// Replace fully overwrites the stored record.
func (s *Store) Replace(ctx context.Context, sess *session.Session) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": sess.Key}, sess)
	if err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	if res.MatchedCount == 0 {
		return session.ErrSessionNotFound
	}
	return nil
}

// Delete removes a session by key.
func (s *Store) Delete(ctx context.Context, key string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return session.ErrSessionNotFound
	}
	return nil
}

// DeleteExpired removes every session whose anchor timestamp is at or before
// cutoff. Records missing the anchor field fall back to their creation time.
func (s *Store) DeleteExpired(ctx context.Context, anchor string, cutoff int64) (int64, error) {
	filter := bson.M{anchor: bson.M{"$lte": cutoff}}
	if anchor != "created" {
		filter = bson.M{"$or": bson.A{
			bson.M{anchor: bson.M{"$gt": 0, "$lte": cutoff}},
			bson.M{anchor: bson.M{"$in": bson.A{nil, 0}}, "created": bson.M{"$lte": cutoff}},
		}}
	}

	res, err := s.col.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.DeletedCount, nil
}
