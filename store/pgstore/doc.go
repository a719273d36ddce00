// Package pgstore implements the session Store port on top of PostgreSQL.
//
// Sessions live in a single table keyed by primary key. The atomic lookup
// path (TouchIf) is a textbook transactional read-modify-write: BEGIN, SELECT
// FOR UPDATE, evaluate, UPDATE last_access, COMMIT. The row lock serializes
// concurrent lookups, saves and deletes on the same key, and the transaction
// rolls back without a write when the expiry check rejects the record.
//
// The schema ships as an embedded goose migration:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := pgstore.Migrate(ctx, pool); err != nil {
//		log.Fatal(err)
//	}
//	manager := session.New(pgstore.New(pool), sessionCfg)
//
// All operations honor an ambient transaction carried via pg.WithTx.
package pgstore
