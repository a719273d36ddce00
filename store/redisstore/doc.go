// Package redisstore implements the session Store port on top of Redis.
//
// Each session is stored as one JSON document under a prefixed key. The
// atomic lookup path (TouchIf) uses the WATCH/MULTI/EXEC optimistic
// transaction: the write commits only if no one modified the key since the
// read, and a conflicting commit is retried a bounded number of times inside
// the store. A check error aborts without a write.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := redisstore.New(client, redisstore.WithTTL(48*time.Hour))
//	manager := session.New(store, sessionCfg)
//
// WithTTL arms Redis native key expiration as a storage-level backstop for
// records the lazy expiry check has abandoned; set it comfortably above the
// manager's TimeToLive so the engine, not Redis, decides when a session is
// dead. Without it, DeleteExpired offers a SCAN-based sweep instead.
package redisstore
