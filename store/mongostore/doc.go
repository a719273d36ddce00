// Package mongostore implements the session Store port on top of MongoDB.
//
// Sessions live in a single collection keyed by _id. The atomic lookup path
// (TouchIf) runs as a multi-document transaction via the driver's session
// support, which requires a replica set deployment (MongoDB Atlas qualifies);
// the transaction aborts without a write when the expiry check rejects the
// record.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "myapp")
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := mongostore.New(db)
//	if err := store.EnsureIndexes(ctx); err != nil {
//		log.Fatal(err)
//	}
//	manager := session.New(store, sessionCfg)
package mongostore
