// Package mongo provides MongoDB client initialization and health checking
// for the MongoDB-backed session store.
//
// It wraps the official MongoDB Go driver with application-level retry logic
// optimized for managed deployments such as MongoDB Atlas, where cold starts
// and brief network interruptions could otherwise fail application startup.
//
// # Configuration
//
// Configuration is handled through environment variables via the Config
// struct:
//
//	MONGODB_URL                 (required)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
//
// # Usage
//
//	var cfg mongo.Config
//	if err := env.Parse(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "myapp")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Client().Disconnect(ctx)
//
//	store := mongostore.New(db)
//
// New returns the bare client when direct access is needed; both constructors
// verify the connection with a ping before returning. Healthcheck returns a
// probe function for readiness endpoints.
package mongo
