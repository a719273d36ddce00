// Package pg provides PostgreSQL connection management with migrations and
// health checking for the PostgreSQL-backed session store.
//
// It wraps the pgx driver with retry logic on connect, connection pool
// tuning, and goose-based schema migrations. Connection establishment uses
// backoff between attempts so restarting services do not hammer a database
// that is still coming up.
//
// # Configuration
//
// All configuration is handled through the Config struct with environment
// variable mapping:
//
//	type Config struct {
//		ConnectionString  string        `env:"PG_CONN_URL,required"`
//		MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
//		MinOpenConns      int32         `env:"PG_MIN_OPEN_CONNS" envDefault:"1"`
//		HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
//		MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
//		MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
//		RetryAttempts     int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval     time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
//	}
//
// # Usage
//
//	var cfg pg.Config
//	if err := env.Parse(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, pgstore.Migrations, "migrations"); err != nil {
//		log.Fatal(err)
//	}
//
// # Ambient Transactions
//
// WithTx and TxFromContext carry a pgx.Tx through a context. Store
// implementations in this module check the context first, so callers can
// compose session writes with their own transactional work:
//
//	tx, _ := pool.Begin(ctx)
//	ctx = pg.WithTx(ctx, tx)
//	// store operations now run inside tx
package pg
