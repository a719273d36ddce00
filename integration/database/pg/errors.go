package pg

import "errors"

var (
	// ErrFailedToConnect is returned when all connection retry attempts are
	// exhausted.
	ErrFailedToConnect = errors.New("failed to connect to postgres")
	// ErrMigrationFailed is returned when applying schema migrations fails.
	ErrMigrationFailed = errors.New("postgres migration failed")
	// ErrHealthcheckFailed is returned when the health check ping fails.
	ErrHealthcheckFailed = errors.New("postgres healthcheck failed")
)
