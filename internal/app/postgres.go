package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/guttosm/msepulse/config"
	"github.com/guttosm/msepulse/internal/logger"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// pingTimeout bounds each connectivity check at startup.
const pingTimeout = 5 * time.Second

// newBackOff is the retry schedule between startup pings; tests shorten it.
var newBackOff = func() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// InitPostgres opens the PostgreSQL pool described by cfg.Postgres and
// checks it is reachable.
//
// Behavior:
//   - Builds the DSN with config.PostgresConfig.DSN (credentials escaped).
//   - Applies pool limits (max open/idle connections, connection lifetime).
//   - Pings with exponential backoff, ConnectRetries extra attempts.
//   - Closes the pool when every attempt fails.
//
// Example usage:
//
//	db, err := app.InitPostgres(config.AppConfig)
//	if err != nil {
//	    logger.L().Fatal().Err(err).Msg("db connect error")
//	}
//	defer db.Close()
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	pg := cfg.Postgres

	db, err := sqlOpener("postgres", pg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if pg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pg.MaxOpenConns)
	}
	if pg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pg.MaxIdleConns)
	}
	if pg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pg.ConnMaxLifetime)
	}

	retries := pg.ConnectRetries
	if retries < 0 {
		retries = 0
	}

	ping := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		return db.PingContext(ctx)
	}
	notify := func(err error, wait time.Duration) {
		logger.L().Warn().
			Err(err).
			Str("dsn", pg.Redacted()).
			Dur("retry_in", wait).
			Msg("postgres not reachable, retrying")
	}

	if err := backoff.RetryNotify(ping, backoff.WithMaxRetries(newBackOff(), uint64(retries)), notify); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.L().Info().Str("dsn", pg.Redacted()).Msg("postgres connected")
	return db, nil
}

// postgresOpener is an indirection used by InitializeApp; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres
