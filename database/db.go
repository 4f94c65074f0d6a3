package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// ErrNoDSN is returned by Connect when no connection string is configured.
var ErrNoDSN = errors.New("database dsn not set")

// Connect opens a PostgreSQL pool, tuned for serverless hosts like Neon that
// suspend idle compute.
func Connect(ctx context.Context, dsn string, logger zerolog.Logger) (*sql.DB, error) {
	if dsn == "" {
		return nil, ErrNoDSN
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Warn().Err(err).Msg("database ping failed, proceeding carefully")
	}

	// Idle connections would keep suspended compute awake
	db.SetMaxIdleConns(0)
	db.SetMaxOpenConns(10)

	logger.Info().Msg("connected to PostgreSQL")
	return db, nil
}
