package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool against the given URL and verifies the
// connection with a ping.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// EnsureSchema creates the tables if they do not exist yet. Convenient for
// local development; production deployments run migrations out of band.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			id                 BIGSERIAL PRIMARY KEY,
			name               TEXT NOT NULL,
			email              TEXT NOT NULL UNIQUE,
			phone              TEXT NOT NULL,
			password_hash      TEXT NOT NULL,
			is_admin           BOOLEAN NOT NULL DEFAULT FALSE,
			reset_token        TEXT UNIQUE,
			reset_token_expiry TIMESTAMPTZ,
			created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS evaluation_requests (
			id             BIGSERIAL PRIMARY KEY,
			account_id     BIGINT NOT NULL REFERENCES accounts(id),
			details        TEXT NOT NULL,
			contact_method TEXT NOT NULL,
			photo_filename TEXT,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}
