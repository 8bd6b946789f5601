package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS media (
	id           TEXT PRIMARY KEY,
	year         INT NOT NULL,
	square_index INT NOT NULL,
	place        TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	media_type   TEXT NOT NULL CHECK (media_type IN ('image', 'video')),
	url          TEXT NOT NULL,
	caption      TEXT NOT NULL DEFAULT '',
	coords       JSONB,
	deleted      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS media_type_deleted_idx ON media (media_type, deleted);
CREATE INDEX IF NOT EXISTS media_year_square_idx ON media (year, square_index);

CREATE TABLE IF NOT EXISTS evaluation (
	id           TEXT PRIMARY KEY,
	evaluator_id TEXT NOT NULL,
	media_id     TEXT NOT NULL REFERENCES media (id),
	beauty       SMALLINT NOT NULL CHECK (beauty BETWEEN 1 AND 5),
	boring       SMALLINT NOT NULL CHECK (boring BETWEEN 1 AND 5),
	depressing   SMALLINT NOT NULL CHECK (depressing BETWEEN 1 AND 5),
	lively       SMALLINT NOT NULL CHECK (lively BETWEEN 1 AND 5),
	wealthy      SMALLINT NOT NULL CHECK (wealthy BETWEEN 1 AND 5),
	safe         SMALLINT NOT NULL CHECK (safe BETWEEN 1 AND 5),
	comment      TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	CONSTRAINT evaluation_evaluator_media_key UNIQUE (evaluator_id, media_id)
);

CREATE INDEX IF NOT EXISTS evaluation_evaluator_created_idx ON evaluation (evaluator_id, created_at DESC);
`

// NewPgxPool connects and pings with a bounded timeout.
func NewPgxPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect pgxpool: %w", err)
	}

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return pool, nil
}

// EnsureSchema is idempotent; the unique constraint on (evaluator_id, media_id)
// is what makes InsertEvaluation atomic.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
