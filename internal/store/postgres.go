package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/surgiflow/surgiflow/internal/shared"
)

const collectionsSchema = `
CREATE TABLE IF NOT EXISTS collections (
    name       TEXT PRIMARY KEY,
    data       JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Postgres persists collection blobs in a single jsonb table. It exists
// for deployments that already run PostgreSQL and prefer it over Redis
// for durable state.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps a pool and ensures the collections table exists.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	if _, err := pool.Exec(ctx, collectionsSchema); err != nil {
		return nil, fmt.Errorf("%w: ensure schema: %v", shared.ErrStore, err)
	}
	return &Postgres{pool: pool}, nil
}

// Read implements Backend.
func (s *Postgres) Read(ctx context.Context, collection string) ([]byte, error) {
	var blob []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM collections WHERE name = $1`, collection).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", shared.ErrStore, collection, err)
	}
	return blob, nil
}

// Write implements Backend.
func (s *Postgres) Write(ctx context.Context, collection string, blob []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO collections (name, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		collection, blob)
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", shared.ErrStore, collection, err)
	}
	return nil
}
