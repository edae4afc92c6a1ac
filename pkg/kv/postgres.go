package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores values in the kv_store table (see pkg/database/migrations).
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps a migrated pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Read selects the value for key.
func (p *Postgres) Read(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	const q = `SELECT value FROM kv_store WHERE key = $1`
	var v string
	err := p.pool.QueryRow(ctx, q, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select kv: %w", err)
	}
	return v, true, nil
}

// Write upserts the value for key.
func (p *Postgres) Write(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	const q = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	if _, err := p.pool.Exec(ctx, q, key, value); err != nil {
		return fmt.Errorf("upsert kv: %w", err)
	}
	return nil
}
