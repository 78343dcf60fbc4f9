package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dharsanguruparan/PaperProbe/internal/storage"
)

// KVRepository is the PostgreSQL implementation of storage.KV. It lets the
// theme and preferences follow a user across machines that share a database.
type KVRepository struct {
	pool *pgxpool.Pool
}

var _ storage.KV = (*KVRepository)(nil)

// NewKVRepository constructs a repository.
func NewKVRepository(pool *pgxpool.Pool) *KVRepository {
	return &KVRepository{pool: pool}
}

// Get returns the value for key, or storage.ErrNotFound.
func (r *KVRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	row := r.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key=$1`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("select kv %s: %w", key, err)
	}
	return value, nil
}

// Set upserts key.
func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert kv %s: %w", key, err)
	}
	return nil
}
