package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// IdempotencyCache implements ports.IdempotencyCache on the idempotency_keys
// table. It is used when Redis is disabled.
type IdempotencyCache struct {
	pool Pool
	now  func() time.Time
}

// NewIdempotencyCache creates a new IdempotencyCache.
func NewIdempotencyCache(pool Pool) *IdempotencyCache {
	return &IdempotencyCache{pool: pool, now: time.Now}
}

// Get returns the stored response, or nil when the key is absent or expired.
func (c *IdempotencyCache) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT response FROM idempotency_keys WHERE key = $1 AND expires_at > $2`

	var body []byte
	err := c.pool.QueryRow(ctx, query, key, c.now().UTC()).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency key: %w", err)
	}
	return body, nil
}

// Set stores a response. An expired row under the same key is replaced.
func (c *IdempotencyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := c.now().UTC()
	query := `INSERT INTO idempotency_keys (key, response, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET response = EXCLUDED.response, created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at
		WHERE idempotency_keys.expires_at <= EXCLUDED.created_at`

	if _, err := c.pool.Exec(ctx, query, key, value, now, now.Add(ttl)); err != nil {
		return fmt.Errorf("set idempotency key: %w", err)
	}
	return nil
}
