package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"token-shop/internal/core/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// CartRepo implements ports.CartRepository. Each cart is one JSON value
// under cart:<owner>; the TTL is refreshed on every save.
type CartRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewCartRepo creates a Redis-backed cart store. A zero ttl keeps carts
// until they are cleared.
func NewCartRepo(client *goredis.Client, ttl time.Duration) *CartRepo {
	return &CartRepo{client: client, ttl: ttl}
}

// Get returns nil, nil when the owner has no stored cart.
func (r *CartRepo) Get(ctx context.Context, ownerID uuid.UUID) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(ownerID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis cart get: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return &cart, nil
}

func (r *CartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := r.client.Set(ctx, cartKey(cart.OwnerID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis cart set: %w", err)
	}
	return nil
}

func (r *CartRepo) Delete(ctx context.Context, ownerID uuid.UUID) error {
	if err := r.client.Del(ctx, cartKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("redis cart delete: %w", err)
	}
	return nil
}

func cartKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("cart:%s", ownerID)
}
