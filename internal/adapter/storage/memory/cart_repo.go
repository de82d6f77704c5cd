package memory

import (
	"context"
	"sync"

	"token-shop/internal/core/domain"

	"github.com/google/uuid"
)

// CartRepo implements ports.CartRepository.
type CartRepo struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]*domain.Cart
}

// NewCartRepo creates an empty CartRepo.
func NewCartRepo() *CartRepo {
	return &CartRepo{carts: make(map[uuid.UUID]*domain.Cart)}
}

func (r *CartRepo) Get(ctx context.Context, ownerID uuid.UUID) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[ownerID]
	if !ok {
		return nil, nil
	}
	return c.Clone(), nil
}

func (r *CartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cart.OwnerID] = cart.Clone()
	return nil
}

func (r *CartRepo) Delete(ctx context.Context, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, ownerID)
	return nil
}
