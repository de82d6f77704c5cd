package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"token-shop/internal/core/domain"
	"token-shop/internal/core/ports"
	"token-shop/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// CartServiceImpl implements ports.CartService.
type CartServiceImpl struct {
	repo  ports.CartRepository
	locks *keyedMutex
	sfg   singleflight.Group // collapses concurrent reads of the same cart
	now   func() time.Time
	log   zerolog.Logger
}

// NewCartService creates a new CartServiceImpl.
func NewCartService(repo ports.CartRepository, log zerolog.Logger) *CartServiceImpl {
	return &CartServiceImpl{
		repo:  repo,
		locks: newKeyedMutex(),
		now:   func() time.Time { return time.Now().UTC() },
		log:   log,
	}
}

// errCartUnchanged tells mutate the cart needs no save.
var errCartUnchanged = errors.New("cart unchanged")

func cartLockKey(ownerID uuid.UUID) string {
	return "cart:" + ownerID.String()
}

// GetCart returns the owner's cart; an owner without one gets an empty cart.
func (s *CartServiceImpl) GetCart(ctx context.Context, ownerID uuid.UUID) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(ownerID.String(), func() (interface{}, error) {
		return s.load(ctx, ownerID)
	})
	if err != nil {
		return nil, err
	}
	// Shared results must not be mutated by callers.
	return v.(*domain.Cart).Clone(), nil
}

// AddItem increments an existing line or appends the item with quantity 1.
func (s *CartServiceImpl) AddItem(ctx context.Context, ownerID uuid.UUID, item domain.CartItem) (*domain.Cart, error) {
	if item.ProductID == "" {
		return nil, apperror.Validation("product_id is required")
	}
	if item.Price.IsNegative() {
		return nil, apperror.Validation("price must not be negative")
	}
	return s.mutate(ctx, ownerID, "cart item added", func(c *domain.Cart, now time.Time) error {
		c.AddItem(item, now)
		return nil
	})
}

// RemoveItem deletes a line; removing an absent product succeeds unchanged.
func (s *CartServiceImpl) RemoveItem(ctx context.Context, ownerID uuid.UUID, productID string) (*domain.Cart, error) {
	return s.mutate(ctx, ownerID, "cart item removed", func(c *domain.Cart, now time.Time) error {
		if _, ok := c.Item(productID); !ok {
			return errCartUnchanged
		}
		c.RemoveItem(productID, now)
		return nil
	})
}

// UpdateQuantity sets a line's quantity. Quantities below 1 fail with CRT_001
// and leave the cart unchanged.
func (s *CartServiceImpl) UpdateQuantity(ctx context.Context, ownerID uuid.UUID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, apperror.ErrInvalidQuantity()
	}
	return s.mutate(ctx, ownerID, "cart quantity updated", func(c *domain.Cart, now time.Time) error {
		return c.UpdateQuantity(productID, quantity, now)
	})
}

// Clear empties the cart unconditionally.
func (s *CartServiceImpl) Clear(ctx context.Context, ownerID uuid.UUID) error {
	unlock := s.locks.Lock(cartLockKey(ownerID))
	defer unlock()
	return s.clearLocked(ctx, ownerID)
}

// withCart runs fn with the owner's cart lock held. Checkout uses it to keep
// the cart stable between pricing and clearing.
func (s *CartServiceImpl) withCart(ctx context.Context, ownerID uuid.UUID, fn func(c *domain.Cart) error) error {
	unlock := s.locks.Lock(cartLockKey(ownerID))
	defer unlock()

	cart, err := s.load(ctx, ownerID)
	if err != nil {
		return err
	}
	return fn(cart)
}

func (s *CartServiceImpl) clearLocked(ctx context.Context, ownerID uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID); err != nil {
		return apperror.InternalError(fmt.Errorf("clear cart: %w", err))
	}
	s.sfg.Forget(ownerID.String())

	reqLog(ctx, s.log).Info().Str("owner_id", ownerID.String()).Msg("cart cleared")
	return nil
}

func (s *CartServiceImpl) mutate(ctx context.Context, ownerID uuid.UUID, event string, fn func(c *domain.Cart, now time.Time) error) (*domain.Cart, error) {
	unlock := s.locks.Lock(cartLockKey(ownerID))
	defer unlock()

	cart, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := fn(cart, s.now()); err != nil {
		if errors.Is(err, errCartUnchanged) {
			return cart.Clone(), nil
		}
		return nil, cartError(err)
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save cart: %w", err))
	}
	s.sfg.Forget(ownerID.String())

	reqLog(ctx, s.log).Info().
		Str("owner_id", ownerID.String()).
		Int("item_count", cart.ItemCount()).
		Str("subtotal", cart.Subtotal().String()).
		Msg(event)

	return cart.Clone(), nil
}

func (s *CartServiceImpl) load(ctx context.Context, ownerID uuid.UUID) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, ownerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get cart: %w", err))
	}
	if cart == nil {
		cart = domain.NewCart(ownerID, s.now())
	}
	return cart, nil
}

func cartError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ledgerError(err)
}
