package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"token-shop/internal/core/domain"
	"token-shop/internal/core/ports"
	"token-shop/pkg/apperror"
	"token-shop/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultIdempotencyTTL = 24 * time.Hour

// cartLedger is the part of the cart service checkout drives while holding
// the owner's cart lock.
type cartLedger interface {
	withCart(ctx context.Context, ownerID uuid.UUID, fn func(c *domain.Cart) error) error
	clearLocked(ctx context.Context, ownerID uuid.UUID) error
}

// CheckoutServiceImpl implements ports.CheckoutService.
type CheckoutServiceImpl struct {
	carts      cartLedger
	wallet     ports.WalletService
	notifier   ports.NotificationService
	idempCache ports.IdempotencyCache
	idempTTL   time.Duration
	log        zerolog.Logger
}

// NewCheckoutService creates a new CheckoutServiceImpl.
func NewCheckoutService(
	carts *CartServiceImpl,
	wallet ports.WalletService,
	notifier ports.NotificationService,
	idempCache ports.IdempotencyCache,
	idempTTL time.Duration,
	log zerolog.Logger,
) *CheckoutServiceImpl {
	if idempTTL <= 0 {
		idempTTL = defaultIdempotencyTTL
	}
	return &CheckoutServiceImpl{
		carts:      carts,
		wallet:     wallet,
		notifier:   notifier,
		idempCache: idempCache,
		idempTTL:   idempTTL,
		log:        log,
	}
}

// Quote prices the current cart for a delivery option against the wallet
// balance. It changes nothing.
func (s *CheckoutServiceImpl) Quote(ctx context.Context, ownerID uuid.UUID, option string) (*domain.CheckoutQuote, error) {
	opt, err := domain.ParseDeliveryOption(option)
	if err != nil {
		return nil, apperror.ErrUnknownDeliveryOption(option)
	}

	stmt, err := s.wallet.Statement(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var quote *domain.CheckoutQuote
	err = s.carts.withCart(ctx, ownerID, func(c *domain.Cart) error {
		quote = domain.NewCheckoutQuote(c, opt, stmt.Wallet)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// Checkout debits subtotal plus shipping from the wallet in one purchase,
// clears the cart and returns a receipt. Any failure before the debit leaves
// cart and wallet untouched. A repeated idempotency key replays the first
// receipt without charging again.
func (s *CheckoutServiceImpl) Checkout(ctx context.Context, req ports.CheckoutRequest) (*domain.Receipt, error) {
	opt, err := domain.ParseDeliveryOption(req.Delivery)
	if err != nil {
		return nil, apperror.ErrUnknownDeliveryOption(req.Delivery)
	}

	var (
		receipt  *domain.Receipt
		replayed bool
		idempKey = checkoutIdempotencyKey(req.OwnerID, req.IdempotencyKey)
		log      = logger.FromContext(ctx, s.log)
	)

	err = s.carts.withCart(ctx, req.OwnerID, func(cart *domain.Cart) error {
		// Lookup and store both happen under the cart lock, so a concurrent
		// duplicate waits for the first request and then replays it.
		if cached := s.lookup(ctx, idempKey); cached != nil {
			receipt, replayed = cached, true
			return nil
		}

		if cart.IsEmpty() {
			return apperror.ErrEmptyCart()
		}
		address := strings.TrimSpace(req.Address)
		if opt.RequiresAddress() && address == "" {
			return apperror.ErrMissingAddress()
		}

		totals := domain.PriceCart(cart, opt)
		description := domain.PurchaseDescription(cart.LineCount(), opt, req.Gift)

		txn, err := s.wallet.MakePurchase(ctx, req.OwnerID, totals.Total, description)
		if err != nil {
			return err
		}

		receipt = &domain.Receipt{
			Transaction: txn,
			Items:       cart.Clone().Items,
			ItemCount:   totals.ItemCount,
			Subtotal:    totals.Subtotal,
			Shipping:    totals.Shipping,
			Total:       totals.Total,
			Delivery:    opt,
			Address:     address,
			Gift:        req.Gift,
		}
		s.remember(ctx, idempKey, receipt)

		// The debit is committed; a failed clear must not fail the order.
		if err := s.carts.clearLocked(ctx, req.OwnerID); err != nil {
			log.Error().Err(err).Str("owner_id", req.OwnerID.String()).Msg("failed to clear cart after checkout")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if replayed {
		log.Info().
			Str("owner_id", req.OwnerID.String()).
			Str("idempotency_key", req.IdempotencyKey).
			Msg("checkout replayed from idempotency cache")
		return receipt, nil
	}

	s.notify(ctx, req.OwnerID, receipt)

	log.Info().
		Str("tx_id", receipt.Transaction.ID.String()).
		Str("owner_id", req.OwnerID.String()).
		Str("delivery", string(opt)).
		Str("total", receipt.Total.String()).
		Int("item_count", receipt.ItemCount).
		Bool("gift", receipt.Gift != nil).
		Msg("checkout completed")

	return receipt, nil
}

func checkoutIdempotencyKey(ownerID uuid.UUID, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	return "checkout:" + ownerID.String() + ":" + key
}

func (s *CheckoutServiceImpl) lookup(ctx context.Context, key string) *domain.Receipt {
	if key == "" || s.idempCache == nil {
		return nil
	}
	log := logger.FromContext(ctx, s.log)
	cached, err := s.idempCache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("idempotency lookup failed, processing checkout")
		return nil
	}
	if cached == nil {
		return nil
	}
	var r domain.Receipt
	if err := json.Unmarshal(cached, &r); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding unreadable cached receipt")
		return nil
	}
	return &r
}

func (s *CheckoutServiceImpl) remember(ctx context.Context, key string, r *domain.Receipt) {
	if key == "" || s.idempCache == nil {
		return
	}
	log := logger.FromContext(ctx, s.log)
	body, err := json.Marshal(r)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal receipt for idempotency cache")
		return
	}
	if err := s.idempCache.Set(ctx, key, body, s.idempTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache checkout receipt")
	}
}

func (s *CheckoutServiceImpl) notify(ctx context.Context, ownerID uuid.UUID, r *domain.Receipt) {
	if s.notifier == nil {
		return
	}
	title, msg := orderNotification(r)
	if _, err := s.notifier.Add(ctx, ownerID, domain.NotificationSuccess, title, msg); err != nil {
		log := logger.FromContext(ctx, s.log)
		log.Warn().Err(err).Str("owner_id", ownerID.String()).Msg("failed to add checkout notification")
	}
}

func orderNotification(r *domain.Receipt) (title, message string) {
	if r.Gift != nil {
		return "Gift Sent", fmt.Sprintf("Your gift to %s has been sent successfully.", r.Gift.Name)
	}
	if r.Delivery == domain.DeliveryPickup {
		return "Order Placed", "Your order has been placed successfully. Ready for pickup soon."
	}
	return "Order Placed", "Your order has been placed successfully. Will be delivered soon."
}
