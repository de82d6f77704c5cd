package dto

import (
	"time"

	"token-shop/internal/core/domain"

	"github.com/shopspring/decimal"
)

// SignupRequest is the request body for account signup.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ResetPasswordRequest is the request body for a password reset.
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SessionResponse is returned by signup and login.
type SessionResponse struct {
	User   *domain.User `json:"user"`
	Token  string       `json:"token"`
	Expiry int64        `json:"expiry"` // Unix timestamp
}

// AmountRequest carries a token amount for deposits and withdrawals.
// Amounts travel as decimal strings, e.g. "12.50".
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PurchaseRequest is a direct wallet debit with a description.
type PurchaseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"required,max=200"`
}

// CurrencyRequest changes the wallet display currency.
type CurrencyRequest struct {
	Currency string `json:"currency" binding:"required,max=10"`
}

// TopUpRequest buys tokens with fiat. Amount is in the method's currency.
type TopUpRequest struct {
	Method string               `json:"method" binding:"required,oneof=mpesa card"`
	Amount decimal.Decimal      `json:"amount"`
	Mpesa  *domain.MpesaDetails `json:"mpesa,omitempty"`
	Card   *domain.CardDetails  `json:"card,omitempty"`
}

// AddCartItemRequest adds one unit of a catalog product to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,safe_id"`
}

// UpdateQuantityRequest sets a cart line's quantity.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartResponse is a cart with its derived totals.
type CartResponse struct {
	Items     []domain.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	LineCount int               `json:"line_count"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewCartResponse builds the response body for a cart.
func NewCartResponse(c *domain.Cart) CartResponse {
	return CartResponse{
		Items:     c.Items,
		ItemCount: c.ItemCount(),
		LineCount: c.LineCount(),
		Subtotal:  c.Subtotal(),
		UpdatedAt: c.UpdatedAt,
	}
}

// GiftRequest names the contact an order is sent to.
type GiftRequest struct {
	ContactID string `json:"contact_id" binding:"omitempty,safe_id"`
	Name      string `json:"name" binding:"required,max=100"`
}

// CheckoutRequest is the request body for placing an order.
type CheckoutRequest struct {
	Delivery string       `json:"delivery" binding:"max=20"`
	Address  string       `json:"address" binding:"max=500"`
	Gift     *GiftRequest `json:"gift,omitempty"`
}

// ProductListResponse is a filtered catalog page.
type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}
