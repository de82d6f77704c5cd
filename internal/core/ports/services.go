package ports

import (
	"context"
	"time"

	"token-shop/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT session tokens.
type TokenService interface {
	Generate(userID uuid.UUID, email string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// IdempotencyCache stores replayable responses. Get returns nil, nil on a miss.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// PaymentGateway charges an external funding source for a wallet top-up.
type PaymentGateway interface {
	Charge(ctx context.Context, req TopUpRequest) (reference string, err error)
}

// --- Service Ports (Business Logic) ---

// WalletService is the per-owner Wallet Ledger.
type WalletService interface {
	Statement(ctx context.Context, ownerID uuid.UUID) (*domain.WalletStatement, error)
	AddFunds(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error)
	WithdrawFunds(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) (*domain.Transaction, error)
	MakePurchase(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal, description string) (*domain.Transaction, error)
	ChangeCurrency(ctx context.Context, ownerID uuid.UUID, currency string) (*domain.Wallet, error)
	TopUp(ctx context.Context, req TopUpRequest) (*TopUpResult, error)
}

// TopUpRequest holds validated input for a wallet top-up. Amount is in the
// method's fiat currency.
type TopUpRequest struct {
	OwnerID uuid.UUID
	Method  domain.PaymentMethod
	Amount  decimal.Decimal
	Mpesa   *domain.MpesaDetails
	Card    *domain.CardDetails
}

// TopUpResult is a credited top-up.
type TopUpResult struct {
	Transaction  *domain.Transaction `json:"transaction"`
	Tokens       decimal.Decimal     `json:"tokens"`
	FiatAmount   decimal.Decimal     `json:"fiat_amount"`
	FiatCurrency string              `json:"fiat_currency"`
	Reference    string              `json:"reference"`
}

// CartService is the per-owner Cart Ledger.
type CartService interface {
	GetCart(ctx context.Context, ownerID uuid.UUID) (*domain.Cart, error)
	AddItem(ctx context.Context, ownerID uuid.UUID, item domain.CartItem) (*domain.Cart, error)
	RemoveItem(ctx context.Context, ownerID uuid.UUID, productID string) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, ownerID uuid.UUID, productID string, quantity int) (*domain.Cart, error)
	Clear(ctx context.Context, ownerID uuid.UUID) error
}

// CheckoutService converts a cart into a single wallet debit.
type CheckoutService interface {
	Quote(ctx context.Context, ownerID uuid.UUID, option string) (*domain.CheckoutQuote, error)
	Checkout(ctx context.Context, req CheckoutRequest) (*domain.Receipt, error)
}

// CheckoutRequest holds input for placing an order. IdempotencyKey is optional.
type CheckoutRequest struct {
	OwnerID        uuid.UUID
	Delivery       string
	Address        string
	Gift           *domain.GiftRecipient
	IdempotencyKey string
}

// CatalogService exposes the shop catalog.
type CatalogService interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Products(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Product(ctx context.Context, id string, viewer *domain.User) (*domain.Product, error)
}

// NotificationService manages a user's notification center.
type NotificationService interface {
	Add(ctx context.Context, ownerID uuid.UUID, typ domain.NotificationType, title, message string) (*domain.Notification, error)
	List(ctx context.Context, ownerID uuid.UUID) (*NotificationList, error)
	MarkAsRead(ctx context.Context, ownerID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, ownerID uuid.UUID) error
	Remove(ctx context.Context, ownerID, id uuid.UUID) error
	Clear(ctx context.Context, ownerID uuid.UUID) error
}

// NotificationList is a notification center snapshot.
type NotificationList struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

// AuthService defines the mock shop authentication.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	ResetPassword(ctx context.Context, email string) error
	Me(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	VerifyAge(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// Session is an authenticated user with a bearer token.
type Session struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}
