package ports

import (
	"context"
	"time"

	"token-shop/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type WalletRepository interface {
	Create(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Wallet, error)
	GetByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal, updatedAt time.Time) error
	UpdateCurrency(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, currency string, updatedAt time.Time) error
}

// TransactionRepository is the append-only wallet ledger.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	// ListByWallet returns entries newest first.
	ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CartRepository stores one cart per owner. Get returns nil, nil when the
// owner has no cart yet.
type CartRepository interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, ownerID uuid.UUID) error
}

// UserRepository defines persistence operations for shop accounts.
// Create returns domain.ErrEmailTaken for a duplicate email.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetAgeVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

// NotificationRepository stores the notification center of each owner.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// ListByOwner returns notifications newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Notification, error)
	// MarkRead reports whether the notification existed.
	MarkRead(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	MarkAllRead(ctx context.Context, ownerID uuid.UUID) (int64, error)
	// Delete reports whether the notification existed.
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
	DeleteAll(ctx context.Context, ownerID uuid.UUID) error
}

// CatalogRepository serves the read-only product catalog.
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}
