package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"token-shop/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository. Wallets are stored by value
// so callers never share state with the store.
type WalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]domain.Wallet // keyed by owner
}

// NewWalletRepo creates an empty WalletRepo.
func NewWalletRepo() *WalletRepo {
	return &WalletRepo{wallets: make(map[uuid.UUID]domain.Wallet)}
}

func (r *WalletRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.wallets[w.OwnerID]; ok {
		return fmt.Errorf("wallet already exists for owner %s", w.OwnerID)
	}
	r.wallets[w.OwnerID] = *w
	return nil
}

func (r *WalletRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[ownerID]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WalletRepo) GetByOwnerForUpdate(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID) (*domain.Wallet, error) {
	return r.GetByOwner(ctx, ownerID)
}

func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal, updatedAt time.Time) error {
	return r.update(walletID, func(w *domain.Wallet) {
		w.Balance = balance
		w.UpdatedAt = updatedAt
	})
}

func (r *WalletRepo) UpdateCurrency(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, currency string, updatedAt time.Time) error {
	return r.update(walletID, func(w *domain.Wallet) {
		w.Currency = currency
		w.UpdatedAt = updatedAt
	})
}

func (r *WalletRepo) update(walletID uuid.UUID, fn func(w *domain.Wallet)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for owner, w := range r.wallets {
		if w.ID == walletID {
			fn(&w)
			r.wallets[owner] = w
			return nil
		}
	}
	return fmt.Errorf("wallet not found: %s", walletID)
}

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	mu      sync.RWMutex
	entries map[uuid.UUID][]domain.Transaction // keyed by wallet, append order
}

// NewTransactionRepo creates an empty TransactionRepo.
func NewTransactionRepo() *TransactionRepo {
	return &TransactionRepo{entries: make(map[uuid.UUID][]domain.Transaction)}
}

func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[t.WalletID] = append(r.entries[t.WalletID], *t)
	return nil
}

// ListByWallet returns a copy of the ledger, newest first. Ties on CreatedAt
// fall back to the time-ordered id.
func (r *TransactionRepo) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error) {
	r.mu.RLock()
	src := r.entries[walletID]
	out := make([]domain.Transaction, len(src))
	copy(out, src)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}
