package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a ledger entry.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypePurchase   TransactionType = "purchase"
)

// Default descriptions for entries created without caller-supplied text.
const (
	DescriptionInitialDeposit = "Initial deposit"
	DescriptionDeposit        = "Deposit"
	DescriptionWithdrawal     = "Withdrawal"
)

// IsValid returns true for the three known entry types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypePurchase:
		return true
	}
	return false
}

// Transaction is an immutable ledger entry. Amount is always positive; the
// direction comes from Type.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	WalletID    uuid.UUID       `json:"wallet_id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewTransaction builds a ledger entry with a time-ordered id, so sorting by
// id matches creation order even within the same millisecond.
func NewTransaction(walletID uuid.UUID, txType TransactionType, amount decimal.Decimal, description string, now time.Time) *Transaction {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &Transaction{
		ID:          id,
		WalletID:    walletID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		CreatedAt:   now,
	}
}

// NewInitialDeposit builds the synthetic entry that accounts for a freshly
// seeded wallet balance.
func NewInitialDeposit(w *Wallet) *Transaction {
	return NewTransaction(w.ID, TransactionTypeDeposit, w.Balance, DescriptionInitialDeposit, w.CreatedAt.Add(-InitialDepositAge))
}

// SignedAmount returns the balance delta of the entry.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeDeposit {
		return t.Amount
	}
	return t.Amount.Neg()
}

// ReplayBalance folds a ledger into the balance it produces. Order does not
// matter for the sum.
func ReplayBalance(txns []Transaction) decimal.Decimal {
	total := decimal.Zero
	for i := range txns {
		total = total.Add(txns[i].SignedAmount())
	}
	return total
}
