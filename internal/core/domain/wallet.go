package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InitialDepositAge is how far in the past the seeded deposit is dated.
const InitialDepositAge = 72 * time.Hour

// AmountPlaces is the number of decimal places a ledger amount may carry.
// Balances are stored as NUMERIC(18, 2).
const AmountPlaces = 2

// ValidateAmount checks that amount can be booked as a ledger entry: positive
// and representable in cents.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if !amount.Equal(amount.Truncate(AmountPlaces)) {
		return ErrAmountPrecision
	}
	return nil
}

// Wallet holds a user's token balance. Currency is a display preference only;
// changing it never converts Balance.
type Wallet struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewWallet creates a wallet holding the initial balance. The matching
// ledger entry is built with NewInitialDeposit.
func NewWallet(ownerID uuid.UUID, currency string, initial decimal.Decimal, now time.Time) *Wallet {
	return &Wallet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Balance:   initial,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Credit adds amount to the balance.
func (w *Wallet) Credit(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

// Debit removes amount from the balance. The balance is left untouched when
// the amount is invalid or exceeds what is available.
func (w *Wallet) Debit(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(w.Balance) {
		return ErrInsufficientBalance
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}

// CanAfford reports whether a debit of amount would succeed.
func (w *Wallet) CanAfford(amount decimal.Decimal) bool {
	return ValidateAmount(amount) == nil && !amount.GreaterThan(w.Balance)
}

// WalletStatement is a wallet together with its ledger, newest entry first.
type WalletStatement struct {
	Wallet       *Wallet       `json:"wallet"`
	Transactions []Transaction `json:"transactions"`
}
