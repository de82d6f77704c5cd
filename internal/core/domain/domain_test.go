package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestWallet_CreditDebit(t *testing.T) {
	w := NewWallet(uuid.New(), DefaultCurrency, dec("100"), time.Now())

	require.NoError(t, w.Debit(dec("94.98")))
	assert.True(t, dec("5.02").Equal(w.Balance), "got %s", w.Balance)

	require.NoError(t, w.Credit(dec("50")))
	assert.True(t, dec("55.02").Equal(w.Balance))
}

func TestWallet_RejectedOperationsLeaveBalance(t *testing.T) {
	tests := []struct {
		name   string
		op     func(w *Wallet) error
		target error
	}{
		{"credit zero", func(w *Wallet) error { return w.Credit(decimal.Zero) }, ErrNonPositiveAmount},
		{"credit negative", func(w *Wallet) error { return w.Credit(dec("-1")) }, ErrNonPositiveAmount},
		{"debit zero", func(w *Wallet) error { return w.Debit(decimal.Zero) }, ErrNonPositiveAmount},
		{"debit over balance", func(w *Wallet) error { return w.Debit(dec("84.98")) }, ErrInsufficientBalance},
		{"credit sub-cent", func(w *Wallet) error { return w.Credit(dec("0.004")) }, ErrAmountPrecision},
		{"debit sub-cent", func(w *Wallet) error { return w.Debit(dec("0.006")) }, ErrAmountPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWallet(uuid.New(), DefaultCurrency, dec("5.02"), time.Now())
			err := tt.op(w)
			assert.True(t, errors.Is(err, tt.target))
			assert.True(t, dec("5.02").Equal(w.Balance))
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   error
	}{
		{"0.01", nil},
		{"12.5", nil},
		{"1.000", nil},
		{"0", ErrNonPositiveAmount},
		{"-3", ErrNonPositiveAmount},
		{"0.004", ErrAmountPrecision},
		{"10.999", ErrAmountPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := ValidateAmount(dec(tt.amount))
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWallet_DebitExactBalance(t *testing.T) {
	w := NewWallet(uuid.New(), DefaultCurrency, dec("10"), time.Now())
	require.NoError(t, w.Debit(dec("10")))
	assert.True(t, w.Balance.IsZero())
	assert.False(t, w.CanAfford(dec("0.01")))
}

func TestNewInitialDeposit(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	w := NewWallet(uuid.New(), DefaultCurrency, dec("100"), now)

	tx := NewInitialDeposit(w)
	assert.Equal(t, TransactionTypeDeposit, tx.Type)
	assert.Equal(t, DescriptionInitialDeposit, tx.Description)
	assert.True(t, dec("100").Equal(tx.Amount))
	assert.Equal(t, now.Add(-72*time.Hour), tx.CreatedAt)
	assert.Equal(t, w.ID, tx.WalletID)
}

func TestReplayBalance(t *testing.T) {
	wid := uuid.New()
	now := time.Now()
	txns := []Transaction{
		*NewTransaction(wid, TransactionTypeDeposit, dec("100"), DescriptionInitialDeposit, now),
		*NewTransaction(wid, TransactionTypePurchase, dec("94.98"), "Purchase of 1 items (standard delivery)", now),
		*NewTransaction(wid, TransactionTypeDeposit, dec("50"), DescriptionDeposit, now),
		*NewTransaction(wid, TransactionTypeWithdrawal, dec("5"), DescriptionWithdrawal, now),
	}
	assert.True(t, dec("50.02").Equal(ReplayBalance(txns)))
}

func TestNewTransaction_IDsAreTimeOrdered(t *testing.T) {
	wid := uuid.New()
	now := time.Now()
	a := NewTransaction(wid, TransactionTypeDeposit, dec("1"), DescriptionDeposit, now)
	b := NewTransaction(wid, TransactionTypeDeposit, dec("1"), DescriptionDeposit, now)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Less(t, a.ID.String(), b.ID.String())
}

func TestTransactionType_IsValid(t *testing.T) {
	assert.True(t, TransactionTypeDeposit.IsValid())
	assert.True(t, TransactionTypeWithdrawal.IsValid())
	assert.True(t, TransactionTypePurchase.IsValid())
	assert.False(t, TransactionType("refund").IsValid())
}

func TestParseDeliveryOption(t *testing.T) {
	tests := []struct {
		in       string
		want     DeliveryOption
		shipping string
		address  bool
		wantErr  bool
	}{
		{"standard", DeliveryStandard, "4.99", true, false},
		{"EXPRESS", DeliveryExpress, "9.99", true, false},
		{" pickup ", DeliveryPickup, "0", false, false},
		{"", DeliveryStandard, "4.99", true, false},
		{"drone", "", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDeliveryOption(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownDelivery)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, dec(tt.shipping).Equal(got.ShippingCost()))
			assert.Equal(t, tt.address, got.RequiresAddress())
		})
	}
}

func TestPurchaseDescription(t *testing.T) {
	assert.Equal(t, "Purchase of 3 items (standard delivery)", PurchaseDescription(3, DeliveryStandard, nil))
	assert.Equal(t, "Gift to Wekesa (pickup delivery)",
		PurchaseDescription(1, DeliveryPickup, &GiftRecipient{ContactID: "c1", Name: "Wekesa"}))
}

func TestNewCheckoutQuote(t *testing.T) {
	cart := NewCart(uuid.New(), time.Now())
	cart.AddItem(CartItem{ProductID: "101", Name: "Silk Robe Set", Price: dec("89.99")}, time.Now())

	rich := NewWallet(uuid.New(), DefaultCurrency, dec("100"), time.Now())
	q := NewCheckoutQuote(cart, DeliveryStandard, rich)
	assert.True(t, dec("89.99").Equal(q.Subtotal))
	assert.True(t, dec("94.98").Equal(q.Total))
	assert.True(t, dec("100").Equal(q.Balance))
	assert.True(t, q.Sufficient)

	poor := NewWallet(uuid.New(), DefaultCurrency, dec("5.02"), time.Now())
	q = NewCheckoutQuote(cart, DeliveryExpress, poor)
	assert.True(t, dec("99.98").Equal(q.Total))
	assert.True(t, dec("5.02").Equal(q.Balance))
	assert.False(t, q.Sufficient)

	q = NewCheckoutQuote(NewCart(uuid.New(), time.Now()), DeliveryPickup, rich)
	assert.True(t, q.Total.IsZero())
	assert.False(t, q.Sufficient, "nothing to pay for")
}

func TestPriceCart(t *testing.T) {
	cart := NewCart(uuid.New(), time.Now())
	cart.AddItem(CartItem{ProductID: "102", Price: dec("34.99")}, time.Now())
	cart.AddItem(CartItem{ProductID: "102", Price: dec("34.99")}, time.Now())

	totals := PriceCart(cart, DeliveryExpress)
	assert.Equal(t, 2, totals.ItemCount)
	assert.True(t, dec("69.98").Equal(totals.Subtotal))
	assert.True(t, dec("9.99").Equal(totals.Shipping))
	assert.True(t, dec("79.97").Equal(totals.Total))
}

func TestConvertToTokens(t *testing.T) {
	tests := []struct {
		amount string
		from   string
		want   string
	}{
		{"50", "USD", "500"},
		{"1305", "kes", "100"},
		{"1000", "KES", "76.63"},
		{"0.85", "EUR", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_"+tt.amount, func(t *testing.T) {
			got, err := ConvertToTokens(dec(tt.amount), tt.from)
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}

	_, err := ConvertToTokens(dec("1"), "BTC")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestNormalizeCurrency(t *testing.T) {
	c, err := NormalizeCurrency(" kes")
	require.NoError(t, err)
	assert.Equal(t, "KES", c)

	_, err = NormalizeCurrency("")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestProductFilter_Matches(t *testing.T) {
	p := &Product{ID: "102", Name: "Massage Oil Set", Description: "Set of 3 scented massage oils", CategoryID: "4"}

	tests := []struct {
		name   string
		filter ProductFilter
		want   bool
	}{
		{"empty", ProductFilter{}, true},
		{"name match", ProductFilter{Query: "OIL"}, true},
		{"description match", ProductFilter{Query: "scented"}, true},
		{"no match", ProductFilter{Query: "robe"}, false},
		{"category match", ProductFilter{CategoryID: "4", Query: "oil"}, true},
		{"category mismatch", ProductFilter{CategoryID: "1", Query: "oil"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(p))
		})
	}
}

func TestProduct_VisibleTo(t *testing.T) {
	restricted := &Product{AgeRestricted: true}
	open := &Product{}

	assert.True(t, open.VisibleTo(nil))
	assert.False(t, restricted.VisibleTo(nil))
	assert.False(t, restricted.VisibleTo(&User{}))
	assert.True(t, restricted.VisibleTo(&User{AgeVerified: true}))
}

func TestNewUser_DisplayName(t *testing.T) {
	u := NewUser("  User1@Example.com ", "hash", time.Now())
	assert.Equal(t, "user1@example.com", u.Email)
	assert.Equal(t, "user1", u.DisplayName)
	assert.NotEqual(t, uuid.Nil, u.ID)
}

func TestValidatePaymentDetails(t *testing.T) {
	tests := []struct {
		name   string
		method PaymentMethod
		mpesa  *MpesaDetails
		card   *CardDetails
		want   error
	}{
		{"mpesa ok", PaymentMethodMpesa, &MpesaDetails{Phone: "0712345678", Code: "QWE123"}, nil, nil},
		{"mpesa short phone", PaymentMethodMpesa, &MpesaDetails{Phone: "0712", Code: "QWE123"}, nil, ErrInvalidPhone},
		{"mpesa short code", PaymentMethodMpesa, &MpesaDetails{Phone: "0712345678", Code: "Q1"}, nil, ErrInvalidMpesaCode},
		{"mpesa missing", PaymentMethodMpesa, nil, nil, ErrInvalidPhone},
		{"card ok", PaymentMethodCard, nil, &CardDetails{Number: "4242 4242 4242 4242", Name: "A B", Expiry: "12/29", CVV: "123"}, nil},
		{"card short number", PaymentMethodCard, nil, &CardDetails{Number: "4242", Name: "A B", Expiry: "12/29", CVV: "123"}, ErrInvalidCardNumber},
		{"card no name", PaymentMethodCard, nil, &CardDetails{Number: "4242424242424242", Expiry: "12/29", CVV: "123"}, ErrMissingCardName},
		{"card bad expiry", PaymentMethodCard, nil, &CardDetails{Number: "4242424242424242", Name: "A", Expiry: "12", CVV: "123"}, ErrInvalidExpiry},
		{"card bad cvv", PaymentMethodCard, nil, &CardDetails{Number: "4242424242424242", Name: "A", Expiry: "12/29", CVV: "1"}, ErrInvalidCVV},
		{"unknown", PaymentMethod("paypal"), nil, nil, ErrUnknownPaymentMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaymentDetails(tt.method, tt.mpesa, tt.card)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPaymentMethod_FiatCurrency(t *testing.T) {
	assert.Equal(t, "KES", PaymentMethodMpesa.FiatCurrency())
	assert.Equal(t, "USD", PaymentMethodCard.FiatCurrency())
	assert.Equal(t, "M-Pesa", PaymentMethodMpesa.Label())
}
