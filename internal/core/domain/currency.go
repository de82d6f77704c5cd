package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyTokens is the in-app unit the wallet balance is kept in.
const CurrencyTokens = "TOKENS"

// DefaultCurrency is the display currency of a new wallet.
const DefaultCurrency = "USD"

// usdRates are units of each currency per one USD.
var usdRates = map[string]decimal.Decimal{
	"USD":          decimal.NewFromInt(1),
	"EUR":          decimal.RequireFromString("0.85"),
	"GBP":          decimal.RequireFromString("0.75"),
	"KES":          decimal.RequireFromString("130.5"),
	CurrencyTokens: decimal.NewFromInt(10),
}

// NormalizeCurrency upper-cases and validates a currency code.
func NormalizeCurrency(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if _, ok := usdRates[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return c, nil
}

// ConvertToTokens converts a fiat amount into tokens, rounded to cents.
func ConvertToTokens(amount decimal.Decimal, from string) (decimal.Decimal, error) {
	code, err := NormalizeCurrency(from)
	if err != nil {
		return decimal.Zero, err
	}
	usd := amount.Div(usdRates[code])
	return usd.Mul(usdRates[CurrencyTokens]).Round(2), nil
}
