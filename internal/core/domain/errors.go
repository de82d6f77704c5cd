package domain

import "errors"

// Ledger rule violations. Services translate these into apperror codes.
var (
	ErrNonPositiveAmount   = errors.New("amount must be greater than zero")
	ErrAmountPrecision     = errors.New("amount has more than two decimal places")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrItemNotFound        = errors.New("cart item not found")
	ErrUnknownDelivery     = errors.New("unknown delivery option")
	ErrUnknownCurrency     = errors.New("unknown currency")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMissingAddress      = errors.New("delivery address is required")
	ErrAgeVerification     = errors.New("age verification required")
	ErrEmailTaken          = errors.New("email already registered")
)
