package domain

import (
	"errors"
	"strings"
	"unicode"
)

// PaymentMethod is the external funding source of a wallet top-up.
type PaymentMethod string

const (
	PaymentMethodMpesa PaymentMethod = "mpesa"
	PaymentMethodCard  PaymentMethod = "card"
)

// FiatCurrency is the currency a top-up amount is quoted in for the method.
func (m PaymentMethod) FiatCurrency() string {
	if m == PaymentMethodMpesa {
		return "KES"
	}
	return "USD"
}

// Label is the human-readable method name used in notifications.
func (m PaymentMethod) Label() string {
	if m == PaymentMethodMpesa {
		return "M-Pesa"
	}
	return "card"
}

// MpesaDetails are the fields collected for an M-Pesa top-up.
type MpesaDetails struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// CardDetails are the fields collected for a card top-up.
type CardDetails struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// Payment detail validation failures.
var (
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrInvalidPhone         = errors.New("please enter a valid phone number")
	ErrInvalidMpesaCode     = errors.New("please enter a valid M-Pesa code")
	ErrInvalidCardNumber    = errors.New("please enter a valid card number")
	ErrMissingCardName      = errors.New("please enter the cardholder name")
	ErrInvalidExpiry        = errors.New("please enter a valid expiry date")
	ErrInvalidCVV           = errors.New("please enter a valid CVV")
)

// ValidatePaymentDetails checks the details required by the method.
func ValidatePaymentDetails(method PaymentMethod, mpesa *MpesaDetails, card *CardDetails) error {
	switch method {
	case PaymentMethodMpesa:
		if mpesa == nil || len(strings.TrimSpace(mpesa.Phone)) < 10 {
			return ErrInvalidPhone
		}
		if len(strings.TrimSpace(mpesa.Code)) < 6 {
			return ErrInvalidMpesaCode
		}
		return nil
	case PaymentMethodCard:
		if card == nil || len(digitsOnly(card.Number)) < 16 {
			return ErrInvalidCardNumber
		}
		if strings.TrimSpace(card.Name) == "" {
			return ErrMissingCardName
		}
		if len(strings.TrimSpace(card.Expiry)) < 5 {
			return ErrInvalidExpiry
		}
		if len(strings.TrimSpace(card.CVV)) < 3 {
			return ErrInvalidCVV
		}
		return nil
	}
	return ErrUnknownPaymentMethod
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
