package dto

import (
	"strings"
	"testing"

	"token-shop/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func mustDec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := SignupRequest{
		Email:    "  alice@example.com  ",
		Password: "  pass1234  ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "alice@example.com", req.Email)
	assert.Equal(t, "pass1234", req.Password)
}

func TestSanitizeStruct_KeepsTextVerbatim(t *testing.T) {
	req := CheckoutRequest{
		Delivery: "standard",
		Address:  "  Flat 2 <b>, Tom & Jerry's  ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "Flat 2 <b>, Tom & Jerry's", req.Address)
}

func TestSanitizeStruct_FollowsNestedStructPointers(t *testing.T) {
	req := CheckoutRequest{
		Delivery: " express ",
		Gift:     &GiftRequest{ContactID: " c-7 ", Name: "  <b>Sam</b> "},
	}
	SanitizeStruct(&req)

	assert.Equal(t, "express", req.Delivery)
	assert.Equal(t, "c-7", req.Gift.ContactID)
	assert.Equal(t, "<b>Sam</b>", req.Gift.Name)
}

func TestSanitizeStruct_NilPointerIsNoOp(t *testing.T) {
	req := TopUpRequest{Method: "card"}
	SanitizeStruct(&req)
	assert.Nil(t, req.Card)
	assert.Nil(t, req.Mpesa)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestSafeID_Valid(t *testing.T) {
	cases := []string{
		"101",
		"c-7",
		"a.b.c",
		"simple123",
		"ABC-def_GHI.123",
	}
	for _, tc := range cases {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestSafeID_Invalid(t *testing.T) {
	cases := []string{
		"ref 001",     // space
		"ref<001>",    // angle brackets
		"ref;DROP",    // semicolon
		"",            // empty
		"hello world", // space
		"ref\n001",    // newline
	}
	for _, tc := range cases {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestBinding_AddCartItemRequest(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(&AddCartItemRequest{ProductID: "101"}))
	assert.Error(t, binding.Validator.ValidateStruct(&AddCartItemRequest{ProductID: "10 1"}))
	assert.Error(t, binding.Validator.ValidateStruct(&AddCartItemRequest{}))
}

func TestBinding_CheckoutRequest(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(&CheckoutRequest{}))
	assert.NoError(t, binding.Validator.ValidateStruct(&CheckoutRequest{Delivery: "pickup"}))
	assert.Error(t, binding.Validator.ValidateStruct(&CheckoutRequest{Delivery: strings.Repeat("x", 21)}))
	assert.Error(t, binding.Validator.ValidateStruct(&CheckoutRequest{Gift: &GiftRequest{}}))
}

func TestNewCartResponse(t *testing.T) {
	cart := &domain.Cart{Items: []domain.CartItem{
		{ProductID: "101", Price: mustDec("89.99"), Quantity: 2},
		{ProductID: "102", Price: mustDec("34.99"), Quantity: 1},
	}}

	resp := NewCartResponse(cart)
	assert.Equal(t, 3, resp.ItemCount)
	assert.Equal(t, 2, resp.LineCount)
	assert.Equal(t, "214.97", resp.Subtotal.String())
}
