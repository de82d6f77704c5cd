package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DeliveryOption is the shipping method chosen at checkout.
type DeliveryOption string

const (
	DeliveryStandard DeliveryOption = "standard"
	DeliveryExpress  DeliveryOption = "express"
	DeliveryPickup   DeliveryOption = "pickup"
)

var shippingCosts = map[DeliveryOption]decimal.Decimal{
	DeliveryStandard: decimal.RequireFromString("4.99"),
	DeliveryExpress:  decimal.RequireFromString("9.99"),
	DeliveryPickup:   decimal.Zero,
}

// ParseDeliveryOption accepts the option names case-insensitively. An empty
// string selects standard delivery.
func ParseDeliveryOption(s string) (DeliveryOption, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DeliveryStandard, nil
	}
	opt := DeliveryOption(s)
	if _, ok := shippingCosts[opt]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDelivery, s)
	}
	return opt, nil
}

// ShippingCost returns the fixed fee for the option.
func (d DeliveryOption) ShippingCost() decimal.Decimal {
	return shippingCosts[d]
}

// RequiresAddress is false only for pickup.
func (d DeliveryOption) RequiresAddress() bool {
	return d != DeliveryPickup
}

// GiftRecipient marks a checkout as a gift to one of the user's contacts.
type GiftRecipient struct {
	ContactID string `json:"contact_id"`
	Name      string `json:"name"`
}

// OrderTotals is the price of a cart for one delivery option.
type OrderTotals struct {
	ItemCount int
	Subtotal  decimal.Decimal
	Shipping  decimal.Decimal
	Total     decimal.Decimal
}

// PriceCart computes subtotal, shipping and total for the option.
func PriceCart(cart *Cart, option DeliveryOption) OrderTotals {
	subtotal := cart.Subtotal()
	shipping := option.ShippingCost()
	return OrderTotals{
		ItemCount: cart.ItemCount(),
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal.Add(shipping),
	}
}

// CheckoutQuote is the price breakdown shown before paying.
type CheckoutQuote struct {
	Delivery   DeliveryOption  `json:"delivery"`
	ItemCount  int             `json:"item_count"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Total      decimal.Decimal `json:"total"`
	Balance    decimal.Decimal `json:"balance"`
	Sufficient bool            `json:"sufficient"`
}

// NewCheckoutQuote prices a cart for the option against the wallet.
func NewCheckoutQuote(cart *Cart, option DeliveryOption, wallet *Wallet) *CheckoutQuote {
	t := PriceCart(cart, option)
	return &CheckoutQuote{
		Delivery:   option,
		ItemCount:  t.ItemCount,
		Subtotal:   t.Subtotal,
		Shipping:   t.Shipping,
		Total:      t.Total,
		Balance:    wallet.Balance,
		Sufficient: wallet.CanAfford(t.Total),
	}
}

// Receipt records a completed checkout.
type Receipt struct {
	Transaction *Transaction    `json:"transaction"`
	Items       []CartItem      `json:"items"`
	ItemCount   int             `json:"item_count"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Shipping    decimal.Decimal `json:"shipping"`
	Total       decimal.Decimal `json:"total"`
	Delivery    DeliveryOption  `json:"delivery"`
	Address     string          `json:"address,omitempty"`
	Gift        *GiftRecipient  `json:"gift,omitempty"`
}

// PurchaseDescription renders the ledger text for a checkout, e.g.
// "Purchase of 3 items (standard delivery)". lines is the number of distinct
// cart lines.
func PurchaseDescription(lines int, option DeliveryOption, gift *GiftRecipient) string {
	var b strings.Builder
	if gift != nil {
		fmt.Fprintf(&b, "Gift to %s", gift.Name)
	} else {
		fmt.Fprintf(&b, "Purchase of %d items", lines)
	}
	fmt.Fprintf(&b, " (%s delivery)", option)
	return b.String()
}
