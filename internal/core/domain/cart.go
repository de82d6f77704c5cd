package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one line of a cart. Price is fixed when the line is first added.
type CartItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

// LineTotal returns price * quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds line items in the order they were first added. Product ids are
// unique within a cart.
type Cart struct {
	OwnerID   uuid.UUID  `json:"owner_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart returns an empty cart for the owner.
func NewCart(ownerID uuid.UUID, now time.Time) *Cart {
	return &Cart{OwnerID: ownerID, Items: []CartItem{}, UpdatedAt: now}
}

// AddItem increments the quantity of an existing line, or appends a new line
// with quantity 1. Name, price and image of an existing line are kept.
func (c *Cart) AddItem(item CartItem, now time.Time) {
	if idx := c.indexOf(item.ProductID); idx >= 0 {
		c.Items[idx].Quantity++
		c.UpdatedAt = now
		return
	}
	item.Quantity = 1
	item.AddedAt = now
	c.Items = append(c.Items, item)
	c.UpdatedAt = now
}

// RemoveItem deletes the line for productID. It reports whether a line was
// removed; removing an absent product is a no-op.
func (c *Cart) RemoveItem(productID string, now time.Time) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	c.UpdatedAt = now
	return true
}

// UpdateQuantity sets the quantity of an existing line. Quantities below 1 are
// rejected and leave the line as it was; use RemoveItem to drop a line.
func (c *Cart) UpdateQuantity(productID string, quantity int, now time.Time) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	idx := c.indexOf(productID)
	if idx < 0 {
		return ErrItemNotFound
	}
	c.Items[idx].Quantity = quantity
	c.UpdatedAt = now
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear(now time.Time) {
	c.Items = []CartItem{}
	c.UpdatedAt = now
}

// Item returns the line for productID, if present.
func (c *Cart) Item(productID string) (CartItem, bool) {
	if idx := c.indexOf(productID); idx >= 0 {
		return c.Items[idx], true
	}
	return CartItem{}, false
}

// ItemCount is the sum of all line quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// LineCount is the number of distinct lines.
func (c *Cart) LineCount() int {
	return len(c.Items)
}

// Subtotal is the sum of price * quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy safe to hand out of a store.
func (c *Cart) Clone() *Cart {
	cp := *c
	cp.Items = make([]CartItem, len(c.Items))
	copy(cp.Items, c.Items)
	return &cp
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
