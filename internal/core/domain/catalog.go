package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category groups shop products.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Product is a shop listing.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    string          `json:"category_id"`
	ImageURL      string          `json:"image_url"`
	Rating        float64         `json:"rating"`
	AgeRestricted bool            `json:"age_restricted"`
}

// CartItem returns the cart line a product is added as.
func (p *Product) CartItem() CartItem {
	return CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
	}
}

// VisibleTo reports whether the user may open or buy the product.
func (p *Product) VisibleTo(u *User) bool {
	return !p.AgeRestricted || (u != nil && u.AgeVerified)
}

// ProductFilter narrows a product listing. Zero values match everything.
type ProductFilter struct {
	CategoryID string
	Query      string
}

// Matches applies a case-insensitive substring search on name and
// description, and an exact category match when one is set.
func (f ProductFilter) Matches(p *Product) bool {
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}
