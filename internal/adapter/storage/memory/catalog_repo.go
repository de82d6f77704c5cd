package memory

import (
	"context"

	"token-shop/internal/core/domain"

	"github.com/shopspring/decimal"
)

const (
	imgLingerie = "https://images.unsplash.com/photo-1616683693504-3ea7e9ad6fec?w=500"
	imgOils     = "https://images.unsplash.com/photo-1608571423902-eed4a5ad8108?w=500"
	imgToy      = "https://images.unsplash.com/photo-1595526114035-0d45ed16cfbf?w=500"
	imgGiftBox  = "https://images.unsplash.com/photo-1549465220-1a8b9238cd48?w=500"
)

// DefaultCategories is the shop's category list.
func DefaultCategories() []domain.Category {
	return []domain.Category{
		{ID: "1", Name: "Lingerie & Intimates", Description: "Elegant and comfortable lingerie for all occasions", Icon: "👙"},
		{ID: "2", Name: "Adult Toys", Description: "Quality adult toys for enhanced pleasure", Icon: "🎮"},
		{ID: "3", Name: "Sexual Wellness", Description: "Products for sexual health and wellness", Icon: "💊"},
		{ID: "4", Name: "Romantic Gifts", Description: "Thoughtful gifts to surprise your partner", Icon: "🎁"},
	}
}

// DefaultProducts is the shop's product list.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{ID: "101", Name: "Silk Robe Set", Description: "Luxurious silk robe set with matching lingerie",
			Price: decimal.RequireFromString("89.99"), CategoryID: "1", ImageURL: imgLingerie, Rating: 4.8},
		{ID: "102", Name: "Massage Oil Set", Description: "Set of 3 scented massage oils for romantic evenings",
			Price: decimal.RequireFromString("34.99"), CategoryID: "4", ImageURL: imgOils, Rating: 4.6},
		{ID: "103", Name: "Premium Vibrator", Description: "High-quality vibrator with multiple settings",
			Price: decimal.RequireFromString("79.99"), CategoryID: "2", ImageURL: imgToy, Rating: 4.9, AgeRestricted: true},
		{ID: "104", Name: "Organic Lubricant", Description: "Natural, organic lubricant for sensitive skin",
			Price: decimal.RequireFromString("19.99"), CategoryID: "3", ImageURL: imgOils, Rating: 4.7, AgeRestricted: true},
		{ID: "105", Name: "Romantic Gift Box", Description: "Curated gift box with romantic items for a special night",
			Price: decimal.RequireFromString("99.99"), CategoryID: "4", ImageURL: imgGiftBox, Rating: 4.9},
		{ID: "106", Name: "Lace Lingerie Set", Description: "Elegant lace lingerie set with adjustable straps",
			Price: decimal.RequireFromString("59.99"), CategoryID: "1", ImageURL: imgLingerie, Rating: 4.5},
	}
}

// CatalogRepo implements ports.CatalogRepository over a fixed product list.
// It is immutable after construction.
type CatalogRepo struct {
	categories []domain.Category
	products   []domain.Product
	byID       map[string]int
}

// NewCatalogRepo creates a catalog from the given data.
func NewCatalogRepo(categories []domain.Category, products []domain.Product) *CatalogRepo {
	r := &CatalogRepo{
		categories: categories,
		products:   products,
		byID:       make(map[string]int, len(products)),
	}
	for i, p := range products {
		r.byID[p.ID] = i
	}
	return r
}

// NewDefaultCatalogRepo creates a catalog seeded with the shop data.
func NewDefaultCatalogRepo() *CatalogRepo {
	return NewCatalogRepo(DefaultCategories(), DefaultProducts())
}

func (r *CatalogRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *CatalogRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *CatalogRepo) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	p := r.products[i]
	return &p, nil
}
