package service

import (
	"context"
	"fmt"

	"token-shop/internal/core/domain"
	"token-shop/internal/core/ports"
	"token-shop/pkg/apperror"
)

// CatalogServiceImpl implements ports.CatalogService.
type CatalogServiceImpl struct {
	repo ports.CatalogRepository
}

// NewCatalogService creates a new CatalogServiceImpl.
func NewCatalogService(repo ports.CatalogRepository) *CatalogServiceImpl {
	return &CatalogServiceImpl{repo: repo}
}

func (s *CatalogServiceImpl) Categories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list categories: %w", err))
	}
	return cats, nil
}

// Products lists the catalog entries matching filter. Age-restricted products
// are listed for everyone; opening or buying them is gated by Product.
func (s *CatalogServiceImpl) Products(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	all, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list products: %w", err))
	}

	out := make([]domain.Product, 0, len(all))
	for i := range all {
		if filter.Matches(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// Product returns one product. Age-restricted products require an
// age-verified viewer.
func (s *CatalogServiceImpl) Product(ctx context.Context, id string, viewer *domain.User) (*domain.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get product: %w", err))
	}
	if p == nil {
		return nil, apperror.ErrNotFound("Product")
	}
	if !p.VisibleTo(viewer) {
		return nil, apperror.ErrAgeVerificationRequired()
	}
	return p, nil
}
