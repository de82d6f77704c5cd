package handler

import (
	"token-shop/internal/adapter/http/dto"
	"token-shop/internal/core/domain"
	"token-shop/internal/core/ports"
	"token-shop/pkg/response"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves categories and products.
type CatalogHandler struct {
	catalogSvc ports.CatalogService
	authSvc    ports.AuthService
}

func NewCatalogHandler(catalogSvc ports.CatalogService, authSvc ports.AuthService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc, authSvc: authSvc}
}

// Categories handles GET /api/v1/catalog/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	cats, err := h.catalogSvc.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cats)
}

// Products handles GET /api/v1/catalog/products?category=&q=.
func (h *CatalogHandler) Products(c *gin.Context) {
	products, err := h.catalogSvc.Products(c.Request.Context(), domain.ProductFilter{
		CategoryID: c.Query("category"),
		Query:      c.Query("q"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ProductListResponse{Products: products, Total: len(products)})
}

// Product handles GET /api/v1/catalog/products/:id. Age-restricted products
// are only shown to verified accounts.
func (h *CatalogHandler) Product(c *gin.Context) {
	viewer, err := currentUser(c, h.authSvc)
	if err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.catalogSvc.Product(c.Request.Context(), c.Param("id"), viewer)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, product)
}
