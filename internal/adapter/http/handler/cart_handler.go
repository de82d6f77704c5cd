package handler

import (
	"token-shop/internal/adapter/http/dto"
	"token-shop/internal/core/ports"
	"token-shop/pkg/apperror"
	"token-shop/pkg/response"

	"github.com/gin-gonic/gin"
)

// CartHandler handles the per-user cart ledger.
type CartHandler struct {
	cartSvc    ports.CartService
	catalogSvc ports.CatalogService
	authSvc    ports.AuthService
}

func NewCartHandler(cartSvc ports.CartService, catalogSvc ports.CatalogService, authSvc ports.AuthService) *CartHandler {
	return &CartHandler{cartSvc: cartSvc, catalogSvc: catalogSvc, authSvc: authSvc}
}

// GetCart handles GET /api/v1/cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	cart, err := h.cartSvc.GetCart(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewCartResponse(cart))
}

// AddItem handles POST /api/v1/cart/items. Name and price come from the
// catalog, so clients cannot set their own price.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	viewer, err := currentUser(c, h.authSvc)
	if err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.catalogSvc.Product(c.Request.Context(), req.ProductID, viewer)
	if err != nil {
		response.Error(c, err)
		return
	}

	cart, err := h.cartSvc.AddItem(c.Request.Context(), viewer.ID, product.CartItem())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewCartResponse(cart))
}

// UpdateQuantity handles PATCH /api/v1/cart/items/:id.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	cart, err := h.cartSvc.UpdateQuantity(c.Request.Context(), owner, c.Param("id"), *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewCartResponse(cart))
}

// RemoveItem handles DELETE /api/v1/cart/items/:id.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	cart, err := h.cartSvc.RemoveItem(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewCartResponse(cart))
}

// Clear handles DELETE /api/v1/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	if err := h.cartSvc.Clear(c.Request.Context(), owner); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
