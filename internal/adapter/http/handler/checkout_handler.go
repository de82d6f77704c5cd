package handler

import (
	"time"

	"token-shop/internal/adapter/http/dto"
	"token-shop/internal/core/domain"
	"token-shop/internal/core/ports"
	"token-shop/pkg/apperror"
	"token-shop/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"

	maxIdempotencyKeyLen = 100
)

// CheckoutHandler turns carts into orders.
type CheckoutHandler struct {
	checkoutSvc ports.CheckoutService
	delay       time.Duration
}

func NewCheckoutHandler(checkoutSvc ports.CheckoutService, delay time.Duration) *CheckoutHandler {
	return &CheckoutHandler{checkoutSvc: checkoutSvc, delay: delay}
}

// Quote handles GET /api/v1/checkout/quote?delivery=.
func (h *CheckoutHandler) Quote(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	quote, err := h.checkoutSvc.Quote(c.Request.Context(), owner, c.Query("delivery"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, quote)
}

// Checkout handles POST /api/v1/checkout. A repeated Idempotency-Key
// returns the original receipt without charging again.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	key := c.GetHeader(HeaderIdempotencyKey)
	if len(key) > maxIdempotencyKeyLen {
		response.Error(c, apperror.Validation("Idempotency-Key is too long"))
		return
	}

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	var gift *domain.GiftRecipient
	if req.Gift != nil {
		gift = &domain.GiftRecipient{ContactID: req.Gift.ContactID, Name: req.Gift.Name}
	}

	receipt, err := h.checkoutSvc.Checkout(c.Request.Context(), ports.CheckoutRequest{
		OwnerID:        owner,
		Delivery:       req.Delivery,
		Address:        req.Address,
		Gift:           gift,
		IdempotencyKey: key,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if !waitProcessing(c, h.delay) {
		return
	}
	response.Created(c, receipt)
}
