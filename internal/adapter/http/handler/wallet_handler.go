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

// WalletHandler handles wallet ledger endpoints.
type WalletHandler struct {
	walletSvc  ports.WalletService
	topUpDelay time.Duration
}

// NewWalletHandler creates a new WalletHandler. topUpDelay holds top-up
// responses to simulate payment processing.
func NewWalletHandler(walletSvc ports.WalletService, topUpDelay time.Duration) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc, topUpDelay: topUpDelay}
}

// GetWallet handles GET /api/v1/wallet.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	stmt, err := h.walletSvc.Statement(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stmt)
}

// Deposit handles POST /api/v1/wallet/deposits.
func (h *WalletHandler) Deposit(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	tx, err := h.walletSvc.AddFunds(c.Request.Context(), owner, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tx)
}

// Withdraw handles POST /api/v1/wallet/withdrawals.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	tx, err := h.walletSvc.WithdrawFunds(c.Request.Context(), owner, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tx)
}

// Purchase handles POST /api/v1/wallet/purchases.
func (h *WalletHandler) Purchase(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	tx, err := h.walletSvc.MakePurchase(c.Request.Context(), owner, req.Amount, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tx)
}

// ChangeCurrency handles PUT /api/v1/wallet/currency.
func (h *WalletHandler) ChangeCurrency(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.CurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	wallet, err := h.walletSvc.ChangeCurrency(c.Request.Context(), owner, req.Currency)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, wallet)
}

// TopUp handles POST /api/v1/wallet/topups.
func (h *WalletHandler) TopUp(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.walletSvc.TopUp(c.Request.Context(), ports.TopUpRequest{
		OwnerID: owner,
		Method:  domain.PaymentMethod(req.Method),
		Amount:  req.Amount,
		Mpesa:   req.Mpesa,
		Card:    req.Card,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if !waitProcessing(c, h.topUpDelay) {
		return
	}
	response.Created(c, result)
}
