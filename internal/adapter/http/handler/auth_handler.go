package handler

import (
	"token-shop/internal/adapter/http/dto"
	"token-shop/internal/core/ports"
	"token-shop/pkg/apperror"
	"token-shop/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authSvc ports.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Signup handles POST /api/v1/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	session, err := h.authSvc.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toSessionResponse(session))
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	session, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toSessionResponse(session))
}

// ResetPassword handles POST /api/v1/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.authSvc.ResetPassword(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "Password reset instructions sent"})
}

// Me handles GET /api/v1/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := currentUser(c, h.authSvc)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// VerifyAge handles POST /api/v1/me/age-verification.
func (h *AuthHandler) VerifyAge(c *gin.Context) {
	id, ok := ownerID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.VerifyAge(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

func toSessionResponse(s *ports.Session) dto.SessionResponse {
	return dto.SessionResponse{
		User:   s.User,
		Token:  s.Token,
		Expiry: s.ExpiresAt.Unix(),
	}
}
