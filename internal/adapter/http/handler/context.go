package handler

import (
	"time"

	"token-shop/internal/adapter/http/middleware"
	"token-shop/internal/core/domain"
	"token-shop/internal/core/ports"
	"token-shop/pkg/apperror"
	"token-shop/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ownerID returns the authenticated user id, writing AUTH_003 when absent.
func ownerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		response.Abort(c, apperror.ErrInvalidToken())
	}
	return id, ok
}

// currentUser loads the authenticated account.
func currentUser(c *gin.Context, authSvc ports.AuthService) (*domain.User, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return nil, apperror.ErrInvalidToken()
	}
	return authSvc.Me(c.Request.Context(), id)
}

// waitProcessing holds the response for d after a completed mutation. It
// reports false when the client disconnected first; nothing should be
// written then.
func waitProcessing(c *gin.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-c.Request.Context().Done():
		return false
	}
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Abort(c, apperror.Validation("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}
