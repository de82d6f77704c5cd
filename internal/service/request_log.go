package service

import (
	"context"

	"token-shop/pkg/logger"

	"github.com/rs/zerolog"
)

// reqLog returns the request-scoped logger carried by ctx, or fallback.
func reqLog(ctx context.Context, fallback zerolog.Logger) *zerolog.Logger {
	l := logger.FromContext(ctx, fallback)
	return &l
}
