package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"token-shop/config"
	httpHandler "token-shop/internal/adapter/http/handler"
	"token-shop/internal/adapter/http/middleware"
	"token-shop/internal/adapter/storage/memory"
	"token-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// app is the wired service graph behind the HTTP router.
type app struct {
	router *gin.Engine
	stores *stores
}

func (a *app) close() {
	a.stores.Close()
}

func buildApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	// Initialize core services
	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		jwtSecret, err = randomSecret()
		if err != nil {
			st.Close()
			return nil, err
		}
		log.Warn().Msg("jwt.secret not set, using an ephemeral secret; sessions end on restart")
	}
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(jwtSecret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Initialize business services
	authSvc := service.NewAuthService(st.users, hashSvc, tokenSvc, log)
	notificationSvc := service.NewNotificationService(st.notifications, log)
	gateway := service.NewSimulatedGateway(cfg.TopUp.FailureRate, uint64(time.Now().UnixNano()), log)
	walletSvc := service.NewWalletService(
		st.wallets,
		st.transactions,
		st.transactor,
		gateway,
		notificationSvc,
		service.WalletOptions{
			InitialBalance: decimal.NewFromFloat(cfg.Wallet.InitialBalance).Round(2),
			Currency:       cfg.Wallet.Currency,
		},
		log,
	)
	cartSvc := service.NewCartService(st.carts, log)
	checkoutSvc := service.NewCheckoutService(cartSvc, walletSvc, notificationSvc, st.idempotency, cfg.Checkout.IdempotencyTTL, log)
	catalogSvc := service.NewCatalogService(memory.NewDefaultCatalogRepo())

	if cfg.Auth.SeedDemoUsers {
		if err := authSvc.SeedDemoUsers(ctx); err != nil {
			st.Close()
			return nil, fmt.Errorf("seed demo users: %w", err)
		}
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:         authSvc,
		WalletSvc:       walletSvc,
		CartSvc:         cartSvc,
		CheckoutSvc:     checkoutSvc,
		CatalogSvc:      catalogSvc,
		NotificationSvc: notificationSvc,
		TokenSvc:        tokenSvc,
		RateLimitStore:  st.rateLimit,
		APIRateLimit: middleware.RateLimitRule{
			Limit:  int64(cfg.RateLimit.Requests),
			Window: cfg.RateLimit.Window,
		},
		HealthCheckers: st.health,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		CheckoutDelay:  cfg.Checkout.ProcessingDelay,
		TopUpDelay:     cfg.TopUp.ProcessingDelay,
		Logger:         log,
	})

	return &app{router: router, stores: st}, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
