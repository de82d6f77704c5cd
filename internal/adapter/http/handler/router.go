package handler

import (
	"time"

	"token-shop/internal/adapter/http/middleware"
	redisStore "token-shop/internal/adapter/storage/redis"
	"token-shop/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc         ports.AuthService
	WalletSvc       ports.WalletService
	CartSvc         ports.CartService
	CheckoutSvc     ports.CheckoutService
	CatalogSvc      ports.CatalogService
	NotificationSvc ports.NotificationService
	TokenSvc        ports.TokenService
	RateLimitStore  *redisStore.RateLimitStore // nil = rate limiting disabled
	APIRateLimit    middleware.RateLimitRule
	HealthCheckers  []ports.HealthChecker
	MaxBodyBytes    int64
	CheckoutDelay   time.Duration
	TopUpDelay      time.Duration
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	r.Use(middleware.MaxBodySize(maxBody))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules(deps.APIRateLimit)

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok || rule.Limit <= 0 {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", rl("auth_signup"), authHandler.Signup)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
		auth.POST("/reset-password", rl("auth_reset"), authHandler.ResetPassword)
	}

	// --- JWT-authenticated routes ---
	api := v1.Group("", middleware.JWTAuth(deps.TokenSvc, deps.Logger), rl("api"))

	me := api.Group("/me")
	{
		me.GET("", authHandler.Me)
		me.POST("/age-verification", authHandler.VerifyAge)
	}

	walletHandler := NewWalletHandler(deps.WalletSvc, deps.TopUpDelay)
	wallet := api.Group("/wallet")
	{
		wallet.GET("", walletHandler.GetWallet)
		wallet.POST("/deposits", rl("wallet"), walletHandler.Deposit)
		wallet.POST("/withdrawals", rl("wallet"), walletHandler.Withdraw)
		wallet.POST("/purchases", rl("wallet"), walletHandler.Purchase)
		wallet.POST("/topups", rl("topups"), walletHandler.TopUp)
		wallet.PUT("/currency", walletHandler.ChangeCurrency)
	}

	catalogHandler := NewCatalogHandler(deps.CatalogSvc, deps.AuthSvc)
	catalog := api.Group("/catalog")
	{
		catalog.GET("/categories", catalogHandler.Categories)
		catalog.GET("/products", catalogHandler.Products)
		catalog.GET("/products/:id", catalogHandler.Product)
	}

	cartHandler := NewCartHandler(deps.CartSvc, deps.CatalogSvc, deps.AuthSvc)
	cart := api.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.Clear)
		cart.POST("/items", cartHandler.AddItem)
		cart.PATCH("/items/:id", cartHandler.UpdateQuantity)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
	}

	checkoutHandler := NewCheckoutHandler(deps.CheckoutSvc, deps.CheckoutDelay)
	checkout := api.Group("/checkout")
	{
		checkout.GET("/quote", checkoutHandler.Quote)
		checkout.POST("", rl("checkout"), checkoutHandler.Checkout)
	}

	notificationHandler := NewNotificationHandler(deps.NotificationSvc)
	notifications := api.Group("/notifications")
	{
		notifications.GET("", notificationHandler.List)
		notifications.DELETE("", notificationHandler.Clear)
		notifications.POST("/read-all", notificationHandler.MarkAllRead)
		notifications.POST("/:id/read", notificationHandler.MarkRead)
		notifications.DELETE("/:id", notificationHandler.Remove)
	}

	return r
}
