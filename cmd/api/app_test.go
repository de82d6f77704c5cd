package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"token-shop/config"
	"token-shop/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp runs the full stack over HTTP: router, middleware, handlers,
// services, in-memory ledgers and Redis-backed carts via miniredis.
type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := &config.Config{
		Server:    config.ServerConfig{Mode: gin.TestMode, MaxBodyBytes: 1 << 20},
		Storage:   config.StorageConfig{Driver: config.DriverMemory, Cart: config.DriverRedis},
		Redis:     config.RedisConfig{Enabled: true, Host: mr.Host(), Port: port, CartTTL: time.Hour},
		JWT:       config.JWTConfig{Secret: "test-jwt-secret-key-32bytes!!", Expiry: time.Hour, Issuer: "test"},
		Wallet:    config.WalletConfig{InitialBalance: 100, Currency: "USD"},
		Checkout:  config.CheckoutConfig{IdempotencyTTL: time.Hour},
		RateLimit: config.RateLimitConfig{Requests: 10000, Window: time.Minute},
	}

	a, err := buildApp(context.Background(), cfg, logger.New("error", false))
	require.NoError(t, err)

	srv := httptest.NewServer(a.router)
	t.Cleanup(func() {
		srv.Close()
		a.close()
	})
	return &testApp{server: srv, redis: mr}
}

type envelope struct {
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"error_code"`
}

func (app *testApp) do(t *testing.T, method, path, token string, body any, headers ...string) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, app.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

func (app *testApp) signup(t *testing.T, email string) string {
	t.Helper()
	status, env := app.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status, env.ErrorCode)

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func (app *testApp) balance(t *testing.T, token string) string {
	t.Helper()
	status, env := app.do(t, http.MethodGet, "/api/v1/wallet", token, nil)
	require.Equal(t, http.StatusOK, status)

	var stmt struct {
		Wallet struct {
			Balance string `json:"balance"`
		} `json:"wallet"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stmt))
	return stmt.Wallet.Balance
}

func hasKeyPrefix(keys []string, prefix string) bool {
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

func TestApp_Health(t *testing.T) {
	app := newTestApp(t)

	status, _ := app.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestApp_RequiresAuth(t *testing.T) {
	app := newTestApp(t)

	status, env := app.do(t, http.MethodGet, "/api/v1/wallet", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotEmpty(t, env.ErrorCode)
}

func TestApp_ShopFlow(t *testing.T) {
	app := newTestApp(t)
	token := app.signup(t, "flow@example.com")

	assert.Equal(t, "100", app.balance(t, token))

	for i := 0; i < 2; i++ {
		status, env := app.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]string{"product_id": "102"})
		require.Equal(t, http.StatusOK, status, env.ErrorCode)
	}
	assert.True(t, hasKeyPrefix(app.redis.Keys(), "cart:"), "cart persisted in redis")

	checkout := func() string {
		status, env := app.do(t, http.MethodPost, "/api/v1/checkout", token,
			map[string]string{"delivery": "pickup"}, "Idempotency-Key", "order-1")
		require.Equal(t, http.StatusCreated, status, env.ErrorCode)

		var receipt struct {
			Transaction struct {
				ID string `json:"id"`
			} `json:"transaction"`
			Total     string `json:"total"`
			ItemCount int    `json:"item_count"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &receipt))
		assert.Equal(t, "69.98", receipt.Total)
		assert.Equal(t, 2, receipt.ItemCount)
		return receipt.Transaction.ID
	}

	first := checkout()
	second := checkout()
	assert.Equal(t, first, second, "replayed key returns the original receipt")
	assert.Equal(t, "30.02", app.balance(t, token), "charged once")

	status, env := app.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, status)
	var cart struct {
		ItemCount int `json:"item_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Zero(t, cart.ItemCount)

	status, env = app.do(t, http.MethodGet, "/api/v1/notifications", token, nil)
	require.Equal(t, http.StatusOK, status)
	var inbox struct {
		UnreadCount int `json:"unread_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &inbox))
	assert.Equal(t, 1, inbox.UnreadCount)

	// The emptied cart cannot be checked out under a new key.
	status, env = app.do(t, http.MethodPost, "/api/v1/checkout", token,
		map[string]string{"delivery": "pickup"}, "Idempotency-Key", "order-2")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "CHK_002", env.ErrorCode)
}

func TestApp_OwnersAreIsolated(t *testing.T) {
	app := newTestApp(t)
	alice := app.signup(t, "alice@example.com")
	bob := app.signup(t, "bob@example.com")

	status, _ := app.do(t, http.MethodPost, "/api/v1/wallet/purchases", alice,
		map[string]string{"amount": "40", "description": "Super like pack"})
	require.Equal(t, http.StatusCreated, status)

	assert.Equal(t, "60", app.balance(t, alice))
	assert.Equal(t, "100", app.balance(t, bob))
}

func TestApp_ConcurrentPurchasesNeverOverdraw(t *testing.T) {
	app := newTestApp(t)
	token := app.signup(t, "race@example.com")

	const attempts = 25
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, _ := app.do(t, http.MethodPost, "/api/v1/wallet/purchases", token,
				map[string]string{"amount": "10", "description": "Boost"})
			if status == http.StatusCreated {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, "0", app.balance(t, token))
}
