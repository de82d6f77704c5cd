package main

import (
	"context"
	"strconv"
	"testing"

	"token-shop/config"
	"token-shop/internal/adapter/storage/memory"
	redisStorage "token-shop/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStores_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory, Cart: config.DriverMemory}}

	st, err := openStores(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer st.Close()

	assert.IsType(t, &memory.WalletRepo{}, st.wallets)
	assert.IsType(t, &memory.CartRepo{}, st.carts)
	assert.IsType(t, &memory.IdempotencyCache{}, st.idempotency)
	assert.Nil(t, st.rateLimit)
	assert.Empty(t, st.health)
}

func TestOpenStores_RedisCarts(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.DriverMemory, Cart: config.DriverRedis},
		Redis:   config.RedisConfig{Enabled: true, Host: mr.Host(), Port: port},
	}

	st, err := openStores(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer st.Close()

	assert.IsType(t, &redisStorage.CartRepo{}, st.carts)
	assert.IsType(t, &redisStorage.IdempotencyCache{}, st.idempotency)
	assert.NotNil(t, st.rateLimit)
	require.Len(t, st.health, 1)
	assert.Equal(t, "redis", st.health[0].Name())
}

func TestOpenStores_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host := mr.Host()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	mr.Close()

	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.DriverMemory, Cart: config.DriverMemory},
		Redis:   config.RedisConfig{Enabled: true, Host: host, Port: port},
	}

	_, err = openStores(context.Background(), cfg, zerolog.Nop())
	assert.ErrorContains(t, err, "connect redis")
}
