package main

import (
	"context"
	"fmt"

	"token-shop/config"
	"token-shop/internal/adapter/storage/memory"
	pgStorage "token-shop/internal/adapter/storage/postgres"
	redisStorage "token-shop/internal/adapter/storage/redis"
	"token-shop/internal/core/ports"

	"github.com/rs/zerolog"
)

// stores is the repository set selected by storage.driver and storage.cart.
type stores struct {
	wallets       ports.WalletRepository
	transactions  ports.TransactionRepository
	transactor    ports.DBTransactor
	users         ports.UserRepository
	notifications ports.NotificationRepository
	carts         ports.CartRepository
	idempotency   ports.IdempotencyCache
	rateLimit     *redisStorage.RateLimitStore
	health        []ports.HealthChecker
	closers       []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	st := &stores{
		carts:       memory.NewCartRepo(),
		idempotency: memory.NewIdempotencyCache(),
	}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		st.closers = append(st.closers, pool.Close)
		if err := pgStorage.Migrate(ctx, pool); err != nil {
			st.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		log.Info().Msg("PostgreSQL connected")

		st.wallets = pgStorage.NewWalletRepo(pool)
		st.transactions = pgStorage.NewTransactionRepo(pool)
		st.transactor = pgStorage.NewTransactor(pool)
		st.users = pgStorage.NewUserRepo(pool)
		st.notifications = pgStorage.NewNotificationRepo(pool)
		st.idempotency = pgStorage.NewIdempotencyCache(pool)
		st.health = append(st.health, pgStorage.NewHealthCheck(pool))
	default:
		st.wallets = memory.NewWalletRepo()
		st.transactions = memory.NewTransactionRepo()
		st.transactor = memory.NewTransactor()
		st.users = memory.NewUserRepo()
		st.notifications = memory.NewNotificationRepo()
	}

	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		st.closers = append(st.closers, func() { _ = rdb.Close() })
		log.Info().Msg("Redis connected")

		st.rateLimit = redisStorage.NewRateLimitStore(rdb)
		st.health = append(st.health, redisStorage.NewHealthCheck(rdb))
		if cfg.Storage.Cart == config.DriverRedis {
			st.carts = redisStorage.NewCartRepo(rdb, cfg.Redis.CartTTL)
			st.idempotency = redisStorage.NewIdempotencyCache(rdb)
		}
	}

	return st, nil
}
