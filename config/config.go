package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Wallet    WalletConfig    `mapstructure:"wallet"`
	Checkout  CheckoutConfig  `mapstructure:"checkout"`
	TopUp     TopUpConfig     `mapstructure:"topup"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Mode         string `mapstructure:"mode"` // debug, release, test
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
}

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// StorageConfig selects where ledgers live. Driver backs wallets and
// transactions; Cart backs carts and the checkout idempotency cache.
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // memory, postgres
	Cart   string `mapstructure:"cart"`   // memory, redis
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CartTTL  time.Duration `mapstructure:"cart_ttl"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

type WalletConfig struct {
	InitialBalance float64 `mapstructure:"initial_balance"`
	Currency       string  `mapstructure:"currency"`
}

type CheckoutConfig struct {
	ProcessingDelay time.Duration `mapstructure:"processing_delay"`
	IdempotencyTTL  time.Duration `mapstructure:"idempotency_ttl"`
}

type TopUpConfig struct {
	FailureRate     float64       `mapstructure:"failure_rate"` // 0..1
	ProcessingDelay time.Duration `mapstructure:"processing_delay"`
}

type AuthConfig struct {
	SeedDemoUsers bool `mapstructure:"seed_demo_users"`
}

type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: TSHOP_.
// Nested keys use underscore: TSHOP_STORAGE_DRIVER, TSHOP_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.cart", DriverMemory)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "token_shop")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cart_ttl", "720h")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "token-shop")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("wallet.initial_balance", 100)
	v.SetDefault("wallet.currency", "USD")
	v.SetDefault("checkout.processing_delay", "1500ms")
	v.SetDefault("checkout.idempotency_ttl", "24h")
	v.SetDefault("topup.failure_rate", 0.1)
	v.SetDefault("topup.processing_delay", "2s")
	v.SetDefault("auth.seed_demo_users", true)
	v.SetDefault("ratelimit.requests", 60)
	v.SetDefault("ratelimit.window", "1m")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: TSHOP_DATABASE_HOST -> database.host
	v.SetEnvPrefix("TSHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode: unsupported value %q", c.Server.Mode)
	}
	switch c.Storage.Driver {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("storage.driver: unsupported value %q", c.Storage.Driver)
	}
	switch c.Storage.Cart {
	case DriverMemory:
	case DriverRedis:
		if !c.Redis.Enabled {
			return fmt.Errorf("storage.cart=redis requires redis.enabled")
		}
	default:
		return fmt.Errorf("storage.cart: unsupported value %q", c.Storage.Cart)
	}
	if c.Wallet.InitialBalance < 0 {
		return fmt.Errorf("wallet.initial_balance must not be negative")
	}
	if c.TopUp.FailureRate < 0 || c.TopUp.FailureRate > 1 {
		return fmt.Errorf("topup.failure_rate must be within [0, 1]")
	}
	return nil
}
