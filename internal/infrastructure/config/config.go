package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig

	BcryptCost int `env:"BCRYPT_COST, default=12"`
}

type DatabaseConfig struct {
	URL string `env:"DATABASE_URL, default=postgres://localhost:5432/edusign"`
}

// RedisConfig is optional: an empty Addr disables Redis entirely, which also
// forces the in-memory rate limiter.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type RateLimitConfig struct {
	// Backend selects the signup limiter: "memory" or "redis".
	Backend     string        `env:"RATE_LIMIT_BACKEND, default=memory"`
	Window      time.Duration `env:"RATE_LIMIT_WINDOW,  default=15m"`
	MaxAttempts int           `env:"RATE_LIMIT_MAX,     default=5"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger *slog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error("Failed to load configuration", "error", err)
		panic(err)
	}
	return &cfg
}
