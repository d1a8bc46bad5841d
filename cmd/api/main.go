package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/edusign/edusign-api/internal/api"
	"github.com/edusign/edusign-api/internal/core/hash"
	"github.com/edusign/edusign-api/internal/core/ports"
	"github.com/edusign/edusign-api/internal/core/service"
	"github.com/edusign/edusign-api/internal/infrastructure/config"
	"github.com/edusign/edusign-api/internal/infrastructure/db/postgres"
	"github.com/edusign/edusign-api/internal/infrastructure/db/redis"
	"github.com/edusign/edusign-api/internal/infrastructure/queue"
	"github.com/edusign/edusign-api/internal/ratelimit"
	"github.com/edusign/edusign-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load(slog.Default())
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Database.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
	}

	// --- Rate limiter ---
	var limiter ports.RateLimiter
	if cfg.RateLimit.Backend == "redis" && rdb != nil {
		limiter = ratelimit.NewRedis(rdb, cfg.RateLimit.Window, cfg.RateLimit.MaxAttempts)
	} else {
		limiter = ratelimit.NewMemory(cfg.RateLimit.Window, cfg.RateLimit.MaxAttempts)
	}

	// --- Services ---
	accountRepo := postgres.NewAccountRepository(pool)
	progressRepo := postgres.NewProgressRepository(pool)

	progressWriter := queue.NewProgressDispatcher(0, progressRepo, log)
	progressWriter.Start(ctx)

	hasher := hash.NewBcrypt(cfg.BcryptCost)
	authService := service.NewAuthService(accountRepo, progressWriter, hasher, limiter, log)

	// --- HTTP server ---
	e := api.NewRouter(authService, pool, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("edusign api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
