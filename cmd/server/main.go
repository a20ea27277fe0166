package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/agriconnect/portal/internal/api"
	"github.com/agriconnect/portal/internal/core/ports"
	"github.com/agriconnect/portal/internal/core/service"
	"github.com/agriconnect/portal/internal/infrastructure/backend"
	"github.com/agriconnect/portal/internal/infrastructure/config"
	redisdb "github.com/agriconnect/portal/internal/infrastructure/db/redis"
	"github.com/agriconnect/portal/internal/infrastructure/session"
	"github.com/agriconnect/portal/pkg/logger"
)

const janitorInterval = time.Minute

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Session store: Redis when configured, in-process memory otherwise.
	var (
		sessions ports.SessionStore
		rdb      *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}
		defer client.Close()
		rdb = client
		sessions = session.NewRedisStore(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis session store")
	} else {
		store := session.NewMemoryStore()
		store.StartJanitor(ctx, janitorInterval, log)
		sessions = store
		log.Info().Msg("using in-memory session store")
	}

	client := backend.New(cfg.Backend.URL, nil, log)
	svc := service.NewPortalService(client, sessions, log)
	e := api.NewRouter(svc, client, sessions, rdb, cfg, log)

	// gops agent for runtime diagnostics.
	if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
		log.Warn().Err(err).Msg("gops agent failed to start")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().
		Str("port", cfg.Port).
		Str("backend", cfg.Backend.URL).
		Msg("portal started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
