package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"upwatch/internal/auth"
	"upwatch/internal/config"
	"upwatch/internal/httpapi"
	"upwatch/internal/logging"
	"upwatch/internal/monitor"
	"upwatch/internal/probe"
	"upwatch/internal/repo"
	"upwatch/internal/repo/memory"
	pg "upwatch/internal/repo/postgres"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	secret := cfg.JWTSecret
	if secret == "" {
		if cfg.Env == "production" {
			logger.Fatal("jwt_secret_missing", zap.String("env", cfg.Env))
		}
		logger.Warn("jwt_secret_missing_using_dev_default")
		secret = auth.DevSecret
	}
	tokens := auth.NewTokenIssuer(secret)

	ctx := context.Background()

	var store repo.Store
	if cfg.DatabaseURL != "" {
		if err := pg.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
			logger.Fatal("migrations_failed", zap.Error(err))
		}
		pgStore, err := pg.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("postgres_connect_failed", zap.Error(err))
		}
		defer pgStore.Close()
		store = pgStore
		logger.Info("store_postgres")
	} else {
		store = memory.New()
		logger.Warn("store_memory", zap.String("hint", "set DATABASE_URL for persistence"))
	}

	checker := probe.NewHTTPChecker(cfg.ProbeTimeout)

	engine := monitor.NewEngine(
		logger,
		store,
		store,
		checker,
		cfg.CheckInterval,
		cfg.ProbeTimeout,
		cfg.MaxConcurrentChecks,
	)
	go engine.Run(ctx)

	api := httpapi.NewServer(logger, store, checker, tokens)

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
