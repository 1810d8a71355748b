package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/platebook/recipe-api/docs"
	"github.com/platebook/recipe-api/internal/api"
	"github.com/platebook/recipe-api/internal/core/service"
	mongodb "github.com/platebook/recipe-api/internal/infrastructure/db/mongo"
	redisdb "github.com/platebook/recipe-api/internal/infrastructure/db/redis"
	"github.com/platebook/recipe-api/internal/infrastructure/queue"
	"github.com/platebook/recipe-api/internal/pkg/config"
	"github.com/platebook/recipe-api/pkg/logger"
)

const shutdownGrace = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	authRepo := mongodb.NewAuthRepository(db)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}
	recipeRepo := mongodb.NewRecipeRepository(db)
	if err := recipeRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure recipe indexes: %w", err)
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	// --- Audit dispatcher ---
	dispatcherCtx, stopDispatcher := context.WithCancel(ctx)
	defer stopDispatcher()

	dispatcher := queue.NewAuditDispatcher(cfg.AuditWorkers, mongodb.NewAuditRepository(db), log)
	dispatcher.Start(dispatcherCtx)

	// --- HTTP server ---
	codec := service.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	e := api.NewRouter(api.Deps{
		Mongo:      db,
		Redis:      rdb,
		Codec:      codec,
		Dispatcher: dispatcher,
		Logger:     log,
	})

	serverErrs := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrs <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrs:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutdown started")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}
