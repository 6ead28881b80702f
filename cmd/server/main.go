package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asklynk/qa-platform/internal/api"
	"github.com/asklynk/qa-platform/internal/infrastructure/config"
	mongodb "github.com/asklynk/qa-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/asklynk/qa-platform/internal/infrastructure/db/redis"
	"github.com/asklynk/qa-platform/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title       AskLynk Q&A Platform API
// @version     1.0
// @description Authentication, sessions, questions, answers and moderation for the AskLynk platform.
// @host        localhost:8080
// @BasePath    /
func main() {
	log := logger.Init(logger.Options{
		Level:   os.Getenv("LOG_LEVEL"),
		Service: "qa-platform",
		Pretty:  os.Getenv("ENV") != "production",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load(log)
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		// Sessions degrade to the in-process store; the platform stays up.
		log.Warn().Err(err).Msg("redis unavailable, sessions will not survive restarts")
	}
	defer rdb.Close()

	e, dispatcher := api.NewRouter(db, rdb, cfg, log)
	dispatcher.Start(ctx)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// No new requests can enqueue notifications now; drain what remains.
	dispatcher.Stop()
}
