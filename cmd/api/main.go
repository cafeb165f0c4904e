package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pageza/vitaltrack/backend/config"
	"github.com/pageza/vitaltrack/backend/internal/api"
	"github.com/pageza/vitaltrack/backend/internal/database"
	"github.com/pageza/vitaltrack/backend/internal/gateway"
	"github.com/pageza/vitaltrack/backend/internal/logger"
	"github.com/pageza/vitaltrack/backend/internal/middleware"
	"github.com/pageza/vitaltrack/backend/internal/realtime"
	"github.com/pageza/vitaltrack/backend/internal/server"
	"github.com/pageza/vitaltrack/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// logger is not up yet
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(logger.Config{Debug: cfg.LogDebug, Dir: cfg.LogDir}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", "err", err)
	}
	if err := database.RunMigrations(ctx, db); err != nil {
		logger.Fatal("failed to run migrations", "err", err)
	}

	// Redis backs rate limiting and the analysis cache; both degrade to off.
	rdb, err := database.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("redis unavailable, rate limiting and analysis cache disabled", "err", err)
		rdb = nil
	} else {
		defer rdb.Close()
	}

	var store service.ObjectStore
	if cfg.S3BucketName != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			logger.Warn("exports disabled", "err", err)
		} else {
			store = s3cfg
		}
	}

	ai := gateway.New(cfg.AIGatewayURL, cfg.AIGatewayAPIKey, cfg.AIChatModel)
	hub := realtime.NewHub()

	deps := api.Dependencies{
		DB:         db,
		Auth:       service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL),
		Profiles:   service.NewProfileService(db),
		Activities: service.NewActivityService(db, hub),
		Meals:      service.NewMealService(db, hub),
		Checkins:   service.NewCheckinService(db, hub),
		Foods:      service.NewFoodService(db, ai, rdb, cfg.AIFoodModel),
		Chat:       service.NewChatService(db, ai, hub),
		Dashboard:  service.NewDashboardService(db),
		Export:     service.NewExportService(db, store),
		Hub:        hub,
	}
	if rdb != nil {
		deps.ChatLimiter = middleware.NewChatRateLimiter(rdb, cfg.ChatRateLimit)
		deps.AnalyzeLimiter = middleware.NewAnalyzeRateLimiter(rdb, cfg.AnalyzeRateLimit)
	}

	srv := server.New(cfg, deps)
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", "err", err)
		}
		return
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "err", err)
		return
	}
	logger.Info("server stopped")
}
