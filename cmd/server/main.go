package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/archerylive/shootlive/internal/handlers/httpapi"
	"github.com/archerylive/shootlive/internal/notifier"
	shootRepo "github.com/archerylive/shootlive/internal/repositories/shoot"
	"github.com/archerylive/shootlive/internal/services/endtracking"
	shootService "github.com/archerylive/shootlive/internal/services/shoot"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Pick the repository backend: Redis when an address is configured,
	// otherwise the in-memory backend for local development
	var repo shootRepo.Repository
	if redisAddr := getEnv("REDIS_ADDR", ""); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}

		repo, err = shootRepo.NewRedis(&shootRepo.Config{
			RedisClient: redisClient,
			Logger:      logger,
		})
		if err != nil {
			logger.Fatal("Failed to create shoot repository", zap.Error(err))
		}

		logger.Info("Using Redis shoot repository", zap.String("addr", redisAddr))
	} else {
		repo = shootRepo.NewMemory(nil)
		logger.Warn("REDIS_ADDR not set, using in-memory shoot repository")
	}

	// The websocket hub is both the notification fan-out and the thing the
	// /live endpoint subscribes connections to
	hub := notifier.NewHub(&notifier.HubConfig{Logger: logger})

	shootSvc, err := shootService.New(&shootService.Config{
		ShootRepo: repo,
		Notifier:  hub,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal("Failed to create shoot service", zap.Error(err))
	}

	endSvc, err := endtracking.New(&endtracking.Config{
		ShootRepo: repo,
		Notifier:  hub,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal("Failed to create end tracking service", zap.Error(err))
	}

	handler, err := httpapi.New(&httpapi.Config{
		ShootService: shootSvc,
		EndTracking:  endSvc,
		Hub:          hub,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("Failed to create HTTP handler", zap.Error(err))
	}

	addr := getEnv("LISTEN_ADDR", ":8080")
	server := &http.Server{
		Addr:              addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Live shoot server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server", zap.Error(err))
	}

	logger.Info("Server has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
