package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightsearch/config"
	"github.com/Domenick1991/flightsearch/internal/bootstrap"
	"github.com/Domenick1991/flightsearch/internal/cache"
	"github.com/Domenick1991/flightsearch/internal/gateway"
	"github.com/Domenick1991/flightsearch/internal/kafka"
	"github.com/Domenick1991/flightsearch/internal/logger"
	"github.com/Domenick1991/flightsearch/internal/repository"
	"github.com/Domenick1991/flightsearch/internal/service/saved"
	"github.com/Domenick1991/flightsearch/internal/service/search"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	appLogger := logger.New(cfg.Log.Level)
	slog.SetDefault(appLogger)

	if cfg.Gateway.APIKey == "" {
		appLogger.Warn("SERPAPI_KEY is not set, flight searches will be rejected by the provider")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	flightRepo := repository.NewSavedFlightRepository(pool)
	if cfg.Database.EnsureSchema {
		if err := flightRepo.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	var savedOpts []saved.Option
	switch {
	case cfg.Redis.Addr == "":
	case cfg.SavedFlights.ListCacheTTL() <= 0:
		appLogger.Info("saved flights cache disabled by a zero ttl")
	default:
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.SavedFlights.ListCacheTTL())
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			appLogger.Warn("redis unreachable, saved flights will be read from the database", "error", err)
		}
		savedOpts = append(savedOpts, saved.WithCache(redisCache))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			appLogger.Warn("kafka unreachable, saved flight events may be lost", "error", err)
		}
		savedOpts = append(savedOpts, saved.WithEvents(producer, cfg.Kafka.EventsTopic))
	}

	searchService := search.NewSearchService(gateway.NewSerpAPIClient(cfg.Gateway, appLogger))
	savedService := saved.NewService(flightRepo, appLogger, savedOpts...)

	return bootstrap.Run(ctx, cfg, searchService, savedService, appLogger)
}
