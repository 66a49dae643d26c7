package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lampara23/dise-o-web/internal/app/service"
	"github.com/lampara23/dise-o-web/internal/domain"
	"github.com/lampara23/dise-o-web/internal/infrastructure/config"
	"github.com/lampara23/dise-o-web/internal/infrastructure/http"
	"github.com/lampara23/dise-o-web/internal/infrastructure/http/handler"
	"github.com/lampara23/dise-o-web/internal/infrastructure/messaging/kafka"
	"github.com/lampara23/dise-o-web/internal/infrastructure/repository/memory"
	"github.com/lampara23/dise-o-web/internal/infrastructure/repository/mongodb"
	"github.com/lampara23/dise-o-web/internal/infrastructure/telemetry"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	var telem *telemetry.Telemetry
	if cfg.OTLP.ExportEnabled {
		t, err := telemetry.NewTelemetry(&cfg.OTLP)
		if err != nil {
			slog.Error("Failed to initialize telemetry", telemetry.Err(err))
			return err
		}
		telem = t
	} else {
		telem = telemetry.NewNoOpTelemetry(&cfg.OTLP)
	}

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = telem.Shutdown(shutdownCtx)
	}()

	tracer := telem.TracerProvider.Tracer("doggys-api")
	meter := telem.MeterProvider.Meter("doggys-api")
	logger := telem.Logger

	logger.Info("Starting Doggy's API", slog.String("store", cfg.Store.Driver))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		productRepo domain.ProductRepository
		userRepo    domain.UserRepository
	)
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		productRepo = memory.NewProductRepository(tracer, logger)
		userRepo = memory.NewUserRepository()
	default:
		store, err := mongodb.Connect(ctx, cfg.Mongo, logger)
		if err != nil {
			logger.Error("Failed to connect to MongoDB", telemetry.Err(err))
			return err
		}
		defer func() {
			closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer closeCancel()
			if err := store.Close(closeCtx); err != nil {
				logger.Error("Failed to close MongoDB", telemetry.Err(err))
			}
		}()
		productRepo = mongodb.NewProductRepository(store, tracer, logger)
		userRepo = mongodb.NewUserRepository(store, tracer, logger)
	}

	var events domain.EventPublisher = domain.NopPublisher{}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.OTLP.ServiceName, 1024, logger)
		producer.Start()
		defer producer.Close()
		events = producer
		logger.Info("Publishing catalog events", slog.String("topic", cfg.Kafka.Topic))
	}

	productService := service.NewProductService(productRepo, events, tracer, meter, logger)
	userService := service.NewUserService(userRepo, tracer, logger)
	healthService := service.NewHealthService(productRepo, tracer, logger)

	seedCtx, seedCancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
	inserted, err := productService.SeedProducts(seedCtx)
	seedCancel()
	if err != nil {
		logger.Error("Failed to initialize catalog", telemetry.Err(err))
		return err
	}
	if inserted > 0 {
		logger.Info("Catalog seeded", slog.Int("inserted", inserted))
	}

	server := http.NewServer(&cfg.Server, http.Handlers{
		Products: handler.NewProductHandler(productService, logger),
		Users:    handler.NewUserHandler(userService),
		Health:   handler.NewHealthHandler(healthService),
	}, telem)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", telemetry.Err(err))
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", telemetry.Err(err))
	}

	logger.Info("Server stopped")
	return nil
}
