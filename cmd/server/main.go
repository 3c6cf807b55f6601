package main

import (
	"FinPay/internal/adapters/eventbus"
	"FinPay/internal/adapters/httpapi"
	"FinPay/internal/adapters/kafka"
	"FinPay/internal/adapters/memory"
	"FinPay/internal/adapters/postgres"
	"FinPay/internal/core/ports"
	"FinPay/internal/core/services"
	"FinPay/internal/shared/config"
	"FinPay/internal/shared/logger"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	isDevMode := cfg.AppEnv == "dev"
	baseLogger := logger.New(isDevMode)
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Str("http_addr", cfg.HTTPAddr).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Initialize the Payment Store
	var store ports.PaymentStore
	if cfg.DatabaseURL != "" {
		db, err := postgres.NewDB(ctx, cfg.DatabaseURL, &baseLogger)
		if err != nil {
			baseLogger.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()
		store = postgres.NewPaymentStore(db, &baseLogger)
	} else {
		baseLogger.Warn().Msg("DATABASE_URL not set, using in-memory store")
		store = memory.NewPaymentStore()
	}

	// 4. Initialize the Event Publisher
	var events ports.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, &baseLogger)
		defer publisher.Close()
		events = publisher
	} else {
		bus := eventbus.NewInMemoryEventBus(&baseLogger)
		bus.Subscribe(ports.TopicPaymentCreated, func(_ context.Context, event ports.Event) error {
			baseLogger.Info().Str("topic", event.Topic).Msg("Payment created")
			return nil
		})
		events = bus
	}

	// 5. Initialize the Service and HTTP layer
	svc := services.NewPaymentService(store, events, &baseLogger)
	handler := httpapi.NewPaymentHandler(svc, &baseLogger)
	server := httpapi.NewServer(cfg.HTTPAddr, httpapi.NewRouter(handler), &baseLogger)

	baseLogger.Info().Msg("All services initialized successfully")

	if err := server.Start(ctx); err != nil {
		baseLogger.Fatal().Err(err).Msg("Server exited with error")
	}
}
