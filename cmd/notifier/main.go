package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dissom/Train-Station-API-Service/internal/application/factories/infrastructure"
	"github.com/dissom/Train-Station-API-Service/internal/config"
	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/kafka"
	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/postgres"
	"github.com/dissom/Train-Station-API-Service/internal/notifier"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.New()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Metrics server
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info("Notifier metrics listening on :9091")
		http.ListenAndServe(":9091", mux)
	}()

	infraFactory := infrastructure.NewFactory(cfg)
	defer infraFactory.Close()

	pgPool, err := infraFactory.Postgres(ctx)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}

	processedRepo := postgres.NewProcessedEventRepository(pgPool)

	groupID := cfg.Kafka.GroupID
	if groupID == "" {
		groupID = "booking-notifier"
	}
	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, groupID)
	defer consumer.Close()

	logger.Info("Booking notifier started", "group_id", groupID, "topic", cfg.Kafka.Topic)

	n := notifier.New(consumer, processedRepo)
	if err := n.Run(ctx); err != nil {
		logger.Error("notifier stopped with error", "error", err)
	}

	logger.Info("notifier exited")
}
