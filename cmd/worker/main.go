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
	"github.com/dissom/Train-Station-API-Service/internal/worker"

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
		logger.Info("Worker metrics listening on :9093")
		http.ListenAndServe(":9093", mux)
	}()

	infraFactory := infrastructure.NewFactory(cfg)
	defer infraFactory.Close()

	pgPool, err := infraFactory.Postgres(ctx)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}

	outboxRepo := postgres.NewOutboxRepository(pgPool)

	kafkaProd := kafka.NewProducer(kafka.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer kafkaProd.Close()

	w := worker.NewOutboxPoller(outboxRepo, kafkaProd)

	if err := w.Run(ctx); err != nil {
		logger.Error("worker stopped with error", "error", err)
	}

	logger.Info("worker exited")
}
