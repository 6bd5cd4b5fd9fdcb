package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dissom/Train-Station-API-Service/internal/api"
	"github.com/dissom/Train-Station-API-Service/internal/application/factories/infrastructure"
	"github.com/dissom/Train-Station-API-Service/internal/config"
	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/postgres"
	"github.com/dissom/Train-Station-API-Service/internal/usecase"
)

func main() {
	// Initialize structured JSON logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.New()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	infraFactory := infrastructure.NewFactory(cfg)
	defer infraFactory.Close()

	pgPool, err := infraFactory.Postgres(ctx)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}

	redisClient, err := infraFactory.Redis(ctx)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	// Repositories
	stationRepo := postgres.NewStationRepository(pgPool)
	routeRepo := postgres.NewRouteRepository(pgPool)
	trainTypeRepo := postgres.NewTrainTypeRepository(pgPool)
	trainRepo := postgres.NewTrainRepository(pgPool)
	journeyRepo := postgres.NewJourneyRepository(pgPool)
	crewRepo := postgres.NewCrewRepository(pgPool)
	orderRepo := postgres.NewOrderRepository(pgPool)
	ticketRepo := postgres.NewTicketRepository(pgPool)
	outboxRepo := postgres.NewOutboxRepository(pgPool)
	txManager := postgres.NewTxManager(pgPool)

	// UseCases
	createOrderUC := usecase.NewCreateOrder(txManager, journeyRepo, orderRepo, ticketRepo, outboxRepo)
	cancelOrderUC := usecase.NewCancelOrder(txManager, orderRepo, outboxRepo)

	handlers := api.NewHandlers(
		stationRepo, routeRepo, trainTypeRepo, trainRepo,
		journeyRepo, crewRepo, orderRepo,
		createOrderUC, cancelOrderUC,
	)
	apiHandler := api.NewRouter(handlers, redisClient)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: apiHandler,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exiting")
}
