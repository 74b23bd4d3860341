package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carteira-app/carteira/internal/config"
	"github.com/carteira-app/carteira/internal/database"
	"github.com/carteira-app/carteira/internal/events"
	"github.com/carteira-app/carteira/internal/modules/income"
	"github.com/carteira-app/carteira/internal/modules/market"
	"github.com/carteira-app/carteira/internal/modules/portfolio"
	"github.com/carteira-app/carteira/internal/modules/snapshots"
	"github.com/carteira-app/carteira/internal/modules/transactions"
	"github.com/carteira-app/carteira/internal/scheduler"
	"github.com/carteira-app/carteira/internal/server"
	"github.com/carteira-app/carteira/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{Level: "info", Pretty: true})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting Carteira")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Each module owns its schema
	if err := transactions.InitSchema(db.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize transactions schema")
	}
	if err := income.InitSchema(db.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize income schema")
	}
	if err := snapshots.InitSchema(db.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize snapshots schema")
	}

	// Event manager
	eventManager := events.NewManager(log)

	// Repositories
	txRepo := transactions.NewRepository(db.Conn(), log)
	incomeRepo := income.NewRepository(db.Conn(), log)
	snapshotRepo := snapshots.NewRepository(db.Conn(), log)

	// Market data: brapi client behind a TTL cache
	brapiClient := market.NewClient(cfg.BrapiBaseURL, cfg.BrapiToken, log)
	marketService := market.NewService(brapiClient, market.NewTTLCache(cfg.QuoteCacheTTL), log)

	// Domain services
	portfolioService := portfolio.NewService(txRepo, incomeRepo, marketService, log)
	snapshotService := snapshots.NewService(snapshotRepo, log)

	// Background jobs
	sched := scheduler.New(log)
	incomeJob := income.NewSyncJob(brapiClient, txRepo, incomeRepo, eventManager, log)
	snapshotJob := snapshots.NewRecordJob(portfolioService, snapshotRepo, eventManager, log)

	if err := sched.AddJob(cfg.IncomeSchedule, incomeJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule income sync")
	}
	if err := sched.AddJob(cfg.SnapshotSchedule, snapshotJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule snapshot job")
	}

	sched.Start()
	defer sched.Stop()

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:   cfg.Port,
		Log:    log,
		DB:     db,
		Config: cfg,
		Handlers: server.Handlers{
			Transactions: transactions.NewHandler(txRepo, eventManager, log),
			Income:       income.NewHandler(incomeRepo, log),
			Portfolio:    portfolio.NewHandler(portfolioService, log),
			Snapshots:    snapshots.NewHandler(snapshotService, log),
		},
		DevMode: cfg.DevMode,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
