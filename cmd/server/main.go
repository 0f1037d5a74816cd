package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	api "fleetops-backend/internal/api/http"
	"fleetops-backend/internal/config"
	"fleetops-backend/internal/events"
	"fleetops-backend/internal/logger"
	"fleetops-backend/internal/repository/postgres"
	"fleetops-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Local overrides from .env, if present
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting FleetOps ledger server...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Apply schema migrations
	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	logger.Info("Schema migrations applied")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize event publisher
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Exchange, cfg.Events.Queue)
		if err != nil {
			log.Fatalf("Failed to connect to event broker: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		logger.Info("Event publisher connected", "exchange", cfg.Events.Exchange)
	}

	// Initialize Services
	policy := service.NewRolePolicy()
	defaultLimit := decimal.NewFromFloat(cfg.Ledger.DefaultSpendingLimit)

	ledgerService := service.NewLedgerService(
		store.LedgerRepository,
		store.SpendingAccountRepository,
		store.DriverRepository,
		store.AuditLogRepository,
		publisher,
		policy,
		defaultLimit,
	)

	services := api.Services{
		Driver:    service.NewDriverService(store.DriverRepository),
		Ledger:    ledgerService,
		Report:    service.NewReportService(store.LedgerRepository, store.SpendingAccountRepository),
		Overdraft: service.NewOverdraftService(store.SpendingAccountRepository),
		Expense:   service.NewExpenseService(store.ExpenseRepository, store.LedgerRepository, ledgerService),
		Audit:     service.NewAuditService(store.AuditLogRepository),
	}

	handler := api.NewHandler(services, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
