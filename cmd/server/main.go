package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/api"
	"github.com/shyakx/akazuba-florist/internal/config"
	"github.com/shyakx/akazuba-florist/internal/mailer"
	"github.com/shyakx/akazuba-florist/internal/realtime"
	"github.com/shyakx/akazuba-florist/internal/repository/postgres"
	"github.com/shyakx/akazuba-florist/internal/service"
	"github.com/shyakx/akazuba-florist/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting AKAZUBA FLORIST API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := postgres.RunMigrations(db, "migrations"); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db, logger)

	// Blob store for product images and payment proofs
	blobs, err := storage.NewLocalStore(cfg.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to initialize blob storage", zap.Error(err))
	}

	// Order-notification relay; empty SMTP_HOST means mailto fallback only
	m := mailer.NewSMTPMailer(cfg.SMTP, logger)

	// Cart badge counts, kept fresh by the NOTIFY listener below
	counts := service.NewCartCountCache(repos, logger)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// LISTEN/NOTIFY feed: cart row changes invalidate cached badge counts
	bus := realtime.NewBus()
	listener := realtime.NewPostgresListener(postgres.DSN(cfg.Database), bus, logger)
	go func() {
		if err := listener.Run(rootCtx); err != nil && rootCtx.Err() == nil {
			logger.Error("Realtime listener stopped", zap.Error(err))
		}
	}()
	go counts.WatchAll(rootCtx, bus)

	// Periodic full resync guards against missed notifications
	c := cron.New()
	c.AddFunc("@every 5m", func() {
		counts.ResyncAll(context.Background())
	})
	c.Start()
	defer c.Stop()

	// Initialize router
	router := api.NewRouter(cfg, repos, counts, blobs, m, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	<-rootCtx.Done()

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
