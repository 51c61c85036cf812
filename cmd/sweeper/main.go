package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openplacard/nft-ingest/internal/adapter"
	"github.com/openplacard/nft-ingest/internal/config"
	"github.com/openplacard/nft-ingest/internal/ingest"
	"github.com/openplacard/nft-ingest/internal/logger"
	"github.com/openplacard/nft-ingest/internal/providers/opensea"
	"github.com/openplacard/nft-ingest/internal/providers/superrare"
	"github.com/openplacard/nft-ingest/internal/refresher"
	"github.com/openplacard/nft-ingest/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	if err := store.AutoMigrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}

	// Initialize store and adapters
	dataStore := store.NewPGStore(db)
	httpClient := adapter.NewHTTPClient(30 * time.Second)
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()

	openseaClient := opensea.NewClient(httpClient, cfg.Vendors.OpenSeaURL, cfg.Vendors.OpenSeaAPIKey, jsonAdapter)
	superrareClient := superrare.NewClient(httpClient, cfg.Vendors.SuperRareURL, jsonAdapter)
	ethereumAdapter := ingest.NewEthereumAdapter(openseaClient, clock, 0)
	superrareAdapter := ingest.NewSuperRareAdapter(ethereumAdapter, superrareClient)

	// Initialize batch refresher
	batchRefresher := refresher.NewRefresher(refresher.Config{
		Window:   cfg.Refresh.Window,
		Interval: cfg.Refresh.Interval,
		MaxDepth: cfg.Refresh.MaxDepth,
		PoolSize: cfg.Refresh.PoolSize,
	}, dataStore, superrareAdapter, clock, jsonAdapter)

	// Start the refresher in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := batchRefresher.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the refresher
	cancel()

	// Give the refresher time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := batchRefresher.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
