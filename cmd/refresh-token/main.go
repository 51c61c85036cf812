package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openplacard/nft-ingest/internal/adapter"
	"github.com/openplacard/nft-ingest/internal/config"
	"github.com/openplacard/nft-ingest/internal/domain"
	"github.com/openplacard/nft-ingest/internal/ingest"
	"github.com/openplacard/nft-ingest/internal/logger"
	"github.com/openplacard/nft-ingest/internal/media/resolver"
	"github.com/openplacard/nft-ingest/internal/media/uploader"
	"github.com/openplacard/nft-ingest/internal/orchestrator"
	"github.com/openplacard/nft-ingest/internal/providers/opensea"
	"github.com/openplacard/nft-ingest/internal/providers/superrare"
	"github.com/openplacard/nft-ingest/internal/providers/tezos"
	"github.com/openplacard/nft-ingest/internal/storage"
	"github.com/openplacard/nft-ingest/internal/store"
	"github.com/openplacard/nft-ingest/internal/store/schema"
)

var (
	configFile   = flag.String("config", "", "Path to configuration file")
	envPath      = flag.String("env", "config/", "Path to environment files")
	recordID     = flag.String("record", "", "Existing token record ID to refresh")
	nftType      = flag.String("type", "", "Chain type: ethereum, superrare, tezos")
	tokenID      = flag.String("token", "", "Token ID")
	tokenAddress = flag.String("contract", "", "Contract address")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadRefreshTokenConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "refresh-token",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	if *tokenID == "" || *nftType == "" {
		logger.FatalCtx(ctx, "both -type and -token are required")
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := store.AutoMigrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	httpClient := adapter.NewHTTPClient(30 * time.Second)
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()
	fs := adapter.NewFileSystem()
	runner := adapter.NewCommandRunner()

	openseaClient := opensea.NewClient(httpClient, cfg.Vendors.OpenSeaURL, cfg.Vendors.OpenSeaAPIKey, jsonAdapter)
	superrareClient := superrare.NewClient(httpClient, cfg.Vendors.SuperRareURL, jsonAdapter)
	tezosClient := tezos.NewClient(httpClient, cfg.Vendors.TezosAPIURL, jsonAdapter)

	ethereumAdapter := ingest.NewEthereumAdapter(openseaClient, clock, cfg.Pricing.SecondsToBacktrack)
	superrareAdapter := ingest.NewSuperRareAdapter(ethereumAdapter, superrareClient)
	tezosAdapter := ingest.NewTezosAdapter(tezosClient)

	registry := ingest.NewRegistry()
	registry.Register(domain.NFTTypeEthereum, ethereumAdapter)
	registry.Register(domain.NFTTypeSuperRare, superrareAdapter)
	registry.Register(domain.NFTTypeTezos, tezosAdapter)

	// Initialize media pipeline
	mediaResolver := resolver.NewResolver(httpClient, jsonAdapter, resolver.Config{
		IPFSGateway:  cfg.URI.IPFSGateway,
		FetchTimeout: cfg.Media.FetchTimeout,
		SniffTimeout: cfg.Media.SniffTimeout,
	})
	objectStorage := storage.NewSupabaseStorage(cfg.Storage.URL, cfg.Storage.ServiceKey, cfg.Storage.Bucket)
	transcoder := uploader.NewFFmpegTranscoder(runner, cfg.Media.FFmpegPath, cfg.Media.FFprobePath)
	mediaUploader := uploader.NewUploader(httpClient, objectStorage, fs, transcoder, cfg.Media.MaxWidth, cfg.Media.MaxHeight)

	tokenOrchestrator := orchestrator.NewOrchestrator(registry, dataStore, mediaResolver, mediaUploader, superrareAdapter, jsonAdapter)

	ref := domain.TokenRef{
		NFTType:      domain.NFTType(*nftType),
		TokenID:      *tokenID,
		TokenAddress: *tokenAddress,
	}

	id := *recordID
	if id == "" {
		id = uuid.NewString()
		record := &schema.TokenRecord{
			ID:           id,
			NFTType:      ref.NFTType,
			TokenID:      ref.TokenID,
			TokenAddress: ref.TokenAddress,
			UpdateStatus: domain.UpdateStatusAwaitingInput,
		}
		if err := dataStore.SaveTokenRecord(ctx, record); err != nil {
			logger.FatalCtx(ctx, "Failed to create token record", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Created token record", zap.String("recordID", id))
	}

	// Mark the record as updating before handing it to the orchestrator
	err = dataStore.UpdateTokenRecordFields(ctx, id, map[string]interface{}{
		"update_status": domain.UpdateStatusUpdating,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to mark record updating", zap.Error(err))
	}

	tokenOrchestrator.UpdateToken(ctx, id, ref)

	record, err := dataStore.GetTokenRecord(ctx, id)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to read back token record", zap.Error(err))
	}

	logger.InfoCtx(ctx, "Refresh finished",
		zap.String("recordID", record.ID),
		zap.String("status", string(record.UpdateStatus)),
		zap.String("failReason", record.FailReason),
		zap.String("mediaFile", record.MediaFile),
		zap.String("mediaFileType", record.MediaFileType),
	)
}
