package orchestrator

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/openplacard/nft-ingest/internal/adapter"
	"github.com/openplacard/nft-ingest/internal/domain"
	"github.com/openplacard/nft-ingest/internal/ingest"
	"github.com/openplacard/nft-ingest/internal/logger"
	"github.com/openplacard/nft-ingest/internal/media/uploader"
	"github.com/openplacard/nft-ingest/internal/store"
)

// MediaResolver resolves a token's canonical media URL and content type
type MediaResolver interface {
	ResolveMediaForToken(ctx context.Context, token *domain.Token) (*domain.MediaAsset, error)
}

// MediaUploader persists token media into the storage bucket
type MediaUploader interface {
	UploadTokenMedia(ctx context.Context, fileURL, fileType, tokenID, tokenAddress string) (*uploader.StoredMedia, error)
}

// AuctionHistoryFetcher recomputes a token's auction history
type AuctionHistoryFetcher interface {
	FetchAuctionHistory(ctx context.Context, ref domain.TokenRef) (*domain.AuctionHistory, error)
}

// Orchestrator drives one token through its update state machine:
// awaitingInput -> updating -> {success, failed}. The metadata write is
// transactional; the media write afterwards is best-effort and can never
// fail an already-committed token.
type Orchestrator struct {
	registry *ingest.Registry
	store    store.Store
	resolver MediaResolver
	uploader MediaUploader
	history  AuctionHistoryFetcher
	json     adapter.JSON
}

// NewOrchestrator creates a token update orchestrator. history may be nil
// when no auction-history source is configured.
func NewOrchestrator(
	registry *ingest.Registry,
	s store.Store,
	resolver MediaResolver,
	mediaUploader MediaUploader,
	history AuctionHistoryFetcher,
	json adapter.JSON,
) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		store:    s,
		resolver: resolver,
		uploader: mediaUploader,
		history:  history,
		json:     json,
	}
}

// UpdateToken refreshes one token record. Failures are recorded on the
// record itself and never propagated, so one token can never abort its
// siblings in a batch.
func (o *Orchestrator) UpdateToken(ctx context.Context, recordID string, ref domain.TokenRef) {
	chainAdapter, err := o.registry.Get(ref.NFTType)
	if err != nil {
		o.markFailed(ctx, recordID, err)
		return
	}
	if ref.TokenID == "" {
		o.markFailed(ctx, recordID, domain.NewValidationError("tokenId", "token id is required"))
		return
	}

	token, err := chainAdapter.FetchAndNormalize(ctx, ref)
	if err != nil {
		o.markFailed(ctx, recordID, err)
		return
	}

	var history *domain.AuctionHistory
	if ref.NFTType == domain.NFTTypeSuperRare && o.history != nil {
		history, err = o.history.FetchAuctionHistory(ctx, ref)
		if err != nil {
			o.markFailed(ctx, recordID, err)
			return
		}
	}

	if err := o.commitMetadata(ctx, recordID, token, history); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to commit token metadata: %w", err),
			zap.String("recordID", recordID))
		return
	}

	// Media enrichment happens after the metadata commit and is best-effort:
	// its failure leaves the token successful, with fetchingMedia cleared
	// and the reason recorded.
	o.enrichMedia(ctx, recordID, token)
}

// commitMetadata performs the single transactional read-modify-write of the
// token record
func (o *Orchestrator) commitMetadata(ctx context.Context, recordID string, token *domain.Token, history *domain.AuctionHistory) error {
	return o.store.WithTransaction(ctx, func(tx store.Store) error {
		record, err := tx.GetTokenRecord(ctx, recordID)
		if err != nil {
			return err
		}

		token.Metadata.Name = token.DisplayName()

		tokenJSON, err := o.json.Marshal(token)
		if err != nil {
			return err
		}

		record.Token = datatypes.JSON(tokenJSON)
		record.TokenAddress = token.TokenAddress
		record.UpdateStatus = domain.UpdateStatusSuccess
		record.FailReason = ""
		record.FetchingMedia = true
		record.MediaFailReason = ""

		if token.TezosToken != nil {
			record.TezosToken = datatypes.JSON(token.TezosToken)
		}

		if history != nil {
			historyJSON, err := o.json.Marshal(history)
			if err != nil {
				return err
			}
			record.AuctionHistory = datatypes.JSON(historyJSON)
		}

		return tx.SaveTokenRecord(ctx, record)
	})
}

// enrichMedia resolves and persists the token's media, then writes the
// small media-fields update
func (o *Orchestrator) enrichMedia(ctx context.Context, recordID string, token *domain.Token) {
	asset, err := o.resolver.ResolveMediaForToken(ctx, token)
	if err != nil {
		o.markMediaFailed(ctx, recordID, err)
		return
	}

	stored, err := o.uploader.UploadTokenMedia(ctx, asset.SourceURL, asset.ContentType, token.TokenID, token.TokenAddress)
	if err != nil {
		o.markMediaFailed(ctx, recordID, err)
		return
	}

	err = o.store.UpdateTokenRecordFields(ctx, recordID, map[string]interface{}{
		"media_file":      stored.URL,
		"media_file_type": stored.FileType,
		"fetching_media":  false,
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to write media fields: %w", err),
			zap.String("recordID", recordID))
	}
}

// markFailed records a pre-commit failure on the token record
func (o *Orchestrator) markFailed(ctx context.Context, recordID string, cause error) {
	logger.WarnCtx(ctx, "token update failed",
		zap.String("recordID", recordID), zap.Error(cause))

	err := o.store.UpdateTokenRecordFields(ctx, recordID, map[string]interface{}{
		"update_status": domain.UpdateStatusFailed,
		"fail_reason":   cause.Error(),
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to record token failure: %w", err),
			zap.String("recordID", recordID))
	}
}

// markMediaFailed records a terminal media failure. The token itself stays
// successful; only the media fields reflect the failure.
func (o *Orchestrator) markMediaFailed(ctx context.Context, recordID string, cause error) {
	logger.WarnCtx(ctx, "media enrichment failed",
		zap.String("recordID", recordID), zap.Error(cause))

	err := o.store.UpdateTokenRecordFields(ctx, recordID, map[string]interface{}{
		"fetching_media":    false,
		"media_fail_reason": cause.Error(),
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to record media failure: %w", err),
			zap.String("recordID", recordID))
	}
}
