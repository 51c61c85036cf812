package ingest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/openplacard/nft-ingest/internal/adapter"
	"github.com/openplacard/nft-ingest/internal/domain"
	"github.com/openplacard/nft-ingest/internal/logger"
	"github.com/openplacard/nft-ingest/internal/providers/opensea"
)

// EthereumAdapter normalizes Ethereum tokens through an OpenSea-style asset
// endpoint
type EthereumAdapter struct {
	client opensea.Client
	clock  adapter.Clock
	// secondsToBacktrack shifts order-price evaluation into the past to
	// avoid racing in-flight transactions
	secondsToBacktrack int
}

// NewEthereumAdapter creates an Ethereum adapter
func NewEthereumAdapter(client opensea.Client, clock adapter.Clock, secondsToBacktrack int) *EthereumAdapter {
	if secondsToBacktrack <= 0 {
		secondsToBacktrack = opensea.DEFAULT_SECONDS_TO_BACKTRACK
	}
	return &EthereumAdapter{
		client:             client,
		clock:              clock,
		secondsToBacktrack: secondsToBacktrack,
	}
}

// FetchAndNormalize fetches the asset and maps it to a canonical Token
func (a *EthereumAdapter) FetchAndNormalize(ctx context.Context, ref domain.TokenRef) (*domain.Token, error) {
	if err := validateRef(ref); err != nil {
		return nil, err
	}

	asset, err := a.client.GetAsset(ctx, domain.NormalizeAddress(ref.TokenAddress), ref.TokenID)
	if err != nil {
		return nil, err
	}

	return a.normalize(asset, ref)
}

func (a *EthereumAdapter) normalize(asset *opensea.Asset, ref domain.TokenRef) (*domain.Token, error) {
	token := &domain.Token{
		TokenID:      asset.TokenID,
		TokenAddress: domain.NormalizeAddress(ref.TokenAddress),
		NFTType:      ref.NFTType,
		Metadata: domain.TokenMetadata{
			Name:        asset.Name,
			Description: asset.Description,
		},
		CollectionName: asset.Collection.Name,
		ExternalLink:   asset.ExternalLink,
		MetadataURI:    asset.TokenMetadata,
		AnimationURL:   asset.AnimationURL,
		ImageURL:       asset.ImageURL,
	}
	if token.TokenID == "" {
		token.TokenID = ref.TokenID
	}

	if asset.Creator != nil {
		token.Creator = &domain.Profile{
			Address:     domain.NormalizeAddress(asset.Creator.Address),
			DisplayName: asset.Creator.DisplayName(),
			AvatarURL:   asset.Creator.ProfileImgURL,
		}
	}
	if asset.Owner != nil {
		token.Owner = &domain.Profile{
			Address:     domain.NormalizeAddress(asset.Owner.Address),
			DisplayName: asset.Owner.DisplayName(),
			AvatarURL:   asset.Owner.ProfileImgURL,
		}
	}

	a.attachCurrentPrice(token, asset)

	return token, nil
}

// attachCurrentPrice derives the current listing price from the first order
// whose numbers parse. Orders with malformed amounts are skipped rather than
// failing the whole token.
func (a *EthereumAdapter) attachCurrentPrice(token *domain.Token, asset *opensea.Asset) {
	if len(asset.Orders) == 0 {
		return
	}

	evalTime := a.clock.Now().Add(-time.Duration(a.secondsToBacktrack) * time.Second)
	for i := range asset.Orders {
		price, err := asset.Orders[i].CurrentPrice(evalTime)
		if err != nil {
			logger.Warn("skipping order with malformed price",
				zap.String("tokenID", token.TokenID), zap.Error(err))
			continue
		}
		token.CurrentPrice = &price
		return
	}
}
