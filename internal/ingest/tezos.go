package ingest

import (
	"context"

	"go.uber.org/zap"

	"github.com/openplacard/nft-ingest/internal/domain"
	"github.com/openplacard/nft-ingest/internal/logger"
	"github.com/openplacard/nft-ingest/internal/providers/tezos"
)

// TezosAdapter normalizes Tezos tokens through a tzkt-style indexer
type TezosAdapter struct {
	client tezos.Client
}

// NewTezosAdapter creates a Tezos adapter
func NewTezosAdapter(client tezos.Client) *TezosAdapter {
	return &TezosAdapter{client: client}
}

// FetchAndNormalize fetches the token and maps it to a canonical Token.
// Creator addresses are resolved to display profiles through the account
// metadata endpoint; a failed profile lookup degrades to the truncated
// address instead of failing the token.
func (a *TezosAdapter) FetchAndNormalize(ctx context.Context, ref domain.TokenRef) (*domain.Token, error) {
	if err := validateRef(ref); err != nil {
		return nil, err
	}

	tzToken, err := a.client.GetToken(ctx, ref.TokenAddress, ref.TokenID)
	if err != nil {
		return nil, err
	}

	token := &domain.Token{
		TokenID:      tzToken.TokenID,
		TokenAddress: ref.TokenAddress,
		NFTType:      ref.NFTType,
		Metadata: domain.TokenMetadata{
			Name:        tzToken.Metadata.Name,
			Description: tzToken.Metadata.Description,
		},
		CollectionName: tzToken.Contract.Alias,
		AnimationURL:   tzToken.Metadata.ArtifactURI,
		Image:          tzToken.Metadata.DisplayURI,
		ImageURL:       tzToken.Metadata.ThumbnailURI,
		TezosToken:     tzToken.Raw,
	}
	if token.TokenID == "" {
		token.TokenID = ref.TokenID
	}

	// Prefer an explicitly typed rendition when the metadata advertises one
	for _, format := range tzToken.Metadata.Formats {
		if format.URI == tzToken.Metadata.ArtifactURI && format.MimeType != "" {
			token.Metadata.FileURL = format.URI
			token.Metadata.FileType = format.MimeType
			break
		}
	}

	if len(tzToken.Metadata.Creators) > 0 {
		token.Creator = a.resolveProfile(ctx, tzToken.Metadata.Creators[0])
	}

	return token, nil
}

func (a *TezosAdapter) resolveProfile(ctx context.Context, address string) *domain.Profile {
	account, err := a.client.GetAccount(ctx, address)
	if err != nil {
		logger.Warn("failed to resolve creator profile, using address fallback",
			zap.String("address", address), zap.Error(err))
		return &domain.Profile{
			Address:     address,
			DisplayName: domain.TruncateAddress(address),
		}
	}

	return &domain.Profile{
		Address:     address,
		DisplayName: account.DisplayName(),
		AvatarURL:   account.Logo,
	}
}
