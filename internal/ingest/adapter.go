package ingest

import (
	"context"
	"fmt"

	"github.com/openplacard/nft-ingest/internal/domain"
)

// Adapter is the common capability every chain adapter implements: translate
// one upstream token into the canonical Token, or fail with a defined error
// kind. Adapters never return a partially-populated Token.
//
//go:generate mockgen -source=adapter.go -destination=../mocks/adapter.go -package=mocks -mock_names=Adapter=MockAdapter
type Adapter interface {
	FetchAndNormalize(ctx context.Context, ref domain.TokenRef) (*domain.Token, error)
}

// Registry maps a chain type to its adapter
type Registry struct {
	adapters map[domain.NFTType]Adapter
}

// NewRegistry creates an empty adapter registry
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[domain.NFTType]Adapter)}
}

// Register binds an adapter to a chain type, replacing any previous binding
func (r *Registry) Register(nftType domain.NFTType, adapter Adapter) {
	r.adapters[nftType] = adapter
}

// Get returns the adapter for a chain type. An unknown or unregistered type
// is a validation failure, not an upstream one.
func (r *Registry) Get(nftType domain.NFTType) (Adapter, error) {
	if !domain.IsValidNFTType(nftType) {
		return nil, domain.NewValidationError("nftType", fmt.Sprintf("unknown chain type %q", nftType))
	}

	adapter, ok := r.adapters[nftType]
	if !ok {
		return nil, domain.NewValidationError("nftType", fmt.Sprintf("no adapter registered for %q", nftType))
	}
	return adapter, nil
}

// validateRef checks the fields every chain needs before any network call
func validateRef(ref domain.TokenRef) error {
	if ref.TokenID == "" {
		return domain.NewValidationError("tokenId", "token id is required")
	}
	if ref.TokenAddress == "" {
		return domain.NewValidationError("tokenAddress", "token address is required")
	}
	return nil
}
