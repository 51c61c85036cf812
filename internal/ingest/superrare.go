package ingest

import (
	"context"
	"strings"

	"github.com/openplacard/nft-ingest/internal/domain"
	"github.com/openplacard/nft-ingest/internal/providers/superrare"
)

// SuperRareAdapter normalizes SuperRare tokens. SuperRare tokens live on
// Ethereum, so display metadata comes from the same asset endpoint as plain
// Ethereum tokens; the SuperRare API contributes the auction history.
type SuperRareAdapter struct {
	ethereum  *EthereumAdapter
	superrare superrare.Client
}

// NewSuperRareAdapter creates a SuperRare adapter
func NewSuperRareAdapter(ethereum *EthereumAdapter, client superrare.Client) *SuperRareAdapter {
	return &SuperRareAdapter{
		ethereum:  ethereum,
		superrare: client,
	}
}

// ContractVersionFor maps a token address onto a SuperRare contract
// generation. An empty address means the current (v2) contract; anything
// other than the two known constants is a custom contract.
func ContractVersionFor(tokenAddress string) (superrare.ContractVersion, string) {
	switch strings.ToLower(tokenAddress) {
	case "":
		return superrare.ContractVersionV2, ""
	case superrare.V1ContractAddress:
		return superrare.ContractVersionV1, ""
	case superrare.V2ContractAddress:
		return superrare.ContractVersionV2, ""
	default:
		return superrare.ContractVersionCustom, tokenAddress
	}
}

// FetchAndNormalize fetches the asset and auction history and maps them to a
// canonical Token
func (a *SuperRareAdapter) FetchAndNormalize(ctx context.Context, ref domain.TokenRef) (*domain.Token, error) {
	if ref.TokenID == "" {
		return nil, domain.NewValidationError("tokenId", "token id is required")
	}

	version, customAddress := ContractVersionFor(ref.TokenAddress)
	contract, err := superrare.ResolveContract(version, customAddress)
	if err != nil {
		return nil, err
	}

	asset, err := a.ethereum.client.GetAsset(ctx, domain.NormalizeAddress(contract), ref.TokenID)
	if err != nil {
		return nil, err
	}

	token, err := a.ethereum.normalize(asset, domain.TokenRef{
		NFTType:      ref.NFTType,
		TokenID:      ref.TokenID,
		TokenAddress: contract,
	})
	if err != nil {
		return nil, err
	}

	history, err := a.superrare.FetchBidHistory(ctx, ref.TokenID, version, customAddress)
	if err != nil {
		return nil, err
	}
	if history.CurrentPrice > 0 {
		price := history.CurrentPrice
		token.CurrentPrice = &price
	}

	return token, nil
}

// FetchAuctionHistory recomputes the auction history of a token. Used by the
// batch refresher, which diffs it against the stored copy.
func (a *SuperRareAdapter) FetchAuctionHistory(ctx context.Context, ref domain.TokenRef) (*domain.AuctionHistory, error) {
	if ref.TokenID == "" {
		return nil, domain.NewValidationError("tokenId", "token id is required")
	}

	version, customAddress := ContractVersionFor(ref.TokenAddress)
	return a.superrare.FetchBidHistory(ctx, ref.TokenID, version, customAddress)
}
