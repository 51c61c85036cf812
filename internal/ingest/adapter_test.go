package ingest_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openplacard/nft-ingest/internal/domain"
	"github.com/openplacard/nft-ingest/internal/ingest"
	"github.com/openplacard/nft-ingest/internal/logger"
	"github.com/openplacard/nft-ingest/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	m.Run()
}

func TestRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := ingest.NewRegistry()
	ethereum := mocks.NewMockAdapter(ctrl)
	registry.Register(domain.NFTTypeEthereum, ethereum)

	got, err := registry.Get(domain.NFTTypeEthereum)
	require.NoError(t, err)
	assert.Same(t, ethereum, got)
}

func TestRegistryUnknownType(t *testing.T) {
	registry := ingest.NewRegistry()

	_, err := registry.Get(domain.NFTType("solana"))
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "nftType", validationErr.Field)
}

func TestRegistryUnregisteredType(t *testing.T) {
	registry := ingest.NewRegistry()

	// Valid chain type, but nothing bound to it
	_, err := registry.Get(domain.NFTTypeTezos)
	require.Error(t, err)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestAdapterValidatesRef(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No client call should be made for an incomplete ref
	ethereum := ingest.NewEthereumAdapter(mocks.NewMockOpenSeaClient(ctrl), mocks.NewMockClock(ctrl), 0)

	_, err := ethereum.FetchAndNormalize(context.Background(), domain.TokenRef{
		NFTType: domain.NFTTypeEthereum, TokenAddress: "0xabc",
	})
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "tokenId", validationErr.Field)

	_, err = ethereum.FetchAndNormalize(context.Background(), domain.TokenRef{
		NFTType: domain.NFTTypeEthereum, TokenID: "1",
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "tokenAddress", validationErr.Field)
}
