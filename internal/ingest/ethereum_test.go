package ingest_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openplacard/nft-ingest/internal/domain"
	"github.com/openplacard/nft-ingest/internal/ingest"
	"github.com/openplacard/nft-ingest/internal/mocks"
	"github.com/openplacard/nft-ingest/internal/providers/opensea"
)

func TestEthereumFetchAndNormalize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockOpenSeaClient(ctrl)
	mockClock := mocks.NewMockClock(ctrl)
	ethereum := ingest.NewEthereumAdapter(mockClient, mockClock, 30)

	contract := "0xb932a70a57673d89f4acffbe830e8ed7f75fb9e0"
	normalized := domain.NormalizeAddress(contract)

	mockClient.EXPECT().
		GetAsset(gomock.Any(), normalized, "42").
		Return(&opensea.Asset{
			TokenID:       "42",
			Name:          "Genesis",
			Description:   "first of its kind",
			ImageURL:      "https://img.example/42.png",
			AnimationURL:  "ipfs://QmAnim",
			ExternalLink:  "https://example.com/42",
			TokenMetadata: "ipfs://QmMeta",
			Collection: struct {
				Name string `json:"name"`
			}{Name: "Art Blocks"},
			Creator: &opensea.Account{
				Address: "0x1111111111111111111111111111111111111111",
				User: &struct {
					Username string `json:"username"`
				}{Username: "alice"},
			},
		}, nil)

	token, err := ethereum.FetchAndNormalize(context.Background(), domain.TokenRef{
		NFTType:      domain.NFTTypeEthereum,
		TokenID:      "42",
		TokenAddress: contract,
	})
	require.NoError(t, err)

	assert.Equal(t, "42", token.TokenID)
	assert.Equal(t, normalized, token.TokenAddress)
	assert.Equal(t, domain.NFTTypeEthereum, token.NFTType)
	assert.Equal(t, "Genesis", token.Metadata.Name)
	assert.Equal(t, "first of its kind", token.Metadata.Description)
	assert.Equal(t, "Art Blocks", token.CollectionName)
	assert.Equal(t, "ipfs://QmMeta", token.MetadataURI)
	assert.Equal(t, "ipfs://QmAnim", token.AnimationURL)
	assert.Equal(t, "https://img.example/42.png", token.ImageURL)
	require.NotNil(t, token.Creator)
	assert.Equal(t, "alice", token.Creator.DisplayName)
	assert.Nil(t, token.CurrentPrice)
}

func TestEthereumAttachesInterpolatedPrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockOpenSeaClient(ctrl)
	mockClock := mocks.NewMockClock(ctrl)
	ethereum := ingest.NewEthereumAdapter(mockClient, mockClock, 30)

	// Backtracking 30s from t=130 evaluates the order at t=100, halfway
	// through its [0, 200] window
	mockClock.EXPECT().Now().Return(time.Unix(130, 0))
	mockClient.EXPECT().
		GetAsset(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&opensea.Asset{
			TokenID: "42",
			Orders: []opensea.Order{{
				BasePrice:      "100",
				Extra:          "20",
				ListingTime:    0,
				ExpirationTime: 200,
				Side:           1,
			}},
		}, nil)

	token, err := ethereum.FetchAndNormalize(context.Background(), domain.TokenRef{
		NFTType:      domain.NFTTypeEthereum,
		TokenID:      "42",
		TokenAddress: "0xb932a70a57673d89f4acffbe830e8ed7f75fb9e0",
	})
	require.NoError(t, err)
	require.NotNil(t, token.CurrentPrice)
	assert.InDelta(t, 90, *token.CurrentPrice, 1e-9)
}

func TestEthereumSkipsMalformedOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockOpenSeaClient(ctrl)
	mockClock := mocks.NewMockClock(ctrl)
	ethereum := ingest.NewEthereumAdapter(mockClient, mockClock, 30)

	mockClock.EXPECT().Now().Return(time.Unix(1000, 0))
	mockClient.EXPECT().
		GetAsset(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&opensea.Asset{
			TokenID: "42",
			Orders: []opensea.Order{
				{BasePrice: "garbage"},
				{BasePrice: "75", Side: 1},
			},
		}, nil)

	token, err := ethereum.FetchAndNormalize(context.Background(), domain.TokenRef{
		NFTType:      domain.NFTTypeEthereum,
		TokenID:      "42",
		TokenAddress: "0xb932a70a57673d89f4acffbe830e8ed7f75fb9e0",
	})
	require.NoError(t, err)
	require.NotNil(t, token.CurrentPrice)
	assert.InDelta(t, 75, *token.CurrentPrice, 1e-9)
}

func TestEthereumPropagatesUpstreamError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockOpenSeaClient(ctrl)
	ethereum := ingest.NewEthereumAdapter(mockClient, mocks.NewMockClock(ctrl), 30)

	mockClient.EXPECT().
		GetAsset(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.NewUpstreamError("opensea", 429, "rate limited", nil))

	_, err := ethereum.FetchAndNormalize(context.Background(), domain.TokenRef{
		NFTType:      domain.NFTTypeEthereum,
		TokenID:      "42",
		TokenAddress: "0xb932a70a57673d89f4acffbe830e8ed7f75fb9e0",
	})
	require.Error(t, err)

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, 429, upstreamErr.StatusCode)
}
