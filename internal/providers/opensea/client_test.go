package opensea_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openplacard/nft-ingest/internal/adapter"
	"github.com/openplacard/nft-ingest/internal/domain"
	"github.com/openplacard/nft-ingest/internal/logger"
	"github.com/openplacard/nft-ingest/internal/mocks"
	"github.com/openplacard/nft-ingest/internal/providers/opensea"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	m.Run()
}

func TestOrderCurrentPrice(t *testing.T) {
	tests := []struct {
		name     string
		order    opensea.Order
		evalTime time.Time
		expected float64
	}{
		{
			name: "sell order halfway through decays to base minus half the extra",
			order: opensea.Order{
				BasePrice:      "100",
				Extra:          "20",
				ListingTime:    0,
				ExpirationTime: 200,
				Side:           1,
			},
			evalTime: time.Unix(100, 0),
			expected: 90,
		},
		{
			name: "buy order halfway through grows to base plus half the extra",
			order: opensea.Order{
				BasePrice:      "100",
				Extra:          "20",
				ListingTime:    0,
				ExpirationTime: 200,
				Side:           0,
			},
			evalTime: time.Unix(100, 0),
			expected: 110,
		},
		{
			name: "progress clamps at zero before listing",
			order: opensea.Order{
				BasePrice:      "100",
				Extra:          "20",
				ListingTime:    100,
				ExpirationTime: 200,
				Side:           1,
			},
			evalTime: time.Unix(50, 0),
			expected: 100,
		},
		{
			name: "progress clamps at one after expiration",
			order: opensea.Order{
				BasePrice:      "100",
				Extra:          "20",
				ListingTime:    0,
				ExpirationTime: 200,
				Side:           1,
			},
			evalTime: time.Unix(500, 0),
			expected: 80,
		},
		{
			name: "zero extra yields the base price",
			order: opensea.Order{
				BasePrice:      "100",
				Extra:          "0",
				ListingTime:    0,
				ExpirationTime: 200,
				Side:           1,
			},
			evalTime: time.Unix(100, 0),
			expected: 100,
		},
		{
			name: "taker fee applies on top of a sell price",
			order: opensea.Order{
				BasePrice:       "100",
				Extra:           "20",
				ListingTime:     0,
				ExpirationTime:  200,
				Side:            1,
				TakerRelayerFee: "250",
			},
			evalTime: time.Unix(100, 0),
			expected: 92.25, // 90 * 1.025
		},
		{
			name: "taker fee skipped while waiting for a counter order",
			order: opensea.Order{
				BasePrice:                 "100",
				Extra:                     "20",
				ListingTime:               0,
				ExpirationTime:            200,
				Side:                      1,
				TakerRelayerFee:           "250",
				WaitingForBestCounterBool: true,
			},
			evalTime: time.Unix(100, 0),
			expected: 90,
		},
		{
			name: "taker fee never applies to buy orders",
			order: opensea.Order{
				BasePrice:       "100",
				Extra:           "0",
				ListingTime:     0,
				ExpirationTime:  200,
				Side:            0,
				TakerRelayerFee: "250",
			},
			evalTime: time.Unix(100, 0),
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := tt.order.CurrentPrice(tt.evalTime)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, price, 1e-9)
		})
	}
}

func TestOrderCurrentPriceMalformed(t *testing.T) {
	order := opensea.Order{BasePrice: "not-a-number"}
	_, err := order.CurrentPrice(time.Unix(0, 0))
	assert.Error(t, err)

	order = opensea.Order{BasePrice: "100", Extra: "garbage"}
	_, err = order.CurrentPrice(time.Unix(0, 0))
	assert.Error(t, err)

	order = opensea.Order{
		BasePrice:       "100",
		Side:            1,
		TakerRelayerFee: "garbage",
	}
	_, err = order.CurrentPrice(time.Unix(0, 0))
	assert.Error(t, err)
}

func TestGetAsset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := opensea.NewClient(mockHTTP, "https://api.opensea.io", "test-key", adapter.NewJSON())

	payload := []byte(`{
		"token_id": "42",
		"name": "Genesis",
		"image_url": "https://img.example/42.png",
		"asset_contract": {"address": "0xabc"},
		"collection": {"name": "Art Blocks"},
		"creator": {"address": "0xcreator", "user": {"username": "alice"}},
		"orders": [{"base_price": "100", "extra": "20", "side": 1}]
	}`)

	mockHTTP.EXPECT().
		GetBytes(gomock.Any(), "https://api.opensea.io/api/v1/asset/0xabc/42",
			map[string]string{"X-API-KEY": "test-key"}).
		Return(payload, nil)

	asset, err := client.GetAsset(context.Background(), "0xabc", "42")
	require.NoError(t, err)
	assert.Equal(t, "42", asset.TokenID)
	assert.Equal(t, "Genesis", asset.Name)
	assert.Equal(t, "0xabc", asset.AssetContract.Address)
	assert.Equal(t, "Art Blocks", asset.Collection.Name)
	assert.Equal(t, "alice", asset.Creator.DisplayName())
	require.Len(t, asset.Orders, 1)
	assert.Equal(t, "100", asset.Orders[0].BasePrice)
}

func TestGetAssetNoAPIKeyOmitsHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := opensea.NewClient(mockHTTP, "https://api.opensea.io", "", adapter.NewJSON())

	mockHTTP.EXPECT().
		GetBytes(gomock.Any(), gomock.Any(), nil).
		Return([]byte(`{}`), nil)

	_, err := client.GetAsset(context.Background(), "0xabc", "42")
	require.NoError(t, err)
}

func TestGetAssetUpstreamError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := opensea.NewClient(mockHTTP, "https://api.opensea.io", "test-key", adapter.NewJSON())

	mockHTTP.EXPECT().
		GetBytes(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &adapter.StatusError{StatusCode: 404, Body: "not found"})

	_, err := client.GetAsset(context.Background(), "0xmissing", "1")
	require.Error(t, err)

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "opensea", upstreamErr.Provider)
	assert.Equal(t, 404, upstreamErr.StatusCode)
}

func TestGetAssetMalformedPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTP := mocks.NewMockHTTPClient(ctrl)
	client := opensea.NewClient(mockHTTP, "https://api.opensea.io", "test-key", adapter.NewJSON())

	mockHTTP.EXPECT().
		GetBytes(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte(`{"token_id": `), nil)

	_, err := client.GetAsset(context.Background(), "0xabc", "42")
	require.Error(t, err)

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
}

func TestAccountDisplayName(t *testing.T) {
	account := &opensea.Account{Address: "0xb932a70a57673d89f4acffbe830e8ed7f75fb9e0"}
	assert.Equal(t, "0xb93…b9e0", account.DisplayName())

	account.User = &struct {
		Username string `json:"username"`
	}{Username: "alice"}
	assert.Equal(t, "alice", account.DisplayName())
}
