package opensea

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/openplacard/nft-ingest/internal/adapter"
	"github.com/openplacard/nft-ingest/internal/domain"
)

const PROVIDER_NAME = "opensea"

// DEFAULT_SECONDS_TO_BACKTRACK shifts order price evaluation into the past
// to avoid races with in-flight transactions
const DEFAULT_SECONDS_TO_BACKTRACK = 30

// Account represents an account object in the OpenSea asset payload
type Account struct {
	Address       string `json:"address"`
	ProfileImgURL string `json:"profile_img_url"`
	User          *struct {
		Username string `json:"username"`
	} `json:"user"`
}

// DisplayName returns the account's username or an address-derived fallback
func (a *Account) DisplayName() string {
	if a.User != nil && a.User.Username != "" {
		return a.User.Username
	}
	return domain.TruncateAddress(a.Address)
}

// Order represents one order attached to an asset, snake_case per the API
type Order struct {
	BasePrice                 string `json:"base_price"`
	Extra                     string `json:"extra"`
	ListingTime               int64  `json:"listing_time"`
	ExpirationTime            int64  `json:"expiration_time"`
	Side                      int    `json:"side"` // 0 = buy, 1 = sell
	TakerRelayerFee           string `json:"taker_relayer_fee"`
	WaitingForBestCounterBool bool   `json:"waiting_for_best_counter_order"`
}

const (
	orderSideBuy  = 0
	orderSideSell = 1
)

// Asset represents the OpenSea asset-lookup response
type Asset struct {
	TokenID      string `json:"token_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	AnimationURL string `json:"animation_url"`
	ExternalLink string `json:"external_link"`
	// TokenMetadata is the indirect metadata pointer, when the contract has one
	TokenMetadata string `json:"token_metadata"`
	AssetContract struct {
		Address string `json:"address"`
	} `json:"asset_contract"`
	Collection struct {
		Name string `json:"name"`
	} `json:"collection"`
	Creator *Account `json:"creator"`
	Owner   *Account `json:"owner"`
	Orders  []Order  `json:"orders"`
}

// Client defines the interface for OpenSea client operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/opensea_client.go -package=mocks -mock_names=Client=MockOpenSeaClient
type Client interface {
	// GetAsset fetches an asset from the OpenSea asset-lookup endpoint
	GetAsset(ctx context.Context, contractAddress, tokenID string) (*Asset, error)
}

// OpenSeaClient implements the OpenSea client
type OpenSeaClient struct {
	httpClient adapter.HTTPClient
	apiURL     string
	apiKey     string
	json       adapter.JSON
}

// NewClient creates a new OpenSea client
func NewClient(httpClient adapter.HTTPClient, apiURL string, apiKey string, json adapter.JSON) Client {
	return &OpenSeaClient{
		httpClient: httpClient,
		apiURL:     apiURL,
		apiKey:     apiKey,
		json:       json,
	}
}

// GetAsset fetches an asset from the OpenSea asset-lookup endpoint
func (c *OpenSeaClient) GetAsset(ctx context.Context, contractAddress, tokenID string) (*Asset, error) {
	url := fmt.Sprintf("%s/api/v1/asset/%s/%s", c.apiURL, contractAddress, tokenID)

	var headers map[string]string
	if c.apiKey != "" {
		headers = map[string]string{"X-API-KEY": c.apiKey}
	}

	respBody, err := c.httpClient.GetBytes(ctx, url, headers)
	if err != nil {
		var statusErr *adapter.StatusError
		if errors.As(err, &statusErr) {
			return nil, domain.NewUpstreamError(PROVIDER_NAME, statusErr.StatusCode, "asset lookup failed", err)
		}
		return nil, domain.NewUpstreamError(PROVIDER_NAME, 0, "asset lookup failed", err)
	}

	var asset Asset
	if err := c.json.Unmarshal(respBody, &asset); err != nil {
		return nil, domain.NewUpstreamError(PROVIDER_NAME, 0, "malformed asset payload", err)
	}

	return &asset, nil
}

// CurrentPrice derives the order's effective price at evalTime by linear
// interpolation between base_price and base_price ± extra across
// [listing_time, expiration_time]. Sell-side prices decay toward
// base − extra, buy-side prices grow toward base + extra. For sell-side
// orders not waiting for a best counter-order, the taker fee is added on top.
func (o *Order) CurrentPrice(evalTime time.Time) (float64, error) {
	base, err := strconv.ParseFloat(o.BasePrice, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid base_price %q: %w", o.BasePrice, err)
	}

	extra := 0.0
	if o.Extra != "" {
		extra, err = strconv.ParseFloat(o.Extra, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid extra %q: %w", o.Extra, err)
		}
	}

	price := base
	if extra != 0 && o.ExpirationTime > o.ListingTime {
		progress := float64(evalTime.Unix()-o.ListingTime) / float64(o.ExpirationTime-o.ListingTime)
		progress = min(max(progress, 0), 1)

		if o.Side == orderSideSell {
			price = base - extra*progress
		} else {
			price = base + extra*progress
		}
	}

	if o.Side == orderSideSell && !o.WaitingForBestCounterBool && o.TakerRelayerFee != "" {
		feeBasisPoints, err := strconv.ParseFloat(o.TakerRelayerFee, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid taker_relayer_fee %q: %w", o.TakerRelayerFee, err)
		}
		price *= 1 + feeBasisPoints/10000
	}

	return price, nil
}
