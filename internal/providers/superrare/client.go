package superrare

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/openplacard/nft-ingest/internal/adapter"
	"github.com/openplacard/nft-ingest/internal/domain"
)

const PROVIDER_NAME = "superrare"

// ContractVersion selects which SuperRare contract generation a token
// belongs to
type ContractVersion string

const (
	ContractVersionV1     ContractVersion = "v1"
	ContractVersionV2     ContractVersion = "v2"
	ContractVersionCustom ContractVersion = "custom"
)

// Fixed contract addresses for the v1 and v2 SuperRare generations
const (
	V1ContractAddress = "0x41a322b28d0ff354040e2cbc676f0320d8c8850d"
	V2ContractAddress = "0xb932a70a57673d89f4acffbe830e8ed7f75fb9e0"
)

// ResolveContract maps a contract version to its address. Custom tokens
// must carry an explicit address.
func ResolveContract(version ContractVersion, contractAddress string) (string, error) {
	switch version {
	case ContractVersionV1:
		return V1ContractAddress, nil
	case ContractVersionV2:
		return V2ContractAddress, nil
	case ContractVersionCustom:
		if contractAddress == "" {
			return "", domain.NewValidationError("contractAddress", "custom contract version requires an explicit address")
		}
		return contractAddress, nil
	default:
		return "", domain.NewValidationError("contractVersion", fmt.Sprintf("unknown contract version %q", version))
	}
}

// rawEvent is one auction event as the API serializes it
type rawEvent struct {
	Type      string  `json:"type"`
	Timestamp int64   `json:"timestamp"`
	Amount    float64 `json:"amount"`
	Bidder    string  `json:"bidder"`
	From      string  `json:"from"`
	To        string  `json:"to"`
}

// eventList absorbs the API's two encodings of the event history: a plain
// JSON array, or a sparse object keyed by numeric strings. Either way it
// decodes to one sequence ordered by index. Nothing downstream sees the
// original shape.
type eventList []rawEvent

func (l *eventList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*l = nil
		return nil
	}

	if trimmed[0] == '[' {
		var events []rawEvent
		if err := json.Unmarshal(data, &events); err != nil {
			return err
		}
		*l = events
		return nil
	}

	var byIndex map[string]rawEvent
	if err := json.Unmarshal(data, &byIndex); err != nil {
		return err
	}

	keys := make([]int, 0, len(byIndex))
	lookup := make(map[int]rawEvent, len(byIndex))
	for k, ev := range byIndex {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("non-numeric event key %q", k)
		}
		keys = append(keys, idx)
		lookup[idx] = ev
	}
	sort.Ints(keys)

	events := make([]rawEvent, 0, len(keys))
	for _, idx := range keys {
		events = append(events, lookup[idx])
	}
	*l = events
	return nil
}

// bidHistoryRequest is the POST body of the bid-history endpoint
type bidHistoryRequest struct {
	TokenID           string   `json:"tokenId"`
	ContractAddress   string   `json:"contractAddress"`
	ContractAddresses []string `json:"contractAddresses"`
	Fingerprint       string   `json:"fingerprint"`
}

// bidHistoryResponse is the bid-history endpoint payload
type bidHistoryResponse struct {
	Events        eventList `json:"events"`
	CurrentPrice  float64   `json:"currentPrice"`
	EditionNumber int       `json:"editionNumber"`
	EditionTotal  int       `json:"editionTotal"`
}

// Client defines the interface for SuperRare client operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/superrare_client.go -package=mocks -mock_names=Client=MockSuperRareClient
type Client interface {
	// FetchBidHistory fetches the ordered auction history of a token
	FetchBidHistory(ctx context.Context, tokenID string, version ContractVersion, contractAddress string) (*domain.AuctionHistory, error)
}

// SuperRareClient implements the SuperRare client
type SuperRareClient struct {
	httpClient adapter.HTTPClient
	apiURL     string
	json       adapter.JSON
	// fingerprint identifies this client instance to the bid-history
	// endpoint, which uses it to segment anonymous callers
	fingerprint string
}

// NewClient creates a new SuperRare client
func NewClient(httpClient adapter.HTTPClient, apiURL string, json adapter.JSON) Client {
	return &SuperRareClient{
		httpClient:  httpClient,
		apiURL:      apiURL,
		json:        json,
		fingerprint: uuid.NewString(),
	}
}

// FetchBidHistory fetches the ordered auction history of a token. v1 and v2
// tokens resolve to the fixed contract constants; custom tokens must carry
// an explicit contract address.
func (c *SuperRareClient) FetchBidHistory(ctx context.Context, tokenID string, version ContractVersion, contractAddress string) (*domain.AuctionHistory, error) {
	contract, err := ResolveContract(version, contractAddress)
	if err != nil {
		return nil, err
	}

	reqBody, err := c.json.Marshal(bidHistoryRequest{
		TokenID:           tokenID,
		ContractAddress:   contract,
		ContractAddresses: []string{contract},
		Fingerprint:       c.fingerprint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode bid-history request: %w", err)
	}

	url := fmt.Sprintf("%s/nft/bids", c.apiURL)
	respBody, err := c.httpClient.Post(ctx, url, "application/json", bytes.NewReader(reqBody))
	if err != nil {
		var statusErr *adapter.StatusError
		if errors.As(err, &statusErr) {
			return nil, domain.NewUpstreamError(PROVIDER_NAME, statusErr.StatusCode, "bid-history lookup failed", err)
		}
		return nil, domain.NewUpstreamError(PROVIDER_NAME, 0, "bid-history lookup failed", err)
	}

	var payload bidHistoryResponse
	if err := c.json.Unmarshal(respBody, &payload); err != nil {
		return nil, domain.NewUpstreamError(PROVIDER_NAME, 0, "malformed bid-history payload", err)
	}

	history := &domain.AuctionHistory{
		Events:        make([]domain.AuctionEvent, 0, len(payload.Events)),
		CurrentPrice:  payload.CurrentPrice,
		EditionNumber: payload.EditionNumber,
		EditionTotal:  payload.EditionTotal,
	}
	for _, ev := range payload.Events {
		history.Events = append(history.Events, domain.AuctionEvent{
			Type:      domain.AuctionEventType(ev.Type),
			Timestamp: time.Unix(ev.Timestamp, 0).UTC(),
			Amount:    ev.Amount,
			Bidder:    ev.Bidder,
			From:      ev.From,
			To:        ev.To,
		})
	}

	return history, nil
}
