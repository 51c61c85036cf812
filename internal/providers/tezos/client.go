package tezos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/openplacard/nft-ingest/internal/adapter"
	"github.com/openplacard/nft-ingest/internal/domain"
)

const PROVIDER_NAME = "tezos"

// contractRef absorbs the two schema generations of the indexer: the legacy
// schema serializes `contract` as a bare address string, the v2 schema as an
// object with address and alias. Callers only see Address/Alias.
type contractRef struct {
	Address string `json:"address"`
	Alias   string `json:"alias"`
	// legacy is true when the payload carried a bare string contract
	legacy bool
}

func (c *contractRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		c.legacy = true
		return json.Unmarshal(data, &c.Address)
	}

	var obj struct {
		Address string `json:"address"`
		Alias   string `json:"alias"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	c.Address = obj.Address
	c.Alias = obj.Alias
	return nil
}

// Token is one token entry from the tokens-by-contract-and-id endpoint
type Token struct {
	TokenID  string      `json:"tokenId"`
	Contract contractRef `json:"contract"`
	Metadata struct {
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		ArtifactURI  string   `json:"artifactUri"`
		DisplayURI   string   `json:"displayUri"`
		ThumbnailURI string   `json:"thumbnailUri"`
		Formats      []Format `json:"formats"`
		Creators     []string `json:"creators"`
	} `json:"metadata"`

	// Raw is the unparsed upstream payload, kept for archival alongside the
	// normalized token
	Raw json.RawMessage `json:"-"`
}

// Legacy reports whether the payload used the legacy snake_case schema,
// detected structurally by the shape of the contract field
func (t *Token) Legacy() bool {
	return t.Contract.legacy
}

// Format is one media rendition advertised in the token metadata
type Format struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
}

// Account is the account-metadata payload used for creator profiles
type Account struct {
	Address string `json:"address"`
	Alias   string `json:"alias"`
	Logo    string `json:"logo"`
}

// DisplayName returns the account alias or an address-derived fallback
func (a *Account) DisplayName() string {
	if a.Alias != "" {
		return a.Alias
	}
	return domain.TruncateAddress(a.Address)
}

// Client defines the interface for Tezos indexer operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/tezos_client.go -package=mocks -mock_names=Client=MockTezosClient
type Client interface {
	// GetToken fetches a single token by contract address and token ID
	GetToken(ctx context.Context, contractAddress, tokenID string) (*Token, error)

	// GetAccount fetches account metadata for a creator or owner address
	GetAccount(ctx context.Context, address string) (*Account, error)
}

// TzktClient implements Client against a tzkt-style indexer API
type TzktClient struct {
	httpClient adapter.HTTPClient
	apiURL     string
	json       adapter.JSON
}

// NewClient creates a new Tezos indexer client
func NewClient(httpClient adapter.HTTPClient, apiURL string, json adapter.JSON) Client {
	return &TzktClient{
		httpClient: httpClient,
		apiURL:     apiURL,
		json:       json,
	}
}

// GetToken fetches a single token by contract address and token ID. The
// endpoint returns a list; the first element is used.
func (c *TzktClient) GetToken(ctx context.Context, contractAddress, tokenID string) (*Token, error) {
	endpoint := fmt.Sprintf("%s/v1/tokens?contract=%s&tokenId=%s&limit=1",
		c.apiURL, url.QueryEscape(contractAddress), url.QueryEscape(tokenID))

	respBody, err := c.httpClient.GetBytes(ctx, endpoint, nil)
	if err != nil {
		var statusErr *adapter.StatusError
		if errors.As(err, &statusErr) {
			return nil, domain.NewUpstreamError(PROVIDER_NAME, statusErr.StatusCode, "token lookup failed", err)
		}
		return nil, domain.NewUpstreamError(PROVIDER_NAME, 0, "token lookup failed", err)
	}

	var entries []json.RawMessage
	if err := c.json.Unmarshal(respBody, &entries); err != nil {
		return nil, domain.NewUpstreamError(PROVIDER_NAME, 0, "malformed token payload", err)
	}
	if len(entries) == 0 {
		return nil, domain.NewUpstreamError(PROVIDER_NAME, 0,
			fmt.Sprintf("no token found for contract %s id %s", contractAddress, tokenID), nil)
	}

	var token Token
	if err := c.json.Unmarshal(entries[0], &token); err != nil {
		return nil, domain.NewUpstreamError(PROVIDER_NAME, 0, "malformed token payload", err)
	}
	token.Raw = entries[0]

	return &token, nil
}

// GetAccount fetches account metadata for a creator or owner address
func (c *TzktClient) GetAccount(ctx context.Context, address string) (*Account, error) {
	endpoint := fmt.Sprintf("%s/v1/accounts/%s/metadata", c.apiURL, url.PathEscape(address))

	respBody, err := c.httpClient.GetBytes(ctx, endpoint, nil)
	if err != nil {
		var statusErr *adapter.StatusError
		if errors.As(err, &statusErr) {
			// Accounts without metadata are normal; fall back to the address
			if statusErr.StatusCode == 404 {
				return &Account{Address: address}, nil
			}
			return nil, domain.NewUpstreamError(PROVIDER_NAME, statusErr.StatusCode, "account lookup failed", err)
		}
		return nil, domain.NewUpstreamError(PROVIDER_NAME, 0, "account lookup failed", err)
	}

	account := Account{Address: address}
	if err := c.json.Unmarshal(respBody, &account); err != nil {
		return nil, domain.NewUpstreamError(PROVIDER_NAME, 0, "malformed account payload", err)
	}

	return &account, nil
}
