package ingest_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openplacard/nft-ingest/internal/domain"
	"github.com/openplacard/nft-ingest/internal/ingest"
	"github.com/openplacard/nft-ingest/internal/mocks"
	"github.com/openplacard/nft-ingest/internal/providers/tezos"
)

// tzktToken builds a tezos.Token from raw JSON, the only way to populate the
// schema-detecting contract field from outside the package. Raw is set the
// way the client sets it.
func tzktToken(t *testing.T, raw string) *tezos.Token {
	var token tezos.Token
	require.NoError(t, json.Unmarshal([]byte(raw), &token))
	token.Raw = json.RawMessage(raw)
	return &token
}

func TestTezosFetchAndNormalize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockTezosClient(ctrl)
	adapter := ingest.NewTezosAdapter(mockClient)

	mockClient.EXPECT().
		GetToken(gomock.Any(), "KT1abc", "7").
		Return(tzktToken(t, `{
			"tokenId": "7",
			"contract": {"address": "KT1abc", "alias": "hic et nunc"},
			"metadata": {
				"name": "OBJKT #7",
				"description": "a tezos artwork",
				"artifactUri": "ipfs://QmArtifact",
				"displayUri": "ipfs://QmDisplay",
				"thumbnailUri": "ipfs://QmThumb",
				"formats": [
					{"uri": "ipfs://QmThumb", "mimeType": "image/jpeg"},
					{"uri": "ipfs://QmArtifact", "mimeType": "video/mp4"}
				],
				"creators": ["tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb"]
			}
		}`), nil)
	mockClient.EXPECT().
		GetAccount(gomock.Any(), "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb").
		Return(&tezos.Account{
			Address: "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb",
			Alias:   "quantum.art",
			Logo:    "https://logo.example/q.png",
		}, nil)

	token, err := adapter.FetchAndNormalize(context.Background(), domain.TokenRef{
		NFTType:      domain.NFTTypeTezos,
		TokenID:      "7",
		TokenAddress: "KT1abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "7", token.TokenID)
	assert.Equal(t, "KT1abc", token.TokenAddress)
	assert.Equal(t, "OBJKT #7", token.Metadata.Name)
	assert.Equal(t, "hic et nunc", token.CollectionName)
	assert.Equal(t, "ipfs://QmArtifact", token.AnimationURL)
	assert.Equal(t, "ipfs://QmDisplay", token.Image)
	assert.Equal(t, "ipfs://QmThumb", token.ImageURL)

	// The artifact rendition supplies the typed media shortcut
	assert.Equal(t, "ipfs://QmArtifact", token.Metadata.FileURL)
	assert.Equal(t, "video/mp4", token.Metadata.FileType)

	require.NotNil(t, token.Creator)
	assert.Equal(t, "quantum.art", token.Creator.DisplayName)
	assert.Equal(t, "https://logo.example/q.png", token.Creator.AvatarURL)

	// The raw upstream payload is carried through for archival
	require.NotEmpty(t, token.TezosToken)
	assert.Contains(t, string(token.TezosToken), `"artifactUri": "ipfs://QmArtifact"`)
}

func TestTezosProfileLookupDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockTezosClient(ctrl)
	adapter := ingest.NewTezosAdapter(mockClient)

	mockClient.EXPECT().
		GetToken(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(tzktToken(t, `{
			"tokenId": "7",
			"contract": "KT1abc",
			"metadata": {"name": "OBJKT #7", "creators": ["tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb"]}
		}`), nil)
	mockClient.EXPECT().
		GetAccount(gomock.Any(), gomock.Any()).
		Return(nil, domain.NewUpstreamError("tezos", 500, "account lookup failed", nil))

	token, err := adapter.FetchAndNormalize(context.Background(), domain.TokenRef{
		NFTType:      domain.NFTTypeTezos,
		TokenID:      "7",
		TokenAddress: "KT1abc",
	})
	require.NoError(t, err)

	// A failed profile lookup degrades to the truncated address
	require.NotNil(t, token.Creator)
	assert.Equal(t, "tz1VS…jcjb", token.Creator.DisplayName)
}

func TestTezosNoFormatsLeavesShortcutEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockTezosClient(ctrl)
	adapter := ingest.NewTezosAdapter(mockClient)

	mockClient.EXPECT().
		GetToken(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(tzktToken(t, `{
			"tokenId": "7",
			"contract": "KT1abc",
			"metadata": {"name": "OBJKT #7", "artifactUri": "ipfs://QmArtifact"}
		}`), nil)

	token, err := adapter.FetchAndNormalize(context.Background(), domain.TokenRef{
		NFTType:      domain.NFTTypeTezos,
		TokenID:      "7",
		TokenAddress: "KT1abc",
	})
	require.NoError(t, err)
	assert.Empty(t, token.Metadata.FileURL)
	assert.Empty(t, token.Metadata.FileType)
	assert.Equal(t, "ipfs://QmArtifact", token.AnimationURL)
}
