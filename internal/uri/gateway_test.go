package uri_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openplacard/nft-ingest/internal/uri"
)

func TestRewriteToGateway(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		gateway  string
		expected string
	}{
		{
			name:     "ipfs ipfs-prefixed CID",
			uri:      "ipfs://ipfs/QmXYZ",
			gateway:  "https://ipfs.io",
			expected: "https://ipfs.io/QmXYZ",
		},
		{
			name:     "ipfs bare CID",
			uri:      "ipfs://QmXYZ",
			gateway:  "https://ipfs.io",
			expected: "https://ipfs.io/ipfs/QmXYZ",
		},
		{
			name:     "CID with path",
			uri:      "ipfs://QmXYZ/metadata.json",
			gateway:  "https://ipfs.io",
			expected: "https://ipfs.io/ipfs/QmXYZ/metadata.json",
		},
		{
			name:     "custom gateway",
			uri:      "ipfs://QmABC",
			gateway:  "https://cloudflare-ipfs.com",
			expected: "https://cloudflare-ipfs.com/ipfs/QmABC",
		},
		{
			name:     "https passes through",
			uri:      "https://example.com/image.png",
			gateway:  "https://ipfs.io",
			expected: "https://example.com/image.png",
		},
		{
			name:     "http passes through",
			uri:      "http://example.com/image.png",
			gateway:  "https://ipfs.io",
			expected: "http://example.com/image.png",
		},
		{
			name:     "empty gateway falls back to default",
			uri:      "ipfs://QmXYZ",
			gateway:  "",
			expected: "https://ipfs.io/ipfs/QmXYZ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, uri.RewriteToGateway(tt.uri, tt.gateway))
		})
	}
}

func TestIsIPFS(t *testing.T) {
	assert.True(t, uri.IsIPFS("ipfs://QmXYZ"))
	assert.True(t, uri.IsIPFS("ipfs://ipfs/QmXYZ"))
	assert.False(t, uri.IsIPFS("https://ipfs.io/ipfs/QmXYZ"))
	assert.False(t, uri.IsIPFS(""))
}
