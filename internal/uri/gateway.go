package uri

import (
	"fmt"
	"strings"
)

// DEFAULT_IPFS_GATEWAY is used when no gateway is configured
const DEFAULT_IPFS_GATEWAY = "https://ipfs.io"

// RewriteToGateway converts an ipfs:// URI into an HTTP(S) URL on the given
// gateway host. The two rewrite rules are a wire contract:
//
//	ipfs://ipfs/<cid> -> <gateway>/<cid>
//	ipfs://<cid>      -> <gateway>/ipfs/<cid>
//
// Any other scheme passes through unchanged.
func RewriteToGateway(uri string, gatewayHost string) string {
	if gatewayHost == "" {
		gatewayHost = DEFAULT_IPFS_GATEWAY
	}

	if rest, ok := strings.CutPrefix(uri, "ipfs://ipfs/"); ok {
		return fmt.Sprintf("%s/%s", gatewayHost, rest)
	}
	if rest, ok := strings.CutPrefix(uri, "ipfs://"); ok {
		return fmt.Sprintf("%s/ipfs/%s", gatewayHost, rest)
	}

	return uri
}

// IsIPFS reports whether the URI uses the ipfs scheme
func IsIPFS(uri string) bool {
	return strings.HasPrefix(uri, "ipfs://")
}
