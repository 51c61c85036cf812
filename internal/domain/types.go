package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// NFTType identifies the source chain/marketplace of a tracked token.
type NFTType string

const (
	NFTTypeEthereum    NFTType = "ethereum"
	NFTTypeSuperRare   NFTType = "superrare"
	NFTTypeTezos       NFTType = "tezos"
	NFTTypeManualEntry NFTType = "manualEntry"
)

// IsValidNFTType checks if the type is one of the supported variants
func IsValidNFTType(t NFTType) bool {
	return t == NFTTypeEthereum ||
		t == NFTTypeSuperRare ||
		t == NFTTypeTezos ||
		t == NFTTypeManualEntry
}

// UpdateStatus represents the lifecycle state of a token record
type UpdateStatus string

const (
	UpdateStatusAwaitingInput UpdateStatus = "awaitingInput"
	UpdateStatusUpdating      UpdateStatus = "updating"
	UpdateStatusSuccess       UpdateStatus = "success"
	UpdateStatusFailed        UpdateStatus = "failed"
)

// MediaKind classifies a media asset by its MIME type
type MediaKind string

const (
	MediaKindImage       MediaKind = "image"
	MediaKindVideo       MediaKind = "video"
	MediaKindGIF         MediaKind = "gif"
	MediaKindModel       MediaKind = "model"
	MediaKindSVG         MediaKind = "svg"
	MediaKindApplication MediaKind = "application"
	MediaKindAudio       MediaKind = "audio"
	MediaKindOther       MediaKind = "other"
)

// ClassifyMedia maps a MIME type to a MediaKind by substring match.
// GIF and SVG are carved out before the generic image bucket because
// they take different paths through the media pipeline.
func ClassifyMedia(mimeType string) MediaKind {
	mt := strings.ToLower(mimeType)
	switch {
	case strings.Contains(mt, "gif"):
		return MediaKindGIF
	case strings.Contains(mt, "svg"):
		return MediaKindSVG
	case strings.Contains(mt, "image"):
		return MediaKindImage
	case strings.Contains(mt, "video"):
		return MediaKindVideo
	case strings.Contains(mt, "model"):
		return MediaKindModel
	case strings.Contains(mt, "audio"):
		return MediaKindAudio
	case strings.Contains(mt, "application"):
		return MediaKindApplication
	default:
		return MediaKindOther
	}
}

// Persistable reports whether media of this kind is copied into our own
// storage. Everything else stays an external URL reference.
func (k MediaKind) Persistable() bool {
	return k == MediaKindImage || k == MediaKindVideo || k == MediaKindGIF
}

// TokenRef identifies a token to fetch from an upstream source
type TokenRef struct {
	NFTType      NFTType `json:"nft_type"`
	TokenID      string  `json:"token_id"`
	TokenAddress string  `json:"token_address"`
	// MetadataURI is an optional indirect pointer to off-chain metadata
	MetadataURI string `json:"metadata_uri,omitempty"`
}

// Profile describes the creator or owner of a token
type Profile struct {
	Address     string `json:"address"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// TokenMetadata holds the display metadata of a normalized token
type TokenMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	FileURL     string `json:"file_url,omitempty"`
	FileType    string `json:"file_type,omitempty"`
}

// Token is the canonical, chain-independent record of one NFT.
// It is immutable once written except by a subsequent full refresh.
type Token struct {
	TokenID        string        `json:"token_id"`
	TokenAddress   string        `json:"token_address,omitempty"`
	NFTType        NFTType       `json:"nft_type"`
	Metadata       TokenMetadata `json:"metadata"`
	Creator        *Profile      `json:"creator,omitempty"`
	Owner          *Profile      `json:"owner,omitempty"`
	CollectionName string        `json:"collection_name,omitempty"`
	ExternalLink   string        `json:"external_link,omitempty"`
	// MetadataURI carries the token's indirect metadata pointer when the
	// upstream exposes one; the media resolver prefers it over field sniffing
	MetadataURI string `json:"metadata_uri,omitempty"`
	// AnimationURL, Image, ExternalURL, PreviewDescription and ImageURL are
	// the raw upstream fields the media resolver falls back through, in order
	AnimationURL       string `json:"animation_url,omitempty"`
	Image              string `json:"image,omitempty"`
	ExternalURL        string `json:"external_url,omitempty"`
	PreviewDescription string `json:"preview_description,omitempty"`
	ImageURL           string `json:"image_url,omitempty"`
	// CurrentPrice is the derived sale price for listed tokens, when known
	CurrentPrice *float64 `json:"current_price,omitempty"`
	// TezosToken is the raw upstream Tezos payload, persisted verbatim in
	// its own column rather than inside the normalized token JSON
	TezosToken json.RawMessage `json:"-"`
}

// DisplayName returns the composite "creator — title" display name
func (t *Token) DisplayName() string {
	name := t.Metadata.Name
	if t.Creator != nil && t.Creator.DisplayName != "" {
		if name == "" {
			return t.Creator.DisplayName
		}
		return t.Creator.DisplayName + " — " + name
	}
	return name
}

// AuctionEventType enumerates SuperRare auction history events
type AuctionEventType string

const (
	AuctionEventCreation       AuctionEventType = "creation"
	AuctionEventBid            AuctionEventType = "bid"
	AuctionEventAuctionStarted AuctionEventType = "auction_started"
	AuctionEventAuctionEnded   AuctionEventType = "auction_ended"
	AuctionEventTransfer       AuctionEventType = "transfer"
	AuctionEventSale           AuctionEventType = "sale"
	AuctionEventAcceptBid      AuctionEventType = "accept_bid"
)

// AuctionEvent is one timestamped event in a token's auction history
type AuctionEvent struct {
	Type      AuctionEventType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Amount    float64          `json:"amount,omitempty"`
	Bidder    string           `json:"bidder,omitempty"`
	From      string           `json:"from,omitempty"`
	To        string           `json:"to,omitempty"`
}

// AuctionHistory is the ordered price/auction history of a SuperRare token
type AuctionHistory struct {
	Events        []AuctionEvent `json:"events"`
	CurrentPrice  float64        `json:"current_price,omitempty"`
	EditionNumber int            `json:"edition_number,omitempty"`
	EditionTotal  int            `json:"edition_total,omitempty"`
}

// StoredFileLocation is the discriminated location of a persisted media file.
// Bucket plus relative path form the dedup key checked before any upload.
type StoredFileLocation struct {
	Bucket string `json:"bucket"`
	Path   string `json:"path"`
}

// String returns the bucket-qualified path
func (l StoredFileLocation) String() string {
	return l.Bucket + "/" + l.Path
}

// MediaAsset describes a token's resolved media
type MediaAsset struct {
	Kind        MediaKind           `json:"kind"`
	SourceURL   string              `json:"source_url"`
	ContentType string              `json:"content_type"`
	Stored      *StoredFileLocation `json:"stored,omitempty"`
}

// NormalizeAddress normalizes a contract/owner address to its canonical form.
// Ethereum addresses get EIP-55 checksumming; everything else passes through.
func NormalizeAddress(address string) string {
	if strings.HasPrefix(address, "0x") && common.IsHexAddress(address) {
		return common.HexToAddress(address).String()
	}
	return address
}

// TruncateAddress derives a short display fallback from an address,
// e.g. "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb" -> "tz1VS…jcjb"
func TruncateAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:5] + "…" + address[len(address)-4:]
}
