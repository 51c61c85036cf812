package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/openplacard/nft-ingest/internal/domain"
)

// TokenRecord is one tracked token. The rendering layer reads these
// records; this pipeline is the only writer.
type TokenRecord struct {
	ID           string         `gorm:"type:uuid;primaryKey"`
	NFTType      domain.NFTType `gorm:"type:varchar(32);not null;index"`
	TokenID      string         `gorm:"type:text;not null"`
	TokenAddress string         `gorm:"type:text"`

	// Token holds the normalized token payload, AuctionHistory the ordered
	// SuperRare event history, TezosToken the raw upstream Tezos payload
	Token          datatypes.JSON `gorm:"type:jsonb"`
	AuctionHistory datatypes.JSON `gorm:"type:jsonb"`
	TezosToken     datatypes.JSON `gorm:"type:jsonb"`

	UpdateStatus domain.UpdateStatus `gorm:"type:varchar(32);not null;default:'awaitingInput'"`
	FailReason   string              `gorm:"type:text"`

	MediaFile       string `gorm:"type:text"`
	MediaFileType   string `gorm:"type:varchar(128)"`
	FetchingMedia   bool   `gorm:"not null;default:false"`
	MediaFailReason string `gorm:"type:text"`

	// ElementID ties the token to the liveness tree used by the batch
	// refresher for pruning
	ElementID *string `gorm:"type:text;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for TokenRecord
func (TokenRecord) TableName() string {
	return "token_records"
}

// ElementNode is one node of the liveness tree. Effective liveness is
// computed per batch run, never persisted.
type ElementNode struct {
	ID       string  `gorm:"type:text;primaryKey"`
	ParentID *string `gorm:"type:text;index"`
	Active   bool    `gorm:"not null;default:true"`
	Deleted  bool    `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for ElementNode
func (ElementNode) TableName() string {
	return "element_nodes"
}
