package store

import (
	"context"

	"github.com/openplacard/nft-ingest/internal/store/schema"
)

// Store defines the persistence interface for tracked tokens and the
// liveness tree
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetTokenRecord fetches one token record by ID
	GetTokenRecord(ctx context.Context, id string) (*schema.TokenRecord, error)

	// ListTokenRecordsByType fetches all tracked tokens of one chain type
	ListTokenRecordsByType(ctx context.Context, nftType string) ([]schema.TokenRecord, error)

	// SaveTokenRecord upserts a full token record
	SaveTokenRecord(ctx context.Context, record *schema.TokenRecord) error

	// UpdateTokenRecordFields applies a partial update to a token record
	UpdateTokenRecordFields(ctx context.Context, id string, fields map[string]interface{}) error

	// ListElementNodes fetches the whole liveness tree
	ListElementNodes(ctx context.Context) ([]schema.ElementNode, error)

	// WithTransaction runs fn inside a database transaction. The Store
	// passed to fn is scoped to that transaction.
	WithTransaction(ctx context.Context, fn func(tx Store) error) error
}
