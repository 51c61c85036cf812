package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/openplacard/nft-ingest/internal/domain"
	"github.com/openplacard/nft-ingest/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestTokenRecord creates a token record ready to be saved
func buildTestTokenRecord(nftType domain.NFTType, tokenID string) *schema.TokenRecord {
	return &schema.TokenRecord{
		ID:           uuid.NewString(),
		NFTType:      nftType,
		TokenID:      tokenID,
		TokenAddress: fmt.Sprintf("0xcontract%s", tokenID),
		Token:        datatypes.JSON(`{"name": "Genesis"}`),
		UpdateStatus: domain.UpdateStatusAwaitingInput,
	}
}

// buildTestElementNode creates a liveness tree node
func buildTestElementNode(id string, parentID *string, active, deleted bool) *schema.ElementNode {
	return &schema.ElementNode{
		ID:       id,
		ParentID: parentID,
		Active:   active,
		Deleted:  deleted,
	}
}

// =============================================================================
// Test: GetTokenRecord
// =============================================================================

func testGetTokenRecord(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("returns a saved record with its jsonb payloads", func(t *testing.T) {
		record := buildTestTokenRecord(domain.NFTTypeEthereum, "1")
		record.AuctionHistory = datatypes.JSON(`{"current_price": 2.5, "events": []}`)
		record.TezosToken = datatypes.JSON(`{"tokenId": "1"}`)
		require.NoError(t, store.SaveTokenRecord(ctx, record))

		got, err := store.GetTokenRecord(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
		assert.Equal(t, domain.NFTTypeEthereum, got.NFTType)
		assert.Equal(t, "1", got.TokenID)
		assert.JSONEq(t, `{"name": "Genesis"}`, string(got.Token))
		assert.JSONEq(t, `{"current_price": 2.5, "events": []}`, string(got.AuctionHistory))
		assert.JSONEq(t, `{"tokenId": "1"}`, string(got.TezosToken))
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		_, err := store.GetTokenRecord(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrTokenRecordNotFound)
	})
}

// =============================================================================
// Test: SaveTokenRecord
// =============================================================================

func testSaveTokenRecord(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("save acts as an upsert", func(t *testing.T) {
		record := buildTestTokenRecord(domain.NFTTypeSuperRare, "2")
		require.NoError(t, store.SaveTokenRecord(ctx, record))

		record.UpdateStatus = domain.UpdateStatusSuccess
		record.Token = datatypes.JSON(`{"name": "Genesis II"}`)
		require.NoError(t, store.SaveTokenRecord(ctx, record))

		got, err := store.GetTokenRecord(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.UpdateStatusSuccess, got.UpdateStatus)
		assert.JSONEq(t, `{"name": "Genesis II"}`, string(got.Token))
	})
}

// =============================================================================
// Test: UpdateTokenRecordFields
// =============================================================================

func testUpdateTokenRecordFields(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("partial update leaves other columns untouched", func(t *testing.T) {
		record := buildTestTokenRecord(domain.NFTTypeEthereum, "3")
		record.UpdateStatus = domain.UpdateStatusSuccess
		record.FetchingMedia = true
		require.NoError(t, store.SaveTokenRecord(ctx, record))

		err := store.UpdateTokenRecordFields(ctx, record.ID, map[string]interface{}{
			"fetching_media":    false,
			"media_fail_reason": "media fetch failed",
		})
		require.NoError(t, err)

		got, err := store.GetTokenRecord(ctx, record.ID)
		require.NoError(t, err)
		assert.False(t, got.FetchingMedia)
		assert.Equal(t, "media fetch failed", got.MediaFailReason)
		assert.Equal(t, domain.UpdateStatusSuccess, got.UpdateStatus)
		assert.JSONEq(t, `{"name": "Genesis"}`, string(got.Token))
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		err := store.UpdateTokenRecordFields(ctx, uuid.NewString(), map[string]interface{}{
			"fetching_media": false,
		})
		assert.ErrorIs(t, err, domain.ErrTokenRecordNotFound)
	})
}

// =============================================================================
// Test: ListTokenRecordsByType
// =============================================================================

func testListTokenRecordsByType(t *testing.T, store Store) {
	ctx := context.Background()

	superrareA := buildTestTokenRecord(domain.NFTTypeSuperRare, "10")
	superrareB := buildTestTokenRecord(domain.NFTTypeSuperRare, "11")
	ethereum := buildTestTokenRecord(domain.NFTTypeEthereum, "12")
	for _, record := range []*schema.TokenRecord{superrareA, superrareB, ethereum} {
		require.NoError(t, store.SaveTokenRecord(ctx, record))
	}

	records, err := store.ListTokenRecordsByType(ctx, string(domain.NFTTypeSuperRare))
	require.NoError(t, err)
	require.Len(t, records, 2)

	ids := []string{records[0].ID, records[1].ID}
	assert.Contains(t, ids, superrareA.ID)
	assert.Contains(t, ids, superrareB.ID)

	// Stable ordering by id
	assert.Less(t, records[0].ID, records[1].ID)
}

// =============================================================================
// Test: ListElementNodes
// =============================================================================

func testListElementNodes(t *testing.T, store Store) {
	ctx := context.Background()

	root := buildTestElementNode("root", nil, true, false)
	rootID := root.ID
	child := buildTestElementNode("child", &rootID, true, true)

	db := store.(*pgStore).db
	require.NoError(t, db.Create(root).Error)
	require.NoError(t, db.Create(child).Error)

	nodes, err := store.ListElementNodes(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	byID := make(map[string]schema.ElementNode, len(nodes))
	for _, node := range nodes {
		byID[node.ID] = node
	}
	assert.False(t, byID["root"].Deleted)
	assert.True(t, byID["child"].Deleted)
	require.NotNil(t, byID["child"].ParentID)
	assert.Equal(t, "root", *byID["child"].ParentID)
}

// =============================================================================
// Test: WithTransaction
// =============================================================================

func testWithTransaction(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		record := buildTestTokenRecord(domain.NFTTypeEthereum, "20")

		err := store.WithTransaction(ctx, func(tx Store) error {
			if err := tx.SaveTokenRecord(ctx, record); err != nil {
				return err
			}
			return tx.UpdateTokenRecordFields(ctx, record.ID, map[string]interface{}{
				"update_status": string(domain.UpdateStatusSuccess),
			})
		})
		require.NoError(t, err)

		got, err := store.GetTokenRecord(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.UpdateStatusSuccess, got.UpdateStatus)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		record := buildTestTokenRecord(domain.NFTTypeEthereum, "21")

		failure := errors.New("mid-transaction failure")
		err := store.WithTransaction(ctx, func(tx Store) error {
			if err := tx.SaveTokenRecord(ctx, record); err != nil {
				return err
			}
			return failure
		})
		assert.ErrorIs(t, err, failure)

		_, err = store.GetTokenRecord(ctx, record.ID)
		assert.ErrorIs(t, err, domain.ErrTokenRecordNotFound)
	})

	t.Run("read-modify-write inside one transaction", func(t *testing.T) {
		record := buildTestTokenRecord(domain.NFTTypeSuperRare, "22")
		record.UpdateStatus = domain.UpdateStatusUpdating
		require.NoError(t, store.SaveTokenRecord(ctx, record))

		err := store.WithTransaction(ctx, func(tx Store) error {
			current, err := tx.GetTokenRecord(ctx, record.ID)
			if err != nil {
				return err
			}
			current.UpdateStatus = domain.UpdateStatusSuccess
			current.FetchingMedia = true
			return tx.SaveTokenRecord(ctx, current)
		})
		require.NoError(t, err)

		got, err := store.GetTokenRecord(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.UpdateStatusSuccess, got.UpdateStatus)
		assert.True(t, got.FetchingMedia)
	})
}

// =============================================================================
// Test Suite Runner
// =============================================================================

// RunStoreTests runs the full store test suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"GetTokenRecord", testGetTokenRecord},
		{"SaveTokenRecord", testSaveTokenRecord},
		{"UpdateTokenRecordFields", testUpdateTokenRecordFields},
		{"ListTokenRecordsByType", testListTokenRecordsByType},
		{"ListElementNodes", testListElementNodes},
		{"WithTransaction", testWithTransaction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
