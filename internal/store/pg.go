package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openplacard/nft-ingest/internal/domain"
	"github.com/openplacard/nft-ingest/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the database schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.TokenRecord{},
		&schema.ElementNode{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// GetTokenRecord fetches one token record by ID
func (s *pgStore) GetTokenRecord(ctx context.Context, id string) (*schema.TokenRecord, error) {
	var record schema.TokenRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenRecordNotFound
		}
		return nil, fmt.Errorf("failed to get token record: %w", err)
	}
	return &record, nil
}

// ListTokenRecordsByType fetches all tracked tokens of one chain type
func (s *pgStore) ListTokenRecordsByType(ctx context.Context, nftType string) ([]schema.TokenRecord, error) {
	var records []schema.TokenRecord
	err := s.db.WithContext(ctx).
		Where("nft_type = ?", nftType).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list token records: %w", err)
	}
	return records, nil
}

// SaveTokenRecord upserts a full token record
func (s *pgStore) SaveTokenRecord(ctx context.Context, record *schema.TokenRecord) error {
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to save token record: %w", err)
	}
	return nil
}

// UpdateTokenRecordFields applies a partial update to a token record
func (s *pgStore) UpdateTokenRecordFields(ctx context.Context, id string, fields map[string]interface{}) error {
	result := s.db.WithContext(ctx).
		Model(&schema.TokenRecord{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update token record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTokenRecordNotFound
	}
	return nil
}

// ListElementNodes fetches the whole liveness tree
func (s *pgStore) ListElementNodes(ctx context.Context) ([]schema.ElementNode, error) {
	var nodes []schema.ElementNode
	err := s.db.WithContext(ctx).Find(&nodes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list element nodes: %w", err)
	}
	return nodes, nil
}

// WithTransaction runs fn inside a database transaction
func (s *pgStore) WithTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}
