package refresher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/gowebpki/jcs"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/openplacard/nft-ingest/internal/adapter"
	"github.com/openplacard/nft-ingest/internal/domain"
	"github.com/openplacard/nft-ingest/internal/liveness"
	"github.com/openplacard/nft-ingest/internal/logger"
	"github.com/openplacard/nft-ingest/internal/store"
	"github.com/openplacard/nft-ingest/internal/store/schema"
)

// AuctionHistoryFetcher recomputes a token's auction history
type AuctionHistoryFetcher interface {
	FetchAuctionHistory(ctx context.Context, ref domain.TokenRef) (*domain.AuctionHistory, error)
}

// Config holds batch refresh scheduler configuration
type Config struct {
	// Window is the span the refresh calls are spread across
	Window time.Duration
	// Interval is the sleep between refresh cycles
	Interval time.Duration
	// MaxDepth bounds the liveness tree walk
	MaxDepth int
	// PoolSize is the number of concurrent refresh workers
	PoolSize int
}

// Refresher periodically recomputes auction histories for all tracked
// SuperRare tokens, pruning non-live ones and writing only on change
type Refresher struct {
	config  Config
	store   store.Store
	history AuctionHistoryFetcher
	clock   adapter.Clock
	json    adapter.JSON

	// mu guards the run state so a stopped refresher can be started again
	mu        sync.Mutex
	running   bool
	stopping  bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewRefresher creates a batch refresher
func NewRefresher(config Config, st store.Store, history AuctionHistoryFetcher, clock adapter.Clock, json adapter.JSON) *Refresher {
	if config.Window <= 0 {
		config.Window = 15 * time.Minute
	}
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	if config.PoolSize <= 0 {
		config.PoolSize = 20
	}
	return &Refresher{
		config:  config,
		store:   st,
		history: history,
		clock:   clock,
		json:    json,
	}
}

// Start begins the refresh loop. It blocks until the context is canceled or
// Stop is called.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("refresher already running")
	}
	r.running = true
	r.stopping = false
	// Fresh channels each run
	r.stopChan = make(chan struct{})
	r.stoppedCh = make(chan struct{})
	stoppedCh := r.stoppedCh
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
		close(stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting batch refresher",
		zap.Duration("window", r.config.Window),
		zap.Duration("interval", r.config.Interval),
		zap.Int("pool_size", r.config.PoolSize),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Batch refresher stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-r.stopChan:
			logger.InfoCtx(ctx, "Batch refresher stop requested")
			return nil
		default:
			if err := r.RunCycle(ctx); err != nil {
				logger.ErrorCtx(ctx, fmt.Errorf("refresh cycle failed: %w", err))
			}
			if !r.sleep(ctx, r.config.Interval) {
				return nil
			}
		}
	}
}

// Stop gracefully stops the refresher with timeout support
func (r *Refresher) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running || r.stopping {
		r.mu.Unlock()
		return nil
	}
	r.stopping = true
	stopChan, stoppedCh := r.stopChan, r.stoppedCh
	r.mu.Unlock()

	logger.InfoCtx(ctx, "Stopping batch refresher")
	close(stopChan)

	select {
	case <-stoppedCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sleep sleeps for the given duration but can be interrupted by context
// cancellation or a stop request
func (r *Refresher) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-r.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-r.stopChan:
		return false
	}
}

// RunCycle runs a single refresh cycle: select, prune, spread, refresh
func (r *Refresher) RunCycle(ctx context.Context) error {
	runID := ulid.MustNewDefault(r.clock.Now()).String()
	startTime := r.clock.Now()

	records, err := r.store.ListTokenRecordsByType(ctx, string(domain.NFTTypeSuperRare))
	if err != nil {
		return fmt.Errorf("failed to list tokens: %w", err)
	}

	nodes, err := r.store.ListElementNodes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list element nodes: %w", err)
	}
	tree := liveness.NewTree(nodes, r.config.MaxDepth)

	live := make([]schema.TokenRecord, 0, len(records))
	for _, record := range records {
		if record.ElementID != nil && !tree.IsLive(*record.ElementID) {
			continue
		}
		live = append(live, record)
	}

	logger.InfoCtx(ctx, "Starting refresh cycle",
		zap.String("run_id", runID),
		zap.Int("total", len(records)),
		zap.Int("live", len(live)),
	)
	if len(live) == 0 {
		return nil
	}

	var refreshed, changed, failed atomic.Int32

	pool := pond.NewPool(r.config.PoolSize, pond.WithContext(ctx))
	total := len(live)
	for i, record := range live {
		delay := SpreadDelay(i, total, r.config.Window)
		pool.Submit(func() {
			if !r.sleep(ctx, delay) {
				return
			}
			r.refreshOne(ctx, record, &refreshed, &changed, &failed)
		})
	}
	pool.StopAndWait()

	logger.InfoCtx(ctx, "Refresh cycle completed",
		zap.String("run_id", runID),
		zap.Duration("duration", r.clock.Since(startTime)),
		zap.Int32("refreshed", refreshed.Load()),
		zap.Int32("changed", changed.Load()),
		zap.Int32("failed", failed.Load()),
	)

	return nil
}

// SpreadDelay computes the artificial delay for the i-th of total tokens
// over the window: a deterministic linear spread in [0, window)
func SpreadDelay(i, total int, window time.Duration) time.Duration {
	if total <= 0 {
		return 0
	}
	return time.Duration(float64(i) / float64(total) * float64(window))
}

// refreshOne recomputes one token's auction history and writes it back only
// when the canonical-JSON hash differs. Failures are counted and logged but
// never abort the cycle.
func (r *Refresher) refreshOne(ctx context.Context, record schema.TokenRecord, refreshed, changed, failed *atomic.Int32) {
	refreshed.Add(1)

	history, err := r.history.FetchAuctionHistory(ctx, domain.TokenRef{
		NFTType:      record.NFTType,
		TokenID:      record.TokenID,
		TokenAddress: record.TokenAddress,
	})
	if err != nil {
		failed.Add(1)
		logger.WarnCtx(ctx, "failed to refresh auction history",
			zap.String("recordID", record.ID),
			zap.String("tokenID", record.TokenID),
			zap.Error(err))
		return
	}

	historyJSON, err := r.json.Marshal(history)
	if err != nil {
		failed.Add(1)
		logger.ErrorCtx(ctx, fmt.Errorf("failed to encode auction history: %w", err),
			zap.String("recordID", record.ID))
		return
	}

	newHash, err := canonicalHash(historyJSON)
	if err != nil {
		failed.Add(1)
		logger.ErrorCtx(ctx, fmt.Errorf("failed to hash auction history: %w", err),
			zap.String("recordID", record.ID))
		return
	}

	if len(record.AuctionHistory) > 0 {
		oldHash, err := canonicalHash(record.AuctionHistory)
		if err == nil && oldHash == newHash {
			return
		}
	}

	err = r.store.UpdateTokenRecordFields(ctx, record.ID, map[string]interface{}{
		"auction_history": datatypes.JSON(historyJSON),
	})
	if err != nil {
		failed.Add(1)
		logger.ErrorCtx(ctx, fmt.Errorf("failed to write auction history: %w", err),
			zap.String("recordID", record.ID))
		return
	}

	changed.Add(1)
}

// canonicalHash computes the sha256 of the JCS canonical form of a JSON
// document, so semantically equal payloads compare equal regardless of key
// order or whitespace
func canonicalHash(raw []byte) (string, error) {
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize JSON: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
