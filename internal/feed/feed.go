// Package feed delivers ordered batches of new remote blocks to the sync
// pipelines. The polling policy (intervals, rate limits, backoff) lives
// here; consumers only ever see contiguous batches.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/veilledger/veilsync/internal/chain"
	"github.com/veilledger/veilsync/internal/clock"
	"github.com/veilledger/veilsync/pkg/safe"
)

// ErrStopped is returned by NextBatch once the feed has been stopped.
var ErrStopped = errors.New("feed stopped")

const (
	defaultPollInterval = 2 * time.Second
	defaultMaxBatchSize = 50
	defaultPollRPS      = 10
)

// Feed supplies the latest remote block number and ordered batches of new
// blocks on demand.
type Feed interface {
	LatestBlockNumber(ctx context.Context) (uint64, error)
	Start(ctx context.Context, from uint64) error
	NextBatch(ctx context.Context) ([]chain.Block, error)
	Stop()
}

// PollingFeed implements Feed by polling a BlockSource.
type PollingFeed struct {
	source  BlockSource
	logger  *zap.Logger
	metrics Metrics
	rl      ratelimit.Limiter

	pollInterval time.Duration
	maxBatchSize int

	batches  chan []chain.Block
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu      sync.Mutex
	started bool
	next    uint64
}

// NewPollingFeed builds a PollingFeed with default polling policy.
func NewPollingFeed(source BlockSource, metrics Metrics, logger *zap.Logger) (*PollingFeed, error) {
	if source == nil {
		return nil, errors.New("block source is required")
	}
	if metrics == nil {
		return nil, errors.New("feed metrics is required")
	}

	return &PollingFeed{
		source:       source,
		logger:       logger.Named("feed"),
		metrics:      metrics,
		rl:           ratelimit.New(defaultPollRPS),
		pollInterval: defaultPollInterval,
		maxBatchSize: defaultMaxBatchSize,
		batches:      make(chan []chain.Block, 1),
		stop:         make(chan struct{}),
	}, nil
}

// LatestBlockNumber returns the remote tip, rate-limited like the poll loop.
func (f *PollingFeed) LatestBlockNumber(ctx context.Context) (uint64, error) {
	f.rl.Take()
	started := time.Now()
	tip, err := f.source.LatestBlockNumber(ctx)
	f.metrics.ObserveLatest(err, started)
	if err != nil {
		return 0, fmt.Errorf("latest block number: %w", err)
	}
	return tip, nil
}

// Start launches the poll loop, fetching blocks from the given number on.
func (f *PollingFeed) Start(ctx context.Context, from uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.started {
		return errors.New("feed already started")
	}
	select {
	case <-f.stop:
		return ErrStopped
	default:
	}

	f.started = true
	f.next = from
	f.wg.Add(1)
	go f.run(ctx)
	return nil
}

// NextBatch blocks until a batch is available, the context is canceled or
// the feed is stopped.
func (f *PollingFeed) NextBatch(ctx context.Context) ([]chain.Block, error) {
	select {
	case batch := <-f.batches:
		return batch, nil
	default:
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case batch := <-f.batches:
		return batch, nil
	case <-f.stop:
		return nil, ErrStopped
	}
}

// Stop halts the poll loop and waits for it to exit. Safe to call more than once.
func (f *PollingFeed) Stop() {
	f.stopOnce.Do(func() { close(f.stop) })
	f.wg.Wait()
}

func (f *PollingFeed) run(ctx context.Context) {
	defer f.wg.Done()

	for {
		select {
		case <-f.stop:
			return
		default:
		}
		if ctx.Err() != nil {
			return
		}

		if err := f.poll(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			f.logger.Warn("poll failed, backing off", zap.Error(err), zap.Duration("sleep", f.pollInterval))
			if clock.SleepOrSignal(ctx, f.pollInterval, f.stop) != nil {
				return
			}
		}
	}
}

func (f *PollingFeed) poll(ctx context.Context) error {
	f.rl.Take()

	started := time.Now()
	tip, err := f.source.LatestBlockNumber(ctx)
	f.metrics.ObserveLatest(err, started)
	if err != nil {
		return fmt.Errorf("latest block number: %w", err)
	}

	if tip < f.next {
		return clock.SleepOrSignal(ctx, f.pollInterval, f.stop)
	}

	limit := f.maxBatchSize
	if available := tip - f.next + 1; available < uint64(limit) {
		if limit, err = safe.Int(available); err != nil {
			return fmt.Errorf("cap batch size: %w", err)
		}
	}

	started = time.Now()
	blocks, err := f.source.GetBlocks(ctx, f.next, limit)
	f.metrics.ObserveFetch(err, len(blocks), started)
	if err != nil {
		return fmt.Errorf("get blocks from %d: %w", f.next, err)
	}
	if len(blocks) == 0 {
		return clock.SleepOrSignal(ctx, f.pollInterval, f.stop)
	}

	if blocks[0].Number != f.next {
		return fmt.Errorf("source returned block %d, expected %d", blocks[0].Number, f.next)
	}
	for i := 1; i < len(blocks); i++ {
		if blocks[i].Number != blocks[i-1].Number+1 {
			return fmt.Errorf("source returned non-contiguous run at block %d", blocks[i].Number)
		}
	}

	select {
	case f.batches <- blocks:
		f.next = blocks[len(blocks)-1].Number + 1
		return nil
	case <-f.stop:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
