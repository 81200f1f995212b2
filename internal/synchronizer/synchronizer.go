// Package synchronizer drives the pending-transaction pool against the
// remote block sequence: it catches up to the tip observed at start time,
// prunes finalized transactions from the pool as blocks arrive, and gates
// submission on the catch-up having completed.
package synchronizer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/veilledger/veilsync/internal/chain"
	"github.com/veilledger/veilsync/internal/feed"
	"github.com/veilledger/veilsync/internal/reconcile"
)

// State of the synchronizer lifecycle. Stopped is terminal.
type State string

const (
	StateIdle    State = "idle"
	StateSyncing State = "syncing"
	StateRunning State = "running"
	StateStopped State = "stopped"
)

var (
	// ErrAlreadyStopped is returned by Start once Stop has completed.
	ErrAlreadyStopped = errors.New("synchronizer already stopped")
	// ErrNotReady is returned by SendTx until the synchronizer reaches Running.
	ErrNotReady = errors.New("synchronizer is not ready for transactions")
)

// Status is a non-blocking snapshot of the synchronizer.
type Status struct {
	State         State  `json:"state"`
	SyncedToBlock uint64 `json:"synced_to_block"`
}

// Synchronizer owns the pool reconciliation loop and the lifecycle state
// machine Idle -> Syncing -> Running, with Stopped reachable from any state.
type Synchronizer struct {
	feed    Feed
	pool    Pool
	logger  *zap.Logger
	metrics Metrics

	mu           sync.Mutex
	state        State
	synced       uint64
	hasSynced    bool
	target       uint64
	caughtUp     chan struct{}
	caughtUpDone bool
	stopping     bool
	done         chan struct{}
	runErr       error
}

// New builds a Synchronizer in the Idle state.
func New(f Feed, p Pool, metrics Metrics, logger *zap.Logger) (*Synchronizer, error) {
	if f == nil {
		return nil, errors.New("feed is required")
	}
	if p == nil {
		return nil, errors.New("pool is required")
	}
	if metrics == nil {
		return nil, errors.New("synchronizer metrics is required")
	}

	return &Synchronizer{
		feed:    f,
		pool:    p,
		logger:  logger.Named("synchronizer"),
		metrics: metrics,
		state:   StateIdle,
	}, nil
}

// Start begins catching up to the remote tip observed now. The returned
// channel closes once the watermark reaches that tip; if the synchronizer
// is already caught up the channel is closed on return. Either way the
// background loop keeps consuming blocks until Stop. Calling Start while
// Syncing or Running returns the in-flight signal. After Stop it fails with
// ErrAlreadyStopped.
func (s *Synchronizer) Start(ctx context.Context) (<-chan struct{}, error) {
	s.mu.Lock()
	switch s.state {
	case StateStopped:
		s.mu.Unlock()
		return nil, ErrAlreadyStopped
	case StateSyncing, StateRunning:
		ch := s.caughtUp
		s.mu.Unlock()
		return ch, nil
	}
	s.mu.Unlock()

	tip, err := s.feed.LatestBlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("read remote tip: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateStopped:
		return nil, ErrAlreadyStopped
	case StateSyncing, StateRunning:
		return s.caughtUp, nil
	}

	next := s.synced + 1
	// Catch-up is defined relative to the tip observed here; the target does
	// not follow the tip if it advances while we are still syncing.
	s.target = tip
	if err := s.feed.Start(ctx, next); err != nil {
		return nil, fmt.Errorf("start feed: %w", err)
	}

	s.caughtUp = make(chan struct{})
	s.caughtUpDone = false
	if next > tip {
		// Already at the observed tip: Running immediately, but the loop
		// still consumes every later block.
		s.setState(StateRunning)
		s.closeCaughtUp()
	} else {
		s.setState(StateSyncing)
	}
	s.done = make(chan struct{})
	go s.run(ctx)
	return s.caughtUp, nil
}

// Stop signals the background loop, stops the feed, waits for the loop to
// exit and transitions to Stopped. It returns the first fatal error the
// loop hit, if any. Idempotent once Stopped.
func (s *Synchronizer) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateStopped {
		err := s.runErr
		s.mu.Unlock()
		return err
	}
	s.stopping = true
	done := s.done
	s.mu.Unlock()

	s.feed.Stop()
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.setState(StateStopped)
	s.closeCaughtUp() // release anyone still waiting on catch-up
	return s.runErr
}

// SendTx inserts a transaction into the pending pool. Fails with
// ErrNotReady unless the synchronizer is Running.
func (s *Synchronizer) SendTx(ctx context.Context, tx chain.Tx) error {
	s.mu.Lock()
	ready := s.state == StateRunning
	s.mu.Unlock()
	if !ready {
		return ErrNotReady
	}

	if err := s.pool.AddAll(ctx, []chain.Tx{tx}); err != nil {
		return fmt.Errorf("add tx %s to pool: %w", tx.Hash, err)
	}
	return nil
}

// GetTxs returns a snapshot of the pending pool.
func (s *Synchronizer) GetTxs(ctx context.Context) ([]chain.Tx, error) {
	return s.pool.GetAll(ctx)
}

// IsReady reports whether the synchronizer has reached Running.
func (s *Synchronizer) IsReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateRunning
}

// Status returns the current state and committed watermark without blocking
// on the background loop.
func (s *Synchronizer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{State: s.state, SyncedToBlock: s.synced}
}

func (s *Synchronizer) run(ctx context.Context) {
	defer close(s.done)

	for {
		s.mu.Lock()
		stopping := s.stopping
		s.mu.Unlock()
		if stopping {
			return
		}

		batch, err := s.feed.NextBatch(ctx)
		if err != nil {
			if errors.Is(err, feed.ErrStopped) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			s.fail(fmt.Errorf("next batch: %w", err))
			return
		}
		if len(batch) == 0 {
			continue
		}

		started := time.Now()
		pruned, err := s.reconcileBatch(ctx, batch)
		s.metrics.ObserveBatch(err, len(batch), pruned, started)
		if err != nil {
			s.fail(fmt.Errorf("reconcile batch ending at %d: %w", batch[len(batch)-1].Number, err))
			return
		}

		s.maybeCaughtUp()
	}
}

// reconcileBatch deletes every pending tx finalized by the batch and then
// advances the pool watermark.
func (s *Synchronizer) reconcileBatch(ctx context.Context, blocks []chain.Block) (int, error) {
	s.mu.Lock()
	watermark, hasWatermark := s.synced, s.hasSynced
	s.mu.Unlock()

	pruned := 0
	_, err := reconcile.Apply(ctx, blocks, watermark, hasWatermark,
		func(ctx context.Context, blocks []chain.Block) error {
			var hashes []chainhash.Hash
			for _, b := range blocks {
				for _, effect := range b.Body {
					hashes = append(hashes, effect.TxHash)
				}
			}
			if len(hashes) == 0 {
				return nil
			}
			pruned = len(hashes)
			return s.pool.DeleteAll(ctx, hashes)
		},
		func(_ context.Context, last uint64) error {
			s.mu.Lock()
			s.synced, s.hasSynced = last, true
			s.mu.Unlock()
			return nil
		},
	)
	return pruned, err
}

func (s *Synchronizer) maybeCaughtUp() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSyncing || !s.hasSynced || s.synced < s.target {
		return
	}
	s.setState(StateRunning)
	s.closeCaughtUp()
	s.logger.Info("caught up with remote tip", zap.Uint64("block", s.synced))
}

// closeCaughtUp must be called with the mutex held.
func (s *Synchronizer) closeCaughtUp() {
	if s.caughtUp == nil || s.caughtUpDone {
		return
	}
	s.caughtUpDone = true
	close(s.caughtUp)
}

func (s *Synchronizer) fail(err error) {
	s.mu.Lock()
	if s.runErr == nil {
		s.runErr = err
	}
	s.mu.Unlock()
	s.logger.Error("background sync failed", zap.Error(err))
}

// setState must be called with the mutex held.
func (s *Synchronizer) setState(st State) {
	if s.state == st {
		return
	}
	s.state = st
	s.metrics.ObserveStateChange(st)
}
