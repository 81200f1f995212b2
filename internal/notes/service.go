package notes

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/veilledger/veilsync/internal/chain"
	"github.com/veilledger/veilsync/internal/feed"
	"github.com/veilledger/veilsync/pkg/workerpool"
)

const defaultServiceWorkers = 4

// Service drives a set of per-account processors from one block feed: each
// batch is fetched once, paired with its encrypted logs, and fanned out to
// every processor. Processors keep independent watermarks, so a processor
// ahead of the feed position simply skips the blocks it has already seen.
type Service struct {
	feed    Feed
	logs    LogSource
	store   NoteStore
	procs   []*Processor
	logger  *zap.Logger
	workers int

	mu       sync.Mutex
	started  bool
	stopping bool
	done     chan struct{}
	runErr   error
}

// NewService builds a Service over the given processors.
func NewService(f Feed, logs LogSource, store NoteStore, procs []*Processor, logger *zap.Logger) (*Service, error) {
	if f == nil {
		return nil, errors.New("feed is required")
	}
	if logs == nil {
		return nil, errors.New("log source is required")
	}
	if store == nil {
		return nil, errors.New("note store is required")
	}
	if len(procs) == 0 {
		return nil, errors.New("at least one processor is required")
	}

	return &Service{
		feed:    f,
		logs:    logs,
		store:   store,
		procs:   procs,
		logger:  logger.Named("noteservice"),
		workers: defaultServiceWorkers,
	}, nil
}

// Start begins feeding batches to the processors, starting from the block
// after the lowest per-account watermark.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("note service already started")
	}

	from, err := s.lowestNextBlock(ctx)
	if err != nil {
		return err
	}
	if err := s.feed.Start(ctx, from); err != nil {
		return fmt.Errorf("start feed: %w", err)
	}

	s.started = true
	s.done = make(chan struct{})
	go s.run(ctx)
	return nil
}

// Stop halts the feed, waits for the loop to finish and returns the first
// fatal error the loop hit, if any.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
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
	return s.runErr
}

// ContractRegistered retries every deferred note belonging to the contract,
// now that its code is available, across all account processors.
func (s *Service) ContractRegistered(ctx context.Context, contract chainhash.Hash) error {
	deferred, err := s.store.GetDeferredNotes(ctx, contract)
	if err != nil {
		return fmt.Errorf("get deferred notes for %s: %w", contract, err)
	}
	if len(deferred) == 0 {
		return nil
	}

	return workerpool.Process(ctx, s.workers, s.procs, func(ctx context.Context, p *Processor) error {
		return p.DecodeDeferredNotes(ctx, deferred)
	})
}

func (s *Service) run(ctx context.Context) {
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

		logs, err := s.fetchLogs(ctx, batch)
		if err != nil {
			s.fail(err)
			return
		}

		if err := workerpool.Process(ctx, s.workers, s.procs, func(ctx context.Context, p *Processor) error {
			return p.Process(ctx, batch, logs)
		}); err != nil {
			s.fail(fmt.Errorf("process batch ending at %d: %w", batch[len(batch)-1].Number, err))
			return
		}
	}
}

func (s *Service) fetchLogs(ctx context.Context, blocks []chain.Block) ([]chain.EncryptedLogBatch, error) {
	logs := make([]chain.EncryptedLogBatch, 0, len(blocks))
	for _, b := range blocks {
		lb, err := s.logs.LogBatch(ctx, b.Number)
		if err != nil {
			return nil, fmt.Errorf("fetch logs for block %d: %w", b.Number, err)
		}
		logs = append(logs, lb)
	}
	return logs, nil
}

func (s *Service) lowestNextBlock(ctx context.Context) (uint64, error) {
	var lowest uint64
	var any bool
	for _, p := range s.procs {
		synced, ok, err := s.store.GetSyncedBlock(ctx, p.Account())
		if err != nil {
			return 0, fmt.Errorf("load synced block for %s: %w", p.Account(), err)
		}
		if !ok {
			return 1, nil // a fresh account scans from the chain start
		}
		if !any || synced < lowest {
			lowest, any = synced, true
		}
	}
	return lowest + 1, nil
}

func (s *Service) fail(err error) {
	s.mu.Lock()
	if s.runErr == nil {
		s.runErr = err
	}
	s.mu.Unlock()
	s.logger.Error("note sync failed", zap.Error(err))
}
