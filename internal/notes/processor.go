// Package notes turns encrypted transaction logs into private note records:
// per account, it decrypts logs from finalized blocks, materializes the
// resulting payloads against the block's note commitments, defers the ones
// whose contract code is missing, and retires records whose nullifier shows
// up in a later block.
package notes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/veilledger/veilsync/internal/chain"
	"github.com/veilledger/veilsync/internal/reconcile"
)

var (
	// ErrBatchLengthMismatch is returned when blocks and log batches do not
	// align one to one.
	ErrBatchLengthMismatch = errors.New("blocks and log batches length mismatch")
	// ErrPayloadConflict is returned when the incoming and outgoing
	// decryptions of the same ciphertext disagree; the batch is aborted
	// because the data is corrupted or adversarial.
	ErrPayloadConflict = errors.New("incoming and outgoing payloads diverge")
	// ErrDeferredRetryFailed is returned when a deferred note still cannot
	// be materialized; retries must only be attempted once the contract
	// code is known to be present.
	ErrDeferredRetryFailed = errors.New("deferred note retry failed")
)

// Status is a snapshot of the pipeline's committed watermark.
type Status struct {
	SyncedToBlock uint64 `json:"synced_to_block"`
}

// Processor reconciles one account's note state. It has no internal
// concurrency: Process runs its loops synchronously for the batch it is
// given. Multiple processors for different accounts may run concurrently
// against independent stores.
type Processor struct {
	account chainhash.Hash
	keys    KeyStore
	oracle  NoteHashOracle
	store   NoteStore
	tip     TipReader
	logger  *zap.Logger
	metrics Metrics

	mu        sync.Mutex
	synced    uint64
	hasSynced bool
	loaded    bool
}

// NewProcessor builds a Processor for the account. The watermark is loaded
// from the store on first use.
func NewProcessor(
	account chainhash.Hash,
	keys KeyStore,
	oracle NoteHashOracle,
	store NoteStore,
	tip TipReader,
	metrics Metrics,
	logger *zap.Logger,
) (*Processor, error) {
	if keys == nil {
		return nil, errors.New("key store is required")
	}
	if oracle == nil {
		return nil, errors.New("note hash oracle is required")
	}
	if store == nil {
		return nil, errors.New("note store is required")
	}
	if metrics == nil {
		return nil, errors.New("note processor metrics is required")
	}

	return &Processor{
		account: account,
		keys:    keys,
		oracle:  oracle,
		store:   store,
		tip:     tip,
		logger:  logger.Named("notes").With(zap.Stringer("account", account)),
		metrics: metrics,
	}, nil
}

// Account returns the account this processor reconciles for.
func (p *Processor) Account() chainhash.Hash {
	return p.account
}

// batchResult accumulates the records derived from one batch before they
// are persisted in bulk.
type batchResult struct {
	incoming   []chain.IncomingNoteRecord
	outgoing   []chain.OutgoingNoteRecord
	deferred   []chain.DeferredNoteRecord
	nullifiers []chainhash.Hash
}

// Process reconciles a batch of blocks with their encrypted log batches.
// The call is atomic with respect to the watermark: either every derived
// record is committed and the watermark advances to the batch's last block,
// or nothing is.
func (p *Processor) Process(ctx context.Context, blocks []chain.Block, logs []chain.EncryptedLogBatch) (err error) {
	if len(blocks) != len(logs) {
		return fmt.Errorf("%w: %d blocks, %d log batches", ErrBatchLengthMismatch, len(blocks), len(logs))
	}
	if len(blocks) == 0 {
		return nil
	}

	started := time.Now()
	defer func() {
		p.metrics.ObserveProcessBatch(err, len(blocks), started)
	}()

	if err = p.ensureWatermark(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	watermark, hasWatermark := p.synced, p.hasSynced
	p.mu.Unlock()

	firstNumber := blocks[0].Number
	_, err = reconcile.Apply(ctx, blocks, watermark, hasWatermark,
		func(ctx context.Context, trimmed []chain.Block) error {
			// Trim may have dropped already-reconciled leading blocks; keep
			// the log batches aligned.
			offset := trimmed[0].Number - firstNumber
			return p.processBatch(ctx, trimmed, logs[offset:offset+uint64(len(trimmed))])
		},
		func(ctx context.Context, last uint64) error {
			if err := p.store.SetSyncedBlock(ctx, p.account, last); err != nil {
				return err
			}
			p.mu.Lock()
			p.synced, p.hasSynced = last, true
			p.mu.Unlock()
			return nil
		},
	)
	return err
}

func (p *Processor) processBatch(ctx context.Context, blocks []chain.Block, logs []chain.EncryptedLogBatch) error {
	var result batchResult
	for i, block := range blocks {
		if err := p.processBlock(ctx, block, logs[i], &result); err != nil {
			return err
		}
	}

	if len(result.incoming) > 0 || len(result.outgoing) > 0 {
		if err := p.store.AddNotes(ctx, result.incoming, result.outgoing); err != nil {
			return fmt.Errorf("add notes: %w", err)
		}
	}
	if len(result.deferred) > 0 {
		if err := p.store.AddDeferredNotes(ctx, result.deferred); err != nil {
			return fmt.Errorf("add deferred notes: %w", err)
		}
	}
	p.metrics.ObserveNotes(len(result.incoming), len(result.outgoing), len(result.deferred))

	if len(result.nullifiers) > 0 {
		removed, err := p.store.RemoveNullifiedNotes(ctx, p.account, result.nullifiers)
		if err != nil {
			return fmt.Errorf("remove nullified notes: %w", err)
		}
		p.metrics.ObserveNullified(len(removed))
		if len(removed) > 0 {
			p.logger.Debug("retired spent notes", zap.Int("count", len(removed)))
		}
	}
	return nil
}

func (p *Processor) processBlock(ctx context.Context, block chain.Block, logs chain.EncryptedLogBatch, result *batchResult) error {
	if len(logs.Txs) != len(block.Body) {
		return fmt.Errorf("%w: block %d has %d txs, log batch has %d",
			ErrBatchLengthMismatch, block.Number, len(block.Body), len(logs.Txs))
	}

	for txIndex, effect := range block.Body {
		firstLeaf, err := block.TxFirstNoteLeafIndex(txIndex)
		if err != nil {
			return fmt.Errorf("block %d: %w", block.Number, err)
		}
		window := chain.NoteHashWindow{
			FirstLeafIndex: firstLeaf,
			NoteHashes:     effect.NoteHashes,
		}
		// Leaf indices claimed by earlier logs of the same tx; one tx's
		// multiple logs must not double-match the same commitment.
		claimed := make(map[uint64]struct{})

		for _, ciphertext := range logs.Txs[txIndex].Logs {
			if err := p.processLog(ctx, block.Number, effect.TxHash, window, claimed, ciphertext, result); err != nil {
				return err
			}
		}
		result.nullifiers = append(result.nullifiers, effect.Nullifiers...)
	}
	return nil
}

func (p *Processor) processLog(
	ctx context.Context,
	blockNumber uint64,
	txHash chainhash.Hash,
	window chain.NoteHashWindow,
	claimed map[uint64]struct{},
	ciphertext []byte,
	result *batchResult,
) error {
	incoming, err := p.keys.DecryptAsIncoming(ctx, p.account, ciphertext)
	if err != nil {
		return fmt.Errorf("decrypt as incoming: %w", err)
	}
	outgoing, err := p.keys.DecryptAsOutgoing(ctx, p.account, ciphertext)
	if err != nil {
		return fmt.Errorf("decrypt as outgoing: %w", err)
	}

	if incoming == nil && outgoing == nil {
		// Not addressed to this account; the expected majority case.
		return nil
	}
	if incoming != nil && outgoing != nil && !incoming.Equal(*outgoing) {
		return fmt.Errorf("%w: tx %s", ErrPayloadConflict, txHash)
	}

	if outgoing != nil {
		result.outgoing = append(result.outgoing, chain.OutgoingNoteRecord{
			Account:     p.account,
			Payload:     *outgoing,
			TxHash:      txHash,
			BlockNumber: blockNumber,
		})
	}

	if incoming == nil {
		return nil
	}
	match, err := p.oracle.ComputeCandidateNoteHash(ctx, p.account, *incoming, window, claimed)
	switch {
	case errors.Is(err, ErrContractUnavailable):
		result.deferred = append(result.deferred, chain.DeferredNoteRecord{
			Account:     p.account,
			Payload:     *incoming,
			TxHash:      txHash,
			Window:      window,
			BlockNumber: blockNumber,
		})
		return nil
	case err != nil:
		return fmt.Errorf("compute note hash for tx %s: %w", txHash, err)
	case match == nil:
		p.logger.Warn("incoming payload matched no note commitment",
			zap.Stringer("tx", txHash), zap.Uint64("block", blockNumber))
		return nil
	}

	claimed[match.LeafIndex] = struct{}{}
	result.incoming = append(result.incoming, chain.IncomingNoteRecord{
		Account:     p.account,
		Payload:     *incoming,
		TxHash:      txHash,
		NoteHash:    match.NoteHash,
		Nullifier:   match.Nullifier,
		LeafIndex:   match.LeafIndex,
		BlockNumber: blockNumber,
	})
	return nil
}

// DecodeDeferredNotes retries materialization for previously deferred
// records. Records belonging to other accounts are skipped. Callers must
// only pass records whose contract code is now present; a record that still
// fails is ErrDeferredRetryFailed.
func (p *Processor) DecodeDeferredNotes(ctx context.Context, deferred []chain.DeferredNoteRecord) error {
	var incoming []chain.IncomingNoteRecord
	var consumed []chain.DeferredNoteRecord

	for _, d := range deferred {
		if d.Account != p.account {
			continue
		}

		match, err := p.oracle.ComputeCandidateNoteHash(ctx, p.account, d.Payload, d.Window, nil)
		if err != nil {
			return fmt.Errorf("%w: tx %s: %v", ErrDeferredRetryFailed, d.TxHash, err)
		}
		if match == nil {
			return fmt.Errorf("%w: tx %s: no matching commitment", ErrDeferredRetryFailed, d.TxHash)
		}

		incoming = append(incoming, chain.IncomingNoteRecord{
			Account:     p.account,
			Payload:     d.Payload,
			TxHash:      d.TxHash,
			NoteHash:    match.NoteHash,
			Nullifier:   match.Nullifier,
			LeafIndex:   match.LeafIndex,
			BlockNumber: d.BlockNumber,
		})
		consumed = append(consumed, d)
	}

	if len(incoming) == 0 {
		return nil
	}
	if err := p.store.AddNotes(ctx, incoming, nil); err != nil {
		return fmt.Errorf("add retried notes: %w", err)
	}
	if err := p.store.RemoveDeferredNotes(ctx, p.account, consumed); err != nil {
		return fmt.Errorf("remove consumed deferred notes: %w", err)
	}
	p.metrics.ObserveNotes(len(incoming), 0, 0)
	return nil
}

// IsSynchronized reports whether the pipeline's watermark equals the feed's
// current remote tip.
func (p *Processor) IsSynchronized(ctx context.Context) (bool, error) {
	remote, err := p.tip.LatestBlockNumber(ctx)
	if err != nil {
		return false, fmt.Errorf("read remote tip: %w", err)
	}
	if err := p.ensureWatermark(ctx); err != nil {
		return false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.synced == remote, nil
}

// Status returns the committed watermark.
func (p *Processor) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{SyncedToBlock: p.synced}
}

func (p *Processor) ensureWatermark(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded {
		return nil
	}

	synced, ok, err := p.store.GetSyncedBlock(ctx, p.account)
	if err != nil {
		return fmt.Errorf("load synced block: %w", err)
	}
	p.synced, p.hasSynced = synced, ok
	p.loaded = true
	return nil
}
