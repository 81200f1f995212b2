// Package pool holds pending transactions awaiting inclusion in a block.
package pool

import (
	"context"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/veilledger/veilsync/internal/chain"
)

// Pool is the pending-transaction store the synchronizer reconciles against
// finalized blocks. Individual operations are atomic; calls may interleave
// arbitrarily between the background loop and API callers.
type Pool interface {
	AddAll(ctx context.Context, txs []chain.Tx) error
	DeleteAll(ctx context.Context, hashes []chainhash.Hash) error
	GetAll(ctx context.Context) ([]chain.Tx, error)
}

// MemPool is an in-memory Pool implementation.
type MemPool struct {
	mu  sync.RWMutex
	txs map[chainhash.Hash]chain.Tx
}

// NewMemPool returns an empty MemPool.
func NewMemPool() *MemPool {
	return &MemPool{txs: make(map[chainhash.Hash]chain.Tx)}
}

// AddAll inserts the transactions, replacing any pending tx with the same hash.
func (p *MemPool) AddAll(_ context.Context, txs []chain.Tx) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, tx := range txs {
		p.txs[tx.Hash] = tx
	}
	return nil
}

// DeleteAll removes the transactions with the given hashes; unknown hashes
// are ignored.
func (p *MemPool) DeleteAll(_ context.Context, hashes []chainhash.Hash) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, h := range hashes {
		delete(p.txs, h)
	}
	return nil
}

// GetAll returns a snapshot of the pool contents.
func (p *MemPool) GetAll(_ context.Context) ([]chain.Tx, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	txs := make([]chain.Tx, 0, len(p.txs))
	for _, tx := range p.txs {
		txs = append(txs, tx)
	}
	return txs, nil
}
