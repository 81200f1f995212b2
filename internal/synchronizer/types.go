package synchronizer

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/veilledger/veilsync/internal/chain"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Feed supplies the remote tip and ordered batches of new blocks.
	Feed interface {
		LatestBlockNumber(ctx context.Context) (uint64, error)
		Start(ctx context.Context, from uint64) error
		NextBatch(ctx context.Context) ([]chain.Block, error)
		Stop()
	}

	// Pool is the pending-transaction store reconciled against finalized blocks.
	Pool interface {
		AddAll(ctx context.Context, txs []chain.Tx) error
		DeleteAll(ctx context.Context, hashes []chainhash.Hash) error
		GetAll(ctx context.Context) ([]chain.Tx, error)
	}

	// Metrics observes reconciliation batches and state transitions.
	Metrics interface {
		ObserveBatch(err error, blocks, prunedTxs int, started time.Time)
		ObserveStateChange(state State)
	}
)
