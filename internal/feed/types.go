package feed

import (
	"context"
	"time"

	"github.com/veilledger/veilsync/internal/chain"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// BlockSource is the remote node the feed polls for new blocks.
	BlockSource interface {
		LatestBlockNumber(ctx context.Context) (uint64, error)
		GetBlocks(ctx context.Context, from uint64, limit int) ([]chain.Block, error)
	}

	// Metrics observes feed polling outcomes.
	Metrics interface {
		ObserveLatest(err error, started time.Time)
		ObserveFetch(err error, blocks int, started time.Time)
	}
)
