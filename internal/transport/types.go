package transport

import (
	"context"

	"github.com/veilledger/veilsync/internal/chain"
	"github.com/veilledger/veilsync/internal/synchronizer"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// Engine is the synchronization surface the HTTP handler exposes.
type Engine interface {
	Status() synchronizer.Status
	IsReady() bool
	SendTx(ctx context.Context, tx chain.Tx) error
	GetTxs(ctx context.Context) ([]chain.Tx, error)
}
