// Package reconcile holds the batch-application primitive shared by the
// pending-tx synchronizer and the per-account note pipelines: validate a
// block batch against a watermark, mutate the target store, then advance
// the watermark only after the mutation committed.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/veilledger/veilsync/internal/chain"
)

// ErrNonContiguousBatch is returned when a batch does not extend the
// watermark by exactly one block, or when block numbers inside the batch
// are not consecutive.
var ErrNonContiguousBatch = errors.New("non-contiguous block batch")

// Trim drops the prefix of blocks already covered by the watermark and
// verifies the remainder starts at watermark+1 and is internally
// consecutive. hasWatermark is false when the target has never reconciled
// a block, in which case any consecutive batch is accepted.
func Trim(blocks []chain.Block, watermark uint64, hasWatermark bool) ([]chain.Block, error) {
	for i := 1; i < len(blocks); i++ {
		if blocks[i].Number != blocks[i-1].Number+1 {
			return nil, fmt.Errorf("%w: block %d followed by %d",
				ErrNonContiguousBatch, blocks[i-1].Number, blocks[i].Number)
		}
	}
	if !hasWatermark {
		return blocks, nil
	}

	for len(blocks) > 0 && blocks[0].Number <= watermark {
		blocks = blocks[1:]
	}
	if len(blocks) == 0 {
		return nil, nil
	}
	if blocks[0].Number != watermark+1 {
		return nil, fmt.Errorf("%w: batch starts at %d, watermark is %d",
			ErrNonContiguousBatch, blocks[0].Number, watermark)
	}
	return blocks, nil
}

// Apply runs mutate over the trimmed batch and, only if it succeeds,
// commits the new watermark. It returns the watermark after the call;
// an empty or fully-trimmed batch is a no-op.
func Apply(
	ctx context.Context,
	blocks []chain.Block,
	watermark uint64,
	hasWatermark bool,
	mutate func(context.Context, []chain.Block) error,
	commit func(context.Context, uint64) error,
) (uint64, error) {
	blocks, err := Trim(blocks, watermark, hasWatermark)
	if err != nil {
		return watermark, err
	}
	if len(blocks) == 0 {
		return watermark, nil
	}

	if err := mutate(ctx, blocks); err != nil {
		return watermark, err
	}

	last := blocks[len(blocks)-1].Number
	if err := commit(ctx, last); err != nil {
		return watermark, fmt.Errorf("commit watermark %d: %w", last, err)
	}
	return last, nil
}
