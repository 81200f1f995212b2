package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/veilledger/veilsync/internal/chain"
)

// AddDeferredNotes stores deferred note rows in ClickHouse. The tx's note
// hash window is persisted alongside the payload so a later retry can
// materialize the note without refetching the block.
func (r *Repository) AddDeferredNotes(ctx context.Context, deferred []chain.DeferredNoteRecord) error {
	started := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("add_deferred_notes", err, started)
	}()

	if len(deferred) == 0 {
		return nil
	}

	const query = `
INSERT INTO deferred_notes (
	account,
	contract,
	storage_slot,
	note_type_id,
	note,
	tx_hash,
	first_leaf_index,
	note_hashes,
	block_number
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare deferred notes batch: %w", err)
	}

	for _, record := range deferred {
		if err = batch.Append(
			record.Account[:],
			record.Payload.Contract[:],
			record.Payload.StorageSlot[:],
			record.Payload.NoteTypeID,
			record.Payload.Note,
			record.TxHash[:],
			record.Window.FirstLeafIndex,
			hashesToBytes(record.Window.NoteHashes),
			record.BlockNumber,
		); err != nil {
			return fmt.Errorf("append deferred note: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert deferred notes: %w", err)
	}
	return nil
}
