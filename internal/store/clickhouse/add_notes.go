package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/veilledger/veilsync/internal/chain"
)

// AddNotes stores incoming and outgoing note rows in ClickHouse.
func (r *Repository) AddNotes(ctx context.Context, incoming []chain.IncomingNoteRecord, outgoing []chain.OutgoingNoteRecord) error {
	started := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("add_notes", err, started)
	}()

	if err = r.insertIncoming(ctx, incoming); err != nil {
		return err
	}
	if err = r.insertOutgoing(ctx, outgoing); err != nil {
		return err
	}
	return nil
}

func (r *Repository) insertIncoming(ctx context.Context, incoming []chain.IncomingNoteRecord) error {
	if len(incoming) == 0 {
		return nil
	}

	const query = `
INSERT INTO incoming_notes (
	account,
	contract,
	storage_slot,
	note_type_id,
	note,
	tx_hash,
	note_hash,
	nullifier,
	leaf_index,
	block_number
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare incoming notes batch: %w", err)
	}

	for _, record := range incoming {
		if err := batch.Append(
			record.Account[:],
			record.Payload.Contract[:],
			record.Payload.StorageSlot[:],
			record.Payload.NoteTypeID,
			record.Payload.Note,
			record.TxHash[:],
			record.NoteHash[:],
			record.Nullifier[:],
			record.LeafIndex,
			record.BlockNumber,
		); err != nil {
			return fmt.Errorf("append incoming note: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("insert incoming notes: %w", err)
	}
	return nil
}

func (r *Repository) insertOutgoing(ctx context.Context, outgoing []chain.OutgoingNoteRecord) error {
	if len(outgoing) == 0 {
		return nil
	}

	const query = `
INSERT INTO outgoing_notes (
	account,
	contract,
	storage_slot,
	note_type_id,
	note,
	tx_hash,
	block_number
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare outgoing notes batch: %w", err)
	}

	for _, record := range outgoing {
		if err := batch.Append(
			record.Account[:],
			record.Payload.Contract[:],
			record.Payload.StorageSlot[:],
			record.Payload.NoteTypeID,
			record.Payload.Note,
			record.TxHash[:],
			record.BlockNumber,
		); err != nil {
			return fmt.Errorf("append outgoing note: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("insert outgoing notes: %w", err)
	}
	return nil
}
