package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/veilledger/veilsync/internal/chain"
)

// RemoveNullifiedNotes drops the account's incoming rows whose nullifier is
// in the given set and returns the removed records.
func (r *Repository) RemoveNullifiedNotes(ctx context.Context, account chainhash.Hash, nullifiers []chainhash.Hash) (_ []chain.IncomingNoteRecord, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("remove_nullified_notes", err, started)
	}()

	if len(nullifiers) == 0 {
		return nil, nil
	}

	removed, err := r.selectNullified(ctx, account, nullifiers)
	if err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return nil, nil
	}

	const query = `
DELETE FROM incoming_notes
WHERE account = ? AND nullifier IN (?)`

	if err = r.conn.Exec(ctx, query, account[:], hashesToBytes(nullifiers)); err != nil {
		return nil, fmt.Errorf("delete nullified notes: %w", err)
	}
	return removed, nil
}

func (r *Repository) selectNullified(ctx context.Context, account chainhash.Hash, nullifiers []chainhash.Hash) (_ []chain.IncomingNoteRecord, err error) {
	const query = `
SELECT
	contract,
	storage_slot,
	note_type_id,
	note,
	tx_hash,
	note_hash,
	nullifier,
	leaf_index,
	block_number
FROM incoming_notes
WHERE account = ? AND nullifier IN (?)`

	rows, err := r.conn.Query(ctx, query, account[:], hashesToBytes(nullifiers))
	if err != nil {
		return nil, fmt.Errorf("query nullified notes: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var records []chain.IncomingNoteRecord
	for rows.Next() {
		var (
			contract   []byte
			slot       []byte
			noteTypeID uint32
			note       []byte
			txHash     []byte
			noteHash   []byte
			nullifier  []byte
			leafIndex  uint64
			number     uint64
		)
		if err = rows.Scan(&contract, &slot, &noteTypeID, &note, &txHash, &noteHash, &nullifier, &leafIndex, &number); err != nil {
			return nil, fmt.Errorf("scan nullified note: %w", err)
		}

		record := chain.IncomingNoteRecord{
			Account: account,
			Payload: chain.NotePayload{
				NoteTypeID: noteTypeID,
				Note:       note,
			},
			LeafIndex:   leafIndex,
			BlockNumber: number,
		}
		if record.Payload.Contract, err = hashFromBytes(contract); err != nil {
			return nil, fmt.Errorf("decode contract: %w", err)
		}
		if record.Payload.StorageSlot, err = hashFromBytes(slot); err != nil {
			return nil, fmt.Errorf("decode storage slot: %w", err)
		}
		if record.TxHash, err = hashFromBytes(txHash); err != nil {
			return nil, fmt.Errorf("decode tx hash: %w", err)
		}
		if record.NoteHash, err = hashFromBytes(noteHash); err != nil {
			return nil, fmt.Errorf("decode note hash: %w", err)
		}
		if record.Nullifier, err = hashFromBytes(nullifier); err != nil {
			return nil, fmt.Errorf("decode nullifier: %w", err)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nullified notes: %w", err)
	}

	return records, nil
}
