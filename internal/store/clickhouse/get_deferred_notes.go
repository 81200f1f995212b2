package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/veilledger/veilsync/internal/chain"
)

// GetDeferredNotes returns every deferred note row owned by the contract.
func (r *Repository) GetDeferredNotes(ctx context.Context, contract chainhash.Hash) (_ []chain.DeferredNoteRecord, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("get_deferred_notes", err, started)
	}()

	const query = `
SELECT
	account,
	storage_slot,
	note_type_id,
	note,
	tx_hash,
	first_leaf_index,
	note_hashes,
	block_number
FROM deferred_notes
WHERE contract = ?`

	rows, err := r.conn.Query(ctx, query, contract[:])
	if err != nil {
		return nil, fmt.Errorf("query deferred notes: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var records []chain.DeferredNoteRecord
	for rows.Next() {
		var (
			account    []byte
			slot       []byte
			noteTypeID uint32
			note       []byte
			txHash     []byte
			firstLeaf  uint64
			noteHashes [][]byte
			number     uint64
		)
		if err = rows.Scan(&account, &slot, &noteTypeID, &note, &txHash, &firstLeaf, &noteHashes, &number); err != nil {
			return nil, fmt.Errorf("scan deferred note: %w", err)
		}

		record := chain.DeferredNoteRecord{
			Payload: chain.NotePayload{
				Contract:   contract,
				NoteTypeID: noteTypeID,
				Note:       note,
			},
			Window: chain.NoteHashWindow{
				FirstLeafIndex: firstLeaf,
				NoteHashes:     make([]chainhash.Hash, 0, len(noteHashes)),
			},
			BlockNumber: number,
		}
		if record.Account, err = hashFromBytes(account); err != nil {
			return nil, fmt.Errorf("decode account: %w", err)
		}
		if record.Payload.StorageSlot, err = hashFromBytes(slot); err != nil {
			return nil, fmt.Errorf("decode storage slot: %w", err)
		}
		if record.TxHash, err = hashFromBytes(txHash); err != nil {
			return nil, fmt.Errorf("decode tx hash: %w", err)
		}
		for _, raw := range noteHashes {
			h, hashErr := hashFromBytes(raw)
			if hashErr != nil {
				err = fmt.Errorf("decode note hash: %w", hashErr)
				return nil, err
			}
			record.Window.NoteHashes = append(record.Window.NoteHashes, h)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deferred notes: %w", err)
	}

	return records, nil
}
