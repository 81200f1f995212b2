package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/veilledger/veilsync/internal/chain"
)

// RemoveDeferredNotes drops the account's deferred rows matching the
// consumed records by transaction and contract. Rows the same tx deferred
// for other contracts are left in place.
func (r *Repository) RemoveDeferredNotes(ctx context.Context, account chainhash.Hash, consumed []chain.DeferredNoteRecord) error {
	started := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("remove_deferred_notes", err, started)
	}()

	if len(consumed) == 0 {
		return nil
	}

	byContract := make(map[chainhash.Hash][]chainhash.Hash)
	for _, rec := range consumed {
		byContract[rec.Payload.Contract] = append(byContract[rec.Payload.Contract], rec.TxHash)
	}

	const query = `
DELETE FROM deferred_notes
WHERE account = ? AND contract = ? AND tx_hash IN (?)`

	for contract, txHashes := range byContract {
		if err = r.conn.Exec(ctx, query, account[:], contract[:], hashesToBytes(txHashes)); err != nil {
			return fmt.Errorf("delete deferred notes for contract %s: %w", contract, err)
		}
	}
	return nil
}
