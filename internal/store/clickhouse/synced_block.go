package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// GetSyncedBlock returns the account's committed watermark; ok is false when
// the account has never reconciled a block.
func (r *Repository) GetSyncedBlock(ctx context.Context, account chainhash.Hash) (_ uint64, _ bool, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("get_synced_block", err, started)
	}()

	const query = `
SELECT max(block_number) AS block_number
FROM synced_blocks
WHERE account = ?
GROUP BY account`

	rows, err := r.conn.Query(ctx, query, account[:])
	if err != nil {
		return 0, false, fmt.Errorf("query synced block: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return 0, false, fmt.Errorf("iterate synced block: %w", err)
		}
		return 0, false, nil
	}

	var number uint64
	if err = rows.Scan(&number); err != nil {
		return 0, false, fmt.Errorf("scan synced block: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate synced block: %w", err)
	}

	return number, true, nil
}

// SetSyncedBlock records the account's watermark.
func (r *Repository) SetSyncedBlock(ctx context.Context, account chainhash.Hash, number uint64) error {
	started := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("set_synced_block", err, started)
	}()

	const query = `
INSERT INTO synced_blocks (account, block_number) VALUES (?, ?)`

	if err = r.conn.Exec(ctx, query, account[:], number); err != nil {
		return fmt.Errorf("insert synced block: %w", err)
	}
	return nil
}
