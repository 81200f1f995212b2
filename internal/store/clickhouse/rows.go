package clickhouse

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

func hashesToBytes(hashes []chainhash.Hash) [][]byte {
	out := make([][]byte, 0, len(hashes))
	for _, h := range hashes {
		h := h
		out = append(out, h[:])
	}
	return out
}

func hashFromBytes(b []byte) (chainhash.Hash, error) {
	var h chainhash.Hash
	if len(b) != chainhash.HashSize {
		return h, fmt.Errorf("hash column holds %d bytes, want %d", len(b), chainhash.HashSize)
	}
	copy(h[:], b)
	return h, nil
}
