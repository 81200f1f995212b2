// Package chain defines the data model shared between the sync pipelines:
// blocks, transaction effects, encrypted logs and derived note records.
package chain

import (
	"bytes"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Block is one unit of the remote append-only sequence. Blocks are never
// mutated after the feed hands them out.
type Block struct {
	Number uint64
	Header BlockHeader
	Body   []TxEffect
}

// BlockHeader carries the subset of header fields the client needs.
// NoteTreeNextIndex is the note-commitment tree's next available leaf index
// at the time the block was produced.
type BlockHeader struct {
	NoteTreeNextIndex uint64
	Timestamp         time.Time
}

// TxEffect is the committed effect of one transaction inside a block: the
// note commitments it created and the nullifiers it emitted, in order.
type TxEffect struct {
	TxHash     chainhash.Hash
	NoteHashes []chainhash.Hash
	Nullifiers []chainhash.Hash
}

// Tx is a pending transaction awaiting inclusion in a block. The payload is
// opaque to the client; only the hash is inspected during reconciliation.
type Tx struct {
	Hash    chainhash.Hash
	Payload []byte
}

// TxLogs holds the encrypted logs of one transaction, one ciphertext per
// function call, in call order.
type TxLogs struct {
	Logs [][]byte
}

// EncryptedLogBatch is the log counterpart of a block: one TxLogs entry per
// transaction in the block body. A count mismatch with the accompanying
// block is a hard failure during reconciliation.
type EncryptedLogBatch struct {
	Txs []TxLogs
}

// NotePayload is the plaintext result of a successful log decryption.
type NotePayload struct {
	Contract    chainhash.Hash
	StorageSlot chainhash.Hash
	NoteTypeID  uint32
	Note        []byte
}

// Equal reports whether two payloads are identical. Incoming and outgoing
// decryptions of the same ciphertext must agree on this.
func (p NotePayload) Equal(o NotePayload) bool {
	return p.Contract == o.Contract &&
		p.StorageSlot == o.StorageSlot &&
		p.NoteTypeID == o.NoteTypeID &&
		bytes.Equal(p.Note, o.Note)
}

// NoteHashWindow is the slice of a transaction's new note commitments a
// payload may materialize against, anchored at the absolute leaf index of
// the transaction's first commitment.
type NoteHashWindow struct {
	FirstLeafIndex uint64
	NoteHashes     []chainhash.Hash
}

// IncomingNoteRecord is a note owned by the account, bound to the
// transaction that created it and the nullifier that will retire it.
type IncomingNoteRecord struct {
	Account     chainhash.Hash
	Payload     NotePayload
	TxHash      chainhash.Hash
	NoteHash    chainhash.Hash
	Nullifier   chainhash.Hash
	LeafIndex   uint64
	BlockNumber uint64
}

// OutgoingNoteRecord is a note the account sent to someone else. It needs no
// note-hash match and carries no nullifier.
type OutgoingNoteRecord struct {
	Account     chainhash.Hash
	Payload     NotePayload
	TxHash      chainhash.Hash
	BlockNumber uint64
}

// DeferredNoteRecord is an incoming candidate whose contract code was not
// available at reconciliation time. It keeps enough context to retry the
// note-hash match later.
type DeferredNoteRecord struct {
	Account     chainhash.Hash
	Payload     NotePayload
	TxHash      chainhash.Hash
	Window      NoteHashWindow
	BlockNumber uint64
}
