package notes

import (
	"context"
	"errors"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/veilledger/veilsync/internal/chain"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// ErrContractUnavailable is returned by a NoteHashOracle when the contract
// owning a payload has no code registered yet; the pipeline defers the
// record instead of failing.
var ErrContractUnavailable = errors.New("contract code unavailable")

// NoteMatch is a successful materialization: the payload's commitment was
// found among a transaction's new note hashes.
type NoteMatch struct {
	NoteHash  chainhash.Hash
	LeafIndex uint64
	Nullifier chainhash.Hash
}

type (
	// KeyStore decrypts ciphertexts with the account's viewing key pair. A
	// nil payload with a nil error means the ciphertext is not addressed to
	// the account; raw keys never cross this boundary.
	KeyStore interface {
		DecryptAsIncoming(ctx context.Context, account chainhash.Hash, ciphertext []byte) (*chain.NotePayload, error)
		DecryptAsOutgoing(ctx context.Context, account chainhash.Hash, ciphertext []byte) (*chain.NotePayload, error)
	}

	// NoteHashOracle computes candidate commitment hashes for a payload and
	// searches the window for a match, skipping excluded leaf indices. A nil
	// match with a nil error means no commitment in the window corresponds
	// to the payload.
	NoteHashOracle interface {
		ComputeCandidateNoteHash(ctx context.Context, account chainhash.Hash, payload chain.NotePayload, window chain.NoteHashWindow, excluded map[uint64]struct{}) (*NoteMatch, error)
	}

	// NoteStore persists derived note records and the per-account watermark.
	// Deferred removal is keyed by transaction and contract: one tx may defer
	// notes for several contracts, and consuming one contract's records must
	// leave the siblings parked.
	NoteStore interface {
		AddNotes(ctx context.Context, incoming []chain.IncomingNoteRecord, outgoing []chain.OutgoingNoteRecord) error
		AddDeferredNotes(ctx context.Context, deferred []chain.DeferredNoteRecord) error
		GetDeferredNotes(ctx context.Context, contract chainhash.Hash) ([]chain.DeferredNoteRecord, error)
		RemoveDeferredNotes(ctx context.Context, account chainhash.Hash, consumed []chain.DeferredNoteRecord) error
		RemoveNullifiedNotes(ctx context.Context, account chainhash.Hash, nullifiers []chainhash.Hash) ([]chain.IncomingNoteRecord, error)
		GetSyncedBlock(ctx context.Context, account chainhash.Hash) (uint64, bool, error)
		SetSyncedBlock(ctx context.Context, account chainhash.Hash, number uint64) error
	}

	// TipReader exposes the feed's view of the remote tip.
	TipReader interface {
		LatestBlockNumber(ctx context.Context) (uint64, error)
	}

	// Feed supplies ordered batches of new blocks to the note service.
	Feed interface {
		LatestBlockNumber(ctx context.Context) (uint64, error)
		Start(ctx context.Context, from uint64) error
		NextBatch(ctx context.Context) ([]chain.Block, error)
		Stop()
	}

	// LogSource supplies the encrypted log batch accompanying a block.
	LogSource interface {
		LogBatch(ctx context.Context, blockNumber uint64) (chain.EncryptedLogBatch, error)
	}

	// Metrics observes per-account reconciliation outcomes.
	Metrics interface {
		ObserveProcessBatch(err error, blocks int, started time.Time)
		ObserveNotes(incoming, outgoing, deferred int)
		ObserveNullified(count int)
	}
)
