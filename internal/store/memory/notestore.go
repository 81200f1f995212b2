// Package memory holds map-backed stores used by tests and by single-node
// deployments that do not need durable note state.
package memory

import (
	"context"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/veilledger/veilsync/internal/chain"
)

// NoteStore keeps note records and per-account watermarks in process memory.
// All methods are safe for concurrent use.
type NoteStore struct {
	mu       sync.RWMutex
	incoming map[chainhash.Hash][]chain.IncomingNoteRecord
	outgoing map[chainhash.Hash][]chain.OutgoingNoteRecord
	deferred []chain.DeferredNoteRecord
	synced   map[chainhash.Hash]uint64
}

// NewNoteStore returns an empty NoteStore.
func NewNoteStore() *NoteStore {
	return &NoteStore{
		incoming: make(map[chainhash.Hash][]chain.IncomingNoteRecord),
		outgoing: make(map[chainhash.Hash][]chain.OutgoingNoteRecord),
		synced:   make(map[chainhash.Hash]uint64),
	}
}

// AddNotes appends incoming and outgoing records.
func (s *NoteStore) AddNotes(_ context.Context, incoming []chain.IncomingNoteRecord, outgoing []chain.OutgoingNoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range incoming {
		s.incoming[r.Account] = append(s.incoming[r.Account], r)
	}
	for _, r := range outgoing {
		s.outgoing[r.Account] = append(s.outgoing[r.Account], r)
	}
	return nil
}

// AddDeferredNotes appends deferred records.
func (s *NoteStore) AddDeferredNotes(_ context.Context, deferred []chain.DeferredNoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deferred = append(s.deferred, deferred...)
	return nil
}

// GetDeferredNotes returns the deferred records for one contract.
func (s *NoteStore) GetDeferredNotes(_ context.Context, contract chainhash.Hash) ([]chain.DeferredNoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []chain.DeferredNoteRecord
	for _, d := range s.deferred {
		if d.Payload.Contract == contract {
			out = append(out, d)
		}
	}
	return out, nil
}

// RemoveDeferredNotes drops the account's deferred records matching the
// consumed records by transaction and contract. Records the same tx deferred
// for other contracts stay parked.
func (s *NoteStore) RemoveDeferredNotes(_ context.Context, account chainhash.Hash, consumed []chain.DeferredNoteRecord) error {
	type deferredKey struct {
		tx       chainhash.Hash
		contract chainhash.Hash
	}
	drop := make(map[deferredKey]struct{}, len(consumed))
	for _, c := range consumed {
		drop[deferredKey{c.TxHash, c.Payload.Contract}] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.deferred[:0]
	for _, d := range s.deferred {
		if _, ok := drop[deferredKey{d.TxHash, d.Payload.Contract}]; ok && d.Account == account {
			continue
		}
		kept = append(kept, d)
	}
	s.deferred = kept
	return nil
}

// RemoveNullifiedNotes drops the account's incoming records whose nullifier
// appears in the given set and returns the records it removed.
func (s *NoteStore) RemoveNullifiedNotes(_ context.Context, account chainhash.Hash, nullifiers []chainhash.Hash) ([]chain.IncomingNoteRecord, error) {
	spent := make(map[chainhash.Hash]struct{}, len(nullifiers))
	for _, n := range nullifiers {
		spent[n] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []chain.IncomingNoteRecord
	kept := s.incoming[account][:0]
	for _, r := range s.incoming[account] {
		if _, ok := spent[r.Nullifier]; ok {
			removed = append(removed, r)
			continue
		}
		kept = append(kept, r)
	}
	s.incoming[account] = kept
	return removed, nil
}

// GetSyncedBlock returns the account's watermark; ok is false when the
// account has never reconciled a block.
func (s *NoteStore) GetSyncedBlock(_ context.Context, account chainhash.Hash) (uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	number, ok := s.synced[account]
	return number, ok, nil
}

// SetSyncedBlock records the account's watermark.
func (s *NoteStore) SetSyncedBlock(_ context.Context, account chainhash.Hash, number uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synced[account] = number
	return nil
}

// IncomingNotes returns a copy of the account's live incoming records.
func (s *NoteStore) IncomingNotes(_ context.Context, account chainhash.Hash) ([]chain.IncomingNoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]chain.IncomingNoteRecord, len(s.incoming[account]))
	copy(out, s.incoming[account])
	return out, nil
}

// OutgoingNotes returns a copy of the account's outgoing records.
func (s *NoteStore) OutgoingNotes(_ context.Context, account chainhash.Hash) ([]chain.OutgoingNoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]chain.OutgoingNoteRecord, len(s.outgoing[account]))
	copy(out, s.outgoing[account])
	return out, nil
}
