package chain

import (
	"errors"
	"fmt"
)

// ErrNoteTreeIndexUnderflow is returned when a header's next-available leaf
// index is smaller than the leaves its own block reserves; such a header
// cannot have come from an honest sequencer.
var ErrNoteTreeIndexUnderflow = errors.New("note tree next index below block reservation")

// MaxNoteHashesPerTx is the protocol cap on note commitments a single
// transaction may create. The note tree reserves this many leaves per
// padded transaction regardless of how many were actually used.
const MaxNoteHashesPerTx = 64

// minTxsPerBlock is the smallest padded transaction count; blocks are padded
// with empty transactions up to a power of two before proving.
const minTxsPerBlock = 2

// PaddedTxCount returns the number of transaction slots a block with n real
// transactions occupies in the note tree.
func PaddedTxCount(n int) int {
	padded := minTxsPerBlock
	for padded < n {
		padded *= 2
	}
	return padded
}

// FirstNoteLeafIndex returns the absolute leaf index of the first note
// commitment belonging to the block's first transaction.
func (b Block) FirstNoteLeafIndex() (uint64, error) {
	reserved := uint64(PaddedTxCount(len(b.Body))) * MaxNoteHashesPerTx
	if b.Header.NoteTreeNextIndex < reserved {
		return 0, fmt.Errorf("%w: next index %d, %d reserved", ErrNoteTreeIndexUnderflow, b.Header.NoteTreeNextIndex, reserved)
	}
	return b.Header.NoteTreeNextIndex - reserved, nil
}

// TxFirstNoteLeafIndex returns the absolute leaf index reserved for the
// first note commitment of the transaction at txIndex.
func (b Block) TxFirstNoteLeafIndex(txIndex int) (uint64, error) {
	first, err := b.FirstNoteLeafIndex()
	if err != nil {
		return 0, err
	}
	return first + uint64(txIndex)*MaxNoteHashesPerTx, nil
}
