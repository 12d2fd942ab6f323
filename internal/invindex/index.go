// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package invindex

import (
	"sync"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
	"github.com/RediSearch/RediSearch-sub004/internal/block"
	"github.com/RediSearch/RediSearch-sub004/internal/buffer"
)

// DefaultBlockEntryThreshold seals a block once it reaches this many
// entries (§4.2: "A block is sealed when its entry count reaches a
// configured threshold").
const DefaultBlockEntryThreshold = 100

// InvertedIndex is an ordered sequence of IndexBlocks for a single term or
// numeric field (§3). Exactly one mutator may call AddRecord/GC at a time;
// readers hold a shared borrow and observe a consistent snapshot between
// revalidation points (§5). The zero value is not usable; use New.
type InvertedIndex struct {
	mu sync.RWMutex

	flags Flags
	codec *Codec

	blocks []*IndexBlock

	uniqueDocs uint64
	lastDocID  base.DocId
	gcMarker   uint64

	entryThreshold int

	// state for the block currently being appended to.
	curBuf     *buffer.Buffer
	curFirst   base.DocId
	curLast    base.DocId
	curCount   uint32
	curAcc     *block.Accumulator
	trackScore bool
}

// New constructs an empty inverted index for the given flags, rejecting
// invalid flag combinations at creation (§6).
func New(flags Flags) (*InvertedIndex, error) {
	c, err := NewCodec(flags)
	if err != nil {
		return nil, err
	}
	trackScore := flags.has(StoreFreqs) || flags.has(StoreNumeric)
	idx := &InvertedIndex{
		flags:          flags,
		codec:          c,
		entryThreshold: DefaultBlockEntryThreshold,
		trackScore:     trackScore,
	}
	idx.startNewBlock()
	return idx, nil
}

// Flags returns the index's persisted flags.
func (idx *InvertedIndex) Flags() Flags { return idx.flags }

// Variant returns the concrete encoder/decoder variant in use.
func (idx *InvertedIndex) Variant() Variant { return idx.codec.Variant() }

// UniqueDocs returns the number of distinct document IDs indexed.
func (idx *InvertedIndex) UniqueDocs() uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.uniqueDocs
}

// LastDocID returns the most recently added document ID.
func (idx *InvertedIndex) LastDocID() base.DocId {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.lastDocID
}

// GcMarker returns the current GC generation counter; readers compare
// their cached value against this to decide whether to revalidate (§5).
func (idx *InvertedIndex) GcMarker() uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.gcMarker
}

// NumBlocks returns the number of sealed+current blocks, for diagnostics
// and the §8 testable property "every survivor occupies its own block".
func (idx *InvertedIndex) NumBlocks() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	n := len(idx.blocks)
	if idx.curCount > 0 {
		n++
	}
	return n
}

func (idx *InvertedIndex) startNewBlock() {
	idx.curBuf = buffer.New()
	idx.curCount = 0
	idx.curAcc = block.NewAccumulator(idx.trackScore)
}

func (idx *InvertedIndex) sealCurrentBlock() {
	if idx.curCount == 0 {
		return
	}
	idx.blocks = append(idx.blocks, &IndexBlock{
		FirstID:    idx.curFirst,
		LastID:     idx.curLast,
		NumEntries: idx.curCount,
		Bytes:      append([]byte(nil), idx.curBuf.Bytes()...),
		ScoreBound: idx.curAcc.Bound(),
	})
	idx.startNewBlock()
}

// AddRecord appends rec to the index, sealing the current block first if
// needed (§4.2). docLen/docScore are scoring ingredients folded into the
// block's score bound for variants that track them; pass zero values for
// variants that don't (e.g. FieldsOnly). Returns the number of bytes the
// index grew by, for host-side memory accounting.
//
// Precondition: rec.DocID >= last added doc ID; equal IDs are only
// accepted when the index was created with the MultiValue flag.
func (idx *InvertedIndex) AddRecord(rec Record, docLen uint32, docScore float64) (int, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.curCount > 0 || len(idx.blocks) > 0 {
		if rec.DocID < idx.lastDocID {
			return 0, base.ErrIo
		}
		if rec.DocID == idx.lastDocID && !idx.flags.has(MultiValue) {
			return 0, base.ErrIo
		}
	}

	if idx.curCount > 0 {
		if idx.curCount >= uint32(idx.entryThreshold) || !idx.codec.FitsDelta(idx.curLast, rec.DocID) {
			idx.sealCurrentBlock()
		}
	}
	if idx.curCount == 0 {
		idx.curFirst = rec.DocID
	}

	prev := idx.curLast
	if idx.curCount == 0 {
		prev = 0
	}
	n := idx.codec.Encode(idx.curBuf, prev, rec)
	idx.curAcc.Observe(rec.Freq, docScore, docLen)
	idx.curCount++
	idx.curLast = rec.DocID

	if rec.DocID != idx.lastDocID || idx.uniqueDocs == 0 {
		idx.uniqueDocs++
	}
	idx.lastDocID = rec.DocID
	idx.gcMarker++ // every mutation invalidates outstanding readers' buffers (§5)

	return n, nil
}

// Blocks returns a snapshot slice of every sealed block followed by the
// current (unsealed) block if non-empty. Callers must not mutate the
// returned blocks; the slice itself is a copy safe to range over without
// holding the lock.
func (idx *InvertedIndex) Blocks() []*IndexBlock {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]*IndexBlock, 0, len(idx.blocks)+1)
	out = append(out, idx.blocks...)
	if idx.curCount > 0 {
		out = append(out, &IndexBlock{
			FirstID:    idx.curFirst,
			LastID:     idx.curLast,
			NumEntries: idx.curCount,
			Bytes:      idx.curBuf.Bytes(),
			ScoreBound: idx.curAcc.Bound(),
		})
	}
	return out
}
