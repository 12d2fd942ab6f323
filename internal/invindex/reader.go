// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package invindex

import (
	"sort"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
	"github.com/RediSearch/RediSearch-sub004/internal/block"
	"github.com/RediSearch/RediSearch-sub004/internal/buffer"
)

// Reader is the IndexReader capability (§4.2): a cursor over one
// InvertedIndex's blocks. A Reader holds a shared borrow on the index; the
// owning index mutating concurrently invalidates the reader's buffer
// pointer and bumps gc_marker, which NeedsRevalidation observes (§5).
type Reader struct {
	idx *InvertedIndex

	blocks   []*IndexBlock
	blockIdx int
	cur      *buffer.Buffer
	prevID   base.DocId
	gcMarker uint64

	last     base.DocId
	haveLast bool
}

// NewReader returns a reader positioned before the first record.
func NewReader(idx *InvertedIndex) *Reader {
	r := &Reader{idx: idx}
	r.Reset()
	return r
}

// Reset repositions the reader to the start of the index and takes a fresh
// snapshot of its blocks.
func (r *Reader) Reset() {
	r.blocks = r.idx.Blocks()
	r.gcMarker = r.idx.GcMarker()
	r.blockIdx = 0
	r.haveLast = false
	r.last = 0
	r.enterBlock(0)
}

func (r *Reader) enterBlock(i int) {
	r.blockIdx = i
	if i < len(r.blocks) {
		r.cur = buffer.Wrap(r.blocks[i].Bytes)
		r.prevID = 0
	} else {
		r.cur = nil
	}
}

// UniqueDocs reports the owning index's current unique document count; it
// reads the index directly rather than this reader's block snapshot.
func (r *Reader) UniqueDocs() uint64 { return r.idx.UniqueDocs() }

// Flags returns the owning index's flags.
func (r *Reader) Flags() Flags { return r.idx.Flags() }

// NeedsRevalidation reports whether the owning index has mutated since
// this reader's snapshot was taken.
func (r *Reader) NeedsRevalidation() bool {
	return r.idx.GcMarker() != r.gcMarker
}

// Revalidate re-syncs the reader against the index's current state. If the
// record the reader was positioned at survived, the cursor resumes from
// the equivalent logical position and moved is false. Otherwise the
// cursor advances to the next surviving record at or after the old
// position and moved is true. ok is false only when the index has nothing
// left at or after the old position (callers should treat that as EOF, not
// abort — §5 aborts are reserved for unrecoverable readers, which this
// model never produces since blocks are append-only plus GC-compacted).
func (r *Reader) Revalidate() (moved bool, ok bool, err error) {
	if !r.NeedsRevalidation() {
		return false, true, nil
	}
	wantFrom := r.last
	if r.haveLast {
		wantFrom++
	}
	r.Reset()
	found, err := r.SkipTo(wantFrom)
	if err != nil {
		return false, false, err
	}
	return true, found, nil
}

// NextRecord decodes the next record in ascending doc_id order into out,
// returning false at EOF.
func (r *Reader) NextRecord(out *Record) (bool, error) {
	for {
		if r.cur == nil || r.blockIdx >= len(r.blocks) {
			return false, nil
		}
		if r.cur.AtEOF() {
			r.enterBlock(r.blockIdx + 1)
			continue
		}
		rec, _, err := r.idx.codec.Decode(r.cur, r.prevID)
		if err != nil {
			return false, err
		}
		r.prevID = rec.DocID
		*out = rec
		r.last = rec.DocID
		r.haveLast = true
		return true, nil
	}
}

// SkipTo advances the cursor to the first record with doc_id >= target,
// without necessarily materializing intermediate records (§4.2's
// "skip_to(doc_id)"). Whole blocks whose LastID < target are skipped
// without decoding any posting in them.
func (r *Reader) SkipTo(target base.DocId) (bool, error) {
	// Block-level skip: binary search for the first block whose LastID >= target.
	i := sort.Search(len(r.blocks), func(i int) bool { return r.blocks[i].LastID >= target })
	if i > r.blockIdx {
		r.enterBlock(i)
	}
	var rec Record
	for {
		ok, err := r.NextRecord(&rec)
		if err != nil || !ok {
			return false, err
		}
		if rec.DocID >= target {
			return true, nil
		}
	}
}

// SeekRecord decodes the first record with doc_id >= target into out,
// returning false only if no such record exists. The cursor advances past
// the returned record, matching next_record's forward-only contract.
func (r *Reader) SeekRecord(target base.DocId, out *Record) (bool, error) {
	i := sort.Search(len(r.blocks), func(i int) bool { return r.blocks[i].LastID >= target })
	if i != r.blockIdx {
		r.enterBlock(i)
	}
	var scratch Record
	for {
		ok, err := r.NextRecord(&scratch)
		if err != nil || !ok {
			return false, err
		}
		if scratch.DocID >= target {
			*out = scratch
			return true, nil
		}
	}
}

// CurrentBlockMaxScore returns the active block's score upper bound under
// scorer (§4.2).
func (r *Reader) CurrentBlockMaxScore(scorer block.Scorer) float64 {
	if r.blockIdx >= len(r.blocks) {
		return 0
	}
	return r.blocks[r.blockIdx].UpperBound(scorer)
}

// AdvanceToNextPromisingBlock skips forward over every remaining block
// whose score upper bound is strictly less than minScore, landing on the
// first block that could still contribute to a top-K heap (or EOF). This
// is the mechanism behind §4.2's block-max pruning.
func (r *Reader) AdvanceToNextPromisingBlock(minScore float64, scorer block.Scorer) {
	for r.blockIdx < len(r.blocks) && r.blocks[r.blockIdx].UpperBound(scorer) < minScore {
		r.enterBlock(r.blockIdx + 1)
	}
}
