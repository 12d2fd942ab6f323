// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package invindex

import (
	"golang.org/x/sync/errgroup"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
	"github.com/RediSearch/RediSearch-sub004/internal/block"
	"github.com/RediSearch/RediSearch-sub004/internal/buffer"
)

// DocExists is the host-supplied predicate GC uses to decide whether a
// posting's document is still live (§4.2, §6's "document-exists
// predicate" callback).
type DocExists func(base.DocId) bool

// DocMeta supplies the per-document length and a-priori score GC repair
// needs to recompute a surviving block's score bound (§4.2 step 1: "call
// repair on survivors for metadata recomputation").
type DocMeta func(base.DocId) (length uint32, score float64)

// blockGroup is one contiguous run of survivors whose consecutive deltas
// all fit the codec's delta width, re-encoded as a standalone block.
type blockGroup struct {
	first, last base.DocId
	count       uint32
	bytes       []byte
	scoreBound  block.ScoreBound
}

// blockEdit describes how one original block changes after a GC scan.
// A block that becomes fully empty carries Empty == true and is dropped
// on Apply. A block whose survivors straddle one or more gaps too large
// for the codec's delta width is split into multiple groups (the open-
// question resolution for "block-split policy on GC").
type blockEdit struct {
	origIndex  int
	empty      bool
	removed    int
	bytesFreed int

	groups []blockGroup
}

// GcScanDelta is the output of the read-only scan phase (§4.2 step 1):
// a description of per-block edits, safe to compute while readers exist.
type GcScanDelta struct {
	edits []blockEdit
}

// Scan walks the index's current blocks (a snapshot — safe to run
// concurrently with readers) and computes which postings would be dropped
// by GC. It seals any in-progress block so the scan covers every posting,
// but otherwise leaves block contents untouched until Apply.
//
// Each block's decode-and-repair pass is independent of every other
// block's, so they run concurrently via errgroup — the same fan-out
// pattern pebble's own compaction machinery uses for independent
// per-sstable work — with results collected into a slice indexed by
// block position so Apply still sees edits in origIndex order regardless
// of completion order.
func (idx *InvertedIndex) Scan(exists DocExists, meta DocMeta) (*GcScanDelta, error) {
	// Seal the in-progress block first so every posting lives in idx.blocks
	// by a stable index; Apply only ever edits idx.blocks, so a dangling
	// current block would otherwise escape GC entirely.
	idx.mu.Lock()
	idx.sealCurrentBlock()
	blocks := append([]*IndexBlock(nil), idx.blocks...)
	idx.mu.Unlock()

	edits := make([]*blockEdit, len(blocks))
	var g errgroup.Group
	for bi, blk := range blocks {
		bi, blk := bi, blk
		g.Go(func() error {
			edit, err := idx.scanBlock(bi, blk, exists, meta)
			if err != nil {
				return err
			}
			edits[bi] = edit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	delta := &GcScanDelta{}
	for _, e := range edits {
		if e != nil {
			delta.edits = append(delta.edits, *e)
		}
	}
	return delta, nil
}

// scanBlock computes blk's edit, or nil if none of its postings are
// dropped by GC.
func (idx *InvertedIndex) scanBlock(bi int, blk *IndexBlock, exists DocExists, meta DocMeta) (*blockEdit, error) {
	var survivors []Record
	cur := buffer.Wrap(blk.Bytes)
	var prev base.DocId
	removed := 0
	for !cur.AtEOF() {
		rec, _, err := idx.codec.Decode(cur, prev)
		if err != nil {
			return nil, err
		}
		prev = rec.DocID
		if exists(rec.DocID) {
			survivors = append(survivors, rec)
		} else {
			removed++
		}
	}
	if removed == 0 {
		return nil, nil // no edit needed
	}
	if len(survivors) == 0 {
		return &blockEdit{
			origIndex:  bi,
			empty:      true,
			removed:    removed,
			bytesFreed: len(blk.Bytes),
		}, nil
	}

	edit := idx.repairSurvivors(bi, survivors, meta)
	edit.removed = removed
	edit.bytesFreed = len(blk.Bytes)
	for _, grp := range edit.groups {
		edit.bytesFreed -= len(grp.bytes)
	}
	return &edit, nil
}

// repairSurvivors re-encodes a block's surviving postings, splitting at
// every delta-overflowing gap (§4.2 "Splitting on GC"): the result is the
// maximal partition of survivors into runs whose consecutive doc_id
// deltas all fit the codec's width.
func (idx *InvertedIndex) repairSurvivors(origIndex int, survivors []Record, meta DocMeta) blockEdit {
	var groups []blockGroup
	start := 0
	for i := 1; i <= len(survivors); i++ {
		if i < len(survivors) && idx.codec.FitsDelta(survivors[i-1].DocID, survivors[i].DocID) {
			continue
		}
		run := survivors[start:i]
		buf, acc := idx.encodeGroup(run, meta)
		groups = append(groups, blockGroup{
			first:      run[0].DocID,
			last:       run[len(run)-1].DocID,
			count:      uint32(len(run)),
			bytes:      buf,
			scoreBound: acc.Bound(),
		})
		start = i
	}
	return blockEdit{origIndex: origIndex, groups: groups}
}

func (idx *InvertedIndex) encodeGroup(recs []Record, meta DocMeta) ([]byte, *block.Accumulator) {
	buf := buffer.New()
	acc := block.NewAccumulator(idx.trackScore)
	var prev base.DocId
	for _, rec := range recs {
		idx.codec.Encode(buf, prev, rec)
		prev = rec.DocID
		if idx.trackScore && meta != nil {
			length, score := meta(rec.DocID)
			acc.Observe(rec.Freq, score, length)
		}
	}
	return buf.Bytes(), acc
}

// GcResult summarizes the effect of Apply.
type GcResult struct {
	EntriesRemoved int
	BytesFreed     int
}

// Apply mutates the index under its exclusive lock, realizing the edits a
// prior Scan computed (§4.2 step 2). Applying a stale delta (computed
// against blocks that have since been further mutated) is safe but may
// undercount; callers should Scan immediately before Apply under the same
// critical section when precision matters.
func (idx *InvertedIndex) Apply(delta *GcScanDelta) GcResult {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	var result GcResult
	// Apply edits back-to-front so origIndex references into idx.blocks
	// (which only shrinks/grows at edited positions) stay valid.
	for i := len(delta.edits) - 1; i >= 0; i-- {
		e := delta.edits[i]
		if e.origIndex >= len(idx.blocks) {
			continue // block no longer exists (e.g. already sealed away); skip
		}
		result.EntriesRemoved += e.removed
		result.BytesFreed += e.bytesFreed

		if e.empty {
			idx.blocks = append(idx.blocks[:e.origIndex], idx.blocks[e.origIndex+1:]...)
			continue
		}

		replacement := make([]*IndexBlock, 0, len(e.groups))
		for _, g := range e.groups {
			replacement = append(replacement, &IndexBlock{
				FirstID:    g.first,
				LastID:     g.last,
				NumEntries: g.count,
				Bytes:      g.bytes,
				ScoreBound: g.scoreBound,
			})
		}
		tail := append([]*IndexBlock(nil), idx.blocks[e.origIndex+1:]...)
		idx.blocks = append(idx.blocks[:e.origIndex], replacement...)
		idx.blocks = append(idx.blocks, tail...)
	}

	idx.uniqueDocs = idx.recountUniqueDocs()
	idx.gcMarker++
	return result
}

func (idx *InvertedIndex) recountUniqueDocs() uint64 {
	var n uint64
	var last base.DocId
	haveLast := false
	for _, b := range idx.blocks {
		cur := buffer.Wrap(b.Bytes)
		var prev base.DocId
		for !cur.AtEOF() {
			rec, _, err := idx.codec.Decode(cur, prev)
			if err != nil {
				break
			}
			prev = rec.DocID
			if !haveLast || rec.DocID != last {
				n++
			}
			last = rec.DocID
			haveLast = true
		}
	}
	if idx.curCount > 0 {
		cur := buffer.Wrap(idx.curBuf.Bytes())
		var prev base.DocId
		for !cur.AtEOF() {
			rec, _, err := idx.codec.Decode(cur, prev)
			if err != nil {
				break
			}
			prev = rec.DocID
			if !haveLast || rec.DocID != last {
				n++
			}
			last = rec.DocID
			haveLast = true
		}
	}
	return n
}

// GcPolicy decides when GC should run, supplementing §4.2 with the
// scheduling policy original_source/c_entrypoint/inverted_index_ffi/src/fork_gc.rs
// adds: GC triggers once the tombstone ratio crosses a threshold, not on
// every call.
type GcPolicy struct {
	// TombstoneRatioThreshold triggers GC once deleted/total exceeds it.
	TombstoneRatioThreshold float64
}

// Stats is the minimal input GcPolicy.ShouldRun needs.
type Stats struct {
	TotalEntries   uint64
	DeletedEntries uint64
}

// ShouldRun reports whether GC should be triggered for the given stats.
func (p GcPolicy) ShouldRun(s Stats) bool {
	if s.TotalEntries == 0 {
		return false
	}
	ratio := float64(s.DeletedEntries) / float64(s.TotalEntries)
	return ratio > p.TombstoneRatioThreshold
}
