// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package invindex

import (
	"math"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
	"github.com/RediSearch/RediSearch-sub004/internal/block"
)

// IndexBlock is a bounded-size slab of encoded postings plus the metadata
// needed to skip or score it without decoding (§3). The invariant
// first_id <= every doc_id in bytes <= last_id is maintained by the index
// that owns it; IndexBlock itself never mutates bytes out from under a
// live reader (§5: mutation bumps gc_marker instead).
type IndexBlock struct {
	FirstID    base.DocId
	LastID     base.DocId
	NumEntries uint32
	Bytes      []byte
	ScoreBound block.ScoreBound
}

// Serialize returns the on-disk byte form: header prefix + encoded bytes
// (§6's "Persisted on-disk posting format").
func (b *IndexBlock) Serialize() []byte {
	h := block.Header{FirstID: b.FirstID, LastID: b.LastID, NumEntries: b.NumEntries, ScoreBound: b.ScoreBound}
	out := h.Encode(nil)
	return append(out, b.Bytes...)
}

// DeserializeBlock parses a block previously written by Serialize.
func DeserializeBlock(data []byte) (*IndexBlock, error) {
	h, n, err := block.DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	return &IndexBlock{
		FirstID:    h.FirstID,
		LastID:     h.LastID,
		NumEntries: h.NumEntries,
		Bytes:      append([]byte(nil), data[n:]...),
		ScoreBound: h.ScoreBound,
	}, nil
}

// UpperBound returns the block-max score upper bound under scorer, or
// +Inf if the block carries no scoring metadata (§4.2 "Block-max score
// pruning"; "if any is missing the bound is +Inf").
func (b *IndexBlock) UpperBound(scorer block.Scorer) float64 {
	if scorer == nil || !b.ScoreBound.Present {
		return math.Inf(1)
	}
	return scorer.Upper(b.ScoreBound)
}
