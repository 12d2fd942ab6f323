// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package block implements the bounded-size slab of encoded postings that
// an inverted index is a sequence of (§3's IndexBlock, §4.2). Adapted from
// the teacher's sstable/table.go block-handle and header comment: instead
// of pebble's {offset, length, properties} block handle pointing into a
// file, a posting block header is {first_id, last_id, num_entries,
// optional score-bound triple}, varint-encoded, prefixed to the block's
// encoded bytes so the format round-trips bit-exact (§6).
package block

import (
	"math"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
	"github.com/RediSearch/RediSearch-sub004/internal/codec"
)

/*
A posting block's on-disk layout is:

	[first_id varint] [last_id varint] [num_entries varint]
	[has_score_bound byte] [max_freq varint] [max_doc_score float64-bits varint] [min_doc_len varint]   (iff has_score_bound == 1)
	[encoded postings ...]

The header is a prefix, not a suffix, unlike the teacher's trailer-based
sstable block (checksum + compression trailer): posting blocks are never
independently compressed or checksummed at this layer — see DESIGN.md for
why that teacher mechanism was dropped rather than adapted. Optional
block-scoring metadata is a triple written only when present; a reader
that finds has_score_bound == 0 treats the block's score upper bound as
+Inf, exactly as §4.2 specifies block-max pruning "falling through".
*/

// ScoreBound holds the block-level scoring metadata used for top-K
// pruning (§4.2 "Block-max score pruning"). A zero value with Present ==
// false means the bound is unknown and pruning must not be attempted for
// this block.
type ScoreBound struct {
	Present     bool
	MaxFreq     uint32
	MaxDocScore float64
	MinDocLen   uint32
}

// Header is the decoded form of a block's on-disk header.
type Header struct {
	FirstID    base.DocId
	LastID     base.DocId
	NumEntries uint32
	ScoreBound ScoreBound
}

// Encode appends the wire form of h to dst.
func (h Header) Encode(dst []byte) []byte {
	dst = codec.PutUvarint64(dst, uint64(h.FirstID))
	dst = codec.PutUvarint64(dst, uint64(h.LastID))
	dst = codec.PutUvarint32(dst, h.NumEntries)
	if h.ScoreBound.Present {
		dst = append(dst, 1)
		dst = codec.PutUvarint32(dst, h.ScoreBound.MaxFreq)
		dst = codec.PutUvarint64(dst, math.Float64bits(h.ScoreBound.MaxDocScore))
		dst = codec.PutUvarint32(dst, h.ScoreBound.MinDocLen)
	} else {
		dst = append(dst, 0)
	}
	return dst
}

// DecodeHeader decodes a block header from the front of src, returning the
// header and the number of bytes consumed.
func DecodeHeader(src []byte) (Header, int, error) {
	var h Header
	off := 0

	first, n, err := codec.Uvarint64(src[off:])
	if err != nil {
		return Header{}, 0, err
	}
	h.FirstID = base.DocId(first)
	off += n

	last, n, err := codec.Uvarint64(src[off:])
	if err != nil {
		return Header{}, 0, err
	}
	h.LastID = base.DocId(last)
	off += n

	num, n, err := codec.Uvarint32(src[off:])
	if err != nil {
		return Header{}, 0, err
	}
	h.NumEntries = num
	off += n

	if off >= len(src) {
		return Header{}, 0, base.ErrUnexpectedEOF
	}
	hasBound := src[off]
	off++
	if hasBound == 1 {
		maxFreq, n, err := codec.Uvarint32(src[off:])
		if err != nil {
			return Header{}, 0, err
		}
		off += n
		bits, n, err := codec.Uvarint64(src[off:])
		if err != nil {
			return Header{}, 0, err
		}
		off += n
		minLen, n, err := codec.Uvarint32(src[off:])
		if err != nil {
			return Header{}, 0, err
		}
		off += n
		h.ScoreBound = ScoreBound{
			Present:     true,
			MaxFreq:     maxFreq,
			MaxDocScore: math.Float64frombits(bits),
			MinDocLen:   minLen,
		}
	}
	return h, off, nil
}
