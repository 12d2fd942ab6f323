// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package numtree implements the numeric range tree (§4.4): a split-on-
// cardinality binary tree whose leaves hold per-range inverted indices.
// Nodes live in a flat arena addressed by index rather than pointer, per
// the teacher's and spec's shared preference for arena + indices over
// per-node heap allocation (§9): rotations become index swaps with no
// allocation, and the arena's backing array gives better locality than a
// pointer-chased tree.
package numtree

import (
	"github.com/RediSearch/RediSearch-sub004/internal/invindex"
)

// NodeIndex addresses a node within a NumericRangeTree's arena.
type NodeIndex int32

// nilNode is never a valid live node index.
const nilNode NodeIndex = -1

type nodeKind uint8

const (
	leafKind nodeKind = iota
	internalKind
)

// NumericRange is the payload of a leaf node: the value window it has
// observed so far, a cardinality sketch gating splits, and the per-range
// posting list of (doc_id, value) entries.
type NumericRange struct {
	Min, Max float64
	Count    uint64
	InvIdx   *invindex.InvertedIndex
	hll      *hll
}

// node is one arena slot: either a leaf (rangeData populated) or an
// internal split node (left/right/splitValue populated).
type node struct {
	kind       nodeKind
	parent     NodeIndex
	depth      int // max depth of the subtree rooted here; 1 for a leaf
	splitValue float64
	left       NodeIndex
	right      NodeIndex
	rangeData  *NumericRange
}

func (n *node) isLeaf() bool { return n.kind == leafKind }

// CardinalityEstimate reports this range's HyperLogLog cardinality
// estimate, the same value Insert compares against SplitCardinality; used
// by debug dumps (FT.DEBUG DUMP_NUMIDX) to show the split-gating signal
// distinct from InvIdx.UniqueDocs's exact count.
func (r *NumericRange) CardinalityEstimate() float64 { return r.hll.Estimate() }

// newLeafNode allocates a fresh NumericRange backed by an inverted index
// matching flags/multiValue, used both for the tree's initial root and for
// the two children produced by a split.
func newLeafNode(parent NodeIndex, flags invindex.Flags) (node, error) {
	idx, err := invindex.New(flags)
	if err != nil {
		return node{}, err
	}
	return node{
		kind:   leafKind,
		parent: parent,
		depth:  1,
		rangeData: &NumericRange{
			hll:    newHLL(),
			InvIdx: idx,
		},
	}, nil
}
