// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package numtree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
	"github.com/RediSearch/RediSearch-sub004/internal/invindex"
)

// emptyInvIdxLike returns a fresh, empty inverted index with the same
// flags as src, standing in for "GC deleted every document in this leaf".
func emptyInvIdxLike(t *testing.T, src *invindex.InvertedIndex) *invindex.InvertedIndex {
	idx, err := invindex.New(src.Flags())
	require.NoError(t, err)
	return idx
}

func smallTree(t *testing.T) *NumericRangeTree {
	tr, err := New(Options{SplitThreshold: 4, SplitCardinality: 2, RebalanceThreshold: 1})
	require.NoError(t, err)
	return tr
}

func TestInsertCountsDistinctRecords(t *testing.T) {
	tr := smallTree(t)
	for i := 0; i < 10; i++ {
		_, err := tr.Insert(base.DocId(i+1), float64(i))
		require.NoError(t, err)
	}
	leaves := tr.Find(-1e9, 1e9, true, true)
	var total uint64
	for _, l := range leaves {
		total += l.Count
	}
	require.Equal(t, uint64(10), total)
}

func TestMemUsageMonotonic(t *testing.T) {
	tr := smallTree(t)
	prev := tr.MemUsage()
	for i := 0; i < 20; i++ {
		_, err := tr.Insert(base.DocId(i+1), float64(i))
		require.NoError(t, err)
		cur := tr.MemUsage()
		require.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestDuplicateDocIDRejectedWithoutMultiValue(t *testing.T) {
	tr := smallTree(t)
	_, err := tr.Insert(5, 10.0)
	require.NoError(t, err)
	res, err := tr.Insert(5, 20.0)
	require.NoError(t, err)
	require.False(t, res.Changed)
	leaves := tr.Find(-1e9, 1e9, true, true)
	var total uint64
	for _, l := range leaves {
		total += l.Count
	}
	require.Equal(t, uint64(1), total)
}

func TestDuplicateDocIDAcceptedWithMultiValue(t *testing.T) {
	tr, err := New(Options{MultiValue: true, SplitThreshold: 100, SplitCardinality: 100})
	require.NoError(t, err)
	_, err = tr.Insert(5, 10.0)
	require.NoError(t, err)
	res, err := tr.Insert(5, 20.0)
	require.NoError(t, err)
	require.True(t, res.Changed)
	leaves := tr.Find(-1e9, 1e9, true, true)
	var total uint64
	for _, l := range leaves {
		total += l.Count
	}
	require.Equal(t, uint64(2), total)
}

func TestSplitProducesTwoLeaves(t *testing.T) {
	tr := smallTree(t)
	for i := 0; i < 20; i++ {
		_, err := tr.Insert(base.DocId(i+1), float64(i))
		require.NoError(t, err)
	}
	require.Greater(t, tr.NumLeaves(), 1)
}

func TestFindEveryEntryInExactlyOneLeaf(t *testing.T) {
	tr := smallTree(t)
	n := 50
	for i := 0; i < n; i++ {
		_, err := tr.Insert(base.DocId(i+1), float64(i))
		require.NoError(t, err)
	}
	leaves := tr.Find(-1e9, 1e9, true, true)
	var total uint64
	for _, l := range leaves {
		total += l.Count
	}
	require.Equal(t, uint64(n), total)
}

func TestFindWindowExcludesOutOfRangeLeaves(t *testing.T) {
	tr := smallTree(t)
	for i := 0; i < 50; i++ {
		_, err := tr.Insert(base.DocId(i+1), float64(i))
		require.NoError(t, err)
	}
	leaves := tr.Find(1000, 2000, true, true)
	require.Empty(t, leaves)
}

func TestFindOverlapRespectsInclusivity(t *testing.T) {
	tr := smallTree(t)
	for i := 0; i < 5; i++ {
		_, err := tr.Insert(base.DocId(i+1), float64(i))
		require.NoError(t, err)
	}
	leaves := tr.Find(0, 4, true, true)
	require.NotEmpty(t, leaves)
	var hasZero bool
	for _, l := range leaves {
		if l.Min <= 0 && l.Max >= 0 {
			hasZero = true
		}
	}
	require.True(t, hasZero)
}

func TestTrimEmptyLeavesRemovesExhaustedSplits(t *testing.T) {
	tr := smallTree(t)
	for i := 0; i < 20; i++ {
		_, err := tr.Insert(base.DocId(i+1), float64(i))
		require.NoError(t, err)
	}
	before := tr.NumLeaves()
	require.Greater(t, before, 1)

	// Drain every leaf's inverted index to simulate a GC that deleted every
	// document, then confirm trimming collapses the tree back toward a
	// single leaf.
	var idxOut NodeIndex
	var entry IterEntry
	it := tr.IndexedIter()
	for it(&idxOut, &entry) {
		if entry.IsLeaf {
			entry.Range.Count = 0
			entry.Range.InvIdx = emptyInvIdxLike(t, entry.Range.InvIdx)
		}
	}
	removed := tr.TrimEmptyLeaves()
	require.Greater(t, removed, 0)
	require.Equal(t, 1, tr.NumLeaves())
}

func TestIterVisitsEveryLeaf(t *testing.T) {
	tr := smallTree(t)
	for i := 0; i < 30; i++ {
		_, err := tr.Insert(base.DocId(i+1), float64(i))
		require.NoError(t, err)
	}
	var leafCount int
	var entry IterEntry
	it := tr.Iter()
	for it(&entry) {
		if entry.IsLeaf {
			leafCount++
		}
	}
	require.Equal(t, tr.NumLeaves(), leafCount)
}
