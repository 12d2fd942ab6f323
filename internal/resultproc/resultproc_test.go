// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package resultproc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
	"github.com/RediSearch/RediSearch-sub004/internal/docmeta"
	"github.com/RediSearch/RediSearch-sub004/internal/iterator"
)

// termEntry/fakeTermIterator is a minimal QueryIterator yielding KindTerm
// results carrying a Freq/QueryTerm, used to drive Scorer without an
// inverted-index fixture.
type termEntry struct {
	id   base.DocId
	freq uint32
	qt   *docmeta.QueryTerm
}

type fakeTermIterator struct {
	entries []termEntry
	pos     int
	cur     iterator.IndexResult
}

func (f *fakeTermIterator) Read() (*iterator.IndexResult, error) {
	if f.pos >= len(f.entries) {
		return nil, nil
	}
	e := f.entries[f.pos]
	f.pos++
	f.cur = iterator.IndexResult{Kind: iterator.KindTerm, DocID: e.id, Freq: e.freq, Weight: 1, QueryTerm: e.qt}
	return &f.cur, nil
}
func (f *fakeTermIterator) SkipTo(target base.DocId) (*iterator.SkipOutcome, error) {
	for f.pos < len(f.entries) && f.entries[f.pos].id < target {
		f.pos++
	}
	res, err := f.Read()
	return &iterator.SkipOutcome{Found: res != nil && res.DocID == target, Result: res}, err
}
func (f *fakeTermIterator) Rewind() { f.pos = 0 }
func (f *fakeTermIterator) Revalidate() (iterator.RevalidateStatus, error) {
	return iterator.RevalidateOK, nil
}
func (f *fakeTermIterator) Current() *iterator.IndexResult {
	if f.pos == 0 || f.pos > len(f.entries) {
		return nil
	}
	return &f.cur
}
func (f *fakeTermIterator) LastDocID() base.DocId {
	if f.pos == 0 {
		return base.InvalidDocId
	}
	return f.cur.DocID
}
func (f *fakeTermIterator) AtEOF() bool           { return f.pos >= len(f.entries) }
func (f *fakeTermIterator) NumEstimated() uint64  { return uint64(len(f.entries)) }
func (f *fakeTermIterator) Tag() iterator.TypeTag { return iterator.TagTerm }

func drainAll(t *testing.T, p ResultProcessor) []*SearchResult {
	t.Helper()
	var out []*SearchResult
	for {
		res, err := p.Next()
		require.NoError(t, err)
		if res == nil {
			return out
		}
		out = append(out, res)
	}
}

func TestIndexAdaptsIteratorReads(t *testing.T) {
	idx := NewIndex(iterator.NewIdList([]base.DocId{1, 2, 3}, true))
	results := drainAll(t, idx)
	require.Len(t, results, 3)
	require.Equal(t, base.DocId(2), results[1].DocID)
}

func TestCounterDrainsWithoutYielding(t *testing.T) {
	idx := NewIndex(iterator.NewIdList([]base.DocId{1, 2, 3, 4}, true))
	c := NewCounter(idx)
	results := drainAll(t, c)
	require.Empty(t, results)
	require.Equal(t, 4, c.Count())
}

func TestCounterIsIdempotentAfterDrain(t *testing.T) {
	idx := NewIndex(iterator.NewIdList([]base.DocId{1}, true))
	c := NewCounter(idx)
	_, _ = c.Next()
	res, err := c.Next()
	require.NoError(t, err)
	require.Nil(t, res)
	require.Equal(t, 1, c.Count())
}

func TestPagerSkipsOffsetAndCapsLimit(t *testing.T) {
	idx := NewIndex(iterator.NewIdList([]base.DocId{1, 2, 3, 4, 5}, true))
	p := NewPager(idx, 2, 2)
	results := drainAll(t, p)
	require.Len(t, results, 2)
	require.Equal(t, base.DocId(3), results[0].DocID)
	require.Equal(t, base.DocId(4), results[1].DocID)
}

func TestPagerOffsetBeyondUpstreamYieldsNothing(t *testing.T) {
	idx := NewIndex(iterator.NewIdList([]base.DocId{1, 2}, true))
	p := NewPager(idx, 10, 5)
	require.Empty(t, drainAll(t, p))
}

func TestLoaderAttachesMetadataAndDropsMisses(t *testing.T) {
	table := docmeta.NewTable()
	require.NoError(t, table.Insert(docmeta.NewDocumentMetadata(1, "doc:1", 10, 0.5)))
	require.NoError(t, table.Insert(docmeta.NewDocumentMetadata(3, "doc:3", 20, 0.9)))
	// DocID 2 is intentionally absent, simulating a deletion race.
	idx := NewIndex(iterator.NewIdList([]base.DocId{1, 2, 3}, true))
	l := NewLoader(idx, table)
	results := drainAll(t, l)
	require.Len(t, results, 2)
	require.Equal(t, "doc:1", results[0].DMD.Key)
	require.Equal(t, "doc:3", results[1].DMD.Key)
}

func TestScorerSumsTermFrequencyWeightedByIdf(t *testing.T) {
	qt := docmeta.NewQueryTerm("hello", 2.0, 1.5)
	child := &fakeTermIterator{entries: []termEntry{{id: 1, freq: 3, qt: qt}}}
	idx := NewIndex(child)
	s := NewScorer(idx, docmeta.ScorerTFIDF)
	res, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, 6.0, res.Score) // freq(3) * weight(1) * idf(2.0)
}

func TestScorerBM25UsesBm25Idf(t *testing.T) {
	qt := docmeta.NewQueryTerm("hello", 2.0, 1.5)
	child := &fakeTermIterator{entries: []termEntry{{id: 1, freq: 2, qt: qt}}}
	idx := NewIndex(child)
	s := NewScorer(idx, docmeta.ScorerBM25)
	res, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, 3.0, res.Score) // freq(2) * weight(1) * bm25_idf(1.5)
}

func TestScorerDocScoreReadsFromMetadataNotIndexResult(t *testing.T) {
	table := docmeta.NewTable()
	require.NoError(t, table.Insert(docmeta.NewDocumentMetadata(1, "doc:1", 10, 0.75)))
	idx := NewIndex(iterator.NewIdList([]base.DocId{1}, true))
	l := NewLoader(idx, table)
	s := NewScorer(l, docmeta.ScorerDocScore)
	res, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, 0.75, res.Score)
}

func TestSorterYieldsDescendingByScore(t *testing.T) {
	entries := []termEntry{
		{id: 1, freq: 1, qt: docmeta.NewQueryTerm("a", 1, 1)},
		{id: 2, freq: 5, qt: docmeta.NewQueryTerm("a", 1, 1)},
		{id: 3, freq: 3, qt: docmeta.NewQueryTerm("a", 1, 1)},
	}
	idx := NewIndex(&fakeTermIterator{entries: entries})
	s := NewScorer(idx, docmeta.ScorerTFIDF)
	sorter := NewSorter(s, 0)
	results := drainAll(t, sorter)
	require.Len(t, results, 3)
	require.Equal(t, base.DocId(2), results[0].DocID)
	require.Equal(t, base.DocId(3), results[1].DocID)
	require.Equal(t, base.DocId(1), results[2].DocID)
}

func TestSorterBoundedKKeepsOnlyTopK(t *testing.T) {
	entries := []termEntry{
		{id: 1, freq: 1, qt: docmeta.NewQueryTerm("a", 1, 1)},
		{id: 2, freq: 5, qt: docmeta.NewQueryTerm("a", 1, 1)},
		{id: 3, freq: 3, qt: docmeta.NewQueryTerm("a", 1, 1)},
		{id: 4, freq: 9, qt: docmeta.NewQueryTerm("a", 1, 1)},
	}
	idx := NewIndex(&fakeTermIterator{entries: entries})
	s := NewScorer(idx, docmeta.ScorerTFIDF)
	sorter := NewSorter(s, 2)
	results := drainAll(t, sorter)
	require.Len(t, results, 2)
	require.Equal(t, base.DocId(4), results[0].DocID)
	require.Equal(t, base.DocId(2), results[1].DocID)
}

func TestFullChainScoreSortPage(t *testing.T) {
	table := docmeta.NewTable()
	for i := 1; i <= 5; i++ {
		require.NoError(t, table.Insert(docmeta.NewDocumentMetadata(base.DocId(i), "doc", 10, 0)))
	}
	entries := []termEntry{
		{id: 1, freq: 1, qt: docmeta.NewQueryTerm("a", 1, 1)},
		{id: 2, freq: 4, qt: docmeta.NewQueryTerm("a", 1, 1)},
		{id: 3, freq: 2, qt: docmeta.NewQueryTerm("a", 1, 1)},
		{id: 4, freq: 5, qt: docmeta.NewQueryTerm("a", 1, 1)},
		{id: 5, freq: 3, qt: docmeta.NewQueryTerm("a", 1, 1)},
	}
	idx := NewIndex(&fakeTermIterator{entries: entries})
	l := NewLoader(idx, table)
	s := NewScorer(l, docmeta.ScorerTFIDF)
	sorter := NewSorter(s, 0)
	pager := NewPager(sorter, 1, 2)
	results := drainAll(t, pager)
	require.Len(t, results, 2)
	// Descending by score: id4(5), id2(4), id5(3), id3(2), id1(1).
	// offset=1 skips id4; limit=2 yields id2 then id5.
	require.Equal(t, base.DocId(2), results[0].DocID)
	require.Equal(t, base.DocId(5), results[1].DocID)
}
