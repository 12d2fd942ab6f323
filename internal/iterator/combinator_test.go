// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package iterator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
)

func drain(t *testing.T, it QueryIterator) []base.DocId {
	var ids []base.DocId
	for {
		res, err := it.Read()
		require.NoError(t, err)
		if res == nil {
			require.True(t, it.AtEOF())
			return ids
		}
		ids = append(ids, res.DocID)
	}
}

func TestIntersectionExactSet(t *testing.T) {
	a := NewIdList([]base.DocId{1, 2, 3, 5, 8}, true)
	b := NewIdList([]base.DocId{2, 3, 4, 8, 9}, true)
	x := NewIntersection([]QueryIterator{a, b}, IntersectionFull)
	require.Equal(t, []base.DocId{2, 3, 8}, drain(t, x))
}

func TestIntersectionSkipToFindsExactMemberWithoutOverrunning(t *testing.T) {
	// Regression: advance() used to call children[0].Read() unconditionally
	// to seed the pivot, which re-advanced past the record SkipTo had just
	// landed both children on exactly, silently skipping a real member.
	a := NewIdList([]base.DocId{5, 10, 15}, true)
	b := NewIdList([]base.DocId{5, 20}, true)
	x := NewIntersection([]QueryIterator{a, b}, IntersectionFull)

	out, err := x.SkipTo(5)
	require.NoError(t, err)
	require.True(t, out.Found)
	require.Equal(t, base.DocId(5), out.Result.DocID)
}

func TestIntersectionSkipToPastOneMemberFindsNext(t *testing.T) {
	a := NewIdList([]base.DocId{1, 5, 10}, true)
	b := NewIdList([]base.DocId{1, 10}, true)
	x := NewIntersection([]QueryIterator{a, b}, IntersectionFull)

	out, err := x.SkipTo(3)
	require.NoError(t, err)
	require.False(t, out.Found)
	require.Equal(t, base.DocId(10), out.Result.DocID)

	_, err = x.Read()
	require.NoError(t, err)
}

func TestIntersectionReadThenSkipToContinuesCorrectly(t *testing.T) {
	a := NewIdList([]base.DocId{2, 4, 6, 8}, true)
	b := NewIdList([]base.DocId{2, 4, 6, 8}, true)
	x := NewIntersection([]QueryIterator{a, b}, IntersectionFull)

	res, err := x.Read()
	require.NoError(t, err)
	require.Equal(t, base.DocId(2), res.DocID)

	out, err := x.SkipTo(6)
	require.NoError(t, err)
	require.True(t, out.Found)
	require.Equal(t, base.DocId(6), out.Result.DocID)
}

func TestIntersectionNumEstimatedIsMinOfChildren(t *testing.T) {
	a := NewIdList([]base.DocId{1, 2, 3}, true)
	b := NewIdList([]base.DocId{1, 2, 3, 4, 5, 6, 7}, true)
	x := NewIntersection([]QueryIterator{a, b}, IntersectionFull)
	require.LessOrEqual(t, x.NumEstimated(), uint64(3))
}

func TestIntersectionAggregateCarriesChildren(t *testing.T) {
	a := NewIdList([]base.DocId{5}, true)
	b := NewIdList([]base.DocId{5}, true)
	x := NewIntersection([]QueryIterator{a, b}, IntersectionFull)
	res, err := x.Read()
	require.NoError(t, err)
	require.Equal(t, base.DocId(5), res.DocID)
	require.Equal(t, KindAggregate, res.Kind)
	require.Len(t, res.Children, 2)
}

func TestIntersectionEmptyWhenOneChildEmpty(t *testing.T) {
	a := NewIdList([]base.DocId{1, 2, 3}, true)
	x := NewIntersection([]QueryIterator{a, NewEmpty()}, IntersectionFull)
	require.Empty(t, drain(t, x))
}

func TestUnionExactSetNoDuplicates(t *testing.T) {
	a := NewIdList([]base.DocId{1, 3, 5}, true)
	b := NewIdList([]base.DocId{2, 3, 4}, true)
	u := NewUnion([]QueryIterator{a, b}, UnionFull)
	require.Equal(t, []base.DocId{1, 2, 3, 4, 5}, drain(t, u))
}

func TestUnionAggregateAtSharedID(t *testing.T) {
	a := NewIdList([]base.DocId{5}, true)
	b := NewIdList([]base.DocId{5}, true)
	u := NewUnion([]QueryIterator{a, b}, UnionFull)
	res, err := u.Read()
	require.NoError(t, err)
	require.Equal(t, base.DocId(5), res.DocID)
	require.Len(t, res.Children, 2)
}

func TestUnionManyChildrenUsesHeapPath(t *testing.T) {
	children := make([]QueryIterator, 0, 10)
	for i := 0; i < 10; i++ {
		children = append(children, NewIdList([]base.DocId{base.DocId(i + 1)}, true))
	}
	u := NewUnion(children, UnionFull)
	require.Equal(t, []base.DocId{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, drain(t, u))
}

func TestNotComplementsAgainstMaxDocID(t *testing.T) {
	child := NewIdList([]base.DocId{2, 4}, true)
	n := NewNot(child, 5, time.Time{})
	require.Equal(t, []base.DocId{1, 3, 5}, drain(t, n))
}

func TestNotSkipToEnforcesPrecondition(t *testing.T) {
	child := NewIdList(nil, true)
	n := NewNot(child, 10, time.Time{})
	_, err := n.SkipTo(3)
	require.NoError(t, err)
	_, err = n.SkipTo(2)
	require.Error(t, err)
}

func TestOptionalAlwaysYieldsAcrossRange(t *testing.T) {
	child := NewIdList([]base.DocId{2, 4}, true)
	o := NewOptional(child, 5)
	ids := drain(t, o)
	require.Equal(t, []base.DocId{1, 2, 3, 4, 5}, ids)
}

func TestOptionalYieldsChildResultWhenPresent(t *testing.T) {
	child := &fakeMaskIterator{entries: []maskEntry{{id: 3, mask: base.FieldMask128{1, 0}}}}
	o := NewOptional(child, 3)
	_, _ = o.Read()
	_, _ = o.Read()
	res, err := o.Read()
	require.NoError(t, err)
	require.Equal(t, base.DocId(3), res.DocID)
	require.Equal(t, KindTerm, res.Kind)
}

func TestFilterMaskReaderDropsNonMatching(t *testing.T) {
	child := &fakeMaskIterator{
		entries: []maskEntry{
			{id: 1, mask: base.FieldMask128{1, 0}},
			{id: 2, mask: base.FieldMask128{2, 0}},
			{id: 3, mask: base.FieldMask128{1, 0}},
		},
	}
	f := NewFilterMaskReader(child, base.FieldMask128{1, 0})
	require.Equal(t, []base.DocId{1, 3}, drain(t, f))
}

func TestNumericFilterAcceptsBounds(t *testing.T) {
	nf := NumericFilter{Min: 0, Max: 10, MinInclusive: true, MaxInclusive: false}
	require.True(t, nf.Accepts(0))
	require.False(t, nf.Accepts(10))
	require.True(t, nf.Accepts(9.999))
	require.False(t, nf.Accepts(-0.01))
}

func TestProfileCountsReadAndSkip(t *testing.T) {
	child := NewIdList([]base.DocId{1, 2, 3, 4}, true)
	p := NewProfile(child)
	_, _ = p.Read()
	_, _ = p.Read()
	_, _ = p.SkipTo(4)
	require.Equal(t, uint64(2), p.Stats.ReadCalls)
	require.Equal(t, uint64(1), p.Stats.SkipCalls)
	require.Equal(t, int64(3), p.Stats.Hist.TotalCount())
}

func TestProfilePassesThroughResults(t *testing.T) {
	child := NewIdList([]base.DocId{7, 9}, true)
	p := NewProfile(child)
	require.Equal(t, []base.DocId{7, 9}, drain(t, p))
}

// fakeMaskIterator is a minimal QueryIterator exercising FilterMaskReader
// without requiring an inverted index fixture.
type maskEntry struct {
	id   base.DocId
	mask base.FieldMask128
}

type fakeMaskIterator struct {
	entries []maskEntry
	pos     int
	cur     IndexResult
}

func (f *fakeMaskIterator) Read() (*IndexResult, error) {
	if f.pos >= len(f.entries) {
		return nil, nil
	}
	e := f.entries[f.pos]
	f.pos++
	f.cur = IndexResult{Kind: KindTerm, DocID: e.id, FieldMask: e.mask, Weight: 1}
	return &f.cur, nil
}
func (f *fakeMaskIterator) SkipTo(target base.DocId) (*SkipOutcome, error) {
	for {
		res, err := f.Read()
		if err != nil || res == nil {
			return &SkipOutcome{Found: false}, err
		}
		if res.DocID >= target {
			return &SkipOutcome{Found: res.DocID == target, Result: res}, nil
		}
	}
}
func (f *fakeMaskIterator) Rewind()                               { f.pos = 0 }
func (f *fakeMaskIterator) Revalidate() (RevalidateStatus, error) { return RevalidateOK, nil }
func (f *fakeMaskIterator) Current() *IndexResult {
	if f.pos == 0 || f.pos > len(f.entries) {
		return nil
	}
	return &f.cur
}
func (f *fakeMaskIterator) LastDocID() base.DocId {
	if f.pos == 0 {
		return base.InvalidDocId
	}
	return f.entries[f.pos-1].id
}
func (f *fakeMaskIterator) AtEOF() bool          { return f.pos >= len(f.entries) }
func (f *fakeMaskIterator) NumEstimated() uint64 { return uint64(len(f.entries)) }
func (f *fakeMaskIterator) Tag() TypeTag         { return TagTerm }
