// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package iterator

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
	"github.com/RediSearch/RediSearch-sub004/internal/invindex"
)

// Empty always reports EOF and never produces a result (§4.3.1).
type Empty struct {
	cur IndexResult
}

func NewEmpty() *Empty { return &Empty{} }

func (e *Empty) Read() (*IndexResult, error)             { return nil, nil }
func (e *Empty) SkipTo(base.DocId) (*SkipOutcome, error) { return &SkipOutcome{Found: false}, nil }
func (e *Empty) Rewind()                                 {}
func (e *Empty) Revalidate() (RevalidateStatus, error)   { return RevalidateOK, nil }
func (e *Empty) Current() *IndexResult                   { return nil }
func (e *Empty) LastDocID() base.DocId                   { return base.InvalidDocId }
func (e *Empty) AtEOF() bool                             { return true }
func (e *Empty) NumEstimated() uint64                    { return 0 }
func (e *Empty) Tag() TypeTag                            { return TagEmpty }

// Wildcard yields 1..=topID as virtual results (§4.3.1).
type Wildcard struct {
	topID base.DocId
	next  base.DocId
	cur   IndexResult
	eof   bool
}

func NewWildcard(topID base.DocId) *Wildcard {
	return &Wildcard{topID: topID, next: 1}
}

func (w *Wildcard) Read() (*IndexResult, error) {
	if w.eof || w.next > w.topID {
		w.eof = true
		return nil, nil
	}
	w.cur = IndexResult{Kind: KindVirtual, DocID: w.next, Weight: 1}
	w.next++
	return &w.cur, nil
}

func (w *Wildcard) SkipTo(target base.DocId) (*SkipOutcome, error) {
	if target <= w.LastDocID() {
		return nil, errors.Wrapf(base.ErrQueryError, "wildcard: skip_to(%d) must exceed last_doc_id(%d)", target, w.LastDocID())
	}
	if target > w.topID {
		w.next = w.topID + 1
		w.eof = true
		return &SkipOutcome{Found: false}, nil
	}
	w.next = target
	res, _ := w.Read()
	return &SkipOutcome{Found: res != nil, Result: res}, nil
}

func (w *Wildcard) Rewind()                               { w.next = 1; w.eof = false }
func (w *Wildcard) Revalidate() (RevalidateStatus, error) { return RevalidateOK, nil }
func (w *Wildcard) Current() *IndexResult {
	if w.next == 1 || w.eof {
		return nil
	}
	return &w.cur
}
func (w *Wildcard) LastDocID() base.DocId {
	if w.next <= 1 {
		return base.InvalidDocId
	}
	return w.next - 1
}
func (w *Wildcard) AtEOF() bool          { return w.eof }
func (w *Wildcard) NumEstimated() uint64 { return uint64(w.topID) }
func (w *Wildcard) Tag() TypeTag         { return TagWildcard }

// IdList wraps a fixed slice of doc IDs (§4.3.1). When Sorted, SkipTo binary
// searches; otherwise it scans linearly.
type IdList struct {
	ids    []base.DocId
	sorted bool
	pos    int
	cur    IndexResult
}

func NewIdList(ids []base.DocId, sorted bool) *IdList {
	return &IdList{ids: ids, sorted: sorted, pos: -1}
}

func (l *IdList) Read() (*IndexResult, error) {
	l.pos++
	if l.pos >= len(l.ids) {
		l.pos = len(l.ids)
		return nil, nil
	}
	l.cur = IndexResult{Kind: KindVirtual, DocID: l.ids[l.pos], Weight: 1}
	return &l.cur, nil
}

func (l *IdList) SkipTo(target base.DocId) (*SkipOutcome, error) {
	if target <= l.LastDocID() {
		return nil, errors.Wrapf(base.ErrQueryError, "id_list: skip_to(%d) must exceed last_doc_id(%d)", target, l.LastDocID())
	}
	if l.sorted {
		i := sort.Search(len(l.ids), func(i int) bool { return l.ids[i] >= target })
		l.pos = i
	} else {
		for l.pos < len(l.ids) && (l.pos < 0 || l.ids[l.pos] < target) {
			l.pos++
		}
	}
	if l.pos >= len(l.ids) {
		return &SkipOutcome{Found: false}, nil
	}
	l.cur = IndexResult{Kind: KindVirtual, DocID: l.ids[l.pos], Weight: 1}
	return &SkipOutcome{Found: l.ids[l.pos] == target, Result: &l.cur}, nil
}

func (l *IdList) Rewind()                               { l.pos = -1 }
func (l *IdList) Revalidate() (RevalidateStatus, error) { return RevalidateOK, nil }
func (l *IdList) Current() *IndexResult {
	if l.pos < 0 || l.pos >= len(l.ids) {
		return nil
	}
	return &l.cur
}
func (l *IdList) LastDocID() base.DocId {
	if l.pos < 0 || l.pos >= len(l.ids) {
		return base.InvalidDocId
	}
	return l.ids[l.pos]
}
func (l *IdList) AtEOF() bool          { return l.pos >= len(l.ids) }
func (l *IdList) NumEstimated() uint64 { return uint64(len(l.ids)) }
func (l *IdList) Tag() TypeTag         { return TagIdList }

// MetricPair is one (doc_id, metric_value) entry a Metric iterator yields.
type MetricPair struct {
	DocID base.DocId
	Value float64
}

// Metric yields sorted-by-id (doc_id, metric_value) pairs (§4.3.1), e.g. a
// precomputed geo-distance or vector-similarity score stream.
type Metric struct {
	pairs []MetricPair
	pos   int
	cur   IndexResult
}

func NewMetric(pairs []MetricPair) *Metric {
	return &Metric{pairs: pairs, pos: -1}
}

func (m *Metric) Read() (*IndexResult, error) {
	m.pos++
	if m.pos >= len(m.pairs) {
		m.pos = len(m.pairs)
		return nil, nil
	}
	p := m.pairs[m.pos]
	m.cur = IndexResult{Kind: KindMetric, DocID: p.DocID, Value: p.Value, Weight: 1}
	return &m.cur, nil
}

func (m *Metric) SkipTo(target base.DocId) (*SkipOutcome, error) {
	if target <= m.LastDocID() {
		return nil, errors.Wrapf(base.ErrQueryError, "metric: skip_to(%d) must exceed last_doc_id(%d)", target, m.LastDocID())
	}
	i := sort.Search(len(m.pairs), func(i int) bool { return m.pairs[i].DocID >= target })
	m.pos = i
	if m.pos >= len(m.pairs) {
		return &SkipOutcome{Found: false}, nil
	}
	p := m.pairs[m.pos]
	m.cur = IndexResult{Kind: KindMetric, DocID: p.DocID, Value: p.Value, Weight: 1}
	return &SkipOutcome{Found: p.DocID == target, Result: &m.cur}, nil
}

func (m *Metric) Rewind()                               { m.pos = -1 }
func (m *Metric) Revalidate() (RevalidateStatus, error) { return RevalidateOK, nil }
func (m *Metric) Current() *IndexResult {
	if m.pos < 0 || m.pos >= len(m.pairs) {
		return nil
	}
	return &m.cur
}
func (m *Metric) LastDocID() base.DocId {
	if m.pos < 0 || m.pos >= len(m.pairs) {
		return base.InvalidDocId
	}
	return m.pairs[m.pos].DocID
}
func (m *Metric) AtEOF() bool          { return m.pos >= len(m.pairs) }
func (m *Metric) NumEstimated() uint64 { return uint64(len(m.pairs)) }
func (m *Metric) Tag() TypeTag         { return TagMetric }

// InvIndIterator drains an InvertedIndex via its reader (§4.3.1), holding a
// shared borrow per §5: the owning index mutating concurrently bumps
// gc_marker, observed through NeedsRevalidation/Revalidate.
type InvIndIterator struct {
	r       *invindex.Reader
	weight  base.Weight
	cur     IndexResult
	rec     invindex.Record
	haveCur bool
	eof     bool
}

// NewInvIndIterator wraps reader r, attaching weight to every produced
// result (the per-term static boost §3's Term variant carries).
func NewInvIndIterator(r *invindex.Reader, weight base.Weight) *InvIndIterator {
	return &InvIndIterator{r: r, weight: weight}
}

func (it *InvIndIterator) fillFromRecord() {
	it.cur = IndexResult{
		Kind:      KindTerm,
		DocID:     it.rec.DocID,
		Weight:    it.weight,
		Freq:      it.rec.Freq,
		FieldMask: it.rec.Mask128,
		Offsets:   it.rec.Offsets,
	}
	if it.r.Flags()&invindex.StoreNumeric != 0 {
		it.cur.Kind = KindNumeric
		it.cur.Value = it.rec.Value
	}
}

func (it *InvIndIterator) Read() (*IndexResult, error) {
	ok, err := it.r.NextRecord(&it.rec)
	if err != nil {
		return nil, errors.Wrap(err, "inv_index iterator: read")
	}
	if !ok {
		it.haveCur = false
		it.eof = true
		return nil, nil
	}
	it.fillFromRecord()
	it.haveCur = true
	return &it.cur, nil
}

func (it *InvIndIterator) SkipTo(target base.DocId) (*SkipOutcome, error) {
	if target <= it.LastDocID() {
		return nil, errors.Wrapf(base.ErrQueryError, "inv_index iterator: skip_to(%d) must exceed last_doc_id(%d)", target, it.LastDocID())
	}
	for {
		ok, err := it.r.NextRecord(&it.rec)
		if err != nil {
			return nil, errors.Wrap(err, "inv_index iterator: skip_to")
		}
		if !ok {
			it.haveCur = false
			it.eof = true
			return &SkipOutcome{Found: false}, nil
		}
		if it.rec.DocID >= target {
			it.fillFromRecord()
			it.haveCur = true
			return &SkipOutcome{Found: it.rec.DocID == target, Result: &it.cur}, nil
		}
	}
}

func (it *InvIndIterator) Rewind() {
	it.r.Reset()
	it.haveCur = false
	it.eof = false
}

func (it *InvIndIterator) Revalidate() (RevalidateStatus, error) {
	if !it.r.NeedsRevalidation() {
		return RevalidateOK, nil
	}
	moved, ok, err := it.r.Revalidate()
	if err != nil {
		return RevalidateAborted, errors.Wrap(err, "inv_index iterator: revalidate")
	}
	if !ok {
		it.haveCur = false
		it.eof = true
		return RevalidateMoved, nil
	}
	if moved {
		return RevalidateMoved, nil
	}
	return RevalidateOK, nil
}

func (it *InvIndIterator) Current() *IndexResult {
	if !it.haveCur {
		return nil
	}
	return &it.cur
}

func (it *InvIndIterator) LastDocID() base.DocId {
	if !it.haveCur {
		return base.InvalidDocId
	}
	return it.rec.DocID
}

func (it *InvIndIterator) AtEOF() bool { return it.eof }

func (it *InvIndIterator) NumEstimated() uint64 { return it.r.UniqueDocs() }

func (it *InvIndIterator) Tag() TypeTag {
	if it.r.Flags()&invindex.StoreNumeric != 0 {
		return TagNumeric
	}
	return TagTerm
}
