// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package iterator

import (
	"container/heap"
	"math"
	"sort"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/tokenbucket"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
)

// revalidateAll revalidates every child, propagating the worst outcome:
// Aborted beats Moved beats OK (§5's revalidation contract, generalized to
// a combinator with several children).
func revalidateAll(children []QueryIterator) (RevalidateStatus, error) {
	worst := RevalidateOK
	for _, c := range children {
		st, err := c.Revalidate()
		if err != nil {
			return RevalidateAborted, err
		}
		if st == RevalidateAborted {
			return RevalidateAborted, nil
		}
		if st == RevalidateMoved {
			worst = RevalidateMoved
		}
	}
	return worst, nil
}

// -----------------------------------------------------------------------
// Intersection

// IntersectionMode selects the full (aggregate-with-children) vs quick
// (early-exit) variant (§4.3.2).
type IntersectionMode int

const (
	IntersectionFull IntersectionMode = iota
	IntersectionQuick
)

// Intersection yields ids present in every child, ascending (§4.3.2). On
// construction children are sorted by ascending NumEstimated so the
// smallest candidate set drives the pivot search.
type Intersection struct {
	children []QueryIterator
	mode     IntersectionMode
	cur      IndexResult
	lastID   base.DocId
	eof      bool
}

// NewIntersection constructs an Intersection over children, which it
// reorders in place by ascending NumEstimated().
func NewIntersection(children []QueryIterator, mode IntersectionMode) *Intersection {
	sort.Slice(children, func(i, j int) bool { return children[i].NumEstimated() < children[j].NumEstimated() })
	return &Intersection{children: children, mode: mode}
}

// leadChild returns children[i]'s next not-yet-consumed candidate. If its
// current position already lies past the last result this Intersection
// returned — e.g. SkipTo primed it there directly — that position is
// itself an unconsumed candidate and is returned as-is; only a stale
// position (at or behind lastID) needs a fresh Read to move past it. This
// is what keeps Intersection.SkipTo(target) from silently reading past a
// child SkipTo just landed exactly on target.
func (x *Intersection) leadChild(i int) (*IndexResult, error) {
	c := x.children[i]
	if cur := c.Current(); cur != nil && cur.DocID > x.lastID {
		return cur, nil
	}
	return c.Read()
}

// candidateAtLeast returns child i's first candidate with doc_id >= target.
// If the child's current position already qualifies it is reused directly;
// otherwise it issues SkipTo(target). Reusing an already-qualifying
// position (rather than always calling SkipTo) matters for the same reason
// leadChild does: SkipTo's own precondition is target > LastDocID(), which
// a child already sitting at or beyond target would violate.
func (x *Intersection) candidateAtLeast(i int, target base.DocId) (*IndexResult, error) {
	c := x.children[i]
	if cur := c.Current(); cur != nil && cur.DocID >= target {
		return cur, nil
	}
	out, err := c.SkipTo(target)
	if err != nil {
		// SkipTo requires target > last_doc_id; if the child is already
		// positioned beyond target this is a logic error in pivot
		// bookkeeping elsewhere, not a real query failure, so surface it
		// unchanged per §7's forwarding policy.
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return out.Result, nil
}

func (x *Intersection) advance() (*IndexResult, error) {
	if len(x.children) == 0 || x.eof {
		x.eof = true
		return nil, nil
	}
	pivotIdx := 0
	res, err := x.leadChild(0)
	if err != nil {
		return nil, err
	}
	if res == nil {
		x.eof = true
		return nil, nil
	}
	pivot := res.DocID

	for {
		matched := true
		for i := range x.children {
			if i == pivotIdx {
				continue
			}
			out, err := x.candidateAtLeast(i, pivot)
			if err != nil {
				return nil, err
			}
			if out == nil {
				x.eof = true
				return nil, nil
			}
			if out.DocID > pivot {
				pivot = out.DocID
				pivotIdx = i
				matched = false
				break
			}
		}
		if matched {
			break
		}
	}

	x.lastID = pivot
	switch x.mode {
	case IntersectionQuick:
		x.cur = IndexResult{Kind: KindVirtual, DocID: pivot, Weight: 1}
	default:
		children := make([]*IndexResult, 0, len(x.children))
		var mask base.FieldMask128
		var freq uint32
		var typeMask uint32
		for _, c := range x.children {
			cr := c.Current()
			if cr == nil {
				continue
			}
			children = append(children, cr.Clone())
			mask = mask.Union(cr.FieldMask)
			freq += cr.Freq
			typeMask |= 1 << uint(c.Tag())
		}
		x.cur = IndexResult{
			Kind: KindAggregate, DocID: pivot, Weight: 1,
			FieldMask: mask, Freq: freq, Children: children, TypeMask: typeMask,
		}
	}
	return &x.cur, nil
}

func (x *Intersection) Read() (*IndexResult, error) { return x.advance() }

func (x *Intersection) SkipTo(target base.DocId) (*SkipOutcome, error) {
	if target <= x.lastID {
		return nil, errors.Wrapf(base.ErrQueryError, "intersection: skip_to(%d) must exceed last_doc_id(%d)", target, x.lastID)
	}
	for _, c := range x.children {
		if target > c.LastDocID() {
			if _, err := c.SkipTo(target); err != nil {
				return nil, err
			}
		}
	}
	res, err := x.advance()
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &SkipOutcome{Found: false}, nil
	}
	return &SkipOutcome{Found: res.DocID == target, Result: res}, nil
}

func (x *Intersection) Rewind() {
	for _, c := range x.children {
		c.Rewind()
	}
	x.lastID = base.InvalidDocId
	x.eof = false
}

func (x *Intersection) Revalidate() (RevalidateStatus, error) { return revalidateAll(x.children) }
func (x *Intersection) Current() *IndexResult {
	if x.eof || x.lastID == base.InvalidDocId {
		return nil
	}
	return &x.cur
}
func (x *Intersection) LastDocID() base.DocId { return x.lastID }
func (x *Intersection) AtEOF() bool           { return x.eof }
func (x *Intersection) NumEstimated() uint64 {
	if len(x.children) == 0 {
		return 0
	}
	min := x.children[0].NumEstimated()
	for _, c := range x.children[1:] {
		if n := c.NumEstimated(); n < min {
			min = n
		}
	}
	return min
}
func (x *Intersection) Tag() TypeTag { return TagIntersection }

// -----------------------------------------------------------------------
// Union

// UnionMode selects quick (first match wins) vs full (collect every child
// at the minimum id into the aggregate) (§4.3.2).
type UnionMode int

const (
	UnionFull UnionMode = iota
	UnionQuick
)

// heapThreshold is the child count above which Union switches from a flat
// linear scan for the minimum to a min-heap (§4.3.2's Flat/Heap split).
const heapThreshold = 8

type unionHeapItem struct {
	idx int
	id  base.DocId
}
type unionHeap []unionHeapItem

func (h unionHeap) Len() int            { return len(h) }
func (h unionHeap) Less(i, j int) bool  { return h[i].id < h[j].id }
func (h unionHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *unionHeap) Push(x interface{}) { *h = append(*h, x.(unionHeapItem)) }
func (h *unionHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Union yields the union of all children's ids, ascending, duplicates
// coalesced (§4.3.2).
type Union struct {
	children []QueryIterator
	mode     UnionMode
	cur      IndexResult
	lastID   base.DocId
	eof      bool
}

func NewUnion(children []QueryIterator, mode UnionMode) *Union {
	return &Union{children: children, mode: mode}
}

func (u *Union) minAcrossChildren() (base.DocId, bool, error) {
	found := false
	var min base.DocId
	if len(u.children) > heapThreshold {
		var h unionHeap
		for i, c := range u.children {
			cur := c.Current()
			if cur == nil {
				continue
			}
			heap.Push(&h, unionHeapItem{idx: i, id: cur.DocID})
		}
		if h.Len() == 0 {
			return 0, false, nil
		}
		return h[0].id, true, nil
	}
	for _, c := range u.children {
		cur := c.Current()
		if cur == nil {
			continue
		}
		if !found || cur.DocID < min {
			min = cur.DocID
			found = true
		}
	}
	return min, found, nil
}

// primeAll ensures every child has a current record (reads once if it has
// none yet and isn't at EOF); called lazily on first use.
func (u *Union) primeAll() error {
	for _, c := range u.children {
		if c.Current() == nil && !c.AtEOF() {
			if _, err := c.Read(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (u *Union) advance() (*IndexResult, error) {
	if u.eof {
		return nil, nil
	}
	if err := u.primeAll(); err != nil {
		return nil, err
	}
	// Advance every child sitting exactly at lastID so we don't re-yield it.
	for _, c := range u.children {
		cur := c.Current()
		if cur != nil && u.lastID != base.InvalidDocId && cur.DocID == u.lastID {
			if !c.AtEOF() {
				if _, err := c.Read(); err != nil {
					return nil, err
				}
			}
		}
	}
	min, found, err := u.minAcrossChildren()
	if err != nil {
		return nil, err
	}
	if !found {
		u.eof = true
		return nil, nil
	}
	u.lastID = min

	switch u.mode {
	case UnionQuick:
		u.cur = IndexResult{Kind: KindVirtual, DocID: min, Weight: 1}
	default:
		var children []*IndexResult
		var mask base.FieldMask128
		var freq uint32
		var typeMask uint32
		for _, c := range u.children {
			cr := c.Current()
			if cr == nil || cr.DocID != min {
				continue
			}
			children = append(children, cr.Clone())
			mask = mask.Union(cr.FieldMask)
			freq += cr.Freq
			typeMask |= 1 << uint(c.Tag())
		}
		u.cur = IndexResult{
			Kind: KindAggregate, DocID: min, Weight: 1,
			FieldMask: mask, Freq: freq, Children: children, TypeMask: typeMask,
		}
	}
	return &u.cur, nil
}

func (u *Union) Read() (*IndexResult, error) { return u.advance() }

func (u *Union) SkipTo(target base.DocId) (*SkipOutcome, error) {
	if target <= u.lastID && u.lastID != base.InvalidDocId {
		return nil, errors.Wrapf(base.ErrQueryError, "union: skip_to(%d) must exceed last_doc_id(%d)", target, u.lastID)
	}
	for _, c := range u.children {
		if c.AtEOF() {
			continue
		}
		if c.LastDocID() < target {
			if _, err := c.SkipTo(target); err != nil {
				return nil, err
			}
		}
	}
	res, err := u.advance()
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &SkipOutcome{Found: false}, nil
	}
	return &SkipOutcome{Found: res.DocID == target, Result: res}, nil
}

func (u *Union) Rewind() {
	for _, c := range u.children {
		c.Rewind()
	}
	u.lastID = base.InvalidDocId
	u.eof = false
}

func (u *Union) Revalidate() (RevalidateStatus, error) { return revalidateAll(u.children) }
func (u *Union) Current() *IndexResult {
	if u.eof || u.lastID == base.InvalidDocId {
		return nil
	}
	return &u.cur
}
func (u *Union) LastDocID() base.DocId { return u.lastID }
func (u *Union) AtEOF() bool           { return u.eof }
func (u *Union) NumEstimated() uint64 {
	var sum uint64
	for _, c := range u.children {
		sum += c.NumEstimated()
	}
	return sum
}
func (u *Union) Tag() TypeTag { return TagUnion }

// -----------------------------------------------------------------------
// Not

// Not complements child against [1, maxDocID]: yields virtual results for
// every id not produced by child (§4.3.2). Supports cooperative timeout via
// a token-bucket-rate-limited deadline check (SPEC_FULL §11: avoids a
// time.Now() call on every single candidate id).
type Not struct {
	child    QueryIterator
	maxDocID base.DocId
	deadline time.Time
	hasDL    bool
	limiter  *tokenbucket.TokenBucket

	next    base.DocId
	childAt base.DocId
	childOK bool
	cur     IndexResult
	eof     bool
}

// NewNot constructs a Not iterator. If deadline is non-zero, Read/SkipTo
// periodically check it and return ErrTimedOut once it elapses.
func NewNot(child QueryIterator, maxDocID base.DocId, deadline time.Time) *Not {
	n := &Not{child: child, maxDocID: maxDocID, next: 1}
	if !deadline.IsZero() {
		n.hasDL = true
		n.deadline = deadline
		n.limiter = &tokenbucket.TokenBucket{}
		n.limiter.Init(tokenbucket.TokensPerSecond(64), tokenbucket.Tokens(1))
	}
	return n
}

func (n *Not) checkTimeout() error {
	if !n.hasDL {
		return nil
	}
	if ok, _ := n.limiter.TryToFulfill(1); !ok {
		return nil // rate-limited: skip the clock read this call
	}
	if time.Now().After(n.deadline) {
		return base.ErrTimedOut
	}
	return nil
}

func (n *Not) refillChild() error {
	for !n.childOK && n.childAt < n.next {
		res, err := n.child.Read()
		if err != nil {
			return err
		}
		if res == nil {
			n.childAt = n.maxDocID + 1
			break
		}
		n.childAt = res.DocID
		n.childOK = true
	}
	return nil
}

func (n *Not) advance() (*IndexResult, error) {
	if n.eof {
		return nil, nil
	}
	for {
		if err := n.checkTimeout(); err != nil {
			return nil, err
		}
		if n.next > n.maxDocID {
			n.eof = true
			return nil, nil
		}
		if err := n.refillChild(); err != nil {
			return nil, err
		}
		if n.childOK && n.childAt == n.next {
			n.childOK = false
			n.next++
			continue
		}
		id := n.next
		n.next++
		n.cur = IndexResult{Kind: KindVirtual, DocID: id, Weight: 1}
		return &n.cur, nil
	}
}

func (n *Not) Read() (*IndexResult, error) { return n.advance() }

func (n *Not) SkipTo(target base.DocId) (*SkipOutcome, error) {
	if target <= n.LastDocID() {
		return nil, errors.Wrapf(base.ErrQueryError, "not: skip_to(%d) must exceed last_doc_id(%d)", target, n.LastDocID())
	}
	n.next = target
	res, err := n.advance()
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &SkipOutcome{Found: false}, nil
	}
	return &SkipOutcome{Found: res.DocID == target, Result: res}, nil
}

func (n *Not) Rewind() {
	n.child.Rewind()
	n.next = 1
	n.childAt = 0
	n.childOK = false
	n.eof = false
}

func (n *Not) Revalidate() (RevalidateStatus, error) { return n.child.Revalidate() }
func (n *Not) Current() *IndexResult {
	if n.eof || n.next <= 1 {
		return nil
	}
	return &n.cur
}
func (n *Not) LastDocID() base.DocId {
	if n.next <= 1 {
		return base.InvalidDocId
	}
	return n.next - 1
}
func (n *Not) AtEOF() bool          { return n.eof }
func (n *Not) NumEstimated() uint64 { return uint64(n.maxDocID) }
func (n *Not) Tag() TypeTag         { return TagNot }

// -----------------------------------------------------------------------
// Optional

// Optional always yields across [1, maxID]: the child's result where
// present, a virtual placeholder otherwise (§4.3.2).
type Optional struct {
	child   QueryIterator
	maxID   base.DocId
	next    base.DocId
	childAt base.DocId
	childOK bool
	cur     IndexResult
	eof     bool
}

func NewOptional(child QueryIterator, maxID base.DocId) *Optional {
	return &Optional{child: child, maxID: maxID, next: 1}
}

func (o *Optional) refillChild() error {
	for !o.childOK && o.childAt < o.next {
		res, err := o.child.Read()
		if err != nil {
			return err
		}
		if res == nil {
			o.childAt = o.maxID + 1
			break
		}
		o.childAt = res.DocID
		o.childOK = true
	}
	return nil
}

func (o *Optional) advance() (*IndexResult, error) {
	if o.eof {
		return nil, nil
	}
	if o.next > o.maxID {
		o.eof = true
		return nil, nil
	}
	if err := o.refillChild(); err != nil {
		return nil, err
	}
	id := o.next
	o.next++
	if o.childOK && o.childAt == id {
		cr := o.child.Current()
		o.cur = *cr
		o.childOK = false
	} else {
		o.cur = IndexResult{Kind: KindVirtual, DocID: id, Weight: 1}
	}
	return &o.cur, nil
}

func (o *Optional) Read() (*IndexResult, error) { return o.advance() }

func (o *Optional) SkipTo(target base.DocId) (*SkipOutcome, error) {
	if target <= o.LastDocID() {
		return nil, errors.Wrapf(base.ErrQueryError, "optional: skip_to(%d) must exceed last_doc_id(%d)", target, o.LastDocID())
	}
	o.next = target
	res, err := o.advance()
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &SkipOutcome{Found: false}, nil
	}
	return &SkipOutcome{Found: true, Result: res}, nil
}

func (o *Optional) Rewind() {
	o.child.Rewind()
	o.next = 1
	o.childAt = 0
	o.childOK = false
	o.eof = false
}

func (o *Optional) Revalidate() (RevalidateStatus, error) { return o.child.Revalidate() }
func (o *Optional) Current() *IndexResult {
	if o.eof || o.next <= 1 {
		return nil
	}
	return &o.cur
}
func (o *Optional) LastDocID() base.DocId {
	if o.next <= 1 {
		return base.InvalidDocId
	}
	return o.next - 1
}
func (o *Optional) AtEOF() bool          { return o.eof }
func (o *Optional) NumEstimated() uint64 { return uint64(o.maxID) }
func (o *Optional) Tag() TypeTag         { return TagOptional }

// -----------------------------------------------------------------------
// FilterMaskReader

// FilterMaskReader wraps any QueryIterator, skipping records whose
// field_mask shares no bit with requiredMask (§4.3.2).
type FilterMaskReader struct {
	child        QueryIterator
	requiredMask base.FieldMask128
}

func NewFilterMaskReader(child QueryIterator, requiredMask base.FieldMask128) *FilterMaskReader {
	return &FilterMaskReader{child: child, requiredMask: requiredMask}
}

func (f *FilterMaskReader) passes(r *IndexResult) bool {
	return r != nil && r.FieldMask.Intersects(f.requiredMask)
}

func (f *FilterMaskReader) Read() (*IndexResult, error) {
	for {
		res, err := f.child.Read()
		if err != nil || res == nil {
			return res, err
		}
		if f.passes(res) {
			return res, nil
		}
	}
}

func (f *FilterMaskReader) SkipTo(target base.DocId) (*SkipOutcome, error) {
	out, err := f.child.SkipTo(target)
	if err != nil {
		return nil, err
	}
	if out == nil || out.Result == nil {
		return &SkipOutcome{Found: false}, nil
	}
	if f.passes(out.Result) {
		return out, nil
	}
	res, err := f.Read()
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &SkipOutcome{Found: false}, nil
	}
	return &SkipOutcome{Found: false, Result: res}, nil
}

func (f *FilterMaskReader) Rewind()                               { f.child.Rewind() }
func (f *FilterMaskReader) Revalidate() (RevalidateStatus, error) { return f.child.Revalidate() }
func (f *FilterMaskReader) Current() *IndexResult                 { return f.child.Current() }
func (f *FilterMaskReader) LastDocID() base.DocId                 { return f.child.LastDocID() }
func (f *FilterMaskReader) AtEOF() bool                           { return f.child.AtEOF() }
func (f *FilterMaskReader) NumEstimated() uint64                  { return f.child.NumEstimated() }
func (f *FilterMaskReader) Tag() TypeTag                          { return f.child.Tag() }

// -----------------------------------------------------------------------
// FilterNumericReader / FilterGeoReader

// NumericFilter bounds a numeric reader's Value field (§4.3.2).
type NumericFilter struct {
	Min, Max                   float64
	MinInclusive, MaxInclusive bool
}

// Accepts reports whether v passes the filter's bounds.
func (nf NumericFilter) Accepts(v float64) bool {
	if nf.MinInclusive {
		if v < nf.Min {
			return false
		}
	} else if v <= nf.Min {
		return false
	}
	if nf.MaxInclusive {
		if v > nf.Max {
			return false
		}
	} else if v >= nf.Max {
		return false
	}
	return true
}

// FilterNumericReader wraps a numeric-valued QueryIterator, retaining only
// records whose Value passes filter (§4.3.2).
type FilterNumericReader struct {
	child  QueryIterator
	filter NumericFilter
}

func NewFilterNumericReader(child QueryIterator, filter NumericFilter) *FilterNumericReader {
	return &FilterNumericReader{child: child, filter: filter}
}

func (f *FilterNumericReader) passes(r *IndexResult) bool {
	return r != nil && f.filter.Accepts(r.Value)
}

func (f *FilterNumericReader) Read() (*IndexResult, error) {
	for {
		res, err := f.child.Read()
		if err != nil || res == nil {
			return res, err
		}
		if f.passes(res) {
			return res, nil
		}
	}
}

func (f *FilterNumericReader) SkipTo(target base.DocId) (*SkipOutcome, error) {
	out, err := f.child.SkipTo(target)
	if err != nil {
		return nil, err
	}
	if out == nil || out.Result == nil || f.passes(out.Result) {
		return out, err
	}
	res, err := f.Read()
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &SkipOutcome{Found: false}, nil
	}
	return &SkipOutcome{Found: false, Result: res}, nil
}

func (f *FilterNumericReader) Rewind()                               { f.child.Rewind() }
func (f *FilterNumericReader) Revalidate() (RevalidateStatus, error) { return f.child.Revalidate() }
func (f *FilterNumericReader) Current() *IndexResult                 { return f.child.Current() }
func (f *FilterNumericReader) LastDocID() base.DocId                 { return f.child.LastDocID() }
func (f *FilterNumericReader) AtEOF() bool                           { return f.child.AtEOF() }
func (f *FilterNumericReader) NumEstimated() uint64                  { return f.child.NumEstimated() }
func (f *FilterNumericReader) Tag() TypeTag                          { return TagNumeric }

// GeoPoint is a (longitude, latitude) pair in degrees.
type GeoPoint struct {
	Lon, Lat float64
}

// haversineMeters returns the great-circle distance between a and b in
// meters (WGS-84 mean earth radius).
func haversineMeters(a, b GeoPoint) float64 {
	const earthRadiusM = 6371000.0
	lat1, lat2 := degToRad(a.Lat), degToRad(b.Lat)
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)
	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * earthRadiusM * math.Asin(math.Sqrt(h))
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

// FilterGeoReader wraps a reader whose Value encodes a point (via the
// ValueOf callback), retaining only records within radiusM of center
// (§4.3.2, geo-radius check).
type FilterGeoReader struct {
	child   QueryIterator
	center  GeoPoint
	radiusM float64
	valueOf func(r *IndexResult) GeoPoint
}

func NewFilterGeoReader(child QueryIterator, center GeoPoint, radiusM float64, valueOf func(r *IndexResult) GeoPoint) *FilterGeoReader {
	return &FilterGeoReader{child: child, center: center, radiusM: radiusM, valueOf: valueOf}
}

func (f *FilterGeoReader) passes(r *IndexResult) bool {
	return r != nil && haversineMeters(f.center, f.valueOf(r)) <= f.radiusM
}

func (f *FilterGeoReader) Read() (*IndexResult, error) {
	for {
		res, err := f.child.Read()
		if err != nil || res == nil {
			return res, err
		}
		if f.passes(res) {
			return res, nil
		}
	}
}

func (f *FilterGeoReader) SkipTo(target base.DocId) (*SkipOutcome, error) {
	out, err := f.child.SkipTo(target)
	if err != nil {
		return nil, err
	}
	if out == nil || out.Result == nil || f.passes(out.Result) {
		return out, err
	}
	res, err := f.Read()
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &SkipOutcome{Found: false}, nil
	}
	return &SkipOutcome{Found: false, Result: res}, nil
}

func (f *FilterGeoReader) Rewind()                               { f.child.Rewind() }
func (f *FilterGeoReader) Revalidate() (RevalidateStatus, error) { return f.child.Revalidate() }
func (f *FilterGeoReader) Current() *IndexResult                 { return f.child.Current() }
func (f *FilterGeoReader) LastDocID() base.DocId                 { return f.child.LastDocID() }
func (f *FilterGeoReader) AtEOF() bool                           { return f.child.AtEOF() }
func (f *FilterGeoReader) NumEstimated() uint64                  { return f.child.NumEstimated() }
func (f *FilterGeoReader) Tag() TypeTag                          { return TagGeo }

// -----------------------------------------------------------------------
// Profile

// ProfileStats accumulates the counters and wall-time histogram a Profile
// wrapper collects (§4.3.2).
type ProfileStats struct {
	ReadCalls uint64
	SkipCalls uint64
	Hist      *hdrhistogram.Histogram
}

// Profile transparently wraps any QueryIterator, recording call counts and
// per-call wall time into Stats (§4.3.2).
type Profile struct {
	child QueryIterator
	Stats *ProfileStats
}

// NewProfile wraps child, recording into a freshly allocated ProfileStats
// with a histogram spanning 1 microsecond to 10 seconds at 3 significant
// digits, matching the teacher's latency-histogram conventions.
func NewProfile(child QueryIterator) *Profile {
	return &Profile{
		child: child,
		Stats: &ProfileStats{Hist: hdrhistogram.New(1, 10_000_000, 3)},
	}
}

func (p *Profile) record(start time.Time) {
	p.Stats.Hist.RecordValue(time.Since(start).Microseconds())
}

func (p *Profile) Read() (*IndexResult, error) {
	start := time.Now()
	p.Stats.ReadCalls++
	defer p.record(start)
	return p.child.Read()
}

func (p *Profile) SkipTo(target base.DocId) (*SkipOutcome, error) {
	start := time.Now()
	p.Stats.SkipCalls++
	defer p.record(start)
	return p.child.SkipTo(target)
}

func (p *Profile) Rewind()                               { p.child.Rewind() }
func (p *Profile) Revalidate() (RevalidateStatus, error) { return p.child.Revalidate() }
func (p *Profile) Current() *IndexResult                 { return p.child.Current() }
func (p *Profile) LastDocID() base.DocId                 { return p.child.LastDocID() }
func (p *Profile) AtEOF() bool                           { return p.child.AtEOF() }
func (p *Profile) NumEstimated() uint64                  { return p.child.NumEstimated() }
func (p *Profile) Tag() TypeTag                          { return TagProfile }
