// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package docmeta holds the per-document sidecar shared between index
// readers and result processors (§3's DocumentMetadata), and the immutable
// per-term scoring inputs query iterators attach to Term results
// (supplement #1, query_term).
package docmeta

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/swiss"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
)

// SortVector is an opaque column-wise projection consumed by result
// processors' sort stage; its element type is owned by the host.
type SortVector []float64

// DocumentMetadata is a refcounted per-document record shared between the
// document table and result processors (§3, §5 "Document metadata is
// refcounted; decrement on result drop; free when count reaches zero").
type DocumentMetadata struct {
	DocID      base.DocId
	Key        string
	Length     uint32
	Score      float64
	SortVector SortVector
	Flags      uint32

	refs int32
}

// NewDocumentMetadata returns a DocumentMetadata with one reference held by
// the caller.
func NewDocumentMetadata(id base.DocId, key string, length uint32, score float64) *DocumentMetadata {
	return &DocumentMetadata{DocID: id, Key: key, Length: length, Score: score, refs: 1}
}

// Retain increments the reference count, matching the teacher's clone/drop
// pair for refcounted values (§9 "refcounted document metadata... must
// implement a clone/drop pair that atomically adjusts a count").
func (m *DocumentMetadata) Retain() *DocumentMetadata {
	atomic.AddInt32(&m.refs, 1)
	return m
}

// Release decrements the reference count, reporting whether this call
// dropped it to zero (the caller should discard its pointer either way).
func (m *DocumentMetadata) Release() bool {
	return atomic.AddInt32(&m.refs, -1) == 0
}

// RefCount reports the current reference count, for tests and debug dumps.
func (m *DocumentMetadata) RefCount() int32 {
	return atomic.LoadInt32(&m.refs)
}

// SafeFormat implements redact.SafeFormatter, matching pebble's own
// practice of making its key/value types redactable: Key is host-supplied
// document content and is redacted, while DocID/Length/Score are index
// bookkeeping and are safe to log in the clear.
func (m *DocumentMetadata) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("doc_id=%d key=%s length=%d score=%f", redact.Safe(m.DocID), m.Key, redact.Safe(m.Length), redact.Safe(m.Score))
}

// QueryTerm is the immutable per-term value a Term IndexResult refers to via
// query_term_ref (§3's IndexResult::Term, supplement #1). Both idf and
// bm25_idf are preserved per §9's open question; Scorer implementations pick
// one by kind rather than the type collapsing to a single score field.
type QueryTerm struct {
	Str     string
	Idf     float64
	Bm25Idf float64

	refs int32
}

// NewQueryTerm returns a QueryTerm with one reference held by the caller.
func NewQueryTerm(str string, idf, bm25Idf float64) *QueryTerm {
	return &QueryTerm{Str: str, Idf: idf, Bm25Idf: bm25Idf, refs: 1}
}

// Retain increments the reference count.
func (t *QueryTerm) Retain() *QueryTerm {
	atomic.AddInt32(&t.refs, 1)
	return t
}

// Release decrements the reference count, reporting whether it reached zero.
func (t *QueryTerm) Release() bool {
	return atomic.AddInt32(&t.refs, -1) == 0
}

// RefCount reports the current reference count.
func (t *QueryTerm) RefCount() int32 {
	return atomic.LoadInt32(&t.refs)
}

// SafeFormat implements redact.SafeFormatter: Str is the query's literal
// term text and is redacted, while the idf fields are numeric statistics
// derived from corpus-wide term frequency and are safe to log.
func (t *QueryTerm) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("term=%s idf=%f bm25_idf=%f", t.Str, redact.Safe(t.Idf), redact.Safe(t.Bm25Idf))
}

// ScorerKind selects which of QueryTerm's two idf fields a Scorer consults
// (open question decision #1: both fields are stored; the scorer picks).
type ScorerKind int

const (
	ScorerTFIDF ScorerKind = iota
	ScorerBM25
	ScorerDocScore
)

// IdfFor returns the idf value ScorerKind selects from t; ScorerDocScore
// does not consult a QueryTerm at all and this is not called for it.
func (k ScorerKind) IdfFor(t *QueryTerm) float64 {
	switch k {
	case ScorerBM25:
		return t.Bm25Idf
	default:
		return t.Idf
	}
}

// Table is the doc_id -> *DocumentMetadata backing store. Grounded on the
// teacher's go.mod dependency on github.com/cockroachdb/swiss: an
// open-addressing map gives better cache behavior than a built-in map on the
// hot refcount-adjusting path result processors exercise per result.
type Table struct {
	m *swiss.Map[base.DocId, *DocumentMetadata]
}

// NewTable returns an empty document metadata table.
func NewTable() *Table {
	return &Table{m: swiss.New[base.DocId, *DocumentMetadata](16)}
}

// Insert stores meta under its DocID, returning an error if an entry for
// that ID already exists (callers that intend to replace should Delete
// first; this mirrors the inverted index's explicit non-overwrite stance on
// duplicate doc_ids outside multi-value mode).
func (t *Table) Insert(meta *DocumentMetadata) error {
	if _, ok := t.m.Get(meta.DocID); ok {
		return errors.Wrapf(base.ErrIo, "docmeta: doc_id %d already present", meta.DocID)
	}
	t.m.Put(meta.DocID, meta)
	return nil
}

// Get returns the metadata for id, retaining an extra reference for the
// caller (mirroring §5's shared-borrow discipline: every lookup that hands
// out a pointer the caller may outlive this table's own reference bumps the
// count).
func (t *Table) Get(id base.DocId) (*DocumentMetadata, bool) {
	meta, ok := t.m.Get(id)
	if !ok {
		return nil, false
	}
	return meta.Retain(), true
}

// Delete removes id's entry, releasing the table's own reference; if that
// drops the refcount to zero the metadata is now fully free (callers who
// retained it separately still hold a live reference).
func (t *Table) Delete(id base.DocId) {
	meta, ok := t.m.Get(id)
	if !ok {
		return
	}
	t.m.Delete(id)
	meta.Release()
}

// Len reports the number of tracked documents.
func (t *Table) Len() int {
	return t.m.Len()
}
