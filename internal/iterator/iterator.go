// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package iterator

import "github.com/RediSearch/RediSearch-sub004/internal/base"

// RevalidateStatus is the outcome of QueryIterator.Revalidate (§4.3,
// Revalidation contract): OK means no change was needed; Moved means the
// iterator re-synced, possibly advancing Current(); Aborted means the
// underlying index is no longer usable and the query must be cancelled.
type RevalidateStatus int

const (
	RevalidateOK RevalidateStatus = iota
	RevalidateMoved
	RevalidateAborted
)

// SkipOutcome is the result of SkipTo: Found means the exact target id was
// produced; NotFound carries the next available result strictly beyond the
// target (§4.3's SkipOutcome = Found(result) | NotFound(next_result)).
type SkipOutcome struct {
	Found  bool
	Result *IndexResult
}

// QueryIterator is the capability every leaf and combinator implements
// (§4.3). All iterators are ascending in doc_id; SkipTo(x) requires and
// enforces x > LastDocID(); duplicates are suppressed unless the underlying
// index is multi-value; within one doc_id no ordering is promised (§4.3.3).
type QueryIterator interface {
	// Read advances to the next result, returning it, or (nil, nil) at EOF.
	Read() (*IndexResult, error)

	// SkipTo advances to the first result with doc_id >= target. Precondition:
	// target > LastDocID().
	SkipTo(target base.DocId) (*SkipOutcome, error)

	// Rewind resets the iterator to its initial, pre-read state.
	Rewind()

	// Revalidate re-syncs against concurrent mutation of the iterator's
	// underlying data source (§5).
	Revalidate() (RevalidateStatus, error)

	// Current returns the last result produced by Read/SkipTo, or nil if
	// none has been produced yet (or the last one was consumed by EOF).
	Current() *IndexResult

	// LastDocID returns the doc_id of the last result produced.
	LastDocID() base.DocId

	// AtEOF reports whether the iterator is exhausted.
	AtEOF() bool

	// NumEstimated returns an upper bound on the remaining result count.
	NumEstimated() uint64

	// Tag reports this iterator's type tag (§6), for host dispatch/profiling.
	Tag() TypeTag
}
