// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package resultproc implements the result-processor chain that sits above
// the query iterator tree: a pull-based pipeline where each stage's Next
// calls its upstream's Next, transforms or drops results, and returns its
// own (supplement #4, result_processor/src/header.rs). The original's
// Header is a C-ABI intrusive-list node (raw function pointers, an unsafe
// upstream pointer, a PhantomPinned marker); none of that is meaningful in
// Go, so it is translated as an interface plus a small embeddable base
// carrying the fields that ARE load-bearing here: the chain link, the type
// tag, and per-stage timing.
package resultproc

import (
	"time"

	"github.com/cockroachdb/crlib/crtime"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
	"github.com/RediSearch/RediSearch-sub004/internal/docmeta"
	"github.com/RediSearch/RediSearch-sub004/internal/iterator"
)

// Type tags a concrete ResultProcessor, matching the original's
// ResultProcessorType enum (mirrored here as the reference pipeline's five
// named stages, plus Index, the synthetic root every chain starts from, and
// Metrics, a wrapper that instruments another stage).
type Type int

const (
	TypeIndex Type = iota
	TypeScorer
	TypeSorter
	TypeCounter
	TypePager
	TypeLoader
	TypeMetrics
)

func (t Type) String() string {
	switch t {
	case TypeIndex:
		return "Index"
	case TypeScorer:
		return "Scorer"
	case TypeSorter:
		return "Sorter"
	case TypeCounter:
		return "Counter"
	case TypePager:
		return "Pager"
	case TypeLoader:
		return "Loader"
	case TypeMetrics:
		return "Metrics"
	default:
		return "Unknown"
	}
}

// SearchResult is the value every stage's Next produces or consumes,
// standing in for the original's SearchResult struct (score, score
// explanation, the index result it was derived from, loaded row data, and
// its document metadata).
type SearchResult struct {
	DocID        base.DocId
	Score        float64
	ScoreExplain string
	IndexResult  *iterator.IndexResult
	DMD          *docmeta.DocumentMetadata
	RowData      map[string]float64
	Flags        uint32
}

// ResultProcessor is one pull-based stage. Next returns (nil, nil) at
// end-of-stream, matching QueryIterator.Read's EOF convention so a chain of
// processors over a chain of iterators reads the same way end to end.
type ResultProcessor interface {
	Next() (*SearchResult, error)
	Type() Type
}

// Header is embedded by every concrete processor, giving it an upstream
// link and elapsed-time accounting (the Go analogue of the original's
// `upstream` pointer and `timespec` field) without the C-ABI's raw function
// pointers or unsafe parent pointer, neither of which has a Go counterpart
// worth keeping.
type Header struct {
	upstream ResultProcessor
	ty       Type
	elapsed  time.Duration
}

// NewHeader wires a stage of type ty on top of upstream. upstream is nil
// for the chain's root (typically an Index-adapting stage wrapping a
// QueryIterator directly).
func NewHeader(ty Type, upstream ResultProcessor) Header {
	return Header{upstream: upstream, ty: ty}
}

func (h *Header) Type() Type { return h.ty }

// Elapsed reports the cumulative time this stage's own pullUpstream calls
// have spent, for the same profiling purpose as internal/iterator.Profile
// but scoped to the result-processor chain instead of the iterator tree.
func (h *Header) Elapsed() time.Duration { return h.elapsed }

// pullUpstream calls Next on h's upstream, timing the call. Concrete
// processors call this instead of invoking h.upstream.Next directly so
// every stage in the chain accumulates its own elapsed time uniformly.
// Uses crtime's monotonic reading rather than time.Now/time.Since: this
// runs once per result per stage, a hot enough path that avoiding the
// wall-clock syscall time.Now incurs is worth it (the same reasoning
// pebble's own compaction pacing code applies crtime to).
func (h *Header) pullUpstream() (*SearchResult, error) {
	if h.upstream == nil {
		return nil, nil
	}
	start := crtime.NowMono()
	res, err := h.upstream.Next()
	h.elapsed += start.Elapsed()
	return res, err
}
