// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package iterator implements the composable query iterator algebra (§4.3):
// leaf iterators over postings, ID lists and numeric ranges, and the
// combinators (intersection, union, not, optional, filters, profile) that
// assemble them into query trees.
package iterator

import (
	"github.com/RediSearch/RediSearch-sub004/internal/base"
	"github.com/RediSearch/RediSearch-sub004/internal/docmeta"
)

// ResultKind tags which variant of IndexResult is populated, mirroring §6's
// iterator type tags exposed to the host for dispatch without dynamic
// downcasting in hot paths (§9).
type ResultKind int

const (
	KindTerm ResultKind = iota
	KindNumeric
	KindVirtual
	KindAggregate
	KindMetric
)

// TypeTag is the broader per-iterator tag (§6) distinct from ResultKind:
// every iterator implementation reports one of these so host code can
// dispatch/profile without downcasting.
type TypeTag int

const (
	TagEmpty TypeTag = iota
	TagWildcard
	TagIdList
	TagNot
	TagOptional
	TagInvIndex
	TagTerm
	TagNumeric
	TagGeo
	TagIntersection
	TagUnion
	TagProfile
	TagMetric
)

// IndexResult is the universal record yielded by every QueryIterator (§3).
// Exactly one of the Kind-specific payloads is meaningful at a time; Go
// represents the Rust sum type as a tagged struct rather than an interface
// so read()/current() can return a reused pointer without an allocation per
// call, matching the teacher's preference for reusable scratch buffers over
// the hot path (see sstable's block reuse pattern).
type IndexResult struct {
	Kind ResultKind

	DocID  base.DocId
	Weight base.Weight

	// Term fields.
	FieldMask base.FieldMask128
	Freq      uint32
	Offsets   []uint32
	QueryTerm *docmeta.QueryTerm

	// Numeric / Metric fields.
	Value float64

	// Aggregate fields: children own their own IndexResult; TypeMask is the
	// OR of the contributing children's TypeTag bits (one per combinator
	// kind involved), matching §3's "field_mask is the OR of children's
	// masks" pattern generalized to type provenance.
	Children []*IndexResult
	TypeMask uint32
}

// Reset clears r in place for reuse as scratch storage, keeping its
// Children/Offsets backing arrays where possible.
func (r *IndexResult) Reset() {
	r.Kind = KindVirtual
	r.DocID = base.InvalidDocId
	r.Weight = 0
	r.FieldMask = base.FieldMask128{}
	r.Freq = 0
	r.Offsets = r.Offsets[:0]
	r.QueryTerm = nil
	r.Value = 0
	r.Children = r.Children[:0]
	r.TypeMask = 0
}

// CopyFrom overwrites r with a deep-enough copy of src suitable for an
// aggregate to hold as one of its children (Aggregate results own their
// children per §3, so combinators must not alias a leaf's reused scratch
// result into their Children slice without copying it first).
func (r *IndexResult) CopyFrom(src *IndexResult) {
	*r = *src
	r.Offsets = append([]uint32(nil), src.Offsets...)
	r.Children = append([]*IndexResult(nil), src.Children...)
}

// Clone returns a heap copy of r safe to retain past the next read()/skip_to
// call on the iterator that produced it.
func (r *IndexResult) Clone() *IndexResult {
	out := &IndexResult{}
	out.CopyFrom(r)
	return out
}
