// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package base holds the identifiers, error kinds and debug plumbing shared
// by every other internal package: the document ID space, field masks, the
// error taxonomy from the error-handling design, and the invariants switch
// used to gate expensive assertions in debug builds.
package base

import (
	"context"

	"github.com/cockroachdb/errors"
)

// DocId is a 64-bit monotonically increasing integer identifying a document
// within one logical index. Deletions leave tombstones; live IDs are never
// reassigned.
type DocId uint64

// InvalidDocId is never a valid live document ID; iterators use it as a
// sentinel meaning "no current record".
const InvalidDocId DocId = 0

// Weight is a per-result scoring contribution, combined by the query
// iterator tree on the way up.
type Weight = float64

// FieldMask32 is the compact encoding used when an index has at most 32
// fields.
type FieldMask32 uint32

// FieldMask128 is the wide encoding used otherwise. Per the open question
// on 32-bit alignment, this module targets 64-bit hosts only and does not
// special-case narrow alignment.
type FieldMask128 [2]uint64

// Union ORs two wide masks together, matching the aggregate invariant that
// a parent's field_mask is the OR of its children's masks.
func (m FieldMask128) Union(o FieldMask128) FieldMask128 {
	return FieldMask128{m[0] | o[0], m[1] | o[1]}
}

// Intersects reports whether m and o share any set bit.
func (m FieldMask128) Intersects(o FieldMask128) bool {
	return m[0]&o[0] != 0 || m[1]&o[1] != 0
}

// IsZero reports whether no bit is set.
func (m FieldMask128) IsZero() bool {
	return m[0] == 0 && m[1] == 0
}

// Error kinds from the error-handling design. Each is a sentinel comparable
// with errors.Is; call sites wrap with errors.Wrap/errors.Wrapf to attach
// context the way the teacher's base.CorruptionErrorf callers do.
var (
	// ErrIo covers encoder/decoder buffer errors: underflow, overflow,
	// unexpected end of input.
	ErrIo = errors.New("redisearch: io error")
	// ErrTimedOut is returned when an iterator's deadline elapses.
	ErrTimedOut = errors.New("redisearch: timed out")
	// ErrQueryError surfaces an upstream-supplied query failure unchanged.
	ErrQueryError = errors.New("redisearch: query error")
	// ErrAborted is returned when revalidation finds the underlying index
	// no longer usable and the query must be cancelled.
	ErrAborted = errors.New("redisearch: aborted")
)

// ErrUnexpectedEOF marks a truncated encode buffer; wraps ErrIo.
var ErrUnexpectedEOF = errors.Wrap(ErrIo, "unexpected eof")

// Logger is the host-injected tracer/logger sink. Mirrors the shape of the
// teacher's base.LoggerAndTracer: the hot path checks IsTracingEnabled
// before formatting an event string, so no allocation occurs unless a
// trace consumer is actually attached.
type Logger interface {
	Eventf(ctx context.Context, format string, args ...interface{})
	IsTracingEnabled(ctx context.Context) bool
}

// NoopLogger discards everything; the zero value of *NoopLogger is usable.
type NoopLogger struct{}

// Eventf implements Logger.
func (*NoopLogger) Eventf(context.Context, string, ...interface{}) {}

// IsTracingEnabled implements Logger.
func (*NoopLogger) IsTracingEnabled(context.Context) bool { return false }

// invariantsEnabled gates expensive debug-only assertions. It is set once
// from an init-time configuration struct (see Config below), never written
// as a bare package-level mutable global touched from arbitrary call sites,
// per the "global mutable state" design note.
var invariantsEnabled = false

// Config is the initialization-time configuration struct that replaces
// "true globals" for the handful of process-wide knobs this module needs:
// the allocator-adjacent invariants switch and a logger field.
type Config struct {
	InvariantsEnabled bool
	Logger            Logger
}

// Apply installs c's invariants switch as the process-wide setting.
// Intended to be called once at startup by the host, before any index is
// constructed. The Logger field is not stored or used by Apply.
func Apply(c Config) {
	invariantsEnabled = c.InvariantsEnabled
}

// InvariantsEnabled reports whether expensive debug assertions should run.
func InvariantsEnabled() bool { return invariantsEnabled }

// AssertTrue panics with msg if cond is false and invariants are enabled.
// Mirrors the teacher's `if invariants.Enabled { panic(...) }` guard in
// value_separation.go, generalized into a helper so call sites read as one
// line instead of re-deriving the guard everywhere.
func AssertTrue(cond bool, msg string) {
	if invariantsEnabled && !cond {
		panic(errors.AssertionFailedf("redisearch: invariant violated: %s", msg))
	}
}
