// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package codec

// VectorWriter incrementally encodes a sequence of uint32 as varint-encoded
// deltas from the previous value, using wraparound subtraction so a
// decreasing sequence never underflows. Used for term-position offsets
// vectors (§3's "Offsets vector").
type VectorWriter struct {
	buf  []byte
	last uint32
	n    int
}

// NewVectorWriter returns an empty writer.
func NewVectorWriter() *VectorWriter {
	return &VectorWriter{}
}

// Write appends v to the sequence, encoding it as a delta from the
// previously written value (or from 0 for the first value).
func (w *VectorWriter) Write(v uint32) {
	delta := v - w.last // wraparound subtraction: underflow wraps, not panics
	w.buf = PutUvarint32(w.buf, delta)
	w.last = v
	w.n++
}

// Reset empties the writer, allowing the underlying buffer to be reused.
func (w *VectorWriter) Reset() {
	w.buf = w.buf[:0]
	w.last = 0
	w.n = 0
}

// Bytes returns the encoded byte sequence written so far.
func (w *VectorWriter) Bytes() []byte { return w.buf }

// Count returns the number of values written.
func (w *VectorWriter) Count() int { return w.n }

// ShrinkToFit reallocates the backing buffer to exactly its current length,
// releasing any spare capacity accumulated by append.
func (w *VectorWriter) ShrinkToFit() {
	if cap(w.buf) == len(w.buf) {
		return
	}
	shrunk := make([]byte, len(w.buf))
	copy(shrunk, w.buf)
	w.buf = shrunk
}

// DecodeVector decodes a sequence of n delta-varint-encoded uint32 values
// from src, applying wraparound addition to reconstruct the original
// values. Returns the decoded values and number of bytes consumed.
func DecodeVector(src []byte, n int) ([]uint32, int, error) {
	out := make([]uint32, 0, n)
	var last uint32
	off := 0
	for i := 0; i < n; i++ {
		delta, consumed, err := Uvarint32(src[off:])
		if err != nil {
			return nil, 0, err
		}
		off += consumed
		last += delta // wraparound addition
		out = append(out, last)
	}
	return out, off, nil
}
