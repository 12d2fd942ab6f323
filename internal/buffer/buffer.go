// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package buffer implements the append-only byte stream with seek-and-pad
// semantics that every block encoder writes through (§2's "Buffer /
// cursor"). Grounded on src/redisearch_rs/buffer/src/reader.rs's cursor
// contract: a write position, a read position, and the ability to pad with
// zero bytes up to an absolute offset without disturbing already-written
// data.
package buffer

import "github.com/RediSearch/RediSearch-sub004/internal/base"

// Buffer is a growable byte slice with an independent read cursor, used by
// block encoders to append encoded postings and by block readers to walk
// them back off.
type Buffer struct {
	data []byte
	pos  int // read cursor
}

// New returns an empty buffer.
func New() *Buffer { return &Buffer{} }

// Wrap returns a buffer reading from (and able to append to) an existing
// byte slice, positioned at the start.
func Wrap(data []byte) *Buffer { return &Buffer{data: data} }

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int { return len(b.data) }

// Bytes returns the full written content.
func (b *Buffer) Bytes() []byte { return b.data }

// Pos returns the current read cursor offset.
func (b *Buffer) Pos() int { return b.pos }

// SeekRead repositions the read cursor to an absolute offset. Offsets past
// the end of the buffer are clamped to Len(), matching a reader that has
// reached EOF rather than panicking.
func (b *Buffer) SeekRead(off int) {
	if off > len(b.data) {
		off = len(b.data)
	}
	if off < 0 {
		off = 0
	}
	b.pos = off
}

// Remaining returns the unread suffix of the buffer.
func (b *Buffer) Remaining() []byte { return b.data[b.pos:] }

// AtEOF reports whether the read cursor has reached the end of the buffer.
func (b *Buffer) AtEOF() bool { return b.pos >= len(b.data) }

// Advance moves the read cursor forward by n bytes, clamped to Len().
func (b *Buffer) Advance(n int) {
	b.SeekRead(b.pos + n)
}

// Write appends p to the buffer and returns the offset it was written at.
func (b *Buffer) Write(p []byte) (offset int) {
	offset = len(b.data)
	b.data = append(b.data, p...)
	return offset
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(c byte) { b.data = append(b.data, c) }

// PadTo zero-pads the buffer until its length is at least n. A no-op if the
// buffer is already at least that long. This is the "seek-and-pad"
// semantics the cursor offers block writers that need fixed-offset
// metadata slots reserved ahead of the data that follows them.
func (b *Buffer) PadTo(n int) {
	for len(b.data) < n {
		b.data = append(b.data, 0)
	}
}

// ReadByte consumes and returns one byte, advancing the cursor.
func (b *Buffer) ReadByte() (byte, error) {
	if b.pos >= len(b.data) {
		return 0, base.ErrUnexpectedEOF
	}
	c := b.data[b.pos]
	b.pos++
	return c, nil
}

// ReadN consumes and returns the next n bytes, advancing the cursor.
func (b *Buffer) ReadN(n int) ([]byte, error) {
	if b.pos+n > len(b.data) {
		return nil, base.ErrUnexpectedEOF
	}
	out := b.data[b.pos : b.pos+n]
	b.pos += n
	return out, nil
}

// Truncate discards all written bytes beyond n, clamping the read cursor if
// it now points past the new end.
func (b *Buffer) Truncate(n int) {
	if n < len(b.data) {
		b.data = b.data[:n]
	}
	if b.pos > len(b.data) {
		b.pos = len(b.data)
	}
}

// Reset empties the buffer and resets the read cursor, retaining capacity.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.pos = 0
}
