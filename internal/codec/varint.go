// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package codec implements the bit-packed integer encodings shared by every
// posting-list encoder: plain varints, bounded qint groups, and the
// delta-varint vector writer used for term-position offsets.
package codec

import (
	"github.com/RediSearch/RediSearch-sub004/internal/base"
)

// PutUvarint32 appends the varint encoding of x to dst and returns the
// extended slice. Groups of 7 bits, little-endian, high bit set means "more
// follows" — the standard LEB128 shape used throughout the posting format.
func PutUvarint32(dst []byte, x uint32) []byte {
	for x >= 0x80 {
		dst = append(dst, byte(x)|0x80)
		x >>= 7
	}
	return append(dst, byte(x))
}

// PutUvarint64 is the 64-bit counterpart of PutUvarint32.
func PutUvarint64(dst []byte, x uint64) []byte {
	for x >= 0x80 {
		dst = append(dst, byte(x)|0x80)
		x >>= 7
	}
	return append(dst, byte(x))
}

// PutUvarint128 encodes a 128-bit unsigned integer (used for wide field
// masks) as a sequence of 7-bit varint groups over the logical value
// hi<<64|lo, least-significant group first.
func PutUvarint128(dst []byte, hi, lo uint64) []byte {
	for {
		b := byte(lo & 0x7f)
		// Shift the 128-bit pair right by 7: the low 57 bits of lo come
		// from its own upper bits, and the top 7 bits of lo are refilled
		// from the bottom 7 bits of hi.
		lo = (lo >> 7) | ((hi & 0x7f) << 57)
		hi >>= 7
		if lo != 0 || hi != 0 {
			dst = append(dst, b|0x80)
			continue
		}
		return append(dst, b)
	}
}

// UvarintSize32 returns the number of bytes PutUvarint32 would write.
func UvarintSize32(x uint32) int {
	n := 1
	for x >= 0x80 {
		x >>= 7
		n++
	}
	return n
}

// UvarintSize64 returns the number of bytes PutUvarint64 would write.
func UvarintSize64(x uint64) int {
	n := 1
	for x >= 0x80 {
		x >>= 7
		n++
	}
	return n
}

// Uvarint32 decodes a varint-encoded uint32 from src, returning the value
// and the number of bytes consumed. It fails with base.ErrUnexpectedEOF on
// truncation, matching the round-trip property decode(encode(x)) == x for
// every representable x.
func Uvarint32(src []byte) (uint32, int, error) {
	var x uint32
	var s uint
	for i, b := range src {
		if b < 0x80 {
			if i == 4 && b > 0x0f {
				return 0, 0, base.ErrIo
			}
			return x | uint32(b)<<s, i + 1, nil
		}
		x |= uint32(b&0x7f) << s
		s += 7
	}
	return 0, 0, base.ErrUnexpectedEOF
}

// Uvarint64 decodes a varint-encoded uint64 from src.
func Uvarint64(src []byte) (uint64, int, error) {
	var x uint64
	var s uint
	for i, b := range src {
		if b < 0x80 {
			if i == 9 && b > 1 {
				return 0, 0, base.ErrIo
			}
			return x | uint64(b)<<s, i + 1, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return 0, 0, base.ErrUnexpectedEOF
}

// Uvarint128 is the decode counterpart of PutUvarint128, returning the
// 128-bit value split into (hi, lo) and the number of bytes consumed.
func Uvarint128(src []byte) (hi, lo uint64, n int, err error) {
	var bitPos uint
	for i, b := range src {
		val := uint64(b & 0x7f)
		if bitPos < 64 {
			lo |= val << bitPos
			if bitPos+7 > 64 {
				hi |= val >> (64 - bitPos)
			}
		} else {
			hi |= val << (bitPos - 64)
		}
		bitPos += 7
		if b < 0x80 {
			return hi, lo, i + 1, nil
		}
		if bitPos > 128+7 {
			return 0, 0, 0, base.ErrIo
		}
	}
	return 0, 0, 0, base.ErrUnexpectedEOF
}
