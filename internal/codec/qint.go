// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package codec

import "github.com/RediSearch/RediSearch-sub004/internal/base"

// qint encodes N ∈ {2,3,4} uint32 values with a single leading byte whose
// 2N low bits give each value's byte-count minus one (1-4 bytes each),
// followed by the little-endian raw bytes of each value back to back.
// Because N is known from the index's schema, the group size is static and
// the leading byte gives a branch-free length table on decode.

func putRaw(dst []byte, v uint32, nbytes int) []byte {
	for i := 0; i < nbytes; i++ {
		dst = append(dst, byte(v>>(8*i)))
	}
	return dst
}

func byteLen(v uint32) int {
	switch {
	case v <= 0xff:
		return 1
	case v <= 0xffff:
		return 2
	case v <= 0xffffff:
		return 3
	default:
		return 4
	}
}

func readRaw(src []byte, nbytes int) uint32 {
	var v uint32
	for i := 0; i < nbytes; i++ {
		v |= uint32(src[i]) << (8 * i)
	}
	return v
}

// QInt2Encode encodes two uint32 values, returning the encoded bytes.
func QInt2Encode(a, b uint32) []byte {
	la, lb := byteLen(a), byteLen(b)
	head := byte(la-1) | byte(lb-1)<<2
	dst := make([]byte, 0, 1+la+lb)
	dst = append(dst, head)
	dst = putRaw(dst, a, la)
	dst = putRaw(dst, b, lb)
	return dst
}

// QInt2Decode decodes two uint32 values encoded by QInt2Encode, returning
// the values and the number of bytes consumed.
func QInt2Decode(src []byte) (a, b uint32, n int, err error) {
	if len(src) < 1 {
		return 0, 0, 0, base.ErrUnexpectedEOF
	}
	head := src[0]
	la := int(head&0x3) + 1
	lb := int((head>>2)&0x3) + 1
	if len(src) < 1+la+lb {
		return 0, 0, 0, base.ErrUnexpectedEOF
	}
	p := src[1:]
	a = readRaw(p, la)
	p = p[la:]
	b = readRaw(p, lb)
	return a, b, 1 + la + lb, nil
}

// QInt3Encode encodes three uint32 values.
func QInt3Encode(a, b, c uint32) []byte {
	la, lb, lc := byteLen(a), byteLen(b), byteLen(c)
	head := byte(la-1) | byte(lb-1)<<2 | byte(lc-1)<<4
	dst := make([]byte, 0, 1+la+lb+lc)
	dst = append(dst, head)
	dst = putRaw(dst, a, la)
	dst = putRaw(dst, b, lb)
	dst = putRaw(dst, c, lc)
	return dst
}

// QInt3Decode decodes three uint32 values encoded by QInt3Encode.
func QInt3Decode(src []byte) (a, b, c uint32, n int, err error) {
	if len(src) < 1 {
		return 0, 0, 0, 0, base.ErrUnexpectedEOF
	}
	head := src[0]
	la := int(head&0x3) + 1
	lb := int((head>>2)&0x3) + 1
	lc := int((head>>4)&0x3) + 1
	if len(src) < 1+la+lb+lc {
		return 0, 0, 0, 0, base.ErrUnexpectedEOF
	}
	p := src[1:]
	a = readRaw(p, la)
	p = p[la:]
	b = readRaw(p, lb)
	p = p[lb:]
	c = readRaw(p, lc)
	return a, b, c, 1 + la + lb + lc, nil
}

// QInt4Encode encodes four uint32 values, using all 8 low bits of the
// leading byte (2 bits per value).
func QInt4Encode(a, b, c, d uint32) []byte {
	la, lb, lc, ld := byteLen(a), byteLen(b), byteLen(c), byteLen(d)
	head := byte(la-1) | byte(lb-1)<<2 | byte(lc-1)<<4 | byte(ld-1)<<6
	dst := make([]byte, 0, 1+la+lb+lc+ld)
	dst = append(dst, head)
	dst = putRaw(dst, a, la)
	dst = putRaw(dst, b, lb)
	dst = putRaw(dst, c, lc)
	dst = putRaw(dst, d, ld)
	return dst
}

// QInt4Decode decodes four uint32 values encoded by QInt4Encode, returning
// the values and the number of bytes written/consumed.
func QInt4Decode(src []byte) (a, b, c, d uint32, n int, err error) {
	if len(src) < 1 {
		return 0, 0, 0, 0, 0, base.ErrUnexpectedEOF
	}
	head := src[0]
	la := int(head&0x3) + 1
	lb := int((head>>2)&0x3) + 1
	lc := int((head>>4)&0x3) + 1
	ld := int((head>>6)&0x3) + 1
	if len(src) < 1+la+lb+lc+ld {
		return 0, 0, 0, 0, 0, base.ErrUnexpectedEOF
	}
	p := src[1:]
	a = readRaw(p, la)
	p = p[la:]
	b = readRaw(p, lb)
	p = p[lb:]
	c = readRaw(p, lc)
	p = p[lc:]
	d = readRaw(p, ld)
	return a, b, c, d, 1 + la + lb + lc + ld, nil
}
