// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package invindex

import (
	"math"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
	"github.com/RediSearch/RediSearch-sub004/internal/buffer"
	"github.com/RediSearch/RediSearch-sub004/internal/codec"
)

// Codec is the (Encoder, Decoder) pair for one Variant (§4.2's "Encoder
// contract"). Both the writer and every reader of an index share one
// Codec, constructed once from the index's Flags.
type Codec struct {
	variant Variant
	flags   Flags
}

// NewCodec validates flags and returns the Codec selected for them.
func NewCodec(flags Flags) (*Codec, error) {
	v, err := ResolveVariant(flags)
	if err != nil {
		return nil, err
	}
	return &Codec{variant: v, flags: flags}, nil
}

// Variant reports the concrete wire layout this codec uses.
func (c *Codec) Variant() Variant { return c.variant }

// DeltaWidth reports the width of the doc_id delta this codec packs.
func (c *Codec) DeltaWidth() DeltaWidth { return DeltaWidthOf(c.variant) }

// FitsDelta reports whether delta between two ascending doc IDs still fits
// the codec's Delta width — used by block sealing (§4.2: "or a new doc_id
// would overflow the block's delta width") and GC splitting (§4.2 "Block-
// split policy on GC").
func (c *Codec) FitsDelta(prev, next base.DocId) bool {
	delta := uint64(next) - uint64(prev)
	if c.DeltaWidth() == DeltaWidth32 {
		return delta <= math.MaxUint32
	}
	return true
}

// Encode appends the wire encoding of rec (relative to prevID) to buf,
// returning the number of bytes written.
func (c *Codec) Encode(buf *buffer.Buffer, prevID base.DocId, rec Record) int {
	start := buf.Len()
	delta := uint32(uint64(rec.DocID) - uint64(prevID))

	switch c.variant {
	case VariantDocIdsOnly:
		buf.Write(codec.PutUvarint64(nil, uint64(rec.DocID)-uint64(prevID)))

	case VariantRawDocIdsOnly:
		var raw [8]byte
		putLE64(raw[:], uint64(rec.DocID))
		buf.Write(raw[:])

	case VariantFreqsOnly:
		buf.Write(codec.QInt2Encode(delta, rec.Freq))

	case VariantFieldsOnly:
		if c.flags.has(WideSchema) {
			buf.Write(codec.PutUvarint32(nil, delta))
			buf.Write(codec.PutUvarint128(nil, rec.Mask128[0], rec.Mask128[1]))
		} else {
			buf.Write(codec.QInt2Encode(delta, uint32(rec.Mask32)))
		}

	case VariantFreqsFields:
		if c.flags.has(WideSchema) {
			buf.Write(codec.QInt2Encode(delta, rec.Freq))
			buf.Write(codec.PutUvarint128(nil, rec.Mask128[0], rec.Mask128[1]))
		} else {
			buf.Write(codec.QInt3Encode(delta, rec.Freq, uint32(rec.Mask32)))
		}

	case VariantOffsetsOnly:
		ob := encodeOffsets(rec.Offsets, rec.ByteOffsets, c.flags.has(StoreByteOffsets))
		buf.Write(codec.QInt2Encode(delta, uint32(len(ob))))
		buf.Write(ob)

	case VariantFreqsOffsets:
		ob := encodeOffsets(rec.Offsets, rec.ByteOffsets, c.flags.has(StoreByteOffsets))
		buf.Write(codec.QInt3Encode(delta, rec.Freq, uint32(len(ob))))
		buf.Write(ob)

	case VariantFieldsOffsets:
		ob := encodeOffsets(rec.Offsets, rec.ByteOffsets, c.flags.has(StoreByteOffsets))
		if c.flags.has(WideSchema) {
			buf.Write(codec.QInt2Encode(delta, uint32(len(ob))))
			buf.Write(codec.PutUvarint128(nil, rec.Mask128[0], rec.Mask128[1]))
			buf.Write(ob)
		} else {
			buf.Write(codec.QInt3Encode(delta, uint32(rec.Mask32), uint32(len(ob))))
			buf.Write(ob)
		}

	case VariantFull:
		ob := encodeOffsets(rec.Offsets, rec.ByteOffsets, c.flags.has(StoreByteOffsets))
		if c.flags.has(WideSchema) {
			buf.Write(codec.QInt2Encode(delta, rec.Freq))
			buf.Write(codec.PutUvarint128(nil, rec.Mask128[0], rec.Mask128[1]))
			buf.Write(codec.PutUvarint32(nil, uint32(len(ob))))
			buf.Write(ob)
		} else {
			buf.Write(codec.QInt4Encode(delta, rec.Freq, uint32(rec.Mask32), uint32(len(ob))))
			buf.Write(ob)
		}

	case VariantNumeric:
		buf.Write(codec.PutUvarint64(nil, uint64(rec.DocID)-uint64(prevID)))
		var raw [8]byte
		putLE64(raw[:], math.Float64bits(rec.Value))
		buf.Write(raw[:])
	}
	return buf.Len() - start
}

// Decode reads one record from the front of cur (relative to prevID),
// returning the record and bytes consumed.
func (c *Codec) Decode(cur *buffer.Buffer, prevID base.DocId) (Record, int, error) {
	start := cur.Pos()
	rec := Record{}

	switch c.variant {
	case VariantDocIdsOnly:
		delta, n, err := readUvarint64(cur)
		if err != nil {
			return Record{}, 0, err
		}
		_ = n
		rec.DocID = prevID + base.DocId(delta)

	case VariantRawDocIdsOnly:
		raw, err := cur.ReadN(8)
		if err != nil {
			return Record{}, 0, err
		}
		rec.DocID = base.DocId(getLE64(raw))

	case VariantFreqsOnly:
		delta, freq, err := readQInt2(cur)
		if err != nil {
			return Record{}, 0, err
		}
		rec.DocID = prevID + base.DocId(delta)
		rec.Freq = freq

	case VariantFieldsOnly:
		if c.flags.has(WideSchema) {
			delta, err := readUvarint32(cur)
			if err != nil {
				return Record{}, 0, err
			}
			hi, lo, err := readUvarint128(cur)
			if err != nil {
				return Record{}, 0, err
			}
			rec.DocID = prevID + base.DocId(delta)
			rec.Mask128 = base.FieldMask128{hi, lo}
		} else {
			delta, mask, err := readQInt2(cur)
			if err != nil {
				return Record{}, 0, err
			}
			rec.DocID = prevID + base.DocId(delta)
			rec.Mask32 = base.FieldMask32(mask)
		}

	case VariantFreqsFields:
		if c.flags.has(WideSchema) {
			delta, freq, err := readQInt2(cur)
			if err != nil {
				return Record{}, 0, err
			}
			hi, lo, err := readUvarint128(cur)
			if err != nil {
				return Record{}, 0, err
			}
			rec.DocID = prevID + base.DocId(delta)
			rec.Freq = freq
			rec.Mask128 = base.FieldMask128{hi, lo}
		} else {
			delta, freq, mask, err := readQInt3(cur)
			if err != nil {
				return Record{}, 0, err
			}
			rec.DocID = prevID + base.DocId(delta)
			rec.Freq = freq
			rec.Mask32 = base.FieldMask32(mask)
		}

	case VariantOffsetsOnly:
		delta, olen, err := readQInt2(cur)
		if err != nil {
			return Record{}, 0, err
		}
		ob, err := cur.ReadN(int(olen))
		if err != nil {
			return Record{}, 0, err
		}
		rec.DocID = prevID + base.DocId(delta)
		rec.Offsets, rec.ByteOffsets, err = decodeOffsets(ob, c.flags.has(StoreByteOffsets))
		if err != nil {
			return Record{}, 0, err
		}

	case VariantFreqsOffsets:
		delta, freq, olen, err := readQInt3(cur)
		if err != nil {
			return Record{}, 0, err
		}
		ob, err := cur.ReadN(int(olen))
		if err != nil {
			return Record{}, 0, err
		}
		rec.DocID = prevID + base.DocId(delta)
		rec.Freq = freq
		rec.Offsets, rec.ByteOffsets, err = decodeOffsets(ob, c.flags.has(StoreByteOffsets))
		if err != nil {
			return Record{}, 0, err
		}

	case VariantFieldsOffsets:
		if c.flags.has(WideSchema) {
			delta, olen, err := readQInt2(cur)
			if err != nil {
				return Record{}, 0, err
			}
			hi, lo, err := readUvarint128(cur)
			if err != nil {
				return Record{}, 0, err
			}
			ob, err := cur.ReadN(int(olen))
			if err != nil {
				return Record{}, 0, err
			}
			rec.DocID = prevID + base.DocId(delta)
			rec.Mask128 = base.FieldMask128{hi, lo}
			rec.Offsets, rec.ByteOffsets, err = decodeOffsets(ob, c.flags.has(StoreByteOffsets))
			if err != nil {
				return Record{}, 0, err
			}
		} else {
			delta, mask, olen, err := readQInt3(cur)
			if err != nil {
				return Record{}, 0, err
			}
			ob, err := cur.ReadN(int(olen))
			if err != nil {
				return Record{}, 0, err
			}
			rec.DocID = prevID + base.DocId(delta)
			rec.Mask32 = base.FieldMask32(mask)
			rec.Offsets, rec.ByteOffsets, err = decodeOffsets(ob, c.flags.has(StoreByteOffsets))
			if err != nil {
				return Record{}, 0, err
			}
		}

	case VariantFull:
		if c.flags.has(WideSchema) {
			delta, freq, err := readQInt2(cur)
			if err != nil {
				return Record{}, 0, err
			}
			hi, lo, err := readUvarint128(cur)
			if err != nil {
				return Record{}, 0, err
			}
			olen, err := readUvarint32(cur)
			if err != nil {
				return Record{}, 0, err
			}
			ob, err := cur.ReadN(int(olen))
			if err != nil {
				return Record{}, 0, err
			}
			rec.DocID = prevID + base.DocId(delta)
			rec.Freq = freq
			rec.Mask128 = base.FieldMask128{hi, lo}
			rec.Offsets, rec.ByteOffsets, err = decodeOffsets(ob, c.flags.has(StoreByteOffsets))
			if err != nil {
				return Record{}, 0, err
			}
		} else {
			delta, freq, mask, olen, err := readQInt4(cur)
			if err != nil {
				return Record{}, 0, err
			}
			ob, err := cur.ReadN(int(olen))
			if err != nil {
				return Record{}, 0, err
			}
			rec.DocID = prevID + base.DocId(delta)
			rec.Freq = freq
			rec.Mask32 = base.FieldMask32(mask)
			rec.Offsets, rec.ByteOffsets, err = decodeOffsets(ob, c.flags.has(StoreByteOffsets))
			if err != nil {
				return Record{}, 0, err
			}
		}

	case VariantNumeric:
		delta, err := readUvarint64(cur)
		if err != nil {
			return Record{}, 0, err
		}
		raw, err := cur.ReadN(8)
		if err != nil {
			return Record{}, 0, err
		}
		rec.DocID = prevID + base.DocId(delta)
		rec.Value = math.Float64frombits(getLE64(raw))
	}
	return rec, cur.Pos() - start, nil
}

func encodeOffsets(offsets, byteOffsets []uint32, withByteOffsets bool) []byte {
	w := codec.NewVectorWriter()
	for _, o := range offsets {
		w.Write(o)
	}
	out := codec.PutUvarint32(nil, uint32(w.Count()))
	out = append(out, w.Bytes()...)
	if withByteOffsets {
		bw := codec.NewVectorWriter()
		for _, o := range byteOffsets {
			bw.Write(o)
		}
		out = codec.PutUvarint32(out, uint32(bw.Count()))
		out = append(out, bw.Bytes()...)
	}
	return out
}

func decodeOffsets(src []byte, withByteOffsets bool) (offsets, byteOffsets []uint32, err error) {
	n, consumed, err := codec.Uvarint32(src)
	if err != nil {
		return nil, nil, err
	}
	off := consumed
	offsets, m, err := codec.DecodeVector(src[off:], int(n))
	if err != nil {
		return nil, nil, err
	}
	off += m
	if withByteOffsets {
		bn, bconsumed, err := codec.Uvarint32(src[off:])
		if err != nil {
			return nil, nil, err
		}
		off += bconsumed
		byteOffsets, _, err = codec.DecodeVector(src[off:], int(bn))
		if err != nil {
			return nil, nil, err
		}
	}
	return offsets, byteOffsets, nil
}

func putLE64(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}

func getLE64(src []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(src[i]) << (8 * i)
	}
	return v
}

func readUvarint32(cur *buffer.Buffer) (uint32, error) {
	v, n, err := codec.Uvarint32(cur.Remaining())
	if err != nil {
		return 0, err
	}
	cur.Advance(n)
	return v, nil
}

func readUvarint64(cur *buffer.Buffer) (uint64, int, error) {
	v, n, err := codec.Uvarint64(cur.Remaining())
	if err != nil {
		return 0, 0, err
	}
	cur.Advance(n)
	return v, n, nil
}

func readUvarint128(cur *buffer.Buffer) (hi, lo uint64, err error) {
	hi, lo, n, err := codec.Uvarint128(cur.Remaining())
	if err != nil {
		return 0, 0, err
	}
	cur.Advance(n)
	return hi, lo, nil
}

func readQInt2(cur *buffer.Buffer) (a, b uint32, err error) {
	a, b, n, err := codec.QInt2Decode(cur.Remaining())
	if err != nil {
		return 0, 0, err
	}
	cur.Advance(n)
	return a, b, nil
}

func readQInt3(cur *buffer.Buffer) (a, b, c uint32, err error) {
	a, b, c, n, err := codec.QInt3Decode(cur.Remaining())
	if err != nil {
		return 0, 0, 0, err
	}
	cur.Advance(n)
	return a, b, c, nil
}

func readQInt4(cur *buffer.Buffer) (a, b, c, d uint32, err error) {
	a, b, c, d, n, err := codec.QInt4Decode(cur.Remaining())
	if err != nil {
		return 0, 0, 0, 0, err
	}
	cur.Advance(n)
	return a, b, c, d, nil
}
