// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package codec

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip32(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cases := []uint32{0, 1, 127, 128, 16383, 16384, math.MaxUint32}
	for i := 0; i < 1000; i++ {
		cases = append(cases, rng.Uint32())
	}
	for _, x := range cases {
		enc := PutUvarint32(nil, x)
		require.Equal(t, UvarintSize32(x), len(enc))
		got, n, err := Uvarint32(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, x, got)
	}
}

func TestVarintRoundTrip64(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	cases := []uint64{0, 1, 127, 128, math.MaxUint64}
	for i := 0; i < 1000; i++ {
		cases = append(cases, rng.Uint64())
	}
	for _, x := range cases {
		enc := PutUvarint64(nil, x)
		got, n, err := Uvarint64(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, x, got)
	}
}

func TestVarintRoundTrip128(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	type pair struct{ hi, lo uint64 }
	cases := []pair{{0, 0}, {0, 1}, {1, 0}, {math.MaxUint64, math.MaxUint64}}
	for i := 0; i < 1000; i++ {
		cases = append(cases, pair{rng.Uint64(), rng.Uint64()})
	}
	for _, c := range cases {
		enc := PutUvarint128(nil, c.hi, c.lo)
		hi, lo, n, err := Uvarint128(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, c.hi, hi)
		require.Equal(t, c.lo, lo)
	}
}

func TestVarintTruncated(t *testing.T) {
	enc := PutUvarint32(nil, 1<<20)
	_, _, err := Uvarint32(enc[:1])
	require.Error(t, err)
}

func TestQInt2RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 1000; i++ {
		a, b := rng.Uint32(), rng.Uint32()
		enc := QInt2Encode(a, b)
		ga, gb, n, err := QInt2Decode(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, a, ga)
		require.Equal(t, b, gb)
	}
}

func TestQInt3RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 1000; i++ {
		a, b, c := rng.Uint32(), rng.Uint32(), rng.Uint32()
		enc := QInt3Encode(a, b, c)
		ga, gb, gc, n, err := QInt3Decode(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, [3]uint32{a, b, c}, [3]uint32{ga, gb, gc})
	}
}

func TestQInt4RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for i := 0; i < 1000; i++ {
		a, b, c, d := rng.Uint32(), rng.Uint32(), rng.Uint32(), rng.Uint32()
		enc := QInt4Encode(a, b, c, d)
		ga, gb, gc, gd, n, err := QInt4Decode(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, [4]uint32{a, b, c, d}, [4]uint32{ga, gb, gc, gd})
	}
}

func TestQInt4MinimalLength(t *testing.T) {
	enc := QInt4Encode(1, 2, 3, 4)
	require.Len(t, enc, 5) // 1 header byte + 4 single-byte values
}

func TestVectorWriterWraparound(t *testing.T) {
	w := NewVectorWriter()
	seq := []uint32{math.MaxUint32 - 10, 5}
	for _, v := range seq {
		w.Write(v)
	}
	require.Equal(t, 2, w.Count())
	got, n, err := DecodeVector(w.Bytes(), w.Count())
	require.NoError(t, err)
	require.Equal(t, len(w.Bytes()), n)
	require.Equal(t, seq, got)
}

func TestVectorWriterMonotonic(t *testing.T) {
	w := NewVectorWriter()
	seq := []uint32{5, 6, 7, 8, 20, 21}
	for _, v := range seq {
		w.Write(v)
	}
	got, _, err := DecodeVector(w.Bytes(), w.Count())
	require.NoError(t, err)
	require.Equal(t, seq, got)
}

func TestVectorWriterResetAndShrink(t *testing.T) {
	w := NewVectorWriter()
	for i := uint32(0); i < 100; i++ {
		w.Write(i)
	}
	w.Reset()
	require.Equal(t, 0, w.Count())
	require.Empty(t, w.Bytes())
	w.Write(1)
	w.ShrinkToFit()
	require.Equal(t, len(w.Bytes()), cap(w.Bytes()))
}
