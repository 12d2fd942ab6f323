// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package invindex implements the inverted index: an ordered sequence of
// posting blocks with pluggable codec, block-level scoring metadata, and
// concurrent reader/writer/GC semantics (§4.2). The encoder variant is
// selected once, at construction, from the index's persisted Flags (§6);
// every reader and writer of the same index agrees on the same variant.
package invindex

import "github.com/RediSearch/RediSearch-sub004/internal/base"

// Flags is the bitset recognized by encoder selection (§6). It is part of
// the persisted format: changing its meaning breaks backward compatibility.
type Flags uint32

const (
	// StoreFreqs includes a per-posting frequency.
	StoreFreqs Flags = 1 << iota
	// StoreFieldFlags includes a per-posting field mask.
	StoreFieldFlags
	// StoreTermOffsets includes a per-posting term-position offsets vector.
	StoreTermOffsets
	// WideSchema selects 128-bit field masks over the compact 32-bit form.
	WideSchema
	// StoreNumeric selects the numeric codec; mutually exclusive with the
	// text-posting flags above.
	StoreNumeric
	// DocIdsOnly selects the minimal codec carrying no payload beyond the
	// document ID.
	DocIdsOnly
	// StoreByteOffsets additionally stores byte offsets alongside term
	// offsets; only meaningful together with StoreTermOffsets.
	StoreByteOffsets
	// RawDocIds selects fixed-width absolute document IDs instead of
	// delta-varint encoding; only meaningful together with DocIdsOnly.
	RawDocIds
	// MultiValue permits more than one posting per document ID in this
	// index (§4.2's add_record precondition, §4.3.3's "duplicates
	// suppressed unless the index is multi-value"). Not part of the
	// encoder-selection bitset proper, but persisted alongside it.
	MultiValue
)

func (f Flags) has(bit Flags) bool { return f&bit != 0 }

// Variant names the concrete encoder/decoder pair an index's Flags select
// (§4.2's "Encoder contract"). Exposed mainly for diagnostics/FT.DEBUG.
type Variant int

const (
	VariantDocIdsOnly Variant = iota
	VariantRawDocIdsOnly
	VariantFreqsOnly
	VariantFieldsOnly
	VariantFreqsFields
	VariantOffsetsOnly
	VariantFreqsOffsets
	VariantFieldsOffsets
	VariantFull
	VariantNumeric
)

func (v Variant) String() string {
	switch v {
	case VariantDocIdsOnly:
		return "DocIdsOnly"
	case VariantRawDocIdsOnly:
		return "RawDocIdsOnly"
	case VariantFreqsOnly:
		return "FreqsOnly"
	case VariantFieldsOnly:
		return "FieldsOnly"
	case VariantFreqsFields:
		return "FreqsFields"
	case VariantOffsetsOnly:
		return "OffsetsOnly"
	case VariantFreqsOffsets:
		return "FreqsOffsets"
	case VariantFieldsOffsets:
		return "FieldsOffsets"
	case VariantFull:
		return "Full"
	case VariantNumeric:
		return "Numeric"
	default:
		return "Unknown"
	}
}

// ResolveVariant validates flags and returns the concrete encoder variant
// they select, rejecting invalid combinations at index creation (§6).
func ResolveVariant(f Flags) (Variant, error) {
	numeric := f.has(StoreNumeric)
	docIDsOnly := f.has(DocIdsOnly)
	freqs := f.has(StoreFreqs)
	fields := f.has(StoreFieldFlags)
	offsets := f.has(StoreTermOffsets)
	byteOffsets := f.has(StoreByteOffsets)
	raw := f.has(RawDocIds)

	switch {
	case numeric && (docIDsOnly || freqs || fields || offsets || byteOffsets || raw):
		return 0, base.ErrIo // numeric is exclusive of every text flag
	case numeric:
		return VariantNumeric, nil
	case docIDsOnly && (freqs || fields || offsets || byteOffsets):
		return 0, base.ErrIo // DocIdsOnly carries no payload flags
	case docIDsOnly && raw:
		return VariantRawDocIdsOnly, nil
	case docIDsOnly:
		return VariantDocIdsOnly, nil
	case raw && !docIDsOnly:
		return 0, base.ErrIo // RawDocIds only meaningful with DocIdsOnly
	case byteOffsets && !offsets:
		return 0, base.ErrIo // byte offsets require term offsets
	case freqs && fields && offsets:
		return VariantFull, nil
	case fields && offsets:
		return VariantFieldsOffsets, nil
	case freqs && offsets:
		return VariantFreqsOffsets, nil
	case offsets:
		return VariantOffsetsOnly, nil
	case freqs && fields:
		return VariantFreqsFields, nil
	case fields:
		return VariantFieldsOnly, nil
	case freqs:
		return VariantFreqsOnly, nil
	default:
		return VariantDocIdsOnly, nil
	}
}

// DeltaWidth reports the integer width used for the doc_id delta of the
// given variant. Variants that pack the delta into a qint group (§4.1.2)
// are bounded to 32 bits, and DeltaWidthOf applies the same bound to the
// plain-varint variants.
type DeltaWidth int

const (
	DeltaWidth32 DeltaWidth = 32
	DeltaWidth64 DeltaWidth = 64
)

// DeltaWidthOf returns the delta width for v. Every variant that actually
// computes a doc_id delta bounds it to 32 bits (matching qint's 1-4 byte
// groups and keeping plain-varint deltas compact too); RawDocIdsOnly
// stores absolute 64-bit IDs and never overflows regardless of width.
func DeltaWidthOf(v Variant) DeltaWidth {
	switch v {
	case VariantRawDocIdsOnly:
		return DeltaWidth64
	default:
		return DeltaWidth32
	}
}
