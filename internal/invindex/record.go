// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package invindex

import "github.com/RediSearch/RediSearch-sub004/internal/base"

// Record is one posting: (doc_id, optional freq, optional field_mask,
// optional offsets), matching the GLOSSARY's definition. Which fields are
// meaningful depends on the owning index's Variant; a FreqsOnly index
// never populates Offsets, for instance.
type Record struct {
	DocID       base.DocId
	Freq        uint32
	Mask32      base.FieldMask32
	Mask128     base.FieldMask128
	Offsets     []uint32
	ByteOffsets []uint32
	Value       float64 // meaningful only for VariantNumeric
}
