// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package docmeta

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
)

func TestRefcountReleaseToZero(t *testing.T) {
	m := NewDocumentMetadata(1, "doc:1", 100, 0.5)
	require.EqualValues(t, 1, m.RefCount())
	m.Retain()
	require.EqualValues(t, 2, m.RefCount())
	require.False(t, m.Release())
	require.True(t, m.Release())
}

func TestTableInsertGetDelete(t *testing.T) {
	tbl := NewTable()
	m := NewDocumentMetadata(42, "doc:42", 10, 1.0)
	require.NoError(t, tbl.Insert(m))
	require.Error(t, tbl.Insert(NewDocumentMetadata(42, "doc:42-dup", 1, 1.0)))

	got, ok := tbl.Get(42)
	require.True(t, ok)
	require.Equal(t, base.DocId(42), got.DocID)
	require.EqualValues(t, 2, got.RefCount()) // table's own ref + this retain

	tbl.Delete(42)
	require.Equal(t, 0, tbl.Len())
	_, ok = tbl.Get(42)
	require.False(t, ok)
}

func TestQueryTermPreservesBothIdfFields(t *testing.T) {
	qt := NewQueryTerm("hello", 1.5, 2.5)
	require.Equal(t, 1.5, ScorerTFIDF.IdfFor(qt))
	require.Equal(t, 2.5, ScorerBM25.IdfFor(qt))
}
