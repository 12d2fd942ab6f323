// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package trie

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RediSearch/RediSearch-sub004/internal/wildcard"
)

func keysOf[V any](entries []Entry[V]) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = string(e.Key)
	}
	return out
}

func buildFruitTrie(t *testing.T) *Trie[int] {
	tr := New[int]()
	for i, k := range []string{"apple", "apricot", "ban", "banana"} {
		require.True(t, tr.Insert([]byte(k), i))
	}
	return tr
}

func TestInsertFindDelete(t *testing.T) {
	tr := buildFruitTrie(t)
	v, ok := tr.Find([]byte("apple"))
	require.True(t, ok)
	require.Equal(t, 0, v)

	require.True(t, tr.Delete([]byte("apple")))
	_, ok = tr.Find([]byte("apple"))
	require.False(t, ok)

	// sibling survives compaction
	v, ok = tr.Find([]byte("apricot"))
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestPrefixedIterLexicographic(t *testing.T) {
	tr := buildFruitTrie(t)
	it := tr.PrefixedIter([]byte("ap"))
	var got []string
	var e Entry[int]
	for it(&e) {
		got = append(got, string(e.Key))
	}
	sort.Strings(got)
	require.Equal(t, []string{"apple", "apricot"}, got)
}

func TestPrefixesIterBanana(t *testing.T) {
	tr := buildFruitTrie(t)
	entries := tr.PrefixesIter([]byte("banana"))
	require.Equal(t, []string{"ban", "banana"}, keysOf(entries))
}

func TestContainsIterAn(t *testing.T) {
	// §8's worked example: contains_iter("an") over {apple, apricot, ban,
	// banana} yields [ban, banana] — "ban" itself contains "an".
	tr := buildFruitTrie(t)
	entries := tr.ContainsIter([]byte("an"))
	got := keysOf(entries)
	sort.Strings(got)
	require.Equal(t, []string{"ban", "banana"}, got)
}

func TestContainsIterOnlyDescendantMatches(t *testing.T) {
	tr := New[int]()
	tr.Insert([]byte("b"), 0)
	tr.Insert([]byte("banana"), 1)
	entries := tr.ContainsIter([]byte("an"))
	got := keysOf(entries)
	sort.Strings(got)
	require.Equal(t, []string{"banana"}, got)
}

func TestWildcardIterEquivalentToFilteredIter(t *testing.T) {
	tr := buildFruitTrie(t)
	pat := wildcard.Parse([]byte("ap*"))

	wcEntries := tr.WildcardIter(pat)
	wcKeys := keysOf(wcEntries)
	sort.Strings(wcKeys)

	var manual []string
	it := tr.Iter()
	var e Entry[int]
	for it(&e) {
		if pat.Match(e.Key) == wildcard.Match {
			manual = append(manual, string(e.Key))
		}
	}
	sort.Strings(manual)
	require.Equal(t, manual, wcKeys)
}

func TestRangeIterInclusiveBounds(t *testing.T) {
	tr := buildFruitTrie(t)
	entries := tr.RangeIter([]byte("apple"), []byte("ban"), true, true)
	got := keysOf(entries)
	sort.Strings(got)
	require.Equal(t, []string{"apple", "apricot", "ban"}, got)
}

func TestRangeIterExclusiveUpperBound(t *testing.T) {
	tr := buildFruitTrie(t)
	entries := tr.RangeIter([]byte("apple"), []byte("ban"), true, false)
	got := keysOf(entries)
	sort.Strings(got)
	require.Equal(t, []string{"apple", "apricot"}, got)
}
