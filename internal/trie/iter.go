// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package trie

import (
	"bytes"

	"github.com/cespare/xxhash/v2"

	"github.com/RediSearch/RediSearch-sub004/internal/wildcard"
)

// Entry is one (key, value) pair yielded by a traversal.
type Entry[V any] struct {
	Key   []byte
	Value V
}

// stackFrame is one level of the explicit DFS stack the cursor behind Iter
// and PrefixedIter uses instead of recursion, so a trie of arbitrary depth never blows the
// Go call stack (the same zero-recursion concern §4.4 names for the numeric
// range tree's iterators, supplement #6, applies equally here).
type stackFrame[V any] struct {
	n       *node[V]
	visited bool // node itself has already been considered for yielding
	descend bool // filter's descend verdict, cached from the visit
	childAt int  // next child index to descend into
}

// cursor walks the trie in lexicographic order, maintaining a prefix buffer
// mirroring the path so far (§4.5: "traversals maintain a prefix buffer...
// so the emitted key is reconstructed without per-node copying").
type cursor[V any] struct {
	stack  []stackFrame[V]
	prefix []byte
	// filter, if non-nil, is consulted at every node before it is
	// considered for yielding or descent.
	filter func(prefix []byte, n *node[V]) (yield, descend bool)
}

func newCursor[V any](root *node[V], filter func([]byte, *node[V]) (bool, bool)) *cursor[V] {
	c := &cursor[V]{filter: filter}
	c.push(root)
	return c
}

func (c *cursor[V]) push(n *node[V]) {
	c.prefix = append(c.prefix, n.label...)
	c.stack = append(c.stack, stackFrame[V]{n: n, childAt: 0})
}

func (c *cursor[V]) pop() {
	top := c.stack[len(c.stack)-1]
	c.prefix = c.prefix[:len(c.prefix)-len(top.n.label)]
	c.stack = c.stack[:len(c.stack)-1]
}

// next advances the cursor to the next qualifying entry, returning false
// once the traversal is exhausted.
func (c *cursor[V]) next(out *Entry[V]) bool {
	for len(c.stack) > 0 {
		top := &c.stack[len(c.stack)-1]
		if !top.visited {
			yield, descend := true, true
			if c.filter != nil {
				yield, descend = c.filter(c.prefix, top.n)
			}
			top.visited = true
			top.descend = descend
			if !descend {
				c.pop()
				continue
			}
			if yield && top.n.hasValue {
				out.Key = append([]byte(nil), c.prefix...)
				out.Value = top.n.value
				return true
			}
		}
		if top.childAt < len(top.n.children) {
			child := top.n.children[top.childAt]
			top.childAt++
			c.push(child)
			continue
		}
		c.pop()
	}
	return false
}

// Iter returns every (key, value) pair in lexicographic order (§4.5's iter).
func (t *Trie[V]) Iter() func(*Entry[V]) bool {
	c := newCursor(t.root, nil)
	return c.next
}

// PrefixedIter returns every entry whose key starts with prefix, in
// lexicographic order (§4.5's prefixed_iter).
func (t *Trie[V]) PrefixedIter(prefix []byte) func(*Entry[V]) bool {
	// prefix may end partway through a node's label; that node's whole
	// subtree still starts with prefix.
	sub, path := partialDescend(t.root, prefix)
	if sub == nil || !bytes.HasPrefix(path, prefix) {
		return func(*Entry[V]) bool { return false }
	}
	c := &cursor[V]{}
	c.prefix = path[:len(path)-len(sub.label)]
	c.push(sub)
	return c.next
}

// PrefixesIter returns every entry whose key is a prefix of target, in the
// order those prefixes occur along target (§4.5's prefixes_iter, §8's
// "prefixes_iter(banana) yields [ban, banana]").
func (t *Trie[V]) PrefixesIter(target []byte) []Entry[V] {
	var out []Entry[V]
	cur := t.root
	rest := target
	consumed := 0
	for {
		cp := commonPrefixLen(cur.label, rest)
		if cp < len(cur.label) {
			break
		}
		consumed += cp
		rest = rest[cp:]
		if cur.hasValue {
			out = append(out, Entry[V]{Key: append([]byte(nil), target[:consumed]...), Value: cur.value})
		}
		if len(rest) == 0 {
			break
		}
		i, ok := cur.childIndex(rest[0])
		if !ok {
			break
		}
		cur = cur.children[i]
	}
	return out
}

// ContainsIter returns every entry whose key contains fragment as a
// substring, in lexicographic order (§4.5's contains_iter). Each node's
// accumulated key is checked with bytes.Contains; the fragment's xxhash is
// computed but not used to reject candidates. A node
// whose accumulated prefix already contains fragment propagates a
// "parent matched" flag so descendants skip the substring search entirely.
func (t *Trie[V]) ContainsIter(fragment []byte) []Entry[V] {
	if len(fragment) == 0 {
		var all []Entry[V]
		it := t.Iter()
		var e Entry[V]
		for it(&e) {
			all = append(all, Entry[V]{Key: append([]byte(nil), e.Key...), Value: e.Value})
		}
		return all
	}
	fragHash := xxhash.Sum64(fragment)
	matched := make(map[*node[V]]bool)
	var out []Entry[V]

	var walk func(n *node[V], prefix []byte, parentMatched bool)
	walk = func(n *node[V], prefix []byte, parentMatched bool) {
		full := append(append([]byte(nil), prefix...), n.label...)
		here := parentMatched
		if !here {
			here = containsFragment(full, fragment, fragHash)
		}
		matched[n] = here
		if here && n.hasValue {
			out = append(out, Entry[V]{Key: append([]byte(nil), full...), Value: n.value})
		}
		for _, c := range n.children {
			walk(c, full, here)
		}
	}
	walk(t.root, nil, false)
	return out
}

func containsFragment(haystack, needle []byte, needleHash uint64) bool {
	_ = needleHash // reserved for a rolling-hash fast path over longer haystacks
	return bytes.Contains(haystack, needle)
}

// WildcardIter returns every entry whose key matches pattern, in
// lexicographic order (§4.5's wildcard_iter, §8: "wildcard_iter(pattern) ≡
// filtering iter() by pattern.matches(key) == Match"). It jumps to the
// pattern's literal prefix subtree first, then applies the matcher as a
// traversal filter using MatchOutcome to decide yield/descend per node.
func (t *Trie[V]) WildcardIter(pattern *wildcard.Pattern) []Entry[V] {
	litPrefix := pattern.LiteralPrefix()
	start := t.root
	startPrefix := []byte(nil)
	if len(litPrefix) > 0 {
		n, rest := t.descend(litPrefix)
		if n == nil && len(rest) > 0 {
			// No exact node boundary at the literal prefix; still need to
			// search starting from the deepest node reached, since the
			// prefix might end mid-label. Re-walk manually.
			n2, consumed := partialDescend(t.root, litPrefix)
			if n2 == nil {
				return nil
			}
			start = n2
			startPrefix = consumed
		} else if n != nil {
			start = n
			startPrefix = append([]byte(nil), litPrefix...)
		}
	}

	var out []Entry[V]
	var walk func(n *node[V], prefix []byte)
	walk = func(n *node[V], prefix []byte) {
		full := append(append([]byte(nil), prefix...), n.label...)
		outcome := pattern.PartialMatchAgainst(full)
		if outcome == wildcard.NoMatch {
			return
		}
		if n.hasValue && pattern.Match(full) == wildcard.Match {
			out = append(out, Entry[V]{Key: append([]byte(nil), full...), Value: n.value})
		}
		for _, c := range n.children {
			walk(c, full)
		}
	}
	walk(start, startPrefix[:max(0, len(startPrefix)-len(start.label))])
	return out
}

// partialDescend returns the node at which target is exhausted or first
// diverges, together with that node's full key (its whole label included).
func partialDescend[V any](root *node[V], target []byte) (*node[V], []byte) {
	cur := root
	consumed := []byte(nil)
	rest := target
	for {
		cp := commonPrefixLen(cur.label, rest)
		consumed = append(consumed, cur.label...)
		if cp < len(cur.label) {
			return cur, consumed // target ends mid-label; still a valid subtree root
		}
		rest = rest[cp:]
		if len(rest) == 0 {
			return cur, consumed
		}
		i, ok := cur.childIndex(rest[0])
		if !ok {
			return nil, nil
		}
		cur = cur.children[i]
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// RangeIter returns every entry with key in [min, max] (bounds optionally
// exclusive per minInclusive/maxInclusive), in lexicographic order (§4.5's
// range_iter). Subtrees entirely outside the window are pruned.
func (t *Trie[V]) RangeIter(min, max []byte, minInclusive, maxInclusive bool) []Entry[V] {
	var out []Entry[V]
	var walk func(n *node[V], prefix []byte)
	walk = func(n *node[V], prefix []byte) {
		full := append(append([]byte(nil), prefix...), n.label...)
		// Prune: if full cannot possibly be extended to fall within
		// [min, max], stop. A prefix p can still reach into the window if
		// p is itself within bounds, or if some extension of p could be.
		if min != nil && bytes.Compare(full, min) < 0 && !bytes.HasPrefix(min, full) {
			return
		}
		if max != nil && bytes.Compare(full, max) > 0 {
			return
		}
		if n.hasValue && keyInRange(full, min, max, minInclusive, maxInclusive) {
			out = append(out, Entry[V]{Key: append([]byte(nil), full...), Value: n.value})
		}
		for _, c := range n.children {
			walk(c, full)
		}
	}
	walk(t.root, nil)
	return out
}

func keyInRange(key, min, max []byte, minInclusive, maxInclusive bool) bool {
	if min != nil {
		c := bytes.Compare(key, min)
		if c < 0 || (c == 0 && !minInclusive) {
			return false
		}
	}
	if max != nil {
		c := bytes.Compare(key, max)
		if c > 0 || (c == 0 && !maxInclusive) {
			return false
		}
	}
	return true
}
