// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package resultproc

import "container/heap"

// Sorter buffers its upstream's results and yields them back in descending
// Score order, keeping at most K at a time via a min-heap (the same
// container/heap pattern internal/iterator.Union uses for its above-
// threshold child selection, here applied to bound memory instead of
// avoiding a linear scan): once the heap holds K entries, a new result only
// survives if it outscores the current minimum, which then gets evicted.
type Sorter struct {
	Header
	k         int
	h         sorterHeap
	sorted    []*SearchResult // ascending by Score, populated once by fill
	drained   bool
	resultIdx int
}

// NewSorter wires a Sorter keeping the top k results by Score on top of
// upstream. k <= 0 means unbounded (equivalent to a plain in-memory sort).
func NewSorter(upstream ResultProcessor, k int) *Sorter {
	return &Sorter{Header: NewHeader(TypeSorter, upstream), k: k}
}

type sorterHeap []*SearchResult

func (h sorterHeap) Len() int            { return len(h) }
func (h sorterHeap) Less(i, j int) bool  { return h[i].Score < h[j].Score }
func (h sorterHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *sorterHeap) Push(x interface{}) { *h = append(*h, x.(*SearchResult)) }
func (h *sorterHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// fill drains upstream entirely into h the first time Next is called,
// evicting the current minimum whenever a bounded heap would overflow, then
// pops h back out in ascending order into sorted.
func (p *Sorter) fill() error {
	for {
		res, err := p.pullUpstream()
		if err != nil {
			return err
		}
		if res == nil {
			break
		}
		if p.k > 0 && p.h.Len() >= p.k {
			if res.Score <= p.h[0].Score {
				continue
			}
			heap.Pop(&p.h)
		}
		heap.Push(&p.h, res)
	}
	p.sorted = make([]*SearchResult, 0, p.h.Len())
	for p.h.Len() > 0 {
		p.sorted = append(p.sorted, heap.Pop(&p.h).(*SearchResult))
	}
	p.drained = true
	return nil
}

// Next returns buffered results in descending Score order, highest first:
// sorted is ascending (the order a min-heap pops in), so Next walks it from
// the tail backward.
func (p *Sorter) Next() (*SearchResult, error) {
	if !p.drained {
		if err := p.fill(); err != nil {
			return nil, err
		}
		p.resultIdx = len(p.sorted) - 1
	}
	if p.resultIdx < 0 {
		return nil, nil
	}
	res := p.sorted[p.resultIdx]
	p.resultIdx--
	return res, nil
}
