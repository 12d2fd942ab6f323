// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package resultproc

// Counter drains its upstream fully without yielding any result of its own,
// tallying how many passed through (the reference processor the original's
// RPCounter tests exercise: FT.SEARCH ... LIMIT 0 0 wants a count with no
// result rows). Placed anywhere downstream of filtering/scoring stages and
// upstream of Sorter/Pager, its Count reflects exactly what reached it.
type Counter struct {
	Header
	count int
	done  bool
}

// NewCounter wires a Counter on top of upstream.
func NewCounter(upstream ResultProcessor) *Counter {
	return &Counter{Header: NewHeader(TypeCounter, upstream)}
}

// Next drains every upstream result on its first call, incrementing Count
// per result, then returns (nil, nil); every later call is a no-op EOF.
func (p *Counter) Next() (*SearchResult, error) {
	if p.done {
		return nil, nil
	}
	for {
		res, err := p.pullUpstream()
		if err != nil {
			return nil, err
		}
		if res == nil {
			p.done = true
			return nil, nil
		}
		p.count++
	}
}

// Count reports how many results have passed through so far. Meaningful
// only after the caller has drained Next to (nil, nil).
func (p *Counter) Count() int { return p.count }
