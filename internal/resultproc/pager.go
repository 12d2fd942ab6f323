// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package resultproc

// Pager applies FT.SEARCH's LIMIT offset num: it discards the first Offset
// upstream results, yields up to Limit after that, and then reports EOF
// even if upstream has more (the reference pipeline's RP_PAGER_LIMITER).
type Pager struct {
	Header
	offset        int
	limit         int
	skipped       int
	yielded       int
	upstreamAtEOF bool
}

// NewPager wires a Pager on top of upstream.
func NewPager(upstream ResultProcessor, offset, limit int) *Pager {
	return &Pager{Header: NewHeader(TypePager, upstream), offset: offset, limit: limit}
}

func (p *Pager) Next() (*SearchResult, error) {
	if p.yielded >= p.limit || p.upstreamAtEOF {
		return nil, nil
	}
	for p.skipped < p.offset {
		res, err := p.pullUpstream()
		if err != nil {
			return nil, err
		}
		if res == nil {
			p.upstreamAtEOF = true
			return nil, nil
		}
		p.skipped++
	}
	res, err := p.pullUpstream()
	if err != nil || res == nil {
		p.upstreamAtEOF = res == nil
		return nil, err
	}
	p.yielded++
	return res, nil
}
