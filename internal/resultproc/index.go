// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package resultproc

import "github.com/RediSearch/RediSearch-sub004/internal/iterator"

// Index is the chain's root stage, adapting a QueryIterator into the
// SearchResult stream every other processor pulls from. It has no
// upstream of its own.
type Index struct {
	Header
	it iterator.QueryIterator
}

// NewIndex wraps it as a result-processor chain root.
func NewIndex(it iterator.QueryIterator) *Index {
	return &Index{Header: NewHeader(TypeIndex, nil), it: it}
}

func (p *Index) Next() (*SearchResult, error) {
	res, err := p.it.Read()
	if err != nil || res == nil {
		return nil, err
	}
	return &SearchResult{DocID: res.DocID, IndexResult: res}, nil
}
