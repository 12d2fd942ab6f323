// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package resultproc

import "github.com/RediSearch/RediSearch-sub004/internal/docmeta"

// Loader attaches a result's DocumentMetadata by DocID, the reference
// pipeline's stand-in for RLookup field loading: everything downstream
// (Scorer's ScorerDocScore path, highlighting, row projection) that needs
// more than the bare doc_id depends on this stage having run first.
//
// A miss (the document was deleted after the iterator's snapshot was taken
// but before this stage ran) drops the result rather than erroring, mirroring
// §5's "a result processor may legitimately see a doc_id the document table
// no longer carries" staleness tolerance.
type Loader struct {
	Header
	table *docmeta.Table
}

// NewLoader wires a Loader reading from table on top of upstream.
func NewLoader(upstream ResultProcessor, table *docmeta.Table) *Loader {
	return &Loader{Header: NewHeader(TypeLoader, upstream), table: table}
}

func (p *Loader) Next() (*SearchResult, error) {
	for {
		res, err := p.pullUpstream()
		if err != nil || res == nil {
			return nil, err
		}
		meta, ok := p.table.Get(res.DocID)
		if !ok {
			continue
		}
		res.DMD = meta
		return res, nil
	}
}
