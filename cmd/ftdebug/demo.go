// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"math/rand"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
	"github.com/RediSearch/RediSearch-sub004/internal/invindex"
	"github.com/RediSearch/RediSearch-sub004/internal/numtree"
)

// buildDemoTree constructs a NumericRangeTree with n synthetic (doc_id,
// value) pairs, standing in for the host-owned FT.ADD path this scaffold
// doesn't implement (§10.6).
func buildDemoTree(n int) (*numtree.NumericRangeTree, error) {
	tr, err := numtree.New(numtree.Options{
		Flags:            invindex.StoreNumeric,
		SplitThreshold:   numtree.DefaultSplitThreshold,
		SplitCardinality: numtree.DefaultSplitCardinality,
	})
	if err != nil {
		return nil, err
	}
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < n; i++ {
		value := rnd.Float64() * 10000
		if _, err := tr.Insert(base.DocId(i+1), value); err != nil {
			return nil, err
		}
	}
	return tr, nil
}
