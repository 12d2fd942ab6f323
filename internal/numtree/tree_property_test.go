// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package numtree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/RediSearch/RediSearch-sub004/internal/base"
)

// TestFindCoversEveryInsertProperty is a metamorphic-style property test in
// the spirit of pebble's internal/metamorphic harness, scaled down to an
// in-process table: across many randomly-shaped trees, the leaves Find
// returns for the full value range must account for every inserted record
// exactly once, regardless of how splitting and rebalancing partitioned
// them.
func TestFindCoversEveryInsertProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		opts := Options{
			SplitThreshold:     2 + rng.Intn(8),
			SplitCardinality:   1 + rng.Float64()*4,
			RebalanceThreshold: 1 + rng.Intn(4),
		}
		tr, err := New(opts)
		require.NoError(t, err)

		n := 1 + rng.Intn(200)
		for i := 0; i < n; i++ {
			value := rng.Float64()*2000 - 1000
			_, err := tr.Insert(base.DocId(i+1), value)
			require.NoError(t, err)
		}

		leaves := tr.Find(-math.MaxFloat64, math.MaxFloat64, true, true)
		var total uint64
		for _, l := range leaves {
			total += l.Count
			require.LessOrEqual(t, l.Min, l.Max)
		}
		require.Equalf(t, uint64(n), total,
			"trial %d: opts=%+v, expected %d records across leaves, got %d", trial, opts, n, total)
	}
}
