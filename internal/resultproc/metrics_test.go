// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package resultproc

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == name {
			require.Len(t, mf.GetMetric(), 1)
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric family %q not found", name)
	return 0
}

func TestMetricsCountsResultsAndEOF(t *testing.T) {
	reg := prometheus.NewRegistry()
	idx := NewIndex(&fakeTermIterator{entries: []termEntry{{id: 1}, {id: 2}, {id: 3}}})
	m := NewMetrics(idx, reg)

	results := drainAll(t, m)
	require.Len(t, results, 3)

	require.Equal(t, float64(3), counterValue(t, reg, "redisearch_resultproc_results_total"))
	require.Equal(t, float64(1), counterValue(t, reg, "redisearch_resultproc_eof_total"))
}

func TestMetricsWrapsUpstreamType(t *testing.T) {
	idx := NewIndex(&fakeTermIterator{})
	m := NewMetrics(idx, nil)
	require.Equal(t, TypeMetrics, m.Type())
	require.Equal(t, TypeIndex, m.wrapped)
}
