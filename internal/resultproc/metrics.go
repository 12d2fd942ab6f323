// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package resultproc

import (
	"github.com/cockroachdb/crlib/crtime"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics wraps any ResultProcessor stage, exporting its per-call count and
// latency to Prometheus — the result-processor chain's analogue of
// internal/iterator.Profile, which serves the same purpose for the
// iterator tree using HdrHistogram instead (a full latency distribution
// is more useful inside one query's iterator tree; a chain-level counter
// and histogram exported for scraping is what an operator watches across
// many queries).
type Metrics struct {
	Header
	wrapped Type
	calls   prometheus.Counter
	misses  prometheus.Counter
	latency prometheus.Histogram
}

// NewMetrics wraps upstream, registering its metrics on reg if non-nil
// (tests typically pass a fresh prometheus.NewRegistry() rather than the
// global DefaultRegisterer, avoiding cross-test registration collisions).
func NewMetrics(upstream ResultProcessor, reg prometheus.Registerer) *Metrics {
	stage := upstream.Type().String()
	m := &Metrics{
		Header:  NewHeader(TypeMetrics, upstream),
		wrapped: upstream.Type(),
		calls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "redisearch",
			Subsystem:   "resultproc",
			Name:        "results_total",
			Help:        "Number of results a stage yielded to its downstream.",
			ConstLabels: prometheus.Labels{"stage": stage},
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "redisearch",
			Subsystem:   "resultproc",
			Name:        "eof_total",
			Help:        "Number of times a stage's Next reported EOF.",
			ConstLabels: prometheus.Labels{"stage": stage},
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "redisearch",
			Subsystem:   "resultproc",
			Name:        "call_seconds",
			Help:        "Latency of a stage's Next call, including its upstream.",
			ConstLabels: prometheus.Labels{"stage": stage},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.calls, m.misses, m.latency)
	}
	return m
}

func (m *Metrics) Next() (*SearchResult, error) {
	start := crtime.NowMono()
	res, err := m.pullUpstream()
	m.latency.Observe(start.Elapsed().Seconds())
	if err != nil {
		return nil, err
	}
	if res == nil {
		m.misses.Inc()
		return nil, nil
	}
	m.calls.Inc()
	return res, nil
}
