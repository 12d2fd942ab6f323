// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package resultproc

import (
	"github.com/RediSearch/RediSearch-sub004/internal/docmeta"
	"github.com/RediSearch/RediSearch-sub004/internal/iterator"
)

// Scorer computes each result's Score from its IndexResult using one of
// docmeta's ScorerKind formulas (§9's "both idf and bm25_idf are carried;
// the scorer picks"). Aggregate results are scored by summing the
// contribution of every Term-kind descendant; ScorerDocScore bypasses the
// IndexResult tree entirely and reads the document's static score off its
// metadata instead, per ScorerKind.IdfFor's doc comment.
type Scorer struct {
	Header
	kind docmeta.ScorerKind
}

// NewScorer wires a Scorer of the given kind on top of upstream. Upstream
// must have already attached DMD (via Loader) when kind is ScorerDocScore.
func NewScorer(upstream ResultProcessor, kind docmeta.ScorerKind) *Scorer {
	return &Scorer{Header: NewHeader(TypeScorer, upstream), kind: kind}
}

func (p *Scorer) Next() (*SearchResult, error) {
	res, err := p.pullUpstream()
	if err != nil || res == nil {
		return nil, err
	}
	if p.kind == docmeta.ScorerDocScore {
		if res.DMD != nil {
			res.Score = res.DMD.Score
		}
		return res, nil
	}
	res.Score = p.scoreNode(res.IndexResult)
	return res, nil
}

// scoreNode recurses over an Aggregate's children, summing a TF-IDF-style
// contribution (frequency * weight * idf) from every Term leaf it finds.
func (p *Scorer) scoreNode(ir *iterator.IndexResult) float64 {
	if ir == nil {
		return 0
	}
	switch ir.Kind {
	case iterator.KindTerm:
		idf := 1.0
		if ir.QueryTerm != nil {
			idf = p.kind.IdfFor(ir.QueryTerm)
		}
		return float64(ir.Freq) * float64(ir.Weight) * idf
	case iterator.KindAggregate:
		var sum float64
		for _, child := range ir.Children {
			sum += p.scoreNode(child)
		}
		return sum
	default:
		return 0
	}
}
