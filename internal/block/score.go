// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

// Scorer computes the score contribution of a single posting; concrete
// scorers (TF-IDF, BM25, DocScore) are supplied by the iterator layer.
// Score bounds are computed independently of any one scorer: the bound
// carries the raw ingredients (max freq, min doc len, max doc score) and
// Upper evaluates them under whichever scorer is active for the query,
// per the open question "preserve both idf and bm25_idf, surface as a
// scorer parameter".
type Scorer interface {
	// Upper returns an upper bound on the score any posting matching the
	// given bound could achieve. Returns +Inf if the scorer cannot bound
	// itself from this metadata (e.g. it needs per-document data absent
	// from the block-level triple).
	Upper(b ScoreBound) float64
}

// Accumulator incrementally tracks the score-bound triple for postings
// added to a block under construction, grounded on
// inverted_index/src/block_max_score.rs's per-encoder computation: only
// encoders that store freq and/or doc-score populate a bound; others
// leave it absent so pruning falls through to "no bound" rather than a
// wrong bound.
type Accumulator struct {
	active       bool
	maxFreq      uint32
	maxDocScore  float64
	minDocLen    uint32
	minDocLenSet bool
}

// NewAccumulator returns an accumulator. trackScore selects whether this
// encoder variant carries scoring metadata at all (§4.2: "Block scoring
// metadata is optional").
func NewAccumulator(trackScore bool) *Accumulator {
	return &Accumulator{active: trackScore}
}

// Observe folds one posting's scoring ingredients into the running bound.
func (a *Accumulator) Observe(freq uint32, docScore float64, docLen uint32) {
	if !a.active {
		return
	}
	if freq > a.maxFreq {
		a.maxFreq = freq
	}
	if docScore > a.maxDocScore {
		a.maxDocScore = docScore
	}
	if !a.minDocLenSet || docLen < a.minDocLen {
		a.minDocLen = docLen
		a.minDocLenSet = true
	}
}

// Bound returns the ScoreBound accumulated so far. Present is false when
// this encoder does not track scoring metadata at all.
func (a *Accumulator) Bound() ScoreBound {
	if !a.active {
		return ScoreBound{}
	}
	return ScoreBound{
		Present:     true,
		MaxFreq:     a.maxFreq,
		MaxDocScore: a.maxDocScore,
		MinDocLen:   a.minDocLen,
	}
}

// Reset clears accumulated state for reuse across blocks, keeping the same
// active/inactive mode.
func (a *Accumulator) Reset() {
	a.maxFreq = 0
	a.maxDocScore = 0
	a.minDocLen = 0
	a.minDocLenSet = false
}
