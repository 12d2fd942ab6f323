// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package wildcard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFooStarBarScenario(t *testing.T) {
	p := Parse([]byte("foo*bar"))
	require.Equal(t, Match, p.Match([]byte("fooxybar")))
	require.Equal(t, PartialMatch, p.PartialMatchAgainst([]byte("fooxy")))
	require.Equal(t, NoMatch, p.Match([]byte("foobaz")))
}

func TestQuestionMarkMatchesExactlyOneByte(t *testing.T) {
	p := Parse([]byte("a?c"))
	require.Equal(t, Match, p.Match([]byte("abc")))
	require.Equal(t, NoMatch, p.Match([]byte("ac")))
	require.Equal(t, NoMatch, p.Match([]byte("abbc")))
}

func TestEscapedWildcardIsLiteral(t *testing.T) {
	p := Parse([]byte(`a\*b`))
	require.Equal(t, Match, p.Match([]byte("a*b")))
	require.Equal(t, NoMatch, p.Match([]byte("axb")))
}

func TestConsecutiveAnyCollapse(t *testing.T) {
	p := Parse([]byte("a**b"))
	require.Equal(t, Match, p.Match([]byte("axyzb")))
}

func TestTrailingAnyAlwaysMatchesOnceReached(t *testing.T) {
	p := Parse([]byte("pre*"))
	require.Equal(t, Match, p.Match([]byte("pre")))
	require.Equal(t, Match, p.Match([]byte("prefixed")))
	require.Equal(t, NoMatch, p.Match([]byte("pr")))
}

func TestLiteralPrefixForTrieJump(t *testing.T) {
	p := Parse([]byte("foo*bar"))
	require.Equal(t, []byte("foo"), p.LiteralPrefix())

	p2 := Parse([]byte("*bar"))
	require.Nil(t, p2.LiteralPrefix())
}

func TestNoWildcardDetection(t *testing.T) {
	require.False(t, Parse([]byte("plainliteral")).HasWildcard())
	require.True(t, Parse([]byte("plain*literal")).HasWildcard())
}
