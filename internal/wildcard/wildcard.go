// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package wildcard implements the pattern tokenizer and matcher consumed by
// the trie's wildcard_iter and by iterator-level filtering (§4.6).
package wildcard

// TokenKind names one element of a tokenized pattern.
type TokenKind int

const (
	// Literal matches its Bytes exactly.
	Literal TokenKind = iota
	// One matches exactly one arbitrary byte ('?').
	One
	// Any matches zero or more arbitrary bytes ('*'), not at the end.
	Any
	// TrailingAny is an Any token known to be the pattern's last token; the
	// matcher can short-circuit to Match as soon as it is reached since
	// nothing more needs to line up.
	TrailingAny
)

// Token is one element of a tokenized wildcard pattern.
type Token struct {
	Kind  TokenKind
	Bytes []byte // only meaningful for Literal
}

// Pattern is a tokenized wildcard pattern, ready for repeated matching.
type Pattern struct {
	tokens []Token
}

// Parse tokenizes a raw pattern byte string into a Pattern. '*' becomes Any,
// '?' becomes One, '\' escapes the following byte into a Literal. Consecutive
// Any tokens collapse into one; a trailing Any becomes TrailingAny.
func Parse(pattern []byte) *Pattern {
	var tokens []Token
	var lit []byte

	flushLit := func() {
		if len(lit) > 0 {
			tokens = append(tokens, Token{Kind: Literal, Bytes: lit})
			lit = nil
		}
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			lit = append(lit, pattern[i+1])
			i++
		case c == '*':
			flushLit()
			if len(tokens) == 0 || tokens[len(tokens)-1].Kind != Any {
				tokens = append(tokens, Token{Kind: Any})
			}
			// consecutive '*' collapse: do nothing further.
		case c == '?':
			flushLit()
			tokens = append(tokens, Token{Kind: One})
		default:
			lit = append(lit, c)
		}
	}
	flushLit()

	if n := len(tokens); n > 0 && tokens[n-1].Kind == Any {
		tokens[n-1].Kind = TrailingAny
	}

	return &Pattern{tokens: tokens}
}

// HasWildcard reports whether pattern actually contains any '*'/'?' tokens,
// i.e. isn't equivalent to a plain literal match.
func (p *Pattern) HasWildcard() bool {
	for _, t := range p.tokens {
		if t.Kind != Literal {
			return true
		}
	}
	return false
}

// LiteralPrefix returns the longest literal byte prefix every match of p
// must start with — the trie uses this to jump straight to the candidate
// subtree before applying the full matcher (§4.5's wildcard_iter).
func (p *Pattern) LiteralPrefix() []byte {
	if len(p.tokens) == 0 || p.tokens[0].Kind != Literal {
		return nil
	}
	return p.tokens[0].Bytes
}

// MatchOutcome is the three-way result of matching a (possibly partial)
// input against a pattern (§4.6).
type MatchOutcome int

const (
	// NoMatch means the input cannot possibly extend into a match.
	NoMatch MatchOutcome = iota
	// PartialMatch means the input is a prefix of some string the pattern
	// would match; the trie should keep descending.
	PartialMatch
	// Match means the input matches the pattern in full.
	Match
)

// Match matches the full input against p.
func (p *Pattern) Match(input []byte) MatchOutcome {
	return matchTokens(p.tokens, input, false)
}

// PartialMatchAgainst matches input as a possibly-incomplete prefix against p,
// returning PartialMatch instead of NoMatch whenever input could still be
// extended into a full match.
func (p *Pattern) PartialMatchAgainst(input []byte) MatchOutcome {
	return matchTokens(p.tokens, input, true)
}

// matchTokens is a straightforward backtracking matcher over the tokenized
// pattern. partial controls whether running out of input mid-pattern (with
// more, matchable tokens remaining) reports PartialMatch instead of NoMatch.
func matchTokens(tokens []Token, input []byte, partial bool) MatchOutcome {
	return matchFrom(tokens, 0, input, partial)
}

func matchFrom(tokens []Token, ti int, input []byte, partial bool) MatchOutcome {
	for ti < len(tokens) {
		tok := tokens[ti]
		switch tok.Kind {
		case Literal:
			n := len(tok.Bytes)
			if len(input) >= n {
				for i := 0; i < n; i++ {
					if input[i] != tok.Bytes[i] {
						return NoMatch
					}
				}
				input = input[n:]
				ti++
				continue
			}
			// input shorter than the literal: only a partial match if every
			// byte seen so far agrees.
			if !partial {
				return NoMatch
			}
			for i := 0; i < len(input); i++ {
				if input[i] != tok.Bytes[i] {
					return NoMatch
				}
			}
			return PartialMatch

		case One:
			if len(input) == 0 {
				if partial {
					return PartialMatch
				}
				return NoMatch
			}
			input = input[1:]
			ti++
			continue

		case TrailingAny:
			return Match

		case Any:
			// Try every split point; first literal/one-matching branch wins.
			for skip := 0; skip <= len(input); skip++ {
				if out := matchFrom(tokens, ti+1, input[skip:], partial); out == Match {
					return Match
				} else if out == PartialMatch {
					return PartialMatch
				}
			}
			return NoMatch
		}
	}
	if len(input) == 0 {
		return Match
	}
	return NoMatch
}
