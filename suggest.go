// suggest.go: Ranked command suggestions for Blic
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import (
	"sort"

	"github.com/agext/levenshtein"
)

// SuggestFunc ranks candidate command names against a mistyped token.
// It returns the candidates worth showing, best match first, and may
// return nothing when no candidate is similar enough.
type SuggestFunc func(input string, candidates []string) []string

// suggestionThreshold is the minimum levenshtein similarity for a
// candidate to appear in "did you mean" output.
const suggestionThreshold = 0.5

// defaultSuggest ranks candidates by levenshtein similarity, dropping
// anything below the threshold. Ties break alphabetically so output is
// deterministic regardless of map iteration order upstream.
func defaultSuggest(input string, candidates []string) []string {
	type scored struct {
		name  string
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, cand := range candidates {
		score := levenshtein.Match(input, cand, nil)
		if score >= suggestionThreshold {
			ranked = append(ranked, scored{name: cand, score: score})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.name
	}
	return out
}
