// suggest_test.go - Tests for ranked command suggestions
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package blic

import "testing"

func TestDefaultSuggest_RanksClosestFirst(t *testing.T) {
	candidates := []string{"status", "start", "stop", "config"}
	got := defaultSuggest("stat", candidates)
	if len(got) == 0 {
		t.Fatal("expected suggestions for a close typo")
	}
	if got[0] != "start" && got[0] != "status" {
		t.Errorf("best suggestion = %q, want start or status", got[0])
	}
	for _, s := range got {
		if s == "config" {
			t.Error("config is nowhere near stat and must not appear")
		}
	}
}

func TestDefaultSuggest_ThresholdFiltersNoise(t *testing.T) {
	if got := defaultSuggest("zzzzzz", []string{"status", "config"}); len(got) != 0 {
		t.Errorf("got %v, want no suggestions for gibberish", got)
	}
}

func TestDefaultSuggest_Deterministic(t *testing.T) {
	candidates := []string{"beta", "betb"}
	first := defaultSuggest("bet", candidates)
	for i := 0; i < 5; i++ {
		got := defaultSuggest("bet", candidates)
		if len(got) != len(first) {
			t.Fatal("non-deterministic suggestion count")
		}
		for j := range got {
			if got[j] != first[j] {
				t.Fatalf("non-deterministic order: %v vs %v", got, first)
			}
		}
	}
	// Equal scores break alphabetically.
	if len(first) == 2 && first[0] != "beta" {
		t.Errorf("tie-break order = %v, want beta first", first)
	}
}

func TestDefaultSuggest_ExactMatchScoresHighest(t *testing.T) {
	got := defaultSuggest("run", []string{"run", "rung"})
	if len(got) == 0 || got[0] != "run" {
		t.Errorf("got %v, want exact match ranked first", got)
	}
}
