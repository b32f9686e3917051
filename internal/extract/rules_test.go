package extract_test

import (
	"testing"

	"github.com/tenderhub/normalizer/internal/extract"
)

func TestRuleSet_Match_WordBoundaries(t *testing.T) {
	rs := extract.NewRuleSet([]extract.Rule{
		{Label: "open", Keywords: []string{"open"}, Priority: 10},
	})

	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "whole word matches",
			text:     "This is an open tender.",
			expected: "open",
		},
		{
			name:     "substring inside a word does not match",
			text:     "The tender was reopened yesterday.",
			expected: "",
		},
		{
			name:     "punctuation counts as a boundary",
			text:     "Status: open.",
			expected: "open",
		},
		{
			name:     "empty text",
			text:     "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rs.Classify(tc.text); got != tc.expected {
				t.Errorf("Classify(%q) = %q, want %q", tc.text, got, tc.expected)
			}
		})
	}
}

func TestRuleSet_Match_PrioritySorting(t *testing.T) {
	rs := extract.NewRuleSet([]extract.Rule{
		{Label: "low", Keywords: []string{"tender"}, Priority: 1},
		{Label: "high", Keywords: []string{"tender"}, Priority: 100},
		{Label: "medium", Keywords: []string{"tender"}, Priority: 50},
	})

	matches := rs.Match("Public tender announced.")
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}

	expectedOrder := []string{"high", "medium", "low"}
	for i, label := range expectedOrder {
		if matches[i].Rule.Label != label {
			t.Errorf("position %d: expected %q, got %q", i, label, matches[i].Rule.Label)
		}
	}
}

func TestRuleSet_Match_HitCountBreaksTies(t *testing.T) {
	rs := extract.NewRuleSet([]extract.Rule{
		{Label: "goods", Keywords: []string{"supply"}, Priority: 10},
		{Label: "works", Keywords: []string{"construction"}, Priority: 10},
	})

	matches := rs.Match("Construction of a school. The construction includes supply of materials.")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Rule.Label != "works" {
		t.Errorf("expected works first (2 hits vs 1), got %q", matches[0].Rule.Label)
	}
	if matches[0].Hits != 2 {
		t.Errorf("expected 2 hits for works, got %d", matches[0].Hits)
	}
}

func TestRuleSet_MultiWordKeywords(t *testing.T) {
	rs := extract.NewRuleSet([]extract.Rule{
		{Label: "itb", Keywords: []string{"invitation for bids"}, Priority: 10},
	})

	if got := rs.Classify("INVITATION FOR BIDS: road rehabilitation"); got != "itb" {
		t.Errorf("expected itb, got %q", got)
	}
	if got := rs.Classify("invitation for the submission of bids"); got != "" {
		t.Errorf("expected no match for interrupted phrase, got %q", got)
	}
}

func TestRuleSet_Update(t *testing.T) {
	rs := extract.NewRuleSet([]extract.Rule{
		{Label: "before", Keywords: []string{"alpha"}, Priority: 10},
	})

	if got := rs.Classify("alpha test"); got != "before" {
		t.Fatalf("expected before, got %q", got)
	}

	rs.Update([]extract.Rule{
		{Label: "after", Keywords: []string{"beta"}, Priority: 10},
	})

	if got := rs.Classify("alpha test"); got != "" {
		t.Errorf("expected no match after update, got %q", got)
	}
	if got := rs.Classify("beta test"); got != "after" {
		t.Errorf("expected after, got %q", got)
	}
}

func TestRuleSet_EmptyRules(t *testing.T) {
	rs := extract.NewRuleSet(nil)
	if matches := rs.Match("any text at all"); len(matches) != 0 {
		t.Errorf("expected 0 matches with no rules, got %d", len(matches))
	}
}
