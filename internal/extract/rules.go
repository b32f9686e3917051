// Package extract implements the field-extraction heuristics that recover
// structured tender fields from free text. Classifiers are declarative
// keyword rule tables evaluated by a shared Aho-Corasick engine.
package extract

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Rule maps a set of keywords to a label from a closed vocabulary. Rules
// with higher priority win when several match.
type Rule struct {
	Label    string
	Keywords []string
	Priority int
}

// RuleMatch is one matched rule with its hit count.
type RuleMatch struct {
	Rule            *Rule
	Hits            int
	MatchedKeywords []string
}

// RuleSet evaluates a rule table against text in a single O(n+m) pass.
type RuleSet struct {
	mu        sync.RWMutex
	rules     []Rule
	matcher   *ahocorasick.Matcher
	keywords  []string
	kwToRules map[string][]int // keyword -> rule indices
}

// NewRuleSet builds the Aho-Corasick automaton from a rule table.
func NewRuleSet(rules []Rule) *RuleSet {
	rs := &RuleSet{rules: rules}
	rs.rebuildLocked()
	return rs
}

// rebuildLocked constructs the automaton. Callers hold rs.mu unless the set
// is not yet shared.
func (rs *RuleSet) rebuildLocked() {
	rs.keywords = rs.keywords[:0]
	rs.kwToRules = make(map[string][]int)

	for i := range rs.rules {
		for _, kw := range rs.rules[i].Keywords {
			normalized := normalizeKeyword(kw)
			if normalized == "" {
				continue
			}
			if _, seen := rs.kwToRules[normalized]; !seen {
				rs.keywords = append(rs.keywords, normalized)
			}
			rs.kwToRules[normalized] = append(rs.kwToRules[normalized], i)
		}
	}

	if len(rs.keywords) > 0 {
		rs.matcher = ahocorasick.NewStringMatcher(rs.keywords)
	} else {
		rs.matcher = nil
	}
}

// Update replaces the rule table and rebuilds the automaton atomically.
func (rs *RuleSet) Update(rules []Rule) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.rules = rules
	rs.rebuildLocked()
}

// Match returns all matching rules sorted by priority (desc) then hit count
// (desc). Keyword hits are counted only at word boundaries.
func (rs *RuleSet) Match(text string) []RuleMatch {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	if rs.matcher == nil || text == "" {
		return nil
	}

	normalized := " " + normalizeText(text) + " "
	hits := rs.matcher.Match([]byte(normalized))

	type accum struct {
		hits     int
		keywords []string
	}
	ruleAccum := make(map[int]*accum)

	for _, hitIndex := range hits {
		if hitIndex >= len(rs.keywords) {
			continue
		}
		keyword := rs.keywords[hitIndex]
		count := countWordOccurrences(normalized, keyword)
		if count == 0 {
			continue
		}
		for _, ruleIdx := range rs.kwToRules[keyword] {
			acc, exists := ruleAccum[ruleIdx]
			if !exists {
				acc = &accum{}
				ruleAccum[ruleIdx] = acc
			}
			acc.hits += count
			acc.keywords = append(acc.keywords, keyword)
		}
	}

	results := make([]RuleMatch, 0, len(ruleAccum))
	for idx, acc := range ruleAccum {
		results = append(results, RuleMatch{
			Rule:            &rs.rules[idx],
			Hits:            acc.hits,
			MatchedKeywords: acc.keywords,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Rule.Priority != results[j].Rule.Priority {
			return results[i].Rule.Priority > results[j].Rule.Priority
		}
		return results[i].Hits > results[j].Hits
	})

	return results
}

// Classify returns the label of the best matching rule, or "" when nothing
// matched.
func (rs *RuleSet) Classify(text string) string {
	matches := rs.Match(text)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Rule.Label
}

// countWordOccurrences counts keyword hits bounded by spaces. The text has
// already been normalized so every boundary is a single space.
func countWordOccurrences(text, keyword string) int {
	padded := " " + keyword + " "
	count := 0
	for idx := 0; ; {
		next := strings.Index(text[idx:], padded)
		if next < 0 {
			break
		}
		count++
		// Overlap by one space so adjacent hits are both counted.
		idx += next + len(padded) - 1
	}
	return count
}

func normalizeKeyword(kw string) string {
	return normalizeText(strings.TrimSpace(kw))
}

// normalizeText lowercases and replaces non-alphanumeric runs with single
// spaces, preserving word boundaries.
func normalizeText(text string) string {
	text = strings.ToLower(text)

	var result strings.Builder
	result.Grow(len(text))

	lastSpace := false
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			result.WriteByte(' ')
			lastSpace = true
		}
	}

	return strings.TrimSpace(result.String())
}
