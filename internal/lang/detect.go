// Package lang provides language detection and the English translation
// pipeline for bilingual tender fields.
package lang

import (
	"strings"
)

// Detector identifies the language of a text as an ISO 639-1 code.
// Implementations return "" when they cannot tell.
type Detector interface {
	Detect(text string) string
}

// markerWords are high-frequency function words per language. Detection
// counts marker hits and picks the language with the most; zero hits means
// English, which has already been ruled out by the caller's field pairing.
var markerWords = map[string][]string{
	"fr": {"le", "la", "les", "de", "et", "en", "pour", "dans", "un", "une", "des", "du", "avec", "sur"},
	"es": {"el", "la", "los", "las", "de", "y", "en", "para", "por", "un", "una", "del", "con", "que"},
	"de": {"der", "die", "das", "und", "für", "mit", "von", "im", "ein", "eine", "den", "des", "zur", "zum"},
	"pt": {"o", "a", "os", "as", "de", "e", "em", "para", "por", "um", "uma", "do", "da", "com"},
	"it": {"il", "lo", "la", "gli", "le", "di", "e", "in", "per", "un", "una", "del", "della", "con"},
}

// HeuristicDetector detects language by counting marker function words.
// It is the always-available fallback when no statistical detector is
// configured.
type HeuristicDetector struct{}

// Detect returns the language whose markers dominate the text, or "en"
// when no markers hit at all.
func (HeuristicDetector) Detect(text string) string {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return ""
	}

	wordSet := make(map[string]int, len(words))
	for _, w := range words {
		wordSet[strings.Trim(w, ".,;:!?()\"'")]++
	}

	best := ""
	bestHits := 0
	for language, markers := range markerWords {
		hits := 0
		for _, marker := range markers {
			hits += wordSet[marker]
		}
		if hits > bestHits {
			bestHits = hits
			best = language
		}
	}

	if best == "" {
		return "en"
	}

	// A couple of stray hits in a long text is noise, not a language.
	if bestHits < 2 || bestHits*20 < len(words) {
		return "en"
	}
	return best
}

// DetectWithFallback runs the primary detector and falls back to the
// heuristic one on an empty answer.
func DetectWithFallback(primary Detector, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if primary != nil {
		if code := primary.Detect(text); code != "" {
			return code
		}
	}
	return HeuristicDetector{}.Detect(text)
}
