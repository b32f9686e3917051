package lang

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/tenderhub/normalizer/internal/logger"
)

// Translation methods recorded in provenance and stats.
const (
	MethodAlreadyEnglish = "already_english"
	MethodProvider       = "provider"
	MethodDictionary     = "dictionary"
	MethodFailed         = "failed"
)

// defaultChunkSize bounds the text sent to a provider in one call.
const defaultChunkSize = 4500

// Translator is a machine-translation capability. Implementations wrap an
// external provider; the engine works without one, degrading to the
// dictionary fallback.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Result is the outcome of one translation request.
type Result struct {
	Text    string
	Method  string
	Quality float64
}

// Service runs the translation pipeline: mojibake repair, English no-op,
// provider with chunking, dictionary fallback.
type Service struct {
	translator Translator
	detector   Detector
	chunkSize  int
	logger     logger.Logger
}

// NewService builds a translation service. Both translator and detector may
// be nil; the service then detects heuristically and translates by
// dictionary only.
func NewService(translator Translator, detector Detector, chunkSize int, log logger.Logger) *Service {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Service{
		translator: translator,
		detector:   detector,
		chunkSize:  chunkSize,
		logger:     log,
	}
}

// Detect identifies the language of a text.
func (s *Service) Detect(text string) string {
	return DetectWithFallback(s.detector, RepairMojibake(text))
}

// TranslateToEnglish translates text from sourceLang to English. English
// input (or empty input) passes through untouched with quality 1.0.
func (s *Service) TranslateToEnglish(ctx context.Context, text, sourceLang string) Result {
	text = RepairMojibake(text)
	if strings.TrimSpace(text) == "" {
		return Result{Text: text, Method: MethodAlreadyEnglish, Quality: 1.0}
	}

	sourceLang = strings.ToLower(strings.TrimSpace(sourceLang))
	if sourceLang == "" {
		sourceLang = s.Detect(text)
	}
	if sourceLang == "en" || sourceLang == "" {
		return Result{Text: text, Method: MethodAlreadyEnglish, Quality: 1.0}
	}

	if s.translator != nil {
		translated, err := s.translateChunked(ctx, text, sourceLang)
		if err == nil {
			return Result{
				Text:    translated,
				Method:  MethodProvider,
				Quality: qualityScore(text, translated, sourceLang),
			}
		}
		if s.logger != nil {
			s.logger.Warn("translation provider failed, using dictionary",
				logger.String("source_lang", sourceLang),
				logger.Error(err))
		}
	}

	if translated, coverage := translateWithDictionary(text, sourceLang); coverage > 0 {
		return Result{Text: translated, Method: MethodDictionary, Quality: coverage / 2}
	}

	return Result{Text: text, Method: MethodFailed, Quality: 0}
}

// translateChunked splits long text at whitespace boundaries so each
// provider call stays under the chunk size, then rejoins the pieces.
func (s *Service) translateChunked(ctx context.Context, text, sourceLang string) (string, error) {
	if utf8.RuneCountInString(text) <= s.chunkSize {
		return s.translator.Translate(ctx, text, sourceLang, "en")
	}

	chunks := splitChunks(text, s.chunkSize)
	translated := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		out, err := s.translator.Translate(ctx, chunk, sourceLang, "en")
		if err != nil {
			return "", err
		}
		translated = append(translated, out)
	}
	return strings.Join(translated, " "), nil
}

// splitChunks breaks text into pieces of at most size runes, splitting at
// whitespace where possible.
func splitChunks(text string, size int) []string {
	var chunks []string
	words := strings.Fields(text)
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		if currentLen > 0 && currentLen+1+wordLen > size {
			flush()
		}
		// A single word longer than the chunk size is split hard.
		for wordLen > size {
			runes := []rune(word)
			flush()
			chunks = append(chunks, string(runes[:size]))
			word = string(runes[size:])
			wordLen = utf8.RuneCountInString(word)
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(word)
		currentLen += wordLen
	}
	flush()

	return chunks
}

// expectedLengthRatio is the plausible translated/source length window per
// source language. Translations far outside it score poorly.
var expectedLengthRatio = map[string][2]float64{
	"fr": {0.6, 1.4},
	"es": {0.6, 1.4},
	"pt": {0.6, 1.4},
	"it": {0.6, 1.4},
	"de": {0.5, 1.5},
	"zh": {0.8, 4.0},
	"ja": {0.8, 4.0},
	"ko": {0.8, 4.0},
	"ar": {0.6, 1.6},
	"ru": {0.6, 1.5},
}

// qualityScore estimates translation quality in [0,1] from the length
// ratio against the expected window for the language pair.
func qualityScore(source, translated, sourceLang string) float64 {
	srcLen := utf8.RuneCountInString(source)
	dstLen := utf8.RuneCountInString(translated)
	if srcLen == 0 || dstLen == 0 {
		return 0
	}

	ratio := float64(dstLen) / float64(srcLen)
	window, ok := expectedLengthRatio[sourceLang]
	if !ok {
		window = [2]float64{0.5, 2.0}
	}

	switch {
	case ratio >= window[0] && ratio <= window[1]:
		return 1.0
	case ratio >= window[0]/2 && ratio <= window[1]*2:
		return 0.7
	default:
		return 0.3
	}
}
