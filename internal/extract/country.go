package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Country resolution methods recorded in provenance.
const (
	CountryFromExplicit = "explicit"
	CountryFromText     = "text_mention"
	CountryFromOrg      = "organization"
	CountryFromEmail    = "email_tld"
	CountryFromLanguage = "language_hint"
	CountryFallback     = "unknown"
)

// fuzzyCountryCutoff is the minimum normalized similarity for a fuzzy
// country-name match.
const fuzzyCountryCutoff = 0.8

// titleCaseName accepts plausible unrecognized country names: title-cased
// words without digits.
var titleCaseName = regexp.MustCompile(`^[A-Z][a-z]+(?: [A-Z][a-z]+)*$`)

var emailDomainRe = regexp.MustCompile(`@[A-Za-z0-9.-]+\.([A-Za-z]{2,})`)

// CountryInput carries every signal the resolution chain may consult.
type CountryInput struct {
	Explicit     string // value from a dedicated source column
	Text         string // title/description free text
	Organization string // issuing organization name
	Email        string // contact email
	Language     string // detected document language
}

// EnsureCountry resolves a country through the fallback chain: explicit
// value, text mention, organization substring, email TLD, language hint,
// then the "Unknown" sentinel. The returned country is never empty; the
// second value names the step that produced it.
func EnsureCountry(in CountryInput) (country, method string) {
	if c, ok := CanonicalizeCountry(in.Explicit); ok || strings.TrimSpace(in.Explicit) != "" {
		return c, CountryFromExplicit
	}

	if c := countryMentionedIn(in.Text); c != "" {
		return c, CountryFromText
	}

	if c := countryMentionedIn(in.Organization); c != "" {
		return c, CountryFromOrg
	}

	if m := emailDomainRe.FindStringSubmatch(in.Email); m != nil {
		if c, ok := tldCountry[strings.ToLower(m[1])]; ok {
			return c, CountryFromEmail
		}
	}

	if c, ok := languageCountry[strings.ToLower(strings.TrimSpace(in.Language))]; ok {
		return c, CountryFromLanguage
	}

	return "Unknown", CountryFallback
}

// CanonicalizeCountry maps a raw country value to its canonical English
// name. Resolution order: alias table, ISO alpha-2/alpha-3 codes, known
// name match, fuzzy match, title-case acceptance. Unrecognized values are
// returned verbatim with ok=false; empty input returns ("", false).
func CanonicalizeCountry(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	folded := foldCountry(trimmed)
	if folded == "" {
		return trimmed, false
	}

	if name, ok := countryAliases[folded]; ok {
		return name, true
	}
	if len(folded) == 2 {
		if name, ok := isoAlpha2[folded]; ok {
			return name, true
		}
	}
	if len(folded) == 3 {
		if name, ok := isoAlpha3[folded]; ok {
			return name, true
		}
	}

	for _, name := range knownCountries {
		if foldCountry(name) == folded {
			return name, true
		}
	}

	if name, ok := fuzzyCountry(folded); ok {
		return name, true
	}

	// A plausible proper name we simply do not know yet.
	if titleCaseName.MatchString(trimmed) {
		return trimmed, true
	}

	return trimmed, false
}

// countryMentions scans text for country names, aliases and major cities.
var countryMentions = buildCountryMentions()

func buildCountryMentions() *RuleSet {
	byName := make(map[string][]string, len(knownCountries))
	for _, name := range knownCountries {
		byName[name] = append(byName[name], name)
	}
	for alias, name := range countryAliases {
		// Two-letter aliases collide with ordinary words ("us", "uk"
		// aside); only multi-word or longer aliases are scanned in text.
		if len(alias) > 3 {
			byName[name] = append(byName[name], alias)
		}
	}
	for name, cities := range countryCities {
		byName[name] = append(byName[name], cities...)
	}

	rules := make([]Rule, 0, len(byName))
	for name, keywords := range byName {
		rules = append(rules, Rule{Label: name, Keywords: keywords})
	}
	return NewRuleSet(rules)
}

func countryMentionedIn(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return countryMentions.Classify(text)
}

// CityForCountry returns the first major city of the country mentioned in
// the text, or "".
func CityForCountry(country, text string) string {
	cities, ok := countryCities[country]
	if !ok || text == "" {
		return ""
	}
	folded := " " + normalizeText(text) + " "
	for _, city := range cities {
		if strings.Contains(folded, " "+normalizeText(city)+" ") {
			return city
		}
	}
	return ""
}

// foldCountry lowercases, strips diacritics and collapses punctuation to
// single spaces.
func foldCountry(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return normalizeText(stripped)
}

func fuzzyCountry(folded string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, name := range knownCountries {
		score := similarity(folded, foldCountry(name))
		if score > bestScore {
			bestScore = score
			best = name
		}
	}
	if bestScore >= fuzzyCountryCutoff {
		return best, true
	}
	return "", false
}

// similarity is normalized Levenshtein similarity in [0,1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	dist := levenshtein(a, b)
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	return 1 - float64(dist)/float64(longest)
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
