package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Plausibility window for extracted monetary values.
const (
	minPlausibleValue = 100
	maxPlausibleValue = 1e12
)

var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
	"₹": "INR",
	"₽": "RUB",
	"₩": "KRW",
	"฿": "THB",
}

// currencyCodes are the ISO codes scanned next to amounts.
var currencyCodes = []string{
	"USD", "EUR", "GBP", "JPY", "CNY", "INR", "CAD", "AUD", "CHF",
	"XOF", "XAF", "ZAR", "NGN", "KES", "EGP", "MAD", "BRL", "MXN",
	"IDR", "PHP", "VND", "THB", "PKR", "BDT", "LKR", "NPR", "UZS",
	"KZT", "AZN", "SAR", "AED", "TRY", "RUB", "UAH", "PLN", "RON",
}

// currencyAlias maps informal currency spellings to ISO codes.
var currencyAlias = map[string]string{
	"EURO":    "EUR",
	"EUROS":   "EUR",
	"DOLLAR":  "USD",
	"DOLLARS": "USD",
	"US$":     "USD",
	"RMB":     "CNY",
	"YUAN":    "CNY",
	"POUND":   "GBP",
	"POUNDS":  "GBP",
}

var scaleMultipliers = map[string]float64{
	"k":        1e3,
	"thousand": 1e3,
	"m":        1e6,
	"mn":       1e6,
	"mio":      1e6,
	"million":  1e6,
	"millions": 1e6,
	"b":        1e9,
	"bn":       1e9,
	"billion":  1e9,
	"billions": 1e9,
	"trillion": 1e12,
}

const (
	amountPattern = `((?:\d{1,3}(?:[,.\s]\d{3})*|\d+)(?:[.,]\d+)?)`
	scalePattern  = `(?:\s*(k|thousand|mn|mio|m|million|millions|bn|b|billion|billions|trillion))?`
)

var (
	rangeRe = regexp.MustCompile(`(?i)between\s+[$€£¥₹]?\s*` + amountPattern + scalePattern +
		`\s+and\s+[$€£¥₹]?\s*` + amountPattern + scalePattern)
	symbolRe     = regexp.MustCompile(`([$€£¥₹₽₩฿])\s*` + amountPattern + `(?i)` + scalePattern)
	codeBeforeRe = regexp.MustCompile(`(?i)\b(` + strings.Join(codeAlternatives(), "|") + `)\s*` + amountPattern + scalePattern)
	codeAfterRe  = regexp.MustCompile(`(?i)` + amountPattern + scalePattern + `\s*\b(` + strings.Join(codeAlternatives(), "|") + `)\b`)
)

func codeAlternatives() []string {
	alts := make([]string, 0, len(currencyCodes)+len(currencyAlias))
	alts = append(alts, currencyCodes...)
	for alias := range currencyAlias {
		alts = append(alts, regexp.QuoteMeta(alias))
	}
	return alts
}

// ExtractFinancialInfo scans free text for an estimated value and currency.
// Pattern order: explicit range (upper bound wins), symbol-adjacent amount,
// code-adjacent amount. Returns (nil, "") when nothing plausible is found.
func ExtractFinancialInfo(text string) (*float64, string) {
	if strings.TrimSpace(text) == "" {
		return nil, ""
	}

	if m := rangeRe.FindStringSubmatch(text); m != nil {
		upper := applyScale(cleanAmount(m[3]), m[4])
		if plausible(upper) {
			currency := symbolCurrencyIn(m[0])
			if currency == "" {
				currency = "USD"
			}
			return &upper, currency
		}
	}

	if m := symbolRe.FindStringSubmatch(text); m != nil {
		value := applyScale(cleanAmount(m[2]), m[3])
		if plausible(value) {
			return &value, currencySymbols[m[1]]
		}
	}

	if m := codeBeforeRe.FindStringSubmatch(text); m != nil {
		value := applyScale(cleanAmount(m[2]), m[3])
		if plausible(value) {
			return &value, canonicalCurrency(m[1])
		}
	}

	if m := codeAfterRe.FindStringSubmatch(text); m != nil {
		value := applyScale(cleanAmount(m[1]), m[2])
		if plausible(value) {
			return &value, canonicalCurrency(m[3])
		}
	}

	return nil, ""
}

// NormalizeValue clamps a pre-extracted value/currency pair to the
// plausibility window and canonical ISO code. Returns (nil, "") when the
// value cannot be trusted.
func NormalizeValue(value *float64, currency string) (*float64, string) {
	code := canonicalCurrency(currency)
	if code != "" && !validCurrencyCode(code) {
		code = ""
	}
	if value == nil {
		return nil, code
	}
	if !plausible(*value) {
		return nil, code
	}
	v := *value
	return &v, code
}

func canonicalCurrency(raw string) string {
	up := strings.ToUpper(strings.TrimSpace(raw))
	if up == "" {
		return ""
	}
	if code, ok := currencyAlias[up]; ok {
		return code
	}
	return up
}

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

func validCurrencyCode(code string) bool {
	return currencyCodeRe.MatchString(code)
}

func plausible(v float64) bool {
	return v >= minPlausibleValue && v <= maxPlausibleValue
}

func applyScale(value float64, scale string) float64 {
	if scale == "" {
		return value
	}
	if mult, ok := scaleMultipliers[strings.ToLower(scale)]; ok {
		return value * mult
	}
	return value
}

// cleanAmount parses a numeric string, disambiguating comma and dot
// separators: a single trailing group of 1-2 digits after the last
// separator is decimal, everything else is grouping.
func cleanAmount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, " ", ""))
	if s == "" {
		return 0
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma < 0 && lastDot < 0:
		// plain integer
	case lastComma >= 0 && lastDot >= 0:
		if lastDot > lastComma {
			// 1,234,567.89
			s = strings.ReplaceAll(s, ",", "")
		} else {
			// 1.234.567,89
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastComma >= 0:
		digitsAfter := len(s) - lastComma - 1
		if digitsAfter == 3 && strings.Count(s, ",") >= 1 && len(s) > 4 {
			// 1,234 or 1,234,567 — grouping
			s = strings.ReplaceAll(s, ",", "")
		} else {
			// 1234,56 — decimal comma
			s = strings.ReplaceAll(s, ",", ".")
		}
	default:
		digitsAfter := len(s) - lastDot - 1
		if digitsAfter == 3 && strings.Count(s, ".") > 1 {
			// 1.234.567 — grouping
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// symbolCurrencyIn maps the first currency symbol inside a matched span to
// its ISO code.
func symbolCurrencyIn(span string) string {
	for symbol, code := range currencySymbols {
		if strings.Contains(span, symbol) {
			return code
		}
	}
	return ""
}
