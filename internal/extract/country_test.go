package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tenderhub/normalizer/internal/extract"
)

func TestCanonicalizeCountry(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{name: "empty", raw: "", expected: "", ok: false},
		{name: "canonical name unchanged", raw: "Kenya", expected: "Kenya", ok: true},
		{name: "case folded", raw: "UNITED STATES", expected: "United States", ok: true},
		{name: "alias usa", raw: "USA", expected: "United States", ok: true},
		{name: "alias rdc", raw: "RDC", expected: "Democratic Republic of the Congo", ok: true},
		{name: "typo bostwana", raw: "Bostwana", expected: "Botswana", ok: true},
		{name: "french name", raw: "Sénégal", expected: "Senegal", ok: true},
		{name: "diacritics stripped", raw: "Côte d'Ivoire", expected: "Ivory Coast", ok: true},
		{name: "iso alpha-2", raw: "ke", expected: "Kenya", ok: true},
		{name: "iso alpha-3", raw: "KEN", expected: "Kenya", ok: true},
		{name: "bank operation code", raw: "KGZ", expected: "Kyrgyzstan", ok: true},
		{name: "fuzzy one edit away", raw: "Kenia", expected: "Kenya", ok: true},
		{name: "plausible unknown name accepted verbatim", raw: "Atlantis", expected: "Atlantis", ok: true},
		{name: "garbage rejected", raw: "n/a123x", expected: "n/a123x", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := extract.CanonicalizeCountry(tc.raw)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestEnsureCountry_FallbackChain(t *testing.T) {
	testCases := []struct {
		name           string
		in             extract.CountryInput
		expected       string
		expectedMethod string
	}{
		{
			name:           "explicit wins over everything",
			in:             extract.CountryInput{Explicit: "usa", Text: "works in Nairobi", Language: "fr"},
			expected:       "United States",
			expectedMethod: extract.CountryFromExplicit,
		},
		{
			name:           "country name in text",
			in:             extract.CountryInput{Text: "Rehabilitation of rural roads in Uganda under the transport program."},
			expected:       "Uganda",
			expectedMethod: extract.CountryFromText,
		},
		{
			name:           "major city in text",
			in:             extract.CountryInput{Text: "Supply of laboratory equipment to facilities in Nairobi."},
			expected:       "Kenya",
			expectedMethod: extract.CountryFromText,
		},
		{
			name:           "organization mention",
			in:             extract.CountryInput{Organization: "Ministry of Finance, Bangladesh"},
			expected:       "Bangladesh",
			expectedMethod: extract.CountryFromOrg,
		},
		{
			name:           "email tld",
			in:             extract.CountryInput{Email: "procurement@treasury.gov.ng"},
			expected:       "Nigeria",
			expectedMethod: extract.CountryFromEmail,
		},
		{
			name:           "language hint",
			in:             extract.CountryInput{Language: "pt"},
			expected:       "Brazil",
			expectedMethod: extract.CountryFromLanguage,
		},
		{
			name:           "nothing resolves",
			in:             extract.CountryInput{Text: "Supply of office furniture."},
			expected:       "Unknown",
			expectedMethod: extract.CountryFallback,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, method := extract.EnsureCountry(tc.in)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, tc.expectedMethod, method)
		})
	}
}

func TestEnsureCountry_NeverEmpty(t *testing.T) {
	inputs := []extract.CountryInput{
		{},
		{Explicit: "zzzz-not-a-country-9"},
		{Text: "no geography here"},
		{Email: "someone@example.com"},
	}
	for _, in := range inputs {
		got, _ := extract.EnsureCountry(in)
		if got == "" {
			t.Errorf("EnsureCountry(%+v) returned empty country", in)
		}
	}
}

func TestCityForCountry(t *testing.T) {
	city := extract.CityForCountry("Kenya", "Bids must be delivered to the office in Mombasa by noon.")
	assert.Equal(t, "Mombasa", city)

	assert.Empty(t, extract.CityForCountry("Kenya", "No city mentioned."))
	assert.Empty(t, extract.CityForCountry("Narnia", "Nairobi"))
}
