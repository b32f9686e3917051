package extract

import (
	"strings"

	"github.com/tenderhub/normalizer/internal/domain"
)

// methodRules maps procedure keywords onto the closed procurement-method
// vocabulary. Specific procedures outrank the generic open/limited split.
var methodRules = NewRuleSet([]Rule{
	{Label: domain.MethodDirect, Priority: 30, Keywords: []string{
		"direct procurement", "direct contracting", "single source",
		"sole source", "direct award", "negotiated without publication",
	}},
	{Label: domain.MethodCompetitiveDialogue, Priority: 25, Keywords: []string{
		"competitive dialogue", "competitive dialog",
	}},
	{Label: domain.MethodNegotiated, Priority: 22, Keywords: []string{
		"negotiated procedure", "negotiated tender", "competitive negotiation",
	}},
	{Label: domain.MethodRFP, Priority: 20, Keywords: []string{
		"request for proposal", "request for proposals", "rfp",
	}},
	{Label: domain.MethodRFQ, Priority: 20, Keywords: []string{
		"request for quotation", "request for quotations", "rfq",
		"request for quote",
	}},
	{Label: domain.MethodITB, Priority: 20, Keywords: []string{
		"invitation to bid", "invitation for bids", "itb", "ifb",
	}},
	{Label: domain.MethodEOI, Priority: 20, Keywords: []string{
		"expression of interest", "expressions of interest", "eoi",
		"request for expressions of interest",
	}},
	{Label: domain.MethodRestricted, Priority: 15, Keywords: []string{
		"restricted procedure", "restricted tender", "limited bidding",
		"selective tendering", "prequalified bidders", "shortlisted firms",
	}},
	{Label: domain.MethodOpen, Priority: 10, Keywords: []string{
		"open procedure", "open tender", "open bidding",
		"international competitive bidding", "national competitive bidding",
		"open competition", "public tender",
	}},
})

// ExtractProcurementMethod classifies the procurement method from free
// text. Returns "" when nothing matches.
func ExtractProcurementMethod(text string) string {
	return methodRules.Classify(text)
}

// methodSpellings maps source-specific shorthand to canonical names.
var methodSpellings = map[string]string{
	"icb":                               "International Competitive Bidding",
	"ncb":                               "National Competitive Bidding",
	"ocb":                               "Open Competitive Bidding",
	"qcbs":                              "Quality and Cost-Based Selection",
	"cqs":                               "Consultant Qualification Selection",
	"lcs":                               "Least Cost Selection",
	"fbs":                               "Fixed Budget Selection",
	"sss":                               domain.MethodDirect,
	"rfp":                               domain.MethodRFP,
	"rfq":                               domain.MethodRFQ,
	"itb":                               domain.MethodITB,
	"ifb":                               domain.MethodITB,
	"eoi":                               domain.MethodEOI,
	"open":                              domain.MethodOpen,
	"open procedure":                    domain.MethodOpen,
	"restricted":                        domain.MethodRestricted,
	"restricted procedure":              domain.MethodRestricted,
	"negotiated":                        domain.MethodNegotiated,
	"competitive dialogue":              domain.MethodCompetitiveDialogue,
	"direct":                            domain.MethodDirect,
	"single source":                     domain.MethodDirect,
	"sole source":                       domain.MethodDirect,
	"full and open competition":         "Full and Open Competition",
	"international competitive bidding": "International Competitive Bidding",
}

// StandardizeProcurementMethod maps a source's method spelling to its
// canonical name, falling back to keyword classification of the value.
func StandardizeProcurementMethod(raw string) string {
	s := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	if s == "" {
		return ""
	}
	if canonical, ok := methodSpellings[s]; ok {
		return canonical
	}
	if fromText := methodRules.Classify(s); fromText != "" {
		return fromText
	}
	// Unrecognized but explicit values pass through title-cased source
	// spellings untouched.
	return strings.TrimSpace(raw)
}
