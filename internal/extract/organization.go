package extract

import (
	"regexp"
	"strings"
)

// Indicator patterns are tried in order; the first capture wins. Names are
// captured up to a sentence boundary.
var organizationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)issued by[:\s]+([^.;\n]{3,120})`),
	regexp.MustCompile(`(?i)implementing agency[:\s]+([^.;\n]{3,120})`),
	regexp.MustCompile(`(?i)executing agency[:\s]+([^.;\n]{3,120})`),
	regexp.MustCompile(`(?i)contracting authority[:\s]+([^.;\n]{3,120})`),
	regexp.MustCompile(`(?i)procuring entity[:\s]+([^.;\n]{3,120})`),
	regexp.MustCompile(`(?i)employer[:\s]+([^.;\n]{3,120})`),
	regexp.MustCompile(`(?i)borrower[:\s]+([^.;\n]{3,120})`),
	regexp.MustCompile(`(?i)\bthe\s+((?:ministry|department|agency|authority|bureau|office|commission)\s+of\s+[^.;,\n]{3,80})`),
}

var buyerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)on behalf of[:\s]+([^.;\n]{3,120})`),
	regexp.MustCompile(`(?i)\bclient[:\s]+([^.;\n]{3,120})`),
	regexp.MustCompile(`(?i)\bbuyer[:\s]+([^.;\n]{3,120})`),
	regexp.MustCompile(`(?i)\bpurchaser[:\s]+([^.;\n]{3,120})`),
	regexp.MustCompile(`(?i)for the benefit of[:\s]+([^.;\n]{3,120})`),
}

// ExtractOrganizationAndBuyer scans text for issuing organization and buyer
// names. When only one is found it fills the other, so the pair is either
// both empty or both set.
func ExtractOrganizationAndBuyer(text string) (organization, buyer string) {
	if strings.TrimSpace(text) == "" {
		return "", ""
	}

	for _, re := range organizationPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			organization = cleanEntityName(m[1])
			break
		}
	}
	for _, re := range buyerPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			buyer = cleanEntityName(m[1])
			break
		}
	}

	if organization == "" {
		organization = buyer
	}
	if buyer == "" {
		buyer = organization
	}
	return organization, buyer
}

func cleanEntityName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'()[]`)
	s = strings.TrimRight(s, ",:- ")
	// Collapse internal whitespace runs left by wrapped source text.
	return strings.Join(strings.Fields(s), " ")
}
