package extract

import "regexp"

var (
	cpvRe  = regexp.MustCompile(`^\d{8}-\d$`)
	nutsRe = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{0,3}$`)
)

// ValidCPV reports whether s is a well-formed CPV code (8 digits, dash,
// check digit).
func ValidCPV(s string) bool {
	return cpvRe.MatchString(s)
}

// ValidNUTS reports whether s is a well-formed NUTS region code.
func ValidNUTS(s string) bool {
	return nutsRe.MatchString(s)
}

// FilterCPV keeps only well-formed CPV codes, preserving order.
func FilterCPV(codes []string) []string {
	var valid []string
	for _, c := range codes {
		if ValidCPV(c) {
			valid = append(valid, c)
		}
	}
	return valid
}

// FilterNUTS keeps only well-formed NUTS codes, preserving order.
func FilterNUTS(codes []string) []string {
	var valid []string
	for _, c := range codes {
		if ValidNUTS(c) {
			valid = append(valid, c)
		}
	}
	return valid
}
