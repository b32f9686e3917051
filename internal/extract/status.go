package extract

import (
	"strings"
	"time"

	"github.com/tenderhub/normalizer/internal/domain"
)

// recentPublicationWindow is how long after publication a tender without a
// deadline is still assumed open.
const recentPublicationWindow = 90 * 24 * time.Hour

// statusRules is the declarative status vocabulary. Priorities put
// terminal states above open ones so "contract awarded" beats "bids are
// invited" in award notices.
var statusRules = NewRuleSet([]Rule{
	{Label: domain.StatusCancelled, Priority: 40, Keywords: []string{
		"cancelled", "canceled", "annulled", "withdrawn", "terminated",
		"no longer available",
	}},
	{Label: domain.StatusAwarded, Priority: 30, Keywords: []string{
		"awarded", "contract award", "award notice", "winning bidder",
		"successful bidder", "contract awarded to",
	}},
	{Label: domain.StatusComplete, Priority: 20, Keywords: []string{
		"closed", "completed", "expired", "deadline passed", "concluded",
		"archived",
	}},
	{Label: domain.StatusPlanned, Priority: 15, Keywords: []string{
		"planned", "upcoming", "forthcoming", "prior notice",
		"pre solicitation", "presolicitation", "advance notice",
	}},
	{Label: domain.StatusActive, Priority: 10, Keywords: []string{
		"open", "active", "ongoing", "current", "accepting bids",
		"bids are invited", "invitation for bids", "request for proposals",
		"call for tenders",
	}},
})

// ExtractStatus classifies tender status from text, then breaks ties with
// dates: a past deadline means complete unless the text says cancelled; a
// future deadline with a known publication date means active; a recent
// publication alone also means active.
func ExtractStatus(text string, deadline, published *time.Time) string {
	return extractStatusAt(text, deadline, published, time.Now())
}

func extractStatusAt(text string, deadline, published *time.Time, now time.Time) string {
	fromText := statusRules.Classify(text)

	if fromText == domain.StatusCancelled || fromText == domain.StatusAwarded {
		return fromText
	}

	if deadline != nil {
		if deadline.Before(now) {
			return domain.StatusComplete
		}
		if published != nil {
			return domain.StatusActive
		}
	}

	if fromText != "" {
		return fromText
	}

	if published != nil && now.Sub(*published) <= recentPublicationWindow {
		return domain.StatusActive
	}

	return domain.StatusUnknown
}

// StandardizeStatus maps free-form source status values onto the closed
// vocabulary, falling back to keyword classification of the value itself.
func StandardizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "":
		return ""
	case "active", "open", "published", "current", "live":
		return domain.StatusActive
	case "complete", "completed", "closed", "expired", "archived":
		return domain.StatusComplete
	case "cancelled", "canceled", "annulled", "withdrawn":
		return domain.StatusCancelled
	case "awarded", "award":
		return domain.StatusAwarded
	case "planned", "upcoming", "presolicitation", "pre-solicitation":
		return domain.StatusPlanned
	case "draft":
		return domain.StatusDraft
	}
	if fromText := statusRules.Classify(s); fromText != "" {
		return fromText
	}
	return domain.StatusActive
}
