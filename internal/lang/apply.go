package lang

import (
	"context"

	"github.com/tenderhub/normalizer/internal/domain"
)

// fieldPair links a source field to its English counterpart on the model.
type fieldPair struct {
	name   string
	source func(*domain.UnifiedTender) string
	target func(*domain.UnifiedTender, string)
}

var bilingualPairs = []fieldPair{
	{
		name:   "title",
		source: func(t *domain.UnifiedTender) string { return t.Title },
		target: func(t *domain.UnifiedTender, v string) { t.TitleEnglish = v },
	},
	{
		name:   "description",
		source: func(t *domain.UnifiedTender) string { return t.Description },
		target: func(t *domain.UnifiedTender, v string) { t.DescriptionEnglish = v },
	},
	{
		name:   "organization_name",
		source: func(t *domain.UnifiedTender) string { return t.OrganizationName },
		target: func(t *domain.UnifiedTender, v string) { t.OrganizationNameEnglish = v },
	},
	{
		name:   "buyer",
		source: func(t *domain.UnifiedTender) string { return t.Buyer },
		target: func(t *domain.UnifiedTender, v string) { t.BuyerEnglish = v },
	},
	{
		name:   "project_name",
		source: func(t *domain.UnifiedTender) string { return t.ProjectName },
		target: func(t *domain.UnifiedTender, v string) { t.ProjectNameEnglish = v },
	},
}

// englishOf returns the current English value for a pair.
func englishOf(t *domain.UnifiedTender, name string) string {
	switch name {
	case "title":
		return t.TitleEnglish
	case "description":
		return t.DescriptionEnglish
	case "organization_name":
		return t.OrganizationNameEnglish
	case "buyer":
		return t.BuyerEnglish
	case "project_name":
		return t.ProjectNameEnglish
	}
	return ""
}

// Apply fills the *_english counterpart of each populated bilingual field
// that is still empty, recording per-field provenance on the tender and
// outcomes in the stats accumulator. Already-populated English fields are
// never overwritten.
func Apply(ctx context.Context, t *domain.UnifiedTender, svc *Service, stats *Stats) {
	if svc == nil {
		return
	}

	provenance := make(map[string]any)
	for _, pair := range bilingualPairs {
		source := pair.source(t)
		if source == "" || englishOf(t, pair.name) != "" {
			continue
		}

		res := svc.TranslateToEnglish(ctx, source, t.Language)
		pair.target(t, res.Text)
		provenance[pair.name] = map[string]any{
			"method":  res.Method,
			"quality": res.Quality,
		}
		if stats != nil {
			stats.Record(res, len(source))
		}
	}

	if len(provenance) > 0 {
		t.AddFallback("translation", provenance)
	}
}
