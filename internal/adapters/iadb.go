package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/extract"
	"github.com/tenderhub/normalizer/internal/lang"
)

// IADBAdapter normalizes Inter-American Development Bank notices. Rows are
// keyed by project number rather than a surrogate id.
type IADBAdapter struct {
	base
}

// spanishSpeaking lists IADB member countries whose notices default to
// Spanish when the row carries no language.
var spanishSpeaking = map[string]bool{
	"Argentina": true, "Bolivia": true, "Chile": true, "Colombia": true,
	"Costa Rica": true, "Cuba": true, "Dominican Republic": true,
	"Ecuador": true, "El Salvador": true, "Guatemala": true,
	"Honduras": true, "Mexico": true, "Nicaragua": true, "Panama": true,
	"Paraguay": true, "Peru": true, "Uruguay": true, "Venezuela": true,
}

func (a *IADBAdapter) Table() string { return domain.TableIADB }

func (a *IADBAdapter) Normalize(ctx context.Context, row domain.SourceRow, stats *lang.Stats) (*domain.UnifiedTender, error) {
	if err := requireFields(row, domain.TableIADB, "project_number"); err != nil {
		return nil, err
	}

	started := time.Now()
	number := row.ID("project_number")
	t := a.newTender(domain.TableIADB, number, row)

	t.Title = firstNonEmpty(
		row.String("notice_title"),
		row.String("project_name"),
		fmt.Sprintf("IADB Tender - %s", number),
	)
	t.Description = row.String("description")
	t.TenderType = row.String("type")
	t.ProjectName = row.String("project_name")
	t.ProjectNumber = number
	t.URL = firstNonEmpty(row.String("url"), row.String("url_pdf"))

	setDate(t, &t.PublicationDate, "published_at_raw", row.String("publication_date"))
	// pue_date is the bid-closing date in IADB exports.
	setDate(t, &t.DeadlineDate, "deadline_raw", firstNonEmpty(
		row.String("pue_date"), row.String("due_date")))

	country, method := extract.EnsureCountry(extract.CountryInput{
		Explicit: row.String("country"),
		Text:     t.Title + " " + t.Description,
	})
	t.Country = country
	if method != extract.CountryFromExplicit {
		t.AddFallback("country_method", method)
	}

	if spanishSpeaking[t.Country] {
		t.Language = "es"
	}

	a.finish(ctx, t, stats, started)
	return t, nil
}
