package adapters

import (
	"context"
	"time"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/extract"
	"github.com/tenderhub/normalizer/internal/lang"
)

// AFDBAdapter normalizes African Development Bank procurement notices.
type AFDBAdapter struct {
	base
}

func (a *AFDBAdapter) Table() string { return domain.TableAFDB }

func (a *AFDBAdapter) Normalize(ctx context.Context, row domain.SourceRow, stats *lang.Stats) (*domain.UnifiedTender, error) {
	if err := requireFields(row, domain.TableAFDB, "id"); err != nil {
		return nil, err
	}

	started := time.Now()
	t := a.newTender(domain.TableAFDB, row.ID("id"), row)

	t.Title = row.String("title")
	t.Description = row.String("description")
	t.TenderType = row.String("tender_type")
	t.ProjectID = row.String("project_id")
	t.ProjectName = row.String("project_name")
	t.Sector = row.String("sector")
	t.URL = row.String("url")

	setDate(t, &t.PublicationDate, "published_at_raw", row.String("publication_date"))
	setDate(t, &t.DeadlineDate, "deadline_raw", firstNonEmpty(
		row.String("closing_date"), row.String("deadline")))

	country, method := extract.EnsureCountry(extract.CountryInput{
		Explicit: row.String("country"),
		Text:     t.Title + " " + t.Description,
	})
	t.Country = country
	if method != extract.CountryFromExplicit {
		t.AddFallback("country_method", method)
	}

	if value, ok := row.Float("estimated_value"); ok {
		t.EstimatedValue = &value
		t.Currency = row.String("currency")
	}

	if links, ok := row.Value("document_links"); ok {
		t.DocumentLinks = extract.NormalizeDocumentLinks(links)
	}

	a.finish(ctx, t, stats, started)
	return t, nil
}
